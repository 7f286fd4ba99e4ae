/*
Package retrogfx is a library for converting between the packed bit-plane
graphics formats used by legacy video hardware and a canonical in-memory
paletted image.

Each on-disk format is implemented by a Handler which can identify, decode
and encode its format. Handlers are collected into an ordered Registry which
supports content-based autodetection.
*/
package retrogfx

import "log"

// RetroGFX ties a handler registry and asset catalog together with a logger
// for the higher level operations such as scanning a directory tree.
type RetroGFX struct {
	registry *Registry
	db       *CatalogDB
	logger   *log.Logger
}

// New returns a RetroGFX using the given registry, catalog database and
// logger.
func New(registry *Registry, db *CatalogDB, logger *log.Logger) *RetroGFX {
	return &RetroGFX{
		registry: registry,
		db:       db,
		logger:   logger,
	}
}
