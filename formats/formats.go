// Package formats assembles the built-in format handlers into a registry.
package formats

import (
	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/ega"
	"github.com/bodgit/retrogfx/ilbm"
	"github.com/bodgit/retrogfx/vga"
)

// Registry returns a registry of all built-in handlers. The order matters
// for autodetection: formats with a real signature come first, formats
// identified only by an exact size follow, and formats that accept almost
// anything come last.
func Registry() *retrogfx.Registry {
	return retrogfx.NewRegistry(
		ilbm.Handler,
		vga.PaletteHandler,
		vga.FullscreenHandler,
		ega.FullscreenHandler,
		ega.TilesetHandler,
	)
}
