package retrogfx

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// CatalogDB is a sqlite-backed catalog of scanned graphics assets, keyed by
// content CRC.
type CatalogDB struct {
	db *sql.DB
}

// NewCatalogDB opens or creates the catalog database at file.
func NewCatalogDB(file string) (*CatalogDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, path TEXT NOT NULL, format TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	return &CatalogDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *CatalogDB) Close() error {
	return db.db.Close()
}

// Add records an identified asset, updating the stored path and format if
// the CRC has been seen before.
func (db *CatalogDB) Add(crc, path, format string) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (crc, path, format) VALUES (?, ?, ?)", crc, path, format); err != nil {
		return err
	}
	return nil
}

// FindFormatByCRC returns the format ID recorded for the given CRC, or the
// empty string if the CRC is unknown.
func (db *CatalogDB) FindFormatByCRC(crc string) (string, error) {
	var format string
	switch err := db.db.QueryRow("SELECT format FROM asset WHERE crc = ?", crc).Scan(&format); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return format, nil
	default:
		return "", err
	}
}
