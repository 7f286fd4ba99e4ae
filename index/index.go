/*
Package index implements the small index file written to each scanned
directory, recording which graphics format was identified for each file by
its content CRC.
*/
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	// Filename is the expected filename used when writing to disk
	Filename   = "gfx.idx"
	maxEntries = 1024
	maxIDLen   = 255
)

var magic = [4]byte{'G', 'F', 'X', 'I'}

var (
	errMagic    = errors.New("index: bad magic")
	errTooShort = errors.New("index: insufficient data")
)

// DB maps content CRC32 values to format handler IDs. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type DB struct {
	formats map[uint32]string
}

// New returns an empty index
func New() *DB {
	return &DB{
		formats: make(map[uint32]string),
	}
}

// Length returns the number of entries in the index
func (db *DB) Length() int {
	return len(db.formats)
}

// Set records the format ID for the given CRC. The first format recorded for
// a CRC wins.
func (db *DB) Set(crc uint32, format string) error {
	if len(format) > maxIDLen {
		return fmt.Errorf("index: format ID longer than %d bytes", maxIDLen)
	}
	if _, ok := db.formats[crc]; !ok {
		db.formats[crc] = format
	}
	return nil
}

// Get returns the format ID recorded for the given CRC, if any
func (db *DB) Get(crc uint32) (string, bool) {
	format, ok := db.formats[crc]
	return format, ok
}

// MarshalBinary encodes the index into binary form and returns the result
func (db *DB) MarshalBinary() ([]byte, error) {
	if len(db.formats) > maxEntries {
		return nil, fmt.Errorf("index: more than %d entries", maxEntries)
	}

	keys := make([]uint32, 0, len(db.formats))
	for k := range db.formats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	b := new(bytes.Buffer)

	b.Write(magic[:])
	if err := binary.Write(b, binary.LittleEndian, uint16(len(keys))); err != nil {
		return nil, err
	}

	for _, k := range keys {
		if err := binary.Write(b, binary.LittleEndian, k); err != nil {
			return nil, err
		}
		format := db.formats[k]
		b.WriteByte(byte(len(format)))
		b.WriteString(format)
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the index from binary form
func (db *DB) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic)+2 {
		return errTooShort
	}
	if !bytes.Equal(b[:4], magic[:]) {
		return errMagic
	}

	count := int(binary.LittleEndian.Uint16(b[4:6]))
	db.formats = make(map[uint32]string, count)

	pos := 6
	for i := 0; i < count; i++ {
		if pos+5 > len(b) {
			return errTooShort
		}
		crc := binary.LittleEndian.Uint32(b[pos : pos+4])
		n := int(b[pos+4])
		pos += 5
		if pos+n > len(b) {
			return errTooShort
		}
		db.formats[crc] = string(b[pos : pos+n])
		pos += n
	}

	return nil
}
