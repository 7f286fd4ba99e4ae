package retrogfx

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vchimishuk/chub/cue"
)

func crcFile(file string) (uint32, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err = io.Copy(h, f); err != nil {
		return 0, err
	}

	return h.Sum32(), nil
}

func crcString(crc uint32) string {
	return fmt.Sprintf("%0*X", crc32.Size<<1, crc)
}

// cueTracks returns the lowercased filenames of every track referenced by
// any cue sheet in dir. Such files are CD image data, not graphics, and must
// not be offered to the registry no matter how plausible their size looks.
func cueTracks(dir string) (map[string]struct{}, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	files, err := d.Readdirnames(0)
	if err != nil {
		return nil, err
	}

	tracks := make(map[string]struct{})
	for _, file := range files {
		if filepath.Ext(file) != ".cue" {
			continue
		}

		sheet, err := cue.ParseFile(filepath.Join(dir, file))
		if err != nil {
			// A malformed sheet shouldn't stop the scan
			continue
		}

		for _, f := range sheet.Files {
			tracks[strings.ToLower(f.Name)] = struct{}{}
		}
	}

	return tracks, nil
}
