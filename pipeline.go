package retrogfx

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/retrogfx/index"
)

// Ignore anything bigger; no supported format comes close
const maxAssetSize = 16 << 20

func (g *RetroGFX) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (g *RetroGFX) scanFile(file string, idx *index.DB) error {
	content, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	handlers := g.registry.Find(content)
	if len(handlers) == 0 {
		return nil
	}

	// Registry order is reliability order, so on ambiguity the first
	// candidate is the best guess
	id := handlers[0].Metadata().ID
	if len(handlers) > 1 {
		g.logger.Printf("%d candidate formats for \"%s\", using \"%s\"\n", len(handlers), file, id)
	}

	crc, err := crcFile(file)
	if err != nil {
		return err
	}

	if g.db != nil {
		if err := g.db.Add(crcString(crc), file, id); err != nil {
			return err
		}
	}

	return idx.Set(crc, id)
}

func (g *RetroGFX) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			tracks, err := cueTracks(dir)
			if err != nil {
				errc <- err
				return
			}

			idx := index.New()
			if err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				// Ignore anything that isn't a normal file in the "top" directory
				if !info.Mode().IsRegular() || filepath.Dir(file) != dir {
					return nil
				}

				if info.Size() > maxAssetSize || info.Name() == index.Filename {
					return nil
				}

				// CD image tracks are never graphics
				if _, ok := tracks[strings.ToLower(info.Name())]; ok {
					return nil
				}

				return g.scanFile(file, idx)
			}); err != nil {
				errc <- err
				return
			}

			if idx.Length() > 0 {
				b, err := idx.MarshalBinary()
				if err != nil {
					errc <- err
					return
				}

				if err := ioutil.WriteFile(filepath.Join(dir, index.Filename), b, 0644); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path, identifies every plausible
// graphics asset against the registry and records the results in the catalog
// database and a per-directory index file.
func (g *RetroGFX) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := g.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := g.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
