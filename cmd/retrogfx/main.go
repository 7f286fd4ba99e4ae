package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/formats"
	"github.com/urfave/cli/v2"
)

const defaultDB = "retrogfx.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadSupps reads the supplementary files a handler declares for the given
// primary file. Filenames are matched case-insensitively; missing files are
// simply absent from the result.
func loadSupps(h retrogfx.Handler, path string, content []byte) (map[string][]byte, error) {
	decls := h.Supps(filepath.Base(path), content)
	if len(decls) == 0 {
		return nil, nil
	}

	dir := filepath.Dir(path)
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	supps := make(map[string][]byte)
	for id, name := range decls {
		for _, e := range entries {
			if !e.Mode().IsRegular() || !strings.EqualFold(e.Name(), name) {
				continue
			}
			b, err := ioutil.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			supps[id] = b
			break
		}
	}

	return supps, nil
}

// parseFile decodes a file with the best handler the registry offers.
func parseFile(registry *retrogfx.Registry, file string) (*retrogfx.Asset, retrogfx.Handler, error) {
	content, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}

	handlers := registry.Find(content)
	if len(handlers) == 0 {
		return nil, nil, fmt.Errorf("no handler recognises \"%s\"", file)
	}

	h := handlers[0]
	supps, err := loadSupps(h, file, content)
	if err != nil {
		return nil, nil, err
	}

	asset, err := h.Parse(content, supps)
	if err != nil {
		return nil, nil, err
	}

	return asset, h, nil
}

// importImage falls back to the stdlib decoders for truecolor input.
func importImage(file string) (*retrogfx.Asset, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return &retrogfx.Asset{Image: retrogfx.PalettedImage(m, 256)}, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "retrogfx"
	app.Usage = "Legacy game graphics conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	registry := formats.Registry()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"RETROGFX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "identify",
			Usage:       "Identify the format of a file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				content, err := ioutil.ReadFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				handlers := registry.Find(content)
				if len(handlers) == 0 {
					return cli.NewExitError("no matching format", 1)
				}

				for _, h := range handlers {
					d := h.Metadata()
					fmt.Printf("%s\t%s\t%s\n", d.ID, h.Identify(content), d.Title)
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Decode a file and describe its contents",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				asset, h, err := parseFile(registry, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				d := h.Metadata()
				fmt.Printf("format: %s (%s)\n", d.ID, d.Title)
				if len(d.Games) > 0 {
					fmt.Printf("games: %s\n", strings.Join(d.Games, ", "))
				}
				if asset.Image != nil {
					b := asset.Image.Bounds()
					fmt.Printf("image: %dx%d, %d colors\n", b.Dx(), b.Dy(), len(asset.Image.Palette))
				} else {
					fmt.Printf("palette: %d colors\n", len(asset.Palette))
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert a file to another format",
			Description: "Decodes SRC with whichever handler recognises it, falling back to the standard image decoders for truecolor input, and re-encodes it as DST with the handler given by --to.",
			ArgsUsage:   "SRC DST",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "to",
					Usage:    "target format ID",
					Required: true,
				},
				&cli.BoolFlag{
					Name:    "force",
					Aliases: []string{"f"},
					Usage:   "ignore limit violations",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				target := registry.Handler(c.String("to"))
				if target == nil {
					return cli.NewExitError(fmt.Sprintf("unknown format \"%s\"", c.String("to")), 1)
				}

				src, dst := c.Args().Get(0), c.Args().Get(1)

				asset, _, err := parseFile(registry, src)
				if err != nil {
					if asset, err = importImage(src); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				coll := retrogfx.Collection{{Name: filepath.Base(dst)}}
				if issues := target.CheckLimits(coll); len(issues) > 0 {
					for _, issue := range issues {
						fmt.Fprintln(os.Stderr, issue)
					}
					if !c.Bool("force") {
						return cli.NewExitError("limit violations, not writing (use --force to override)", 1)
					}
				}
				for _, advisory := range retrogfx.Advisories(coll) {
					logger.Println(advisory)
				}

				b, err := target.Generate(asset)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(dst, b, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalog identified graphics",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := retrogfx.NewCatalogDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				g := retrogfx.New(registry, db, newLogger(c))

				if err := g.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
