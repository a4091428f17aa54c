package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bodgit/tilemap"
	"github.com/bodgit/tilemap/catalog"
	"github.com/bodgit/tilemap/watch"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tilemap.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func printStatus(file string, m *tilemap.Map) {
	fmt.Printf("%s: %dx%d cells, %d tiles\n", file, m.Columns(), m.Rows(), len(m.Tiles()))
}

func main() {
	app := cli.NewApp()

	app.Name = "tilemap"
	app.Usage = "Tiled map loading and cataloguing utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TILEMAP_DB"},
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
			Name:        "inspect",
			Usage:       "Load a map and print a summary",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				m, err := tilemap.LoadMap(file, tilemap.WithLogger(newLogger(c)))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := writeSummary(os.Stdout, summarize(file, m)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalog every map",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := catalog.NewDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := catalog.New(db, newLogger(c)).Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "watch",
			Usage:       "Reload a map whenever it changes",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				logger := newLogger(c)

				m, err := tilemap.LoadMap(file, tilemap.WithLogger(logger))
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %s\n", file, err)
				} else {
					printStatus(file, m)
				}

				w, err := watch.New(file, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer w.Close()

				interrupt := make(chan os.Signal, 1)
				signal.Notify(interrupt, os.Interrupt)

				for {
					select {
					case m, ok := <-w.Maps:
						if !ok {
							return nil
						}
						printStatus(file, m)
					case err, ok := <-w.Errors:
						if !ok {
							return nil
						}
						fmt.Fprintf(os.Stderr, "%s: %s\n", file, err)
					case <-interrupt:
						return nil
					}
				}
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
