package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	loadEnvFiles()
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "xisbn",
		Usage:     "validate parameters and query the xISBN lookup service",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML file with base_url, timeout, user_agent, lenient, ai, token, hash"},
			&cli.StringFlag{Name: "base-url", Usage: "lookup endpoint the ISBN is appended to"},
			&cli.DurationFlag{Name: "timeout", Usage: "HTTP timeout"},
			&cli.BoolFlag{Name: "lenient", Usage: "accept values that only start with a known token"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Commands: []*cli.Command{
			{
				Name:      "lookup",
				Usage:     "fetch the raw response for an ISBN",
				ArgsUsage: "ISBN",
				Flags:     requestFlags(),
				Action:    lookupAction,
			},
			{
				Name:      "url",
				Usage:     "print the request URL without fetching it",
				ArgsUsage: "ISBN",
				Flags:     requestFlags(),
				Action:    urlAction,
			},
		},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}
}

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "method", Usage: "to10, to13, fixChecksum, getMetadata or getEditions"},
		&cli.StringFlag{Name: "format", Usage: "xml, html, json, python, ruby, php, txt or csv"},
		&cli.StringFlag{Name: "library", Usage: "ebook, freeebook, bookmooch, paperbackswap, wikipedia, oca or hathi"},
		&cli.StringSliceFlag{Name: "fl", Usage: "field to return, repeatable"},
		&cli.StringFlag{Name: "start-index"},
		&cli.StringFlag{Name: "count"},
		&cli.StringFlag{Name: "ai", Usage: "affiliate id"},
		&cli.StringFlag{Name: "token"},
		&cli.StringFlag{Name: "hash"},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}
