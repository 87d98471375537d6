// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/hesusruiz/acrylic/acrylic"
	"github.com/hesusruiz/acrylic/dump"
	"github.com/hesusruiz/acrylic/html"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// compiler turns acrylic sources into the configured output format.
// The graph renderer is kept between runs, so watch mode reuses its cache.
type compiler struct {
	s        *settings
	log      *zap.SugaredLogger
	renderer *html.Renderer
}

func newCompiler(s *settings, log *zap.SugaredLogger) (*compiler, error) {
	opts := html.Options{
		KatexPath: s.katexPath,
		CodeStyle: s.codeStyle,
		Graphs:    html.NewDotCommand(s.dotCommand, s.graphCache, log),
		Log:       log,
	}

	if len(s.template) > 0 {
		tmpl, err := os.ReadFile(s.template)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		opts.Template = tmpl
	}

	return &compiler{s: s, log: log, renderer: html.NewRenderer(opts)}, nil
}

func (cp *compiler) compile(ctx context.Context, fileName string, src []byte) ([]byte, error) {
	doc, err := acrylic.ParseFromBytes(fileName, src,
		acrylic.WithLogger(cp.log),
		acrylic.WithMaxNesting(cp.s.maxNesting),
	)
	if err != nil {
		return nil, err
	}

	if cp.s.format == formatDump {
		return []byte(dump.String(doc, dump.Options{Width: cp.s.width})), nil
	}

	return cp.renderer.RenderPage(ctx, doc)
}

// processFile compiles the input and writes the result, unless in a dry run.
func (cp *compiler) processFile(ctx context.Context) error {
	var src []byte
	var err error

	if cp.s.input == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(cp.s.input)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	out, err := cp.compile(ctx, cp.s.input, src)
	if err != nil {
		return err
	}

	if cp.s.dryrun {
		return nil
	}

	if cp.s.output == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}

	// Permissions for user:rw group:rw others:r
	return os.WriteFile(cp.s.output, out, 0664)
}

// processWatch checks periodically if the input file has been modified, and if so
// it processes the file and writes the result to the output file.
// Errors in the document are logged and watching continues, until ctx is cancelled.
func (cp *compiler) processWatch(ctx context.Context) error {

	var oldTimestamp time.Time

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(cp.s.input)
		if err != nil {
			return err
		}

		// If current modified timestamp is newer than the previous timestamp, process the file
		if oldTimestamp.Before(info.ModTime()) {
			oldTimestamp = info.ModTime()
			cp.log.Infow("processing", "input", cp.s.input, "output", cp.s.output)
			if err := cp.processFile(ctx); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}

		// Check again in one second
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

	}
}

// terminalWidth is the width of standard output when it is a terminal, or zero.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	var z *zap.Logger
	var err error

	// Setup the logging system
	if c.Bool("debug") {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	cfg, err := readConfig(c.String("config"), c.IsSet("config"))
	if err != nil {
		return err
	}

	s, err := settingsFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := s.applyFlags(c); err != nil {
		return err
	}

	if s.format == formatDump && s.width == 0 && s.output == "-" {
		s.width = terminalWidth()
	}

	cp, err := newCompiler(s, sugar)
	if err != nil {
		return err
	}

	sugar.Debugw("settings", "input", s.input, "output", s.output, "format", s.format, "dryrun", s.dryrun)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	// This is useful for development.
	// If the user specified to watch, loop processing the input file when modified
	if s.watch {
		return cp.processWatch(ctx)
	}

	return cp.processFile(ctx)
}

func main() {

	app := &cli.App{
		Name:     "acrylic",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "process an acrylic document and produce HTML",
		UsageText: "acrylic [options] [INPUT_FILE] (default input file is index.acr, - is standard input)",
		Action:    process,
		Flags:     commandFlags(),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}

func commandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write result to `FILE` (default is input file name with extension .html, - is standard output)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   formatHTML,
			Usage:   "output format, html or dump",
		},
		&cli.StringFlag{
			Name:    "katex",
			Aliases: []string{"k"},
			Usage:   "`PATH` or URL prefix of the KaTeX resources",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "read configuration from `FILE` (default is " + defaultConfigFile + " if it exists)",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "wrap the dump format at `COLUMNS` (default is the terminal width)",
		},
		&cli.BoolFlag{
			Name:    "dryrun",
			Aliases: []string{"n"},
			Usage:   "do not generate output file, just process input file",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "run in debug mode",
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "watch the file for changes",
		},
	}
}
