// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/hesusruiz/acrylic/acrylic"
	"github.com/hesusruiz/acrylic/html"
	"github.com/hesusruiz/vcutils/yaml"
	"github.com/urfave/cli/v2"
)

// defaultConfigFile is read when it exists and no --config flag is given.
const defaultConfigFile = "acrylic.yaml"

const (
	formatHTML = "html"
	formatDump = "dump"
)

// settings holds the configuration of one run, from the config file and the flags.
type settings struct {
	input  string
	output string
	format string

	katexPath  string
	codeStyle  string
	template   string
	dotCommand string
	graphCache string
	maxNesting int

	// width for the dump format, zero for no wrapping
	width int

	dryrun bool
	watch  bool
	debug  bool
}

// readConfig reads the YAML config file. A missing default file is not an error.
func readConfig(fileName string, explicit bool) (*yaml.YAML, error) {
	if len(fileName) == 0 {
		fileName = defaultConfigFile
	}

	cfg, err := yaml.ParseYamlFile(fileName)
	if err == nil {
		return cfg, nil
	}

	if !explicit {
		if _, statErr := os.Stat(fileName); errors.Is(statErr, fs.ErrNotExist) {
			return yaml.ParseYaml("")
		}
	}

	return nil, fmt.Errorf("reading config %s: %w", fileName, err)
}

// settingsFromConfig takes the values of the config file, with defaults for the missing ones.
func settingsFromConfig(cfg *yaml.YAML) (*settings, error) {
	s := &settings{
		format:     cfg.String("format", formatHTML),
		katexPath:  cfg.String("katexPath", ""),
		codeStyle:  cfg.String("codeStyle", html.DefaultCodeStyle),
		template:   cfg.String("template", ""),
		dotCommand: cfg.String("dotCommand", html.DefaultDotCommand),
		graphCache: cfg.String("graphCache", ""),
	}

	var err error
	if s.maxNesting, err = configInt(cfg, "maxNesting", acrylic.DefaultMaxNesting); err != nil {
		return nil, err
	}
	if s.width, err = configInt(cfg, "output.width", 0); err != nil {
		return nil, err
	}

	return s, s.validate()
}

// configInt reads an integer entry of the config file.
func configInt(cfg *yaml.YAML, key string, def int) (int, error) {
	raw := strings.TrimSpace(cfg.String(key, strconv.Itoa(def)))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: expected an integer: %w", key, raw, acrylic.ErrBadConfig)
	}
	return n, nil
}

// applyFlags overrides the settings with the flags given in the command line.
func (s *settings) applyFlags(c *cli.Context) error {
	s.input = "index.acr"
	if c.Args().Present() {
		s.input = c.Args().First()
	}

	if c.IsSet("output") {
		s.output = c.String("output")
	}
	if c.IsSet("format") {
		s.format = c.String("format")
	}
	if c.IsSet("katex") {
		s.katexPath = c.String("katex")
	}
	if c.IsSet("width") {
		s.width = c.Int("width")
	}

	s.dryrun = c.Bool("dryrun")
	s.watch = c.Bool("watch")
	s.debug = c.Bool("debug")

	if len(s.output) == 0 {
		s.output = outputName(s.input, s.format)
	}

	if s.watch && (s.input == "-" || s.output == "-") {
		return fmt.Errorf("watch mode needs an input file and an output file: %w", acrylic.ErrBadConfig)
	}

	return s.validate()
}

func (s *settings) validate() error {
	if s.format != formatHTML && s.format != formatDump {
		return fmt.Errorf("format %q: expected %q or %q: %w", s.format, formatHTML, formatDump, acrylic.ErrBadConfig)
	}
	if s.maxNesting < 1 {
		return fmt.Errorf("maxNesting %d: must be positive: %w", s.maxNesting, acrylic.ErrBadConfig)
	}
	if s.width < 0 {
		return fmt.Errorf("width %d: can not be negative: %w", s.width, acrylic.ErrBadConfig)
	}
	return nil
}

// outputName is the input file name with the extension of the format.
// Standard input goes to standard output.
func outputName(input string, format string) string {
	if input == "-" {
		return "-"
	}

	newExt := ".html"
	if format == formatDump {
		newExt = ".txt"
	}

	ext := path.Ext(input)
	if len(ext) == 0 {
		return input + newExt
	}
	return strings.TrimSuffix(input, ext) + newExt
}
