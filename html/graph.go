// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package html

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// GraphRenderer converts the source of a graph into SVG markup.
type GraphRenderer interface {
	RenderGraph(ctx context.Context, src string) ([]byte, error)
}

// DefaultDotCommand runs Graphviz, producing SVG without the XML prologue.
const DefaultDotCommand = "dot -Tsvg_inline"

// ErrNoGraphRenderer is returned when the document has graphs and no renderer was configured.
var ErrNoGraphRenderer = errors.New("no graph renderer configured")

// DotCommand renders graphs piping their source to an external command.
//
// The results are cached by the md5 hash of the source: in memory, and also
// as files in CacheDir when it is not empty. A modification of the source
// produces a new file. Stale files are never deleted.
type DotCommand struct {
	// Command is the program and its arguments, separated by spaces
	Command  string
	CacheDir string

	log   *zap.SugaredLogger
	cache map[string][]byte
}

// NewDotCommand creates a graph renderer running command, DefaultDotCommand if empty.
func NewDotCommand(command string, cacheDir string, log *zap.SugaredLogger) *DotCommand {
	if len(strings.TrimSpace(command)) == 0 {
		command = DefaultDotCommand
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DotCommand{
		Command:  command,
		CacheDir: cacheDir,
		log:      log,
		cache:    make(map[string][]byte),
	}
}

func (d *DotCommand) RenderGraph(ctx context.Context, src string) ([]byte, error) {
	hh := fmt.Sprintf("%x", md5.Sum([]byte(src)))

	if d.cache == nil {
		d.cache = make(map[string][]byte)
	}
	if d.log == nil {
		d.log = zap.NewNop().Sugar()
	}

	if svg, found := d.cache[hh]; found {
		return svg, nil
	}

	var fileName string
	if len(d.CacheDir) > 0 {
		fileName = filepath.Join(d.CacheDir, "dot_"+hh+".svg")
		if svg, err := os.ReadFile(fileName); err == nil {
			d.cache[hh] = svg
			return svg, nil
		}
	}

	d.log.Debugw("generating graph", "command", d.Command, "hash", hh)

	fields := strings.Fields(d.Command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultDotCommand)
	}
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)

	cmd.Stdin = strings.NewReader(src)
	var out bytes.Buffer
	var cmderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &cmderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running command: %s ; error: %w; stderr: %s", d.Command, err, strings.TrimSpace(cmderr.String()))
	}

	svg := out.Bytes()
	d.cache[hh] = svg

	if len(fileName) > 0 {
		// Make sure the directory exists before attempting to write the file
		if err := os.MkdirAll(d.CacheDir, 0750); err != nil {
			return nil, fmt.Errorf("creating graph cache: %w", err)
		}
		// Permissions for user:rw group:rw others:r
		if err := os.WriteFile(fileName, svg, 0664); err != nil {
			return nil, fmt.Errorf("writing graph cache: %w", err)
		}
	}

	return svg, nil
}
