// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graphviz generates diagrams from dot input.
package graphviz

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Filetype is the file format of output image.
type Filetype int

// Supported Filetypes.
const (
	PDF Filetype = 1
	PNG Filetype = 2
	SVG Filetype = 3
)

// String returns the name dot uses for the format, like "pdf".
func (f Filetype) String() string {
	switch f {
	case PDF:
		return "pdf"
	case PNG:
		return "png"
	case SVG:
		return "svg"
	}
	return fmt.Sprintf("Filetype(%d)", int(f))
}

// FiletypeOf determines the image format from the filename's extension.
func FiletypeOf(filename string) (Filetype, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "pdf":
		return PDF, nil
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return 0, fmt.Errorf("could not determine filetype from filename: %v", filename)
}

// Options to Create.
type Options struct {
	// Unless provided, Create will attempt to autodetect this from the filename.
	Filetype Filetype
	// The Graphviz layout program to run. Defaults to "dot".
	Program string
}

// Create writes an image file from a Graphviz spec. It invokes the "dot"
// program internally, which is killed if ctx is canceled. 'generate' should
// write the Graphviz spec into the given writer; an error it returns is
// returned from Create.
func Create(ctx context.Context, filename string, generate func(io.Writer) error, options Options) error {
	if options.Filetype == 0 {
		ft, err := FiletypeOf(filename)
		if err != nil {
			return err
		}
		options.Filetype = ft
	}
	switch options.Filetype {
	case PDF, PNG, SVG:
	default:
		return fmt.Errorf("unknown file type: %v", options.Filetype)
	}
	if options.Program == "" {
		options.Program = "dot"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	cmd := exec.CommandContext(ctx, options.Program, "-T"+options.Filetype.String())
	cmd.Stdout = file
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	genErr := make(chan error, 1)
	go func() {
		defer stdin.Close()
		genErr <- generate(stdin)
	}()
	var errOut strings.Builder
	cmd.Stderr = &errOut
	err = cmd.Run()
	if err != nil {
		return fmt.Errorf("error executing %s. Stderr: %v", options.Program, errOut.String())
	}
	if err := <-genErr; err != nil {
		return fmt.Errorf("error generating graph: %v", err)
	}
	log.WithFields(log.Fields{
		"filename": filename,
		"filetype": options.Filetype,
	}).Debug("Rendered graph")
	return file.Close()
}
