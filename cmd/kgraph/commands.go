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

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"github.com/ebay/kgraph/api"
	"github.com/ebay/kgraph/api/impl"
	"github.com/ebay/kgraph/config"
	"github.com/ebay/kgraph/kg"
	"github.com/ebay/kgraph/loader"
	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/stats"
	"github.com/ebay/kgraph/util/errors"
	"github.com/ebay/kgraph/util/graphviz"
	"github.com/ebay/kgraph/util/table"
)

// queryText returns the query given on the command line or read from the
// query file.
func queryText(options *options, stdin io.Reader) (string, error) {
	if options.QueryFile == "" {
		return options.QueryString, nil
	}
	var r io.Reader = stdin
	if options.QueryFile != "-" {
		f, err := os.Open(options.QueryFile)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("unable to read query: %v", err)
	}
	return string(text), nil
}

func runQuery(ctx context.Context, g *kg.Graph, options *options, out io.Writer) error {
	text, err := queryText(options, os.Stdin)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()
	_, res, err := g.Query(ctx, text)
	if err != nil {
		return err
	}
	if options.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "\t")
		return enc.Encode(api.NewQueryResponse(text, res, 0))
	}
	err = table.PrettyPrint(out, g.Table(res), table.HeaderRow|table.JustifyNumbers)
	if err != nil {
		return err
	}
	_, err = fmtr.Fprintf(out, "\n%d results.\n", res.Len())
	return err
}

// selection runs the optional query that limits what export and render draw.
// It returns nil to draw the whole graph.
func selection(ctx context.Context, g *kg.Graph, options *options) (*query.ResultSet, error) {
	if options.QueryString == "" {
		return nil, nil
	}
	_, res, err := g.Query(ctx, options.QueryString)
	return res, err
}

func exportDOT(ctx context.Context, g *kg.Graph, options *options, out io.Writer) error {
	res, err := selection(ctx, g, options)
	if err != nil {
		return err
	}
	return writeOutput(options.Output, out, func(w io.Writer) error {
		return g.WriteDOT(ctx, w, res)
	})
}

func render(ctx context.Context, g *kg.Graph, options *options) error {
	res, err := selection(ctx, g, options)
	if err != nil {
		return err
	}
	return graphviz.Create(ctx, options.Output,
		func(w io.Writer) error {
			return g.WriteDOT(ctx, w, res)
		},
		graphviz.Options{Program: options.Layout})
}

func printStats(ctx context.Context, g *kg.Graph, out io.Writer) error {
	return stats.PrettyPrint(ctx, out, g.Stats(ctx), g.Prefixes)
}

func convert(g *kg.Graph, options *options, out io.Writer) error {
	return writeOutput(options.Output, out, func(w io.Writer) error {
		return loader.WriteNQuads(w, g.Store.All())
	})
}

func serve(ctx context.Context, g *kg.Graph, cfg *config.KGraph, options *options) error {
	var apiCfg config.API
	if cfg.API != nil {
		apiCfg = *cfg.API
	}
	if options.HTTPAddress != "" {
		apiCfg.HTTPAddress = options.HTTPAddress
	}
	if options.AllowInsert {
		apiCfg.AllowInsert = true
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return impl.New(&apiCfg, g).Run(ctx)
}

// writeOutput calls generate with a writer to the named file, or to 'out' if
// filename is empty or "-".
func writeOutput(filename string, out io.Writer, generate func(io.Writer) error) error {
	if filename == "" || filename == "-" {
		return generate(out)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	err = errors.Any(
		generate(w),
		w.Flush(),
		file.Close())
	if err != nil {
		return fmt.Errorf("failed to write %v: %v", filename, err)
	}
	return nil
}
