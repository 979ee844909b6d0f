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

// Command kgraph loads triples into an in-memory knowledge graph, then
// queries, summarizes, draws or serves it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	docopt "github.com/docopt/docopt-go"
	"github.com/ebay/kgraph/config"
	"github.com/ebay/kgraph/kg"
	"github.com/ebay/kgraph/loader"
	"github.com/ebay/kgraph/util/debuglog"
	"github.com/ebay/kgraph/util/tracing"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fmtr = message.NewPrinter(language.English)

const usage = `kgraph is a command-line tool for querying and drawing knowledge graphs.

It loads each DATA file into an in-memory graph, then runs the command.

Usage:
  kgraph [-c=FILE --format=FORMAT --trace=HOST -t=DUR] query [--json] (-q=QUERY | -f=FILE) DATA...
  kgraph [-c=FILE --format=FORMAT --trace=HOST] export [-q=QUERY -o=FILE] DATA...
  kgraph [-c=FILE --format=FORMAT --trace=HOST] render [-q=QUERY --layout=PROG] -o=FILE DATA...
  kgraph [-c=FILE --format=FORMAT --trace=HOST] stats DATA...
  kgraph [-c=FILE --format=FORMAT] convert [-o=FILE] DATA...
  kgraph [-c=FILE --format=FORMAT --trace=HOST] serve [--http=ADDR --allow-insert] [DATA...]
  kgraph defaultconfig -o=FILE

Options:
  -c=FILE, --config=FILE   JSON or YAML configuration file (by extension).
  --format=FORMAT          Format of the DATA files: tsv or nquads. If unset, it's
                           detected from each file's extension.
  --trace=HOST             Send OpenTracing traces to this Jaeger agent.
  -t=DUR, --timeout=DUR    Timeout for evaluating the query [default: 1m].
  -q=QUERY, --query=QUERY  The query. For export and render, only the nodes it
                           returns and the edges between them are drawn.
  -f=FILE, --file=FILE     Read the query from this file, or standard input if "-".
  -o=FILE, --output=FILE   Write to this file rather than standard output. For
                           render, the extension picks the image format: pdf,
                           png or svg.
  --json                   Write query results as JSON.
  --layout=PROG            The Graphviz layout program [default: dot].
  --http=ADDR              Serve HTTP on this host:port, overriding the config.
  --allow-insert           Accept inserts over HTTP, overriding the config.

Examples:
  # Find the best rated games.
  kgraph query -q 'SELECT ?title ?rating WHERE {
    ?game a ps2:Game . ?game ps2:hasTitle ?title . ?game ps2:hasRating ?rating
  } ORDER BY DESC(?rating) LIMIT 3' -c testdata/kgraph.yaml testdata/ps2games.tsv

  # Draw the whole graph.
  kgraph render -c testdata/kgraph.yaml -o ps2games.svg testdata/ps2games.tsv

  # Count nodes by type and triples by predicate.
  kgraph stats testdata/ps2games.tsv

  # Serve the graph on port 9980.
  kgraph serve -c testdata/kgraph.yaml --http :9980 testdata/ps2games.tsv
`

type options struct {
	// Options
	ConfigFile    string `docopt:"--config"`
	FormatString  string `docopt:"--format"`
	TracingAgent  string `docopt:"--trace"`
	TimeoutString string `docopt:"--timeout"`
	// Timeout is never zero; it's set to 1 hour if the user passes 0s.
	Timeout     time.Duration
	QueryString string   `docopt:"--query"`
	QueryFile   string   `docopt:"--file"`
	Output      string   `docopt:"--output"`
	JSON        bool     `docopt:"--json"`
	Layout      string   `docopt:"--layout"`
	HTTPAddress string   `docopt:"--http"`
	AllowInsert bool     `docopt:"--allow-insert"`
	Data        []string `docopt:"DATA"`

	// Commands
	Query         bool `docopt:"query"`
	Export        bool `docopt:"export"`
	Render        bool `docopt:"render"`
	Stats         bool `docopt:"stats"`
	Convert       bool `docopt:"convert"`
	Serve         bool `docopt:"serve"`
	DefaultConfig bool `docopt:"defaultconfig"`

	format loader.Format
}

func parseArgs(args []string) (*options, error) {
	opts, err := docopt.ParseArgs(usage, args, "")
	if err != nil {
		return nil, fmt.Errorf("error parsing command-line arguments: %v", err)
	}
	var options options
	err = opts.Bind(&options)
	if err != nil {
		return nil, fmt.Errorf("error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	if options.TimeoutString != "" {
		options.Timeout, err = time.ParseDuration(options.TimeoutString)
		if err != nil {
			return nil, fmt.Errorf("unable to parse timeout value: %v", err)
		}
	}
	if options.Timeout == 0 {
		options.Timeout = time.Hour
	}
	if options.FormatString != "" {
		options.format, err = loader.ParseFormat(options.FormatString)
		if err != nil {
			return nil, err
		}
	}
	return &options, nil
}

func main() {
	options, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), options, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the configuration file, if one was given.
func loadConfig(options *options) (*config.KGraph, error) {
	if options.ConfigFile == "" {
		return config.Default(), nil
	}
	return config.Load(options.ConfigFile)
}

// loadData loads the DATA files into the graph, drawing progress bars on
// standard error when there are several.
func loadData(ctx context.Context, g *kg.Graph, options *options) error {
	var progress kg.LoadProgress
	if len(options.Data) > 1 {
		bars := newLoadBars(options.Data)
		bars.start(os.Stderr)
		defer bars.stop()
		progress = bars.done
	}
	_, err := g.LoadFiles(ctx, options.Data, options.format, progress)
	return err
}

// run executes the command, writing its output to 'out' unless an output file
// was given.
func run(ctx context.Context, options *options, out io.Writer) error {
	if options.DefaultConfig {
		return config.Write(config.Default(), options.Output)
	}
	cfg, err := loadConfig(options)
	if err != nil {
		return err
	}
	debuglog.Configure(debuglog.FromConfig(cfg.Log))

	tracingCfg := cfg.Tracing
	if options.TracingAgent != "" {
		tracingCfg = &config.Tracing{AgentHostPort: options.TracingAgent}
	}
	tracer, err := tracing.New("kgraph", tracingCfg)
	if err != nil {
		log.WithError(err).Warn("Could not initialize OpenTracing tracer")
	} else {
		defer tracer.Close()
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "kgraph run")
	defer span.Finish()

	g, err := kg.New(cfg)
	if err != nil {
		return err
	}
	if err := loadData(ctx, g, options); err != nil {
		return err
	}

	switch {
	case options.Query:
		return runQuery(ctx, g, options, out)
	case options.Export:
		return exportDOT(ctx, g, options, out)
	case options.Render:
		return render(ctx, g, options)
	case options.Stats:
		return printStats(ctx, g, out)
	case options.Convert:
		return convert(g, options, out)
	case options.Serve:
		return serve(ctx, g, cfg, options)
	}
	return fmt.Errorf("command not implemented")
}
