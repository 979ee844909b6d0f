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

package export

import (
	metricsutil "github.com/ebay/kgraph/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type exportMetrics struct {
	durationSeconds prometheus.Summary
	nodesWritten    prometheus.Counter
	edgesWritten    prometheus.Counter
}

var metrics exportMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "export"}
	metrics = exportMetrics{
		durationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Name: "duration_seconds",
			Help: `The time it takes to render a graph. It's only recorded when a tracer is installed.`,
		}),
		nodesWritten: mr.NewCounter(prometheus.CounterOpts{
			Name: "nodes_written_total",
			Help: `The number of node statements written across all exports.`,
		}),
		edgesWritten: mr.NewCounter(prometheus.CounterOpts{
			Name: "edges_written_total",
			Help: `The number of edge statements written across all exports.`,
		}),
	}
}
