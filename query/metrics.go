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

package query

import (
	metricsutil "github.com/ebay/kgraph/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type queryMetrics struct {
	executeDurationSeconds prometheus.Summary
	executedTotal          prometheus.Counter
	definitionErrors       prometheus.Counter
	resultRows             prometheus.Histogram
}

var metrics queryMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "query"}
	metrics = queryMetrics{
		executeDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Name: "execute_duration_seconds",
			Help: `The time it takes to validate and evaluate a query.

This includes joining the patterns, filtering, grouping, ordering, and
projecting the results. It's only recorded when a tracer is installed.
`,
		}),
		executedTotal: mr.NewCounter(prometheus.CounterOpts{
			Name: "executed_total",
			Help: `The number of queries evaluated successfully.`,
		}),
		definitionErrors: mr.NewCounter(prometheus.CounterOpts{
			Name: "definition_errors_total",
			Help: `The number of queries rejected before evaluation because they were invalid.`,
		}),
		resultRows: mr.NewHistogram(prometheus.HistogramOpts{
			Name:    "result_rows",
			Help:    `The number of rows returned by each query.`,
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}
