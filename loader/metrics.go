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

package loader

import (
	metricsutil "github.com/ebay/kgraph/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type loaderMetrics struct {
	loadDurationSeconds prometheus.Summary
	triplesRead         *prometheus.CounterVec
	malformedInputs     prometheus.Counter
}

var metrics loaderMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "loader"}
	metrics = loaderMetrics{
		loadDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Name: "load_duration_seconds",
			Help: `The time it takes to read and parse an input. It's only recorded when a tracer is installed.`,
		}),
		triplesRead: mr.NewCounterVec(prometheus.CounterOpts{
			Name: "triples_read_total",
			Help: `The number of triples parsed from inputs, by input format.`,
		}, []string{"format"}),
		malformedInputs: mr.NewCounter(prometheus.CounterOpts{
			Name: "malformed_inputs_total",
			Help: `The number of inputs rejected because they were malformed.`,
		}),
	}
}
