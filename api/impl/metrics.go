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

package impl

import (
	metricsutil "github.com/ebay/kgraph/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type apiMetrics struct {
	requests        *prometheus.CounterVec
	queryRows       prometheus.Summary
	insertedTriples prometheus.Counter
	profiles        prometheus.Counter
}

var metrics apiMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "api"}
	metrics = apiMetrics{
		requests: mr.NewCounterVec(prometheus.CounterOpts{
			Name: "requests_total",
			Help: `The number of HTTP requests served, by route and response status code.`,
		}, []string{"route", "status"}),
		queryRows: mr.NewSummary(prometheus.SummaryOpts{
			Name:       "query_rows",
			Help:       `The number of rows returned by each query request.`,
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		insertedTriples: mr.NewCounter(prometheus.CounterOpts{
			Name: "inserted_triples_total",
			Help: `The number of new triples added by insert requests.`,
		}),
		profiles: mr.NewCounter(prometheus.CounterOpts{
			Name: "cpu_profiles_total",
			Help: `The number of CPU profiles started through the diagnostics route.`,
		}),
	}
}
