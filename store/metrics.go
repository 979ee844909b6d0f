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

package store

import (
	metricsutil "github.com/ebay/kgraph/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type storeMetrics struct {
	triples       prometheus.Gauge
	duplicateAdds prometheus.Counter
}

var metrics storeMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "store"}
	metrics = storeMetrics{
		triples: mr.NewGauge(prometheus.GaugeOpts{
			Name: "triples",
			Help: `The number of distinct triples held across all stores in the process.`,
		}),
		duplicateAdds: mr.NewCounter(prometheus.CounterOpts{
			Name: "duplicate_adds_total",
			Help: `The number of inserts that were ignored because the triple was already present.`,
		}),
	}
}
