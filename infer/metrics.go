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

package infer

import (
	metricsutil "github.com/ebay/kgraph/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type inferMetrics struct {
	hierarchyRebuilds prometheus.Counter
}

var metrics inferMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "infer"}
	metrics = inferMetrics{
		hierarchyRebuilds: mr.NewCounter(prometheus.CounterOpts{
			Name: "hierarchy_rebuilds_total",
			Help: `The number of times a reasoner reloaded the class hierarchy because the store changed.`,
		}),
	}
}
