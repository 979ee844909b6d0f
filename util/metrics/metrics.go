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

// Package metrics aids in defining Prometheus metrics for kgraph packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes the name of every kgraph metric.
const Namespace = "kgraph"

// LatencyObjectives are the quantiles reported by latency summaries.
var LatencyObjectives = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001}

// Registry creates metrics and registers them with R. If Subsystem is set, it
// fills in the Namespace and Subsystem of any options that leave them empty.
type Registry struct {
	R         prometheus.Registerer
	Subsystem string
}

func (mr Registry) names(namespace, subsystem *string) {
	if *namespace == "" && mr.Subsystem != "" {
		*namespace = Namespace
	}
	if *subsystem == "" {
		*subsystem = mr.Subsystem
	}
}

// NewCounter returns a new created and registered Prometheus Counter.
func (mr Registry) NewCounter(c prometheus.CounterOpts) prometheus.Counter {
	mr.names(&c.Namespace, &c.Subsystem)
	pm := prometheus.NewCounter(c)
	mr.R.MustRegister(pm)
	return pm
}

// NewCounterVec returns a new created and registered Prometheus CounterVec.
func (mr Registry) NewCounterVec(c prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	mr.names(&c.Namespace, &c.Subsystem)
	pm := prometheus.NewCounterVec(c, labels)
	mr.R.MustRegister(pm)
	return pm
}

// NewGauge returns a new created and registered Prometheus Gauge.
func (mr Registry) NewGauge(g prometheus.GaugeOpts) prometheus.Gauge {
	mr.names(&g.Namespace, &g.Subsystem)
	pm := prometheus.NewGauge(g)
	mr.R.MustRegister(pm)
	return pm
}

// NewSummary returns a new and registered Prometheus Summary. It uses
// LatencyObjectives if the options don't specify objectives.
func (mr Registry) NewSummary(s prometheus.SummaryOpts) prometheus.Summary {
	mr.names(&s.Namespace, &s.Subsystem)
	if s.Objectives == nil {
		s.Objectives = LatencyObjectives
	}
	pm := prometheus.NewSummary(s)
	mr.R.MustRegister(pm)
	return pm
}

// NewSummaryVec returns a new and registered Prometheus SummaryVec. It uses
// LatencyObjectives if the options don't specify objectives.
func (mr Registry) NewSummaryVec(s prometheus.SummaryOpts, labels []string) *prometheus.SummaryVec {
	mr.names(&s.Namespace, &s.Subsystem)
	if s.Objectives == nil {
		s.Objectives = LatencyObjectives
	}
	pm := prometheus.NewSummaryVec(s, labels)
	mr.R.MustRegister(pm)
	return pm
}

// NewHistogram returns a new and registered Prometheus Histogram.
func (mr Registry) NewHistogram(h prometheus.HistogramOpts) prometheus.Histogram {
	mr.names(&h.Namespace, &h.Subsystem)
	pm := prometheus.NewHistogram(h)
	mr.R.MustRegister(pm)
	return pm
}
