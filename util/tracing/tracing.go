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

// Package tracing assists with reporting OpenTracing traces, and with
// recording span durations in Prometheus metrics.
package tracing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ebay/kgraph/config"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// A Tracer reports OpenTracing traces to a Jaeger agent.
type Tracer struct {
	// If not nil, called by Close.
	close func()
}

// New constructs a tracer and sets it as the global opentracing tracer.
// Call this early on from main functions. If cfg.AgentHostPort is empty, spans
// are not reported anywhere, but the durations of spans passed to UpdateMetric
// are still recorded. If err == nil, the returned tracer should be Closed to
// flush its buffer before program exit.
func New(serviceName string, cfg *config.Tracing) (*Tracer, error) {
	if cfg == nil {
		cfg = &config.Tracing{}
	}
	jcfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
	}
	var reporter jaeger.Reporter
	if cfg.AgentHostPort == "" {
		reporter = jaeger.NewNullReporter()
	} else {
		sender, err := jaeger.NewUDPTransport(cfg.AgentHostPort, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create Jaeger transport to %v: %v",
				cfg.AgentHostPort, err)
		}
		reporter = jaeger.NewRemoteReporter(sender)
	}
	logger := (*logrusAdapter)(log.WithFields(log.Fields{"component": "jaeger"}))
	tracer, closer, err := jcfg.NewTracer(
		jaegercfg.Logger(logger),
		jaegercfg.Reporter(reporter),
		jaegercfg.ContribObserver(&contribObserver{}),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize Jaeger tracer: %v", err)
	}
	opentracing.SetGlobalTracer(tracer)
	log.WithFields(log.Fields{
		"service": serviceName,
		"agent":   cfg.AgentHostPort,
	}).Debug("Initialized tracer")
	return &Tracer{
		close: func() {
			err := closer.Close()
			if err != nil {
				log.WithError(err).Warn("Error shutting down Jaeger tracer")
			}
		},
	}, nil
}

// Close stops the Tracer and cleans up resources. It is not thread-safe.
func (t *Tracer) Close() {
	if t.close != nil {
		t.close()
	}
	t.close = nil
}

type logrusAdapter log.Entry

func (_log *logrusAdapter) Error(msg string) {
	log := (*log.Entry)(_log)
	log.Error(strings.TrimSpace(msg))
}

func (_log *logrusAdapter) Infof(msg string, args ...interface{}) {
	log := (*log.Entry)(_log)
	log.Infof(strings.TrimSpace(msg), args...)
}

type contribObserver struct{}

// OnStartSpan implements the method defined in jaeger.ContribObserver.
func (m *contribObserver) OnStartSpan(
	span opentracing.Span,
	operationName string,
	options opentracing.StartSpanOptions,
) (jaeger.ContribSpanObserver, bool) {
	start := options.StartTime
	if start.IsZero() {
		start = time.Now()
	}
	return &spanObserver{start: start}, true
}

// spanObserver implements the interface jaeger.ContribSpanObserver.
type spanObserver struct {
	start time.Time
	// metricLock protects metric. UpdateMetric and Finish are rarely called
	// concurrently on the same span.
	metricLock sync.Mutex
	// If not nil, this metric will be updated with the duration of the span.
	metric Metric
}

func (o *spanObserver) OnSetOperationName(name string) {}

func (o *spanObserver) OnSetTag(key string, value interface{}) {
	if key != metricTag {
		return
	}
	if metric, ok := value.(Metric); ok {
		o.metricLock.Lock()
		o.metric = metric
		o.metricLock.Unlock()
	}
}

func (o *spanObserver) OnFinish(options opentracing.FinishOptions) {
	finish := options.FinishTime
	if finish.IsZero() {
		finish = time.Now()
	}
	o.metricLock.Lock()
	if o.metric != nil {
		o.metric.Observe(finish.Sub(o.start).Seconds())
	}
	o.metricLock.Unlock()
}

const metricTag = "metric"

// UpdateMetric arranges for the given metric to be updated with the duration
// of the span (in seconds). This only takes effect with the tracer installed
// by New.
func UpdateMetric(span opentracing.Span, metric Metric) {
	span.SetTag(metricTag, stringableMetric{metric})
}

// Metric is satisfied by prometheus.Summary and prometheus.Histogram.
type Metric interface {
	prometheus.Metric
	Observe(float64)
}

// stringableMetric gives the Prometheus metrics a better stringer.
type stringableMetric struct {
	Metric
}

// String returns the fully-qualified name of the metric. This ends up being
// reported in the OpenTracing tag named "metric".
func (metric stringableMetric) String() string {
	// Desc's Stringer outputs like this:
	//   Desc{fqName: %q, help: %q, constLabels: {%s}, variableLabels: %v}
	s := metric.Desc().String()
	s = strings.TrimPrefix(s, `Desc{fqName: "`)
	i := strings.IndexByte(s, '"')
	if i < 0 {
		return ""
	}
	return s[:i]
}
