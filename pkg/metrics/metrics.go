// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package metrics holds prometheus metrics objects and related utility functions. It
// does not abstract away the prometheus client but the caller rarely needs to
// refer to prometheus directly.
package metrics

// Adding a metric
// - Add a metric object of the appropriate type as an exported variable
// - Register the new object in the init function

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/cilium/ipmerge/pkg/cidr"
)

var (
	registry = prometheus.NewPedanticRegistry()

	// Namespace is used to scope metrics from ipmerge. It is prepended to
	// metric names and separated with a '_'
	Namespace = "ipmerge"

	// Labels

	// LabelOutcome is the outcome of a parse, "success" or an error kind
	LabelOutcome = "outcome"

	// LabelCase is the rule which merged two blocks
	LabelCase = "case"

	// LabelPath is the API route a request was served by
	LabelPath = "path"

	// LabelStatusCode is the HTTP status code of a response
	LabelStatusCode = "code"

	// LabelLevel is a log level
	LabelLevel = "level"

	// LabelValueOutcomeSuccess is used as a successful outcome of an operation
	LabelValueOutcomeSuccess = "success"

	// LabelValueOutcomeUnknown is used for failures not classified by an
	// error kind
	LabelValueOutcomeUnknown = "unknown"

	// ParseTotal counts parsed blocks by outcome
	ParseTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "parse_total",
		Help:      "Number of address blocks parsed, tagged by outcome",
	}, []string{LabelOutcome})

	// MergeTotal counts merged block pairs by the rule which applied
	MergeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "merge_total",
		Help:      "Number of address block pairs merged, tagged by merge case",
	}, []string{LabelCase})

	// APIRequestDuration is the time taken to answer API requests
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of processed API requests, tagged by path and status code",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{LabelPath, LabelStatusCode})

	// ErrorsWarnings counts error and warning log messages
	ErrorsWarnings = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "errors_warnings_total",
		Help:      "Number of total errors and warnings logged",
	}, []string{LabelLevel})
)

func init() {
	MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
	MustRegister(collectors.NewGoCollector())

	MustRegister(ParseTotal)
	MustRegister(MergeTotal)
	MustRegister(APIRequestDuration)
	MustRegister(ErrorsWarnings)
}

// MustRegister adds the collector to the registry, exposing this metric to
// prometheus scrapes.
func MustRegister(c prometheus.Collector) {
	registry.MustRegister(c)
}

// Handler serves all registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveParse records the outcome of a cidr.Parse call.
func ObserveParse(err error) {
	outcome := LabelValueOutcomeSuccess
	if err != nil {
		outcome = LabelValueOutcomeUnknown
		if kind, ok := cidr.KindOf(err); ok {
			outcome = kind.String()
		}
	}
	ParseTotal.WithLabelValues(outcome).Inc()
}

// ObserveMerge records which rule merged a pair of blocks.
func ObserveMerge(c cidr.MergeCase) {
	MergeTotal.WithLabelValues(c.String()).Inc()
}

// GetCounterValue returns the current value of a counter.
func GetCounterValue(m prometheus.Counter) float64 {
	var pm dto.Metric
	err := m.Write(&pm)
	if err == nil {
		return *pm.Counter.Value
	}
	return 0
}
