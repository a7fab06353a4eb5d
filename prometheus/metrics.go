// Package prometheus exposes chintai pipeline and browsing events as
// Prometheus metrics.
package prometheus

import (
	"github.com/onobori/chintai"
	"github.com/prometheus/client_golang/prometheus"
)

// Label values for the result label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var _ chintai.Observer = (*Metrics)(nil)

// Metrics implements chintai.Observer with Prometheus counters.
type Metrics struct {
	pagesFetched  *prometheus.CounterVec
	blocksSkipped prometheus.Counter
	recordsStored prometheus.Counter
	suggestions   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pagesFetched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chintai_pages_fetched_total",
				Help: "Listing pages fetched, by result",
			},
			[]string{"result"},
		),
		blocksSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chintai_blocks_skipped_total",
				Help: "Malformed building blocks skipped",
			},
		),
		recordsStored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chintai_records_stored_total",
				Help: "Property records appended to the table",
			},
		),
		suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chintai_suggestions_total",
				Help: "Station suggestion requests, by result",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.pagesFetched, m.blocksSkipped, m.recordsStored, m.suggestions)
	return m
}

func (m *Metrics) PageFetched(err error) {
	m.pagesFetched.WithLabelValues(result(err == nil)).Inc()
}

func (m *Metrics) BlockSkipped() {
	m.blocksSkipped.Inc()
}

func (m *Metrics) RecordsStored(n int) {
	m.recordsStored.Add(float64(n))
}

// SuggestionServed counts a suggestion as an error when it carries a diagnostic.
func (m *Metrics) SuggestionServed(s *chintai.Suggestion) {
	m.suggestions.WithLabelValues(result(s != nil && s.Diagnostic == "")).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultOK
	}
	return ResultError
}
