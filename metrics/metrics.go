// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	Spins          *prometheus.CounterVec
	SpinSize       prometheus.Histogram
	MembersCreated prometheus.Counter
	StatsQueries   *prometheus.CounterVec
	Requests       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Spins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "standup",
			Name:      "spins_total",
			Help:      "Recorded spins by effective twist and whether it applied.",
		}, []string{"twist", "applied"}),
		SpinSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "standup",
			Name:      "spin_order_length",
			Help:      "Number of positions in a recorded spin.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		MembersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "standup",
			Name:      "members_created_total",
			Help:      "Members registered or reactivated.",
		}),
		StatsQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "standup",
			Name:      "stats_queries_total",
			Help:      "Stats queries by outcome (data, no_data).",
		}, []string{"outcome"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "standup",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		m.Spins,
		m.SpinSize,
		m.MembersCreated,
		m.StatsQueries,
		m.Requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveSpin records one persisted spin
func (m *Metrics) ObserveSpin(twistType string, applied bool, positions int) {
	m.Spins.WithLabelValues(twistType, strconv.FormatBool(applied)).Inc()
	m.SpinSize.Observe(float64(positions))
}

// ObserveRequest counts one served request
func (m *Metrics) ObserveRequest(method string, code int) {
	m.Requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
