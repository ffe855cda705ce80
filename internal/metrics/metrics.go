// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brandstudio/internal/guardrail"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandstudio_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandstudio_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	GuardrailChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandstudio_guardrail_checks_total",
			Help: "Guardrail attribute checks by attribute and outcome",
		},
		[]string{"attribute", "outcome"},
	)

	BrandCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandstudio_brand_cache_lookups_total",
			Help: "Brand identity cache lookups by result",
		},
		[]string{"result"},
	)
)

// ObserveGuardrail records the outcome of a layer's guardrail checks.
// Only failures carry an attribute, so passing layers are counted under
// "layer".
func ObserveGuardrail(res guardrail.Result) {
	if res.OK() {
		GuardrailChecks.WithLabelValues("layer", "pass").Inc()
		return
	}
	for _, v := range res.Violations {
		GuardrailChecks.WithLabelValues(v.Attribute, "fail").Inc()
	}
}

// ObserveReport records every layer of a template report.
func ObserveReport(rep guardrail.Report) {
	for _, res := range rep.Layers {
		ObserveGuardrail(res)
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
