// Copyright (c) 2026 Giftwise. All rights reserved.

/*
Package metrics exposes Prometheus instrumentation for the API server.

Collectors are registered once at package load via promauto and recorded from
a single HTTP middleware, so domain handlers stay free of instrumentation
code. The scrape endpoint is served by [Handler].
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// requestsTotal counts finished HTTP requests by route, method and status.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftwise_http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"route", "method", "status"})

	// requestDuration tracks end-to-end handler latency per route.
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "giftwise_http_request_duration_seconds",
		Help:    "Histogram of HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// requestsInFlight gauges currently executing requests.
	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "giftwise_http_requests_in_flight",
		Help: "Number of HTTP requests currently being served",
	})
)

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Observe instruments every request with the request counter, the latency
// histogram and the in-flight gauge.
//
// The route label uses the chi route pattern (e.g. "/api/v1/auth/login"),
// resolved after the handler runs so path parameters never explode the
// label cardinality.
func Observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		startTime := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		next.ServeHTTP(wrappedWriter, request)

		route := "unmatched"
		if routeCtx := chi.RouteContext(request.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		requestsTotal.WithLabelValues(route, request.Method, strconv.Itoa(wrappedWriter.status)).Inc()
		requestDuration.WithLabelValues(route, request.Method).Observe(time.Since(startTime).Seconds())
	})
}
