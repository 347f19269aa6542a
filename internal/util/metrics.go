package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Total number of checkout attempts",
	})

	CheckoutSuccessTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Total number of successful checkouts",
	})

	CheckoutFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkouts",
	})

	CheckoutProcessingLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_processing_latency_seconds",
		Help:    "Latency of checkout processing including the provider delay",
		Buckets: prometheus.DefBuckets,
	})

	OrdersReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_received_total",
		Help: "Total number of submitted orders consumed from the order topic",
	})

	CatalogCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total number of catalog listing cache hits",
	})

	CatalogCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total number of catalog listing cache misses",
	})

	ProductLookupsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_lookups_failed_total",
		Help: "Total number of failed product lookups",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
