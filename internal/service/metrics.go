package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the process-wide prometheus collectors.
type Metrics struct {
	RequestCount      *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	TransferOutcomes  *prometheus.CounterVec
	KYCOutcomes       *prometheus.CounterVec
	WalletOutcomes    *prometheus.CounterVec
	EventPublishTotal *prometheus.CounterVec
	RateCacheLookups  *prometheus.CounterVec
	Workspaces        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		TransferOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_submissions_total",
				Help: "Transfer submissions by outcome.",
			},
			[]string{"outcome"},
		),
		KYCOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_submissions_total",
				Help: "KYC submissions by outcome.",
			},
			[]string{"outcome"},
		),
		WalletOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_link_operations_total",
				Help: "Wallet provider operations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		EventPublishTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_publish_total",
				Help: "Domain event publish attempts.",
			},
			[]string{"event", "status"},
		),
		RateCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Rate cache lookups by result.",
			},
			[]string{"result"},
		),
		Workspaces: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "workspaces_open",
				Help: "Open per-user workspaces.",
			},
		),
	}

	registry.MustRegister(
		m.RequestCount,
		m.RequestDuration,
		m.TransferOutcomes,
		m.KYCOutcomes,
		m.WalletOutcomes,
		m.EventPublishTotal,
		m.RateCacheLookups,
		m.Workspaces,
	)
	return m
}

// NewNopMetrics returns collectors registered on a private registry.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func publishStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
