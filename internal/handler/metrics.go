package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the employee API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	if err := reg.Register(m.requestDuration); err != nil {
		return nil, err
	}
	return m, nil
}
