package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts helper resolutions.
type Metrics struct {
	resolutions *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "viteurl",
			Name:      "resolutions_total",
			Help:      "Vite entry resolutions by mode and result.",
		}, []string{"mode", "result"}),
	}
	reg.MustRegister(m.resolutions)
	return m
}

// Observe matches viteurl.Observer.
func (m *Metrics) Observe(_ string, dev bool, err error) {
	mode := "build"
	if dev {
		mode = "dev"
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.resolutions.WithLabelValues(mode, result).Inc()
}
