package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Subsystem: "registry",
			Name:      "signups_total",
			Help:      "Total number of successful activity signups.",
		},
		[]string{"activity"},
	)

	unregistersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Subsystem: "registry",
			Name:      "unregisters_total",
			Help:      "Total number of successful activity unregistrations.",
		},
		[]string{"activity"},
	)

	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Subsystem: "registry",
			Name:      "rejections_total",
			Help:      "Total number of rejected roster mutations by reason.",
		},
		[]string{"reason"},
	)

	rosterSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "activities",
			Subsystem: "registry",
			Name:      "roster_size",
			Help:      "Current number of participants per activity.",
		},
		[]string{"activity"},
	)
)

// RecordSignup bumps the signup counter and the roster gauge.
func RecordSignup(activity string, size int) {
	signupsTotal.WithLabelValues(activity).Inc()
	rosterSize.WithLabelValues(activity).Set(float64(size))
}

// RecordUnregister bumps the unregister counter and the roster gauge.
func RecordUnregister(activity string, size int) {
	unregistersTotal.WithLabelValues(activity).Inc()
	rosterSize.WithLabelValues(activity).Set(float64(size))
}

// RecordRejection counts a rejected mutation under its taxonomy reason.
func RecordRejection(reason string) {
	rejectionsTotal.WithLabelValues(reason).Inc()
}
