package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "glidepath"
	Subsystem = "cli"
)

type Manager struct {
	// counters
	CounterUseCases          *prometheus.CounterVec
	CounterProgramsCreated   *prometheus.CounterVec
	CounterWeeksCommitted    *prometheus.CounterVec
	CounterValidationFailure *prometheus.CounterVec
	CounterPersistFailures   prometheus.Counter

	// gauges
	GaugeMotivationScore prometheus.Gauge

	// histograms
	HistogramUseCaseDuration *prometheus.HistogramVec
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager(Namespace, "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterUseCases := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "use_case_total",
		Help:      "The total number of executed use cases",
	}, []string{"use_case", "outcome"})
	counterProgramsCreated := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "programs_created_total",
		Help:      "The total number of created programs",
	}, []string{"direction"})
	counterWeeksCommitted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "weeks_committed_total",
		Help:      "The total number of recorded weekly weights",
	}, []string{"status"})
	counterValidationFailure := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "validation_failures_total",
		Help:      "The total number of rejected inputs",
	}, []string{"code"})
	counterPersistFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "persist_failures_total",
		Help:      "The total number of failed snapshot writes",
	})

	gaugeMotivationScore := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "motivation_score",
		Help:      "Motivation score of the active program (0-100)",
	})

	histogramUseCaseDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "use_case_duration_seconds",
		Help:      "Histogram of use case execution time in seconds",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"use_case"})

	return &Manager{
		CounterUseCases:          counterUseCases,
		CounterProgramsCreated:   counterProgramsCreated,
		CounterWeeksCommitted:    counterWeeksCommitted,
		CounterValidationFailure: counterValidationFailure,
		CounterPersistFailures:   counterPersistFailures,
		GaugeMotivationScore:     gaugeMotivationScore,
		HistogramUseCaseDuration: histogramUseCaseDuration,
	}
}
