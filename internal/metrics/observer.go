package metrics

import (
	"context"
	"errors"

	"github.com/alexanderramin/glidepath/internal/service"
)

const (
	outcomeSuccess    = "success"
	outcomeValidation = "invalid"
	outcomeError      = "error"
)

type useCaseObserver struct {
	m     *Manager
	score func() int
}

// NewUseCaseObserver counts service use cases in m. When score is set the
// motivation gauge is refreshed after every successful use case.
func NewUseCaseObserver(m *Manager, score func() int) service.UseCaseObserver {
	return &useCaseObserver{m: m, score: score}
}

func (o *useCaseObserver) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	o.m.HistogramUseCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if event.Err != nil {
		if code := event.ValidationCode(); code != "" {
			o.m.CounterUseCases.WithLabelValues(event.Name, outcomeValidation).Inc()
			o.m.CounterValidationFailure.WithLabelValues(string(code)).Inc()
			return
		}
		o.m.CounterUseCases.WithLabelValues(event.Name, outcomeError).Inc()
		if errors.Is(event.Err, service.ErrNotPersisted) {
			o.m.CounterPersistFailures.Inc()
		}
		return
	}

	o.m.CounterUseCases.WithLabelValues(event.Name, outcomeSuccess).Inc()
	switch event.Name {
	case "create-program":
		if dir, ok := event.Fields["direction"].(string); ok {
			o.m.CounterProgramsCreated.WithLabelValues(dir).Inc()
		}
	case "commit-week":
		if status, ok := event.Fields["status"].(string); ok {
			o.m.CounterWeeksCommitted.WithLabelValues(status).Inc()
		}
	}
	if o.score != nil {
		o.m.GaugeMotivationScore.Set(float64(o.score()))
	}
}
