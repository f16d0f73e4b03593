package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/repository"
	"github.com/alexanderramin/glidepath/internal/testutil"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: testutil.FixedNow}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("program-%d", n)
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func newTestController(t *testing.T, store repository.SnapshotStore, opts ...ControllerOption) (*PlanController, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	base := []ControllerOption{WithClock(clock.Now), WithIDGenerator(sequentialIDs())}
	return NewPlanController(store, "tester", append(base, opts...)...), clock
}

// activeController returns a controller with a 90 -> 80 kg, 10 week program.
func activeController(t *testing.T) (*PlanController, *repository.MemorySnapshotStore, *fakeClock) {
	t.Helper()
	store := repository.NewMemorySnapshotStore()
	ctrl, clock := newTestController(t, store)
	_, err := ctrl.CreateProgram(context.Background(), 90, 80, 10)
	require.NoError(t, err)
	return ctrl, store, clock
}

func requireValidationCode(t *testing.T, err error, code domain.ValidationErrorCode) {
	t.Helper()
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, code, verr.Code)
}
