package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/plan"
	"github.com/alexanderramin/glidepath/internal/repository"
)

// PlanController owns the active program of one user: its week sequence,
// the raw text typed for weeks not yet committed, and the edit gates of
// recorded weeks. Every mutation validates before touching state and then
// persists a snapshot through the store.
type PlanController struct {
	mu       sync.Mutex
	store    repository.SnapshotStore
	userID   string
	observer UseCaseObserver
	now      func() time.Time
	newID    func() string

	program     *domain.Program
	weeks       []domain.WeekEntry
	pending     map[int]string
	editing     map[int]bool
	lastUpdated time.Time
}

type ControllerOption func(*PlanController)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *PlanController) {
		c.now = now
	}
}

func WithObserver(obs UseCaseObserver) ControllerOption {
	return func(c *PlanController) {
		if obs != nil {
			c.observer = obs
		}
	}
}

func WithIDGenerator(newID func() string) ControllerOption {
	return func(c *PlanController) {
		c.newID = newID
	}
}

func NewPlanController(store repository.SnapshotStore, userID string, opts ...ControllerOption) *PlanController {
	c := &PlanController{
		store:    store,
		userID:   userID,
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
		pending:  make(map[int]string),
		editing:  make(map[int]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PlanController) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	c.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  c.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Load restores the user's active program from the store. A user without a
// stored program ends up with no program and no error.
func (c *PlanController) Load(ctx context.Context) (err error) {
	startedAt := c.now()
	fields := map[string]any{"user": c.userID}
	defer func() { c.observe(ctx, "load-program", startedAt, fields, err) }()

	snap, err := c.store.Active(ctx, c.userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.mu.Lock()
		c.clearLocked()
		c.mu.Unlock()
		fields["found"] = false
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err = snap.Program.Validate(); err != nil {
		return fmt.Errorf("stored program %s: %w", snap.Program.ID, err)
	}
	// Stored statuses are re-derived from the recorded actuals.
	weeks, err := plan.Rebuild(&snap.Program, snap.Weeks)
	if err != nil {
		return fmt.Errorf("stored program %s: %w", snap.Program.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	p := snap.Program
	c.program = &p
	c.weeks = weeks
	c.lastUpdated = snap.LastUpdated
	fields["found"] = true
	fields["program"] = p.ID
	return nil
}

// CreateProgram validates the parameters, builds the glide path and
// replaces any existing program. The returned program is valid even when
// err wraps ErrNotPersisted.
func (c *PlanController) CreateProgram(ctx context.Context, start, target float64, totalWeeks int) (_ *domain.Program, err error) {
	startedAt := c.now()
	fields := map[string]any{"start": start, "target": target, "weeks": totalWeeks}
	defer func() { c.observe(ctx, "create-program", startedAt, fields, err) }()

	if err = domain.ValidateProgram(start, target, totalWeeks); err != nil {
		return nil, err
	}
	weeks, err := plan.BuildWeeks(start, target, totalWeeks)
	if err != nil {
		return nil, err
	}

	now := c.now()
	p := &domain.Program{
		ID:           c.newID(),
		UserID:       c.userID,
		StartWeight:  start,
		TargetWeight: target,
		TotalWeeks:   totalWeeks,
		StartDate:    now,
		CreatedAt:    now,
	}
	fields["program"] = p.ID
	fields["direction"] = string(p.Direction())

	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.program
	c.clearLocked()
	c.program = p
	c.weeks = weeks

	var persistErr error
	if old != nil {
		if derr := c.store.Delete(ctx, repository.KeyOf(old)); derr != nil {
			persistErr = derr
		}
	}
	if serr := c.persistLocked(ctx); serr != nil {
		return c.programCopyLocked(), serr
	}
	if persistErr != nil {
		return c.programCopyLocked(), fmt.Errorf("%w: removing previous program: %w", ErrNotPersisted, persistErr)
	}
	return c.programCopyLocked(), nil
}

// CreateProgramFromText parses the raw text of the entry flow and creates
// the program.
func (c *PlanController) CreateProgramFromText(ctx context.Context, startText, targetText, weeksText string) (*domain.Program, error) {
	start, target, weeks, err := domain.ParseProgramInput(startText, targetText, weeksText)
	if err != nil {
		c.observe(ctx, "create-program", c.now(), map[string]any{"source": "text"}, err)
		return nil, err
	}
	return c.CreateProgram(ctx, start, target, weeks)
}

// SetPendingWeight stores raw text typed for week and returns advisory
// feedback for it. Week entries are not modified. Empty text clears the
// pending value.
func (c *PlanController) SetPendingWeight(week int, raw string) (plan.EntryFeedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWeekLocked(week); err != nil {
		return plan.EntryFeedback{}, err
	}
	if strings.TrimSpace(raw) == "" {
		delete(c.pending, week)
	} else {
		c.pending[week] = raw
	}
	return plan.AssessEntry(raw, c.weeks[week-1], c.previousActualLocked(week), c.program.Direction()), nil
}

// Pending returns the uncommitted text for week.
func (c *PlanController) Pending(week int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.pending[week]
	return raw, ok
}

// CommitWeek records the pending weight of week. A recorded week can only
// be overwritten after BeginEdit. On a validation failure nothing changes
// and the pending text is kept so the user can correct it.
func (c *PlanController) CommitWeek(ctx context.Context, week int) (_ domain.WeekEntry, err error) {
	startedAt := c.now()
	fields := map[string]any{"week": week}
	defer func() { c.observe(ctx, "commit-week", startedAt, fields, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err = c.checkWeekLocked(week); err != nil {
		return domain.WeekEntry{}, err
	}
	editing := c.editing[week]
	if c.weeks[week-1].Recorded() && !editing {
		return domain.WeekEntry{}, fmt.Errorf("week %d: %w", week, ErrWeekAlreadyRecorded)
	}
	raw, ok := c.pending[week]
	if !ok {
		return domain.WeekEntry{}, domain.InvalidWeeklyEntry(week, "no weight entered")
	}
	kg, perr := domain.ParseWeight(raw)
	if perr != nil {
		return domain.WeekEntry{}, domain.InvalidWeeklyEntry(week, "%v", perr)
	}
	if !domain.InWeightRange(kg) {
		return domain.WeekEntry{}, domain.InvalidWeeklyEntry(week,
			"weight must be between %.0f and %.0f kg", domain.MinWeightKg, domain.MaxWeightKg)
	}

	next := domain.CloneWeeks(c.weeks)
	at := c.now()
	next[week-1].ActualWeight = &kg
	next[week-1].RecordedAt = &at
	c.weeks = plan.Rederive(c.program, next)
	delete(c.pending, week)
	delete(c.editing, week)

	entry := c.weeks[week-1].Clone()
	fields["status"] = string(entry.Status)
	fields["edit"] = editing
	return entry, c.persistLocked(ctx)
}

// RecordWeek sets the pending text for week and commits it in one step.
func (c *PlanController) RecordWeek(ctx context.Context, week int, raw string) (domain.WeekEntry, error) {
	if _, err := c.SetPendingWeight(week, raw); err != nil {
		return domain.WeekEntry{}, err
	}
	return c.CommitWeek(ctx, week)
}

// BeginEdit opens week for re-commit.
func (c *PlanController) BeginEdit(week int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWeekLocked(week); err != nil {
		return err
	}
	c.editing[week] = true
	return nil
}

// CancelEdit closes the edit gate of week and drops its pending text.
func (c *PlanController) CancelEdit(week int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.editing, week)
	delete(c.pending, week)
}

// Editing reports whether week is open for re-commit.
func (c *PlanController) Editing(week int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing[week]
}

// ResetProgram discards the program, its weeks and all pending input, and
// deletes the stored snapshot. It cannot be undone.
func (c *PlanController) ResetProgram(ctx context.Context) (err error) {
	startedAt := c.now()
	fields := map[string]any{}
	defer func() { c.observe(ctx, "reset-program", startedAt, fields, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil {
		return nil
	}
	key := repository.KeyOf(c.program)
	fields["program"] = key.ProgramID
	c.clearLocked()
	if derr := c.store.Delete(ctx, key); derr != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, derr)
	}
	return nil
}

// Replace installs snap as the active program, regenerating its glide path
// and re-deriving every recorded week. The snapshot is adopted by the
// controller's user; one that belonged to a different user gets a new
// program ID.
func (c *PlanController) Replace(ctx context.Context, snap *domain.Snapshot) (_ *domain.Program, err error) {
	startedAt := c.now()
	fields := map[string]any{}
	defer func() { c.observe(ctx, "replace-program", startedAt, fields, err) }()

	if snap == nil {
		return nil, errors.New("replace program: nil snapshot")
	}
	p := snap.Program
	if err = p.Validate(); err != nil {
		return nil, err
	}
	// A snapshot from another user is adopted as a new program so it
	// can never be stored under that user's identity.
	if p.UserID != "" && p.UserID != c.userID {
		fields["source_user"] = p.UserID
		p.ID = ""
	}
	if p.ID == "" {
		p.ID = c.newID()
	}
	p.UserID = c.userID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = c.now()
	}
	if p.StartDate.IsZero() {
		p.StartDate = p.CreatedAt
	}
	weeks, err := plan.Rebuild(&p, snap.Weeks)
	if err != nil {
		return nil, err
	}
	fields["program"] = p.ID

	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.program
	c.clearLocked()
	c.program = &p
	c.weeks = weeks

	var persistErr error
	if old != nil && old.ID != p.ID {
		persistErr = c.store.Delete(ctx, repository.KeyOf(old))
	}
	if serr := c.persistLocked(ctx); serr != nil {
		return c.programCopyLocked(), serr
	}
	if persistErr != nil {
		return c.programCopyLocked(), fmt.Errorf("%w: removing previous program: %w", ErrNotPersisted, persistErr)
	}
	return c.programCopyLocked(), nil
}

// Save persists the current snapshot again, for example after a failed
// write.
func (c *PlanController) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil {
		return ErrNoProgram
	}
	return c.persistLocked(ctx)
}

func (c *PlanController) State() domain.ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil {
		return domain.StateNoProgram
	}
	return domain.StateActive
}

// Program returns a copy of the active program, or nil.
func (c *PlanController) Program() *domain.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.programCopyLocked()
}

// Weeks returns a copy of the week sequence.
func (c *PlanController) Weeks() []domain.WeekEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CloneWeeks(c.weeks)
}

// Week returns a copy of one week.
func (c *PlanController) Week(week int) (domain.WeekEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWeekLocked(week); err != nil {
		return domain.WeekEntry{}, err
	}
	return c.weeks[week-1].Clone(), nil
}

func (c *PlanController) Summary() plan.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return plan.Summarize(c.program, c.weeks)
}

func (c *PlanController) Trend() plan.Trend {
	c.mu.Lock()
	defer c.mu.Unlock()
	return plan.AnalyzeTrend(c.program, c.weeks)
}

func (c *PlanController) Achievements() []plan.Achievement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return plan.Achievements(c.program, c.weeks)
}

// Snapshot returns the current state in its persisted form.
func (c *PlanController) Snapshot() (*domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil {
		return nil, ErrNoProgram
	}
	return &domain.Snapshot{
		Program:     *c.program,
		Weeks:       domain.CloneWeeks(c.weeks),
		LastUpdated: c.lastUpdated,
	}, nil
}

func (c *PlanController) checkWeekLocked(week int) error {
	if c.program == nil {
		return ErrNoProgram
	}
	if week < 1 || week > len(c.weeks) {
		return domain.UnknownWeek(week, len(c.weeks))
	}
	return nil
}

// previousActualLocked is the weight a new entry for week is compared with.
func (c *PlanController) previousActualLocked(week int) float64 {
	for i := week - 2; i >= 0; i-- {
		if c.weeks[i].Recorded() {
			return *c.weeks[i].ActualWeight
		}
	}
	return c.program.StartWeight
}

func (c *PlanController) persistLocked(ctx context.Context) error {
	c.lastUpdated = c.now()
	snap := &domain.Snapshot{
		Program:     *c.program,
		Weeks:       domain.CloneWeeks(c.weeks),
		LastUpdated: c.lastUpdated,
	}
	if err := c.store.Save(ctx, repository.KeyOf(c.program), snap); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

func (c *PlanController) programCopyLocked() *domain.Program {
	if c.program == nil {
		return nil
	}
	p := *c.program
	return &p
}

func (c *PlanController) clearLocked() {
	c.program = nil
	c.weeks = nil
	c.lastUpdated = time.Time{}
	clear(c.pending)
	clear(c.editing)
}
