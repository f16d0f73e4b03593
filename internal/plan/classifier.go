package plan

import (
	"math"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// Tolerance is the half-width of the on-track band in kilograms.
const Tolerance = 0.5

// bandEpsilon absorbs float error on the band edge only; the actual weight
// itself is never rounded.
const bandEpsilon = 1e-9

// hundredths converts kg to integral hundredths so thresholds compare exactly.
func hundredths(kg float64) float64 {
	return math.Round(kg * 100)
}

// Classify places an actual weight relative to the week's target. Values on
// the band edge are on track.
func Classify(actual, weekTarget float64, dir domain.Direction) domain.WeekStatus {
	// Positive diff means closer to the goal than planned.
	diff := (actual - weekTarget) * dir.Sign()
	tol := Tolerance + bandEpsilon
	switch {
	case diff > tol:
		return domain.WeekAhead
	case diff < -tol:
		return domain.WeekBehind
	default:
		return domain.WeekOnTrack
	}
}

// Rederive recomputes ActualChange and Status for every week from the
// recorded actual weights. A week's change is measured against the nearest
// earlier recorded week, or the start weight when there is none. The input
// is not modified.
func Rederive(p *domain.Program, weeks []domain.WeekEntry) []domain.WeekEntry {
	out := domain.CloneWeeks(weeks)
	dir := p.Direction()
	prev := p.StartWeight
	for i := range out {
		w := &out[i]
		if !w.Recorded() {
			w.ActualChange = nil
			w.Status = domain.WeekPending
			continue
		}
		actual := *w.ActualWeight
		change := Round2(actual - prev)
		w.ActualChange = &change
		w.Status = Classify(actual, w.TargetWeight, dir)
		prev = actual
	}
	return out
}

// Rebuild regenerates the glide path for p and overlays the recorded
// actuals of entries onto it. Entries for weeks outside the program are
// dropped.
func Rebuild(p *domain.Program, entries []domain.WeekEntry) ([]domain.WeekEntry, error) {
	fresh, err := BuildWeeks(p.StartWeight, p.TargetWeight, p.TotalWeeks)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Week < 1 || e.Week > len(fresh) || !e.Recorded() {
			continue
		}
		c := e.Clone()
		fresh[e.Week-1].ActualWeight = c.ActualWeight
		fresh[e.Week-1].RecordedAt = c.RecordedAt
	}
	return Rederive(p, fresh), nil
}
