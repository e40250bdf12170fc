// Package decay models biodegradation as first-order exponential decay.
package decay

import (
	"fmt"
	"math"

	"github.com/rshade/ecotray/internal/domain/domainerr"
)

var (
	// ErrInvalidWindow is returned when a biodegradation window has a
	// non-positive or non-finite bound, or when minDays > maxDays.
	ErrInvalidWindow = fmt.Errorf("decay: invalid biodegradation window: %w", domainerr.ErrInvalidInput)

	// ErrInvalidHalfLife is returned when a half-life is not a finite positive number.
	ErrInvalidHalfLife = fmt.Errorf("decay: half-life must be positive: %w", domainerr.ErrInvalidInput)

	// ErrInvalidElapsed is returned when the elapsed duration is negative or not finite.
	ErrInvalidElapsed = fmt.Errorf("decay: elapsed days must be non-negative: %w", domainerr.ErrInvalidInput)
)

const (
	// CompletionFraction is the degraded mass fraction treated as
	// "functionally complete" at the midpoint of a reported biodegradation
	// window.
	CompletionFraction = 0.95
)

// CompletionHalfLives is the number of half-lives needed to reach
// CompletionFraction: log2(1 / (1 - CompletionFraction)).
var CompletionHalfLives = math.Log2(1 / (1 - CompletionFraction))

// Result is the projected state of a tray after an elapsed duration.
// Both fractions are in [0, 1] and sum to 1.
type Result struct {
	RemainingFraction float64 `json:"remainingFraction" yaml:"remaining_fraction"`
	DegradedFraction  float64 `json:"degradedFraction" yaml:"degraded_fraction"`
}

// HalfLifeFromWindow converts a biodegradation window into a characteristic
// half-life.
//
// The midpoint target = (minDays + maxDays) / 2 is spread over ln(2)
// half-lives: halfLife = target / ln(2).
func HalfLifeFromWindow(minDays, maxDays float64) (float64, error) {
	if !positiveFinite(minDays) || !positiveFinite(maxDays) {
		return 0, fmt.Errorf("%w: bounds must be positive (min=%g, max=%g)", ErrInvalidWindow, minDays, maxDays)
	}
	if minDays > maxDays {
		return 0, fmt.Errorf("%w: min %g exceeds max %g", ErrInvalidWindow, minDays, maxDays)
	}

	target := (minDays + maxDays) / 2
	return target / math.Ln2, nil
}

// CompletionHalfLife returns the half-life at which the window midpoint
// corresponds to CompletionFraction mass loss.
//
// It rescales HalfLifeFromWindow from ln(2) half-lives per midpoint to
// CompletionHalfLives half-lives per midpoint.
func CompletionHalfLife(minDays, maxDays float64) (float64, error) {
	halfLife, err := HalfLifeFromWindow(minDays, maxDays)
	if err != nil {
		return 0, err
	}
	return halfLife * math.Ln2 / CompletionHalfLives, nil
}

// ComputeDecay projects the remaining and degraded mass fractions after
// elapsedDays under first-order decay:
//
//	k         = ln(2) / halfLifeDays
//	remaining = exp(-k × elapsedDays)
//	degraded  = 1 - remaining
func ComputeDecay(halfLifeDays, elapsedDays float64) (Result, error) {
	if !positiveFinite(halfLifeDays) {
		return Result{}, fmt.Errorf("%w: got %g", ErrInvalidHalfLife, halfLifeDays)
	}
	if elapsedDays < 0 || math.IsNaN(elapsedDays) || math.IsInf(elapsedDays, 0) {
		return Result{}, fmt.Errorf("%w: got %g", ErrInvalidElapsed, elapsedDays)
	}

	k := math.Ln2 / halfLifeDays
	remaining := math.Exp(-k * elapsedDays)

	return Result{
		RemainingFraction: remaining,
		DegradedFraction:  1 - remaining,
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
