package decay

import (
	"errors"
	"math"
	"testing"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestHalfLifeFromWindow(t *testing.T) {
	tests := []struct {
		name    string
		minDays float64
		maxDays float64
		want    float64
	}{
		{"bagasse home compost", 60, 90, 75 / math.Ln2},
		{"pha soil", 180, 365, 272.5 / math.Ln2},
		{"degenerate window", 30, 30, 30 / math.Ln2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HalfLifeFromWindow(tt.minDays, tt.maxDays)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}
}

func TestHalfLifeFromWindow_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		minDays float64
		maxDays float64
	}{
		{"zero min", 0, 10},
		{"negative min", -5, 10},
		{"zero max", 5, 0},
		{"inverted window", 90, 60},
		{"NaN bound", math.NaN(), 10},
		{"infinite bound", 10, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HalfLifeFromWindow(tt.minDays, tt.maxDays)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.ErrorIs(t, err, domainerr.ErrInvalidInput)
		})
	}
}

func TestComputeDecay_ZeroElapsed(t *testing.T) {
	for _, halfLife := range []float64{0.5, 1, 17.35, 108, 10_000} {
		got, err := ComputeDecay(halfLife, 0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.RemainingFraction, "half-life %g", halfLife)
		assert.Equal(t, 0.0, got.DegradedFraction, "half-life %g", halfLife)
	}
}

func TestComputeDecay_OneHalfLife(t *testing.T) {
	got, err := ComputeDecay(40, 40)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.RemainingFraction, tolerance)
	assert.InDelta(t, 0.5, got.DegradedFraction, tolerance)
}

func TestComputeDecay_MonotonicAndConserving(t *testing.T) {
	for _, halfLife := range []float64{3, 17.35, 63, 393} {
		prev := math.Inf(1)
		for day := 0.0; day <= 730; day += 5 {
			got, err := ComputeDecay(halfLife, day)
			require.NoError(t, err)

			assert.Less(t, got.RemainingFraction, prev,
				"remaining should strictly decrease (half-life %g, day %g)", halfLife, day)
			assert.InDelta(t, 1.0, got.RemainingFraction+got.DegradedFraction, tolerance)
			assert.GreaterOrEqual(t, got.RemainingFraction, 0.0)
			assert.LessOrEqual(t, got.RemainingFraction, 1.0)
			prev = got.RemainingFraction
		}
	}
}

func TestComputeDecay_ApproachesZero(t *testing.T) {
	got, err := ComputeDecay(10, 1_000)
	require.NoError(t, err)
	assert.Less(t, got.RemainingFraction, 1e-20)
	assert.InDelta(t, 1.0, got.DegradedFraction, tolerance)
}

func TestComputeDecay_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		halfLife float64
		elapsed  float64
		wantErr  error
	}{
		{"zero half-life", 0, 10, ErrInvalidHalfLife},
		{"negative half-life", -1, 10, ErrInvalidHalfLife},
		{"NaN half-life", math.NaN(), 10, ErrInvalidHalfLife},
		{"negative elapsed", 10, -1, ErrInvalidElapsed},
		{"NaN elapsed", 10, math.NaN(), ErrInvalidElapsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeDecay(tt.halfLife, tt.elapsed)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.ErrorIs(t, err, domainerr.ErrInvalidInput)
		})
	}
}

func TestCompletionHalfLife_MidpointReachesCompletion(t *testing.T) {
	halfLife, err := CompletionHalfLife(60, 90)
	require.NoError(t, err)

	got, err := ComputeDecay(halfLife, 75)
	require.NoError(t, err)
	assert.InDelta(t, CompletionFraction, got.DegradedFraction, tolerance)
}

func TestCompletionHalfLife_ShorterThanWindowHalfLife(t *testing.T) {
	windowHalfLife, err := HalfLifeFromWindow(180, 365)
	require.NoError(t, err)
	completion, err := CompletionHalfLife(180, 365)
	require.NoError(t, err)

	assert.Less(t, completion, windowHalfLife)
	assert.InDelta(t, 272.5/CompletionHalfLives, completion, tolerance)
}

func TestCompletionHalfLife_PropagatesWindowError(t *testing.T) {
	_, err := CompletionHalfLife(10, 5)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestComputeDecay_Deterministic(t *testing.T) {
	first, err := ComputeDecay(63.05, 365)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := ComputeDecay(63.05, 365)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
