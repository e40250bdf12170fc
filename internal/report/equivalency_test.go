package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		avoidedKg   float64
		wantEmpty   bool
		wantMiles   float64
		wantCharges float64
	}{
		{"typical batch", 150, false, 150 / 0.393, 150 / 0.00822},
		{"at threshold", 0.001, false, 0.001 / 0.393, 0.001 / 0.00822},
		{"below threshold", 0.0009, true, 0, 0},
		{"zero", 0, true, 0, 0},
		{"net emitter", -5, true, 0, 0},
		{"NaN", math.NaN(), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.avoidedKg)
			assert.Equal(t, tt.wantEmpty, got.IsEmpty())
			if tt.wantEmpty {
				assert.Empty(t, got.DisplayText)
				return
			}
			require.Len(t, got.Results, 2)
			assert.Equal(t, MilesDriven, got.Results[0].Type)
			assert.InDelta(t, tt.wantMiles, got.Results[0].Value, 1e-9)
			assert.Equal(t, SmartphonesCharged, got.Results[1].Type)
			assert.InDelta(t, tt.wantCharges, got.Results[1].Value, 1e-9)
		})
	}
}

func TestCalculate_DisplayText(t *testing.T) {
	got := Calculate(150)
	assert.Equal(t, "Equivalent to driving ~382 miles or charging ~18,248 smartphones", got.DisplayText)
}

func TestForBatch(t *testing.T) {
	// Phoenix bagasse climate benefit per tray.
	got := ForBatch(0.06198)

	assert.Equal(t, BatchSize, got.Trays)
	assert.InDelta(t, 61.98, got.AvoidedKgCO2e, 1e-9)
	require.False(t, got.IsEmpty())
	assert.InDelta(t, 61.98/EPAMilesDrivenFactor, got.Results[0].Value, 1e-9)

	empty := ForBatch(-0.01)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, BatchSize, empty.Trays)
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.26, "0.3"},
		{9.94, "9.9"},
		{10, "10"},
		{999.4, "999"},
		{1000, "1,000"},
		{18248.3, "18,248"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCount(tt.in), "input %g", tt.in)
	}
}
