package decay

import (
	"testing"

	"github.com/rshade/ecotray/internal/domain/decay"
	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(t *testing.T, id materials.MaterialID) materials.MaterialProfile {
	t.Helper()
	catalog, err := materials.Default()
	require.NoError(t, err)
	p, err := catalog.Get(id)
	require.NoError(t, err)
	return p
}

func TestEstimateLocalDecay_BagasseHomeCompost90Days(t *testing.T) {
	got, err := EstimateLocalDecay(profile(t, materials.Bagasse), materials.HomeCompost, 90)
	require.NoError(t, err)

	assert.Greater(t, got.DegradedFraction, 0.8,
		"bagasse should be largely degraded by 90 days in home compost")
	assert.InDelta(t, 1.0, got.RemainingFraction+got.DegradedFraction, 1e-9)
}

func TestEstimateLocalDecay_PHASoil365Days(t *testing.T) {
	got, err := EstimateLocalDecay(profile(t, materials.PHA), materials.Soil, 365)
	require.NoError(t, err)

	assert.Greater(t, got.DegradedFraction, 0.7,
		"PHA should be mostly degraded by 365 days in soil")
}

func TestEstimateLocalDecay_MidpointIsCompletion(t *testing.T) {
	tests := []struct {
		id       materials.MaterialID
		env      materials.Environment
		midpoint float64
	}{
		{materials.Bagasse, materials.HomeCompost, 75},
		{materials.Bagasse, materials.IndustrialCompost, 52.5},
		{materials.PHA, materials.IndustrialCompost, 135},
		{materials.PHA, materials.Marine, 272.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.id)+"/"+string(tt.env), func(t *testing.T) {
			got, err := EstimateLocalDecay(profile(t, tt.id), tt.env, tt.midpoint)
			require.NoError(t, err)
			assert.InDelta(t, decay.CompletionFraction, got.DegradedFraction, 1e-9)
		})
	}
}

func TestEstimateLocalDecay_FasterEnvironmentDegradesMore(t *testing.T) {
	pha := profile(t, materials.PHA)

	industrial, err := EstimateLocalDecay(pha, materials.IndustrialCompost, 60)
	require.NoError(t, err)
	soil, err := EstimateLocalDecay(pha, materials.Soil, 60)
	require.NoError(t, err)

	assert.Greater(t, industrial.DegradedFraction, soil.DegradedFraction)
}

func TestEstimateLocalDecay_ZeroElapsed(t *testing.T) {
	got, err := EstimateLocalDecay(profile(t, materials.PHA), materials.Soil, 0)
	require.NoError(t, err)
	assert.Equal(t, decay.Result{RemainingFraction: 1, DegradedFraction: 0}, got)
}

func TestEstimateLocalDecay_UnknownEnvironment(t *testing.T) {
	_, err := EstimateLocalDecay(profile(t, materials.Bagasse), materials.Marine, 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, materials.ErrNoEnvironmentData)
	assert.ErrorIs(t, err, domainerr.ErrUnresolvedReference)
}

func TestEstimateLocalDecay_NegativeElapsed(t *testing.T) {
	_, err := EstimateLocalDecay(profile(t, materials.Bagasse), materials.Soil, -1)
	assert.ErrorIs(t, err, decay.ErrInvalidElapsed)
	assert.ErrorIs(t, err, domainerr.ErrInvalidInput)
}

func TestEstimateLocalDecay_InvalidWindowInUnvalidatedProfile(t *testing.T) {
	// Profiles built outside NewCatalog skip window validation.
	broken := materials.MaterialProfile{
		ID: "BROKEN",
		Biodegradation: []materials.BiodegradationWindow{
			{Environment: materials.Soil, MinDays: 90, MaxDays: 30},
		},
	}

	_, err := EstimateLocalDecay(broken, materials.Soil, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, decay.ErrInvalidWindow)
	assert.Contains(t, err.Error(), "BROKEN")
}

func TestCurve(t *testing.T) {
	days := []float64{0, 30, 60, 90, 180}
	points, err := Curve(profile(t, materials.Bagasse), materials.Soil, days)
	require.NoError(t, err)
	require.Len(t, points, len(days))

	for i, p := range points {
		assert.Equal(t, days[i], p.ElapsedDays)
		if i > 0 {
			assert.Less(t, p.RemainingFraction, points[i-1].RemainingFraction)
		}
	}

	single, err := EstimateLocalDecay(profile(t, materials.Bagasse), materials.Soil, 90)
	require.NoError(t, err)
	assert.Equal(t, single, points[3].Result)
}

func TestCurve_Errors(t *testing.T) {
	_, err := Curve(profile(t, materials.Bagasse), materials.Landfill, []float64{1})
	assert.ErrorIs(t, err, materials.ErrNoEnvironmentData)

	_, err = Curve(profile(t, materials.Bagasse), materials.Soil, []float64{1, -1})
	assert.ErrorIs(t, err, decay.ErrInvalidElapsed)
}
