package materials

import (
	"strings"
	"testing"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []MaterialID{Bagasse, PHA}, c.IDs())
}

func TestDefault_ReturnsSameCatalog(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)
	second, err := Default()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestDefault_ReferenceData(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		id        MaterialID
		env       Environment
		wantMin   float64
		wantMax   float64
		wantNotes string
	}{
		{PHA, Soil, 180, 365, "6-12 months"},
		{PHA, HomeCompost, 180, 365, "similar to soil"},
		{PHA, IndustrialCompost, 90, 180, "Elevated temperature"},
		{PHA, Marine, 180, 365, "marine"},
		{Bagasse, HomeCompost, 60, 90, "60-90 days"},
		{Bagasse, IndustrialCompost, 45, 60, "controlled composting"},
		{Bagasse, Soil, 60, 120, "soil environments"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id)+"/"+string(tt.env), func(t *testing.T) {
			p, err := c.Get(tt.id)
			require.NoError(t, err)

			w, err := p.Window(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, w.MinDays)
			assert.Equal(t, tt.wantMax, w.MaxDays)
			assert.Contains(t, w.Notes, tt.wantNotes)
		})
	}
}

func TestDefault_ProfileDetails(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	pha, err := c.Get(PHA)
	require.NoError(t, err)
	assert.Equal(t, "Polyhydroxyalkanoate (PHA)", pha.Name)
	assert.True(t, pha.Safety.PFASFree)
	assert.Len(t, pha.Safety.Certifications, 4)
	assert.Equal(t, ResistanceHigh, pha.Performance.GreaseResistance)
	assert.Equal(t, [2]float64{1.18, 6.12}, pha.LCABaseline.CostRangeEURPerKg)
	assert.Equal(t, 5.0, pha.LCABaseline.RelativeGWPVsPE)

	bagasse, err := c.Get(Bagasse)
	require.NoError(t, err)
	assert.Len(t, bagasse.Safety.Certifications, 11)
	assert.Equal(t, 120.0, bagasse.Performance.MaxUseTemperatureC)
	assert.Equal(t, 0.4, bagasse.LCABaseline.RelativeFossilDepletionVsPE)
	assert.Equal(t, []Environment{HomeCompost, IndustrialCompost, Soil}, bagasse.Environments())
}

func TestCatalog_UnknownMaterial(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Get("PLA")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	assert.ErrorIs(t, err, domainerr.ErrUnresolvedReference)

	_, ok := c.Lookup("PLA")
	assert.False(t, ok)
}

func TestMaterialProfile_WindowMissingEnvironment(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	bagasse, err := c.Get(Bagasse)
	require.NoError(t, err)

	_, err = bagasse.Window(Marine)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEnvironmentData)
	assert.ErrorIs(t, err, domainerr.ErrUnresolvedReference)

	_, err = bagasse.Window(Landfill)
	assert.ErrorIs(t, err, ErrNoEnvironmentData)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, err := c.Get(PHA)
	require.NoError(t, err)
	p.Biodegradation[0].MinDays = 1
	p.Safety.Certifications[0] = "tampered"

	again, err := c.Get(PHA)
	require.NoError(t, err)
	assert.Equal(t, 180.0, again.Biodegradation[0].MinDays)
	assert.NotEqual(t, "tampered", again.Safety.Certifications[0])

	ids := c.IDs()
	ids[0] = "X"
	assert.Equal(t, Bagasse, c.IDs()[0])
}

func TestNewCatalog_RejectsInvalidProfiles(t *testing.T) {
	valid := MaterialProfile{
		ID: "TEST",
		Biodegradation: []BiodegradationWindow{
			{Environment: Soil, MinDays: 10, MaxDays: 20},
		},
	}

	tests := []struct {
		name     string
		profiles []MaterialProfile
		wantMsg  string
	}{
		{"empty catalog", nil, "no materials"},
		{"missing id", []MaterialProfile{{Biodegradation: valid.Biodegradation}}, "id is required"},
		{"no windows", []MaterialProfile{{ID: "TEST"}}, "at least one"},
		{
			"inverted window",
			[]MaterialProfile{{ID: "TEST", Biodegradation: []BiodegradationWindow{{Environment: Soil, MinDays: 30, MaxDays: 20}}}},
			"exceeds",
		},
		{
			"zero bound",
			[]MaterialProfile{{ID: "TEST", Biodegradation: []BiodegradationWindow{{Environment: Soil, MinDays: 0, MaxDays: 20}}}},
			"positive",
		},
		{
			"unknown environment",
			[]MaterialProfile{{ID: "TEST", Biodegradation: []BiodegradationWindow{{Environment: "river", MinDays: 1, MaxDays: 2}}}},
			"unknown environment",
		},
		{
			"duplicate environment",
			[]MaterialProfile{{ID: "TEST", Biodegradation: []BiodegradationWindow{
				{Environment: Soil, MinDays: 1, MaxDays: 2},
				{Environment: Soil, MinDays: 3, MaxDays: 4},
			}}},
			"duplicate window",
		},
		{"duplicate id", []MaterialProfile{valid, valid}, "duplicate material id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.profiles...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.ErrorIs(t, err, domainerr.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadCatalog_Custom(t *testing.T) {
	doc := `
materials:
  - id: PLA
    name: Polylactic acid
    biodegradation:
      - environment: industrial_compost
        min_days: 90
        max_days: 180
`
	c, err := LoadCatalog(strings.NewReader(doc))
	require.NoError(t, err)

	p, err := c.Get("PLA")
	require.NoError(t, err)
	assert.Equal(t, "Polylactic acid", p.Name)

	_, err = p.Window(Soil)
	assert.ErrorIs(t, err, ErrNoEnvironmentData)
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	doc := `
materials:
  - id: PLA
    colour: white
    biodegradation:
      - environment: soil
        min_days: 1
        max_days: 2
`
	_, err := LoadCatalog(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}
