// Package scenario defines named tray scenarios and runs them end to end:
// eco-score, local decay projection and equivalencies in one report.
package scenario

import (
	"fmt"
	"math"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/rshade/ecotray/internal/domain/lca"
	"github.com/rshade/ecotray/internal/domain/materials"
)

var (
	// ErrInvalidScenario is returned when a scenario definition is malformed.
	ErrInvalidScenario = fmt.Errorf("scenario: invalid scenario: %w", domainerr.ErrInvalidInput)

	// ErrUnknownScenario is returned when a scenario name is not registered.
	ErrUnknownScenario = fmt.Errorf("scenario: unknown scenario: %w", domainerr.ErrUnresolvedReference)
)

// Scenario is one named evaluation: a tray configuration, its end-of-life
// fractions, the production energy, and an optional decay query.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Config                   lca.TrayConfiguration `yaml:"config" json:"config"`
	LandfillFractionBaseline float64               `yaml:"landfill_fraction_baseline" json:"landfillFractionBaseline"`
	CompostFractionScenario  float64               `yaml:"compost_fraction_scenario" json:"compostFractionScenario"`
	GridKWhPerTray           float64               `yaml:"grid_kwh_per_tray" json:"gridKWhPerTray"`

	// DecayEnvironment is empty when the scenario has no decay query.
	DecayEnvironment materials.Environment `yaml:"decay_environment,omitempty" json:"decayEnvironment,omitempty"`
	DecayElapsedDays float64               `yaml:"decay_elapsed_days,omitempty" json:"decayElapsedDays,omitempty"`
}

// Validate checks the scenario's own fields. Material resolution, tray mass
// and grid energy are checked when the scenario runs.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	if s.Config.MaterialID == "" {
		return fmt.Errorf("%w: %s: material_id is required", ErrInvalidScenario, s.Name)
	}
	if s.DecayEnvironment == "" {
		return nil
	}
	if !s.DecayEnvironment.IsKnown() {
		return fmt.Errorf("%w: %s: unknown decay environment %q", ErrInvalidScenario, s.Name, s.DecayEnvironment)
	}
	if s.DecayElapsedDays < 0 || math.IsNaN(s.DecayElapsedDays) || math.IsInf(s.DecayElapsedDays, 0) {
		return fmt.Errorf("%w: %s: decay_elapsed_days must be non-negative", ErrInvalidScenario, s.Name)
	}
	return nil
}

// HasDecayQuery reports whether the scenario asks for a decay projection.
func (s Scenario) HasDecayQuery() bool {
	return s.DecayEnvironment != ""
}

// Built-in scenario names.
const (
	// PhoenixBagasse is a molded bagasse tray composted at home.
	PhoenixBagasse = "phoenix-bagasse"
	// PhoenixPHAStandalone is a PHA tray from a standalone plant.
	PhoenixPHAStandalone = "phoenix-pha-standalone"
	// PhoenixPHAIntegrated is a PHA tray from an integrated recovery system.
	PhoenixPHAIntegrated = "phoenix-pha-integrated"
)

// Reference values shared by the Phoenix built-ins.
const (
	referenceTrayMassKg       = 0.02
	referenceLandfillBaseline = 0.9
	referenceCompostScenario  = 1.0
	referenceHomeCompostDays  = 90
	referenceSoilDays         = 365

	phoenixBagasseGridKWh       = 0.01
	phoenixPHAStandaloneGridKWh = 0.015
	phoenixPHAIntegratedGridKWh = 0.008
)

// Builtins returns the Phoenix reference scenarios.
func Builtins() []Scenario {
	return []Scenario{
		{
			Name:        PhoenixBagasse,
			Description: "Molded bagasse tray, standalone production, home compost",
			Config: lca.TrayConfiguration{
				MaterialID: materials.Bagasse,
				TrayMassKg: referenceTrayMassKg,
			},
			LandfillFractionBaseline: referenceLandfillBaseline,
			CompostFractionScenario:  referenceCompostScenario,
			GridKWhPerTray:           phoenixBagasseGridKWh,
			DecayEnvironment:         materials.HomeCompost,
			DecayElapsedDays:         referenceHomeCompostDays,
		},
		{
			Name:        PhoenixPHAStandalone,
			Description: "PHA tray from a standalone plant, soil end of life",
			Config: lca.TrayConfiguration{
				MaterialID: materials.PHA,
				TrayMassKg: referenceTrayMassKg,
			},
			LandfillFractionBaseline: referenceLandfillBaseline,
			CompostFractionScenario:  referenceCompostScenario,
			GridKWhPerTray:           phoenixPHAStandaloneGridKWh,
			DecayEnvironment:         materials.Soil,
			DecayElapsedDays:         referenceSoilDays,
		},
		{
			Name:        PhoenixPHAIntegrated,
			Description: "PHA tray from an integrated waste, water and energy recovery system",
			Config: lca.TrayConfiguration{
				MaterialID:       materials.PHA,
				TrayMassKg:       referenceTrayMassKg,
				IntegratedSystem: true,
			},
			LandfillFractionBaseline: referenceLandfillBaseline,
			CompostFractionScenario:  referenceCompostScenario,
			GridKWhPerTray:           phoenixPHAIntegratedGridKWh,
			DecayEnvironment:         materials.Soil,
			DecayElapsedDays:         referenceSoilDays,
		},
	}
}
