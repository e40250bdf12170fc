// Package lca scores a tray material against a fossil-plastic baseline:
// displaced plastic, avoided landfill methane, and a fixed-weight composite
// eco-score.
//
// Every function is pure. The LCA context is an immutable value passed
// explicitly into each calculation; nothing reads process-wide state.
package lca

import (
	"fmt"
	"math"

	"github.com/rshade/ecotray/internal/domain/domainerr"
)

// ErrInvalidContext is returned when an LCA context holds a negative or
// non-finite factor.
var ErrInvalidContext = fmt.Errorf("lca: invalid context: %w", domainerr.ErrInvalidInput)

// Phoenix reference scenario factors.
const (
	// PhoenixGridEmissionFactorKgPerKWh is the AZNM (Arizona/New Mexico)
	// eGRID subregion output emission rate, ~776 lb CO2e/MWh.
	PhoenixGridEmissionFactorKgPerKWh = 0.352

	// PhoenixLandfillMethaneKgCO2ePerKgOrganic is landfill methane from
	// anaerobic decay of fiber-based organics, in kg CO2e (GWP100) per kg.
	PhoenixLandfillMethaneKgCO2ePerKgOrganic = 0.95

	// PhoenixCompostMethaneKgCO2ePerKgOrganic is residual methane and N2O
	// from managed aerobic composting, in kg CO2e per kg.
	PhoenixCompostMethaneKgCO2ePerKgOrganic = 0.08

	// PhoenixFossilPlasticGWPKgPerKg is cradle-to-gate GWP of the fossil
	// tray plastic being displaced (PS/PET blend), in kg CO2e per kg.
	PhoenixFossilPlasticGWPKgPerKg = 2.5
)

// Context holds the reference emission factors for one evaluation.
type Context struct {
	// GridEmissionFactorKgPerKWh is grid electricity carbon intensity in kg CO2e/kWh.
	GridEmissionFactorKgPerKWh float64 `yaml:"grid_emission_factor_kg_per_kwh" json:"gridEmissionFactorKgPerKWh"`

	// LandfillMethaneKgCO2ePerKgOrganic is methane released per kg of organic mass landfilled.
	LandfillMethaneKgCO2ePerKgOrganic float64 `yaml:"landfill_methane_kg_co2e_per_kg_organic" json:"landfillMethaneKgCO2ePerKgOrganic"`

	// CompostMethaneKgCO2ePerKgOrganic is methane released per kg of organic mass composted.
	CompostMethaneKgCO2ePerKgOrganic float64 `yaml:"compost_methane_kg_co2e_per_kg_organic" json:"compostMethaneKgCO2ePerKgOrganic"`

	// FossilPlasticGWPKgPerKg is the global warming potential of the displaced plastic.
	FossilPlasticGWPKgPerKg float64 `yaml:"fossil_plastic_gwp_kg_per_kg" json:"fossilPlasticGwpKgPerKg"`
}

// PhoenixContext returns the reference context used by the Phoenix scenarios.
func PhoenixContext() Context {
	return Context{
		GridEmissionFactorKgPerKWh:        PhoenixGridEmissionFactorKgPerKWh,
		LandfillMethaneKgCO2ePerKgOrganic: PhoenixLandfillMethaneKgCO2ePerKgOrganic,
		CompostMethaneKgCO2ePerKgOrganic:  PhoenixCompostMethaneKgCO2ePerKgOrganic,
		FossilPlasticGWPKgPerKg:           PhoenixFossilPlasticGWPKgPerKg,
	}
}

// Validate checks that every factor is finite and non-negative.
func (c Context) Validate() error {
	factors := []struct {
		name  string
		value float64
	}{
		{"grid_emission_factor_kg_per_kwh", c.GridEmissionFactorKgPerKWh},
		{"landfill_methane_kg_co2e_per_kg_organic", c.LandfillMethaneKgCO2ePerKgOrganic},
		{"compost_methane_kg_co2e_per_kg_organic", c.CompostMethaneKgCO2ePerKgOrganic},
		{"fossil_plastic_gwp_kg_per_kg", c.FossilPlasticGWPKgPerKg},
	}
	for _, f := range factors {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number (got %g)", ErrInvalidContext, f.name, f.value)
		}
	}
	return nil
}

// WithGridRegion returns a copy of c using the grid factor for region.
// It reports false and returns c unchanged when the region is not listed.
func (c Context) WithGridRegion(region string) (Context, bool) {
	factor, ok := GridFactor(region)
	if !ok {
		return c, false
	}
	c.GridEmissionFactorKgPerKWh = factor
	return c, true
}
