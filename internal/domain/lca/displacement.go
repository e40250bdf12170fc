package lca

import (
	"fmt"
	"math"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/rshade/ecotray/internal/domain/materials"
)

// ErrInvalidTrayMass is returned when a tray mass is not a finite positive number.
var ErrInvalidTrayMass = fmt.Errorf("lca: tray mass must be positive: %w", domainerr.ErrInvalidInput)

// TrayConfiguration describes the tray being evaluated in one scenario.
type TrayConfiguration struct {
	// MaterialID must resolve in the material catalog.
	MaterialID materials.MaterialID `yaml:"material_id" json:"materialId"`

	// TrayMassKg is the mass of a single tray in kilograms.
	TrayMassKg float64 `yaml:"tray_mass_kg" json:"trayMassKg"`

	// IntegratedSystem marks production coupled to on-site waste, water and
	// energy recovery.
	IntegratedSystem bool `yaml:"integrated_system" json:"integratedSystem"`
}

// Validate checks the tray mass. Material resolution is the caller's job.
func (c TrayConfiguration) Validate() error {
	if !(c.TrayMassKg > 0) || math.IsInf(c.TrayMassKg, 1) {
		return fmt.Errorf("%w: got %g kg", ErrInvalidTrayMass, c.TrayMassKg)
	}
	return nil
}

// DisplacementScore is the fossil plastic a tray substitutes for.
type DisplacementScore struct {
	KgPlasticAvoided         float64 `json:"kgPlasticAvoided"`
	KgCO2eAvoidedFromPlastic float64 `json:"kgCO2eAvoidedFromPlastic"`
}

// MethaneAvoidanceScore is the CO2e avoided by diverting organic mass from
// landfill to compost. Negative values mean the scenario diverts less
// effectively than the baseline.
type MethaneAvoidanceScore struct {
	KgCH4EqAvoidedInCO2e float64 `json:"kgCH4EqAvoidedInCO2e"`
}

// ComputeDisplacement assumes the tray displaces an equal mass of fossil
// plastic. It does not branch on material.
func ComputeDisplacement(cfg TrayConfiguration, ctx Context) DisplacementScore {
	kgPlasticAvoided := cfg.TrayMassKg
	return DisplacementScore{
		KgPlasticAvoided:         kgPlasticAvoided,
		KgCO2eAvoidedFromPlastic: kgPlasticAvoided * ctx.FossilPlasticGWPKgPerKg,
	}
}

// ComputeMethaneAvoidance compares a baseline in which landfillFractionBaseline
// of the tray mass is landfilled against a scenario in which
// compostFractionScenario of it is composted:
//
//	baseline = mass × landfillFractionBaseline × landfill factor
//	scenario = mass × compostFractionScenario × compost factor
//	avoided  = baseline - scenario
//
// Fractions are expected in [0, 1] but are neither validated nor clamped.
func ComputeMethaneAvoidance(cfg TrayConfiguration, ctx Context, landfillFractionBaseline, compostFractionScenario float64) MethaneAvoidanceScore {
	organicKg := cfg.TrayMassKg
	baselineMethane := organicKg * landfillFractionBaseline * ctx.LandfillMethaneKgCO2ePerKgOrganic
	scenarioMethane := organicKg * compostFractionScenario * ctx.CompostMethaneKgCO2ePerKgOrganic

	return MethaneAvoidanceScore{
		KgCH4EqAvoidedInCO2e: baselineMethane - scenarioMethane,
	}
}
