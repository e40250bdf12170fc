package lca

import (
	"fmt"
	"math"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/rshade/ecotray/internal/domain/materials"
)

// ErrInvalidPolicy is returned when score weights are negative or do not sum to 1.
var ErrInvalidPolicy = fmt.Errorf("lca: invalid score policy: %w", domainerr.ErrInvalidInput)

// Composite weights. They must sum to 1.0.
const (
	// ClimateWeight weights net kg CO2e avoided.
	ClimateWeight = 0.6
	// FossilWeight weights kg of fossil plastic displaced.
	FossilWeight = 0.3
	// MicroplasticWeight weights the end-of-life fragmentation score.
	MicroplasticWeight = 0.1
)

// Categorical policy values of the reference scenario.
const (
	// CandidateBiopolymer is the material that receives the integration
	// bonus and the full microplastic score.
	CandidateBiopolymer = materials.PHA

	// IntegratedFossilMultiplier scales the fossil term when the candidate
	// biopolymer is produced in an integrated system.
	IntegratedFossilMultiplier = 1.5

	// StandaloneFossilMultiplier applies to every other configuration.
	StandaloneFossilMultiplier = 1.0

	// CandidateMicroplasticScore is the end-of-life fragmentation weight for
	// the candidate biopolymer.
	CandidateMicroplasticScore = 1.0

	// AlternativeMicroplasticScore applies to every other material.
	AlternativeMicroplasticScore = 0.9
)

// policyWeightTolerance bounds the rounding error allowed in the weight sum.
const policyWeightTolerance = 0.001

// EcoScore is the composite result. TotalScore is an internally comparable
// index, not a bounded percentile.
type EcoScore struct {
	ClimateScore      float64 `json:"climateScore"`
	FossilScore       float64 `json:"fossilScore"`
	MicroplasticScore float64 `json:"microplasticScore"`
	TotalScore        float64 `json:"totalScore"`
}

// Policy bundles the weights and categorical multipliers of the eco-score.
type Policy struct {
	ClimateWeight      float64 `yaml:"climate_weight" json:"climateWeight"`
	FossilWeight       float64 `yaml:"fossil_weight" json:"fossilWeight"`
	MicroplasticWeight float64 `yaml:"microplastic_weight" json:"microplasticWeight"`

	CandidateBiopolymer          materials.MaterialID `yaml:"candidate_biopolymer" json:"candidateBiopolymer"`
	IntegratedFossilMultiplier   float64              `yaml:"integrated_fossil_multiplier" json:"integratedFossilMultiplier"`
	StandaloneFossilMultiplier   float64              `yaml:"standalone_fossil_multiplier" json:"standaloneFossilMultiplier"`
	CandidateMicroplasticScore   float64              `yaml:"candidate_microplastic_score" json:"candidateMicroplasticScore"`
	AlternativeMicroplasticScore float64              `yaml:"alternative_microplastic_score" json:"alternativeMicroplasticScore"`
}

// DefaultPolicy returns the reference scenario policy.
func DefaultPolicy() Policy {
	return Policy{
		ClimateWeight:                ClimateWeight,
		FossilWeight:                 FossilWeight,
		MicroplasticWeight:           MicroplasticWeight,
		CandidateBiopolymer:          CandidateBiopolymer,
		IntegratedFossilMultiplier:   IntegratedFossilMultiplier,
		StandaloneFossilMultiplier:   StandaloneFossilMultiplier,
		CandidateMicroplasticScore:   CandidateMicroplasticScore,
		AlternativeMicroplasticScore: AlternativeMicroplasticScore,
	}
}

// Validate checks that the weights are non-negative and sum to 1.0, that
// every multiplier and categorical score is finite and non-negative, and
// that integration never lowers the fossil multiplier.
func (p Policy) Validate() error {
	for _, w := range []float64{p.ClimateWeight, p.FossilWeight, p.MicroplasticWeight} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight must be a finite non-negative number (got %g)", ErrInvalidPolicy, w)
		}
	}
	sum := p.ClimateWeight + p.FossilWeight + p.MicroplasticWeight
	if math.Abs(sum-1.0) > policyWeightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, must sum to 1.0", ErrInvalidPolicy, sum)
	}

	factors := []struct {
		name  string
		value float64
	}{
		{"integrated_fossil_multiplier", p.IntegratedFossilMultiplier},
		{"standalone_fossil_multiplier", p.StandaloneFossilMultiplier},
		{"candidate_microplastic_score", p.CandidateMicroplasticScore},
		{"alternative_microplastic_score", p.AlternativeMicroplasticScore},
	}
	for _, f := range factors {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number (got %g)", ErrInvalidPolicy, f.name, f.value)
		}
	}
	if p.IntegratedFossilMultiplier < p.StandaloneFossilMultiplier {
		return fmt.Errorf("%w: integrated_fossil_multiplier %g is below standalone_fossil_multiplier %g",
			ErrInvalidPolicy, p.IntegratedFossilMultiplier, p.StandaloneFossilMultiplier)
	}
	if p.CandidateBiopolymer == "" {
		return fmt.Errorf("%w: candidate_biopolymer is required", ErrInvalidPolicy)
	}
	return nil
}

// ComputeEcoScore combines displacement, methane avoidance and production
// energy into the composite score using DefaultPolicy.
func ComputeEcoScore(
	displacement DisplacementScore,
	methane MethaneAvoidanceScore,
	gridKWhPerTray float64,
	ctx Context,
	materialID materials.MaterialID,
	integratedSystem bool,
) EcoScore {
	return DefaultPolicy().Score(displacement, methane, gridKWhPerTray, ctx, materialID, integratedSystem)
}

// Score applies the policy:
//
//	energy       = gridKWhPerTray × grid factor
//	climate      = plastic CO2e avoided + methane avoided - energy
//	fossil       = plastic avoided × multiplier (integrated candidate only)
//	microplastic = categorical weight by material
//	total        = wc×climate + wf×fossil + wm×microplastic
func (p Policy) Score(
	displacement DisplacementScore,
	methane MethaneAvoidanceScore,
	gridKWhPerTray float64,
	ctx Context,
	materialID materials.MaterialID,
	integratedSystem bool,
) EcoScore {
	energyEmissions := gridKWhPerTray * ctx.GridEmissionFactorKgPerKWh
	climateScore := displacement.KgCO2eAvoidedFromPlastic + methane.KgCH4EqAvoidedInCO2e - energyEmissions

	isCandidate := materialID == p.CandidateBiopolymer

	fossilMultiplier := p.StandaloneFossilMultiplier
	if integratedSystem && isCandidate {
		fossilMultiplier = p.IntegratedFossilMultiplier
	}
	fossilScore := displacement.KgPlasticAvoided * fossilMultiplier

	microplasticScore := p.AlternativeMicroplasticScore
	if isCandidate {
		microplasticScore = p.CandidateMicroplasticScore
	}

	totalScore := p.ClimateWeight*climateScore +
		p.FossilWeight*fossilScore +
		p.MicroplasticWeight*microplasticScore

	return EcoScore{
		ClimateScore:      climateScore,
		FossilScore:       fossilScore,
		MicroplasticScore: microplasticScore,
		TotalScore:        totalScore,
	}
}
