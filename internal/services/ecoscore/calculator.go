// Package ecoscore is the top-level entry point for scoring a tray scenario:
// it resolves the material, chains displacement and methane avoidance into
// the composite eco-score, and returns the intermediate metrics alongside it.
package ecoscore

import (
	"fmt"
	"math"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/rshade/ecotray/internal/domain/lca"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/rshade/ecotray/internal/services/displacement"
)

// ErrInvalidGridEnergy is returned when the per-tray grid energy is negative
// or not finite.
var ErrInvalidGridEnergy = fmt.Errorf("ecoscore: grid energy per tray must be non-negative: %w", domainerr.ErrInvalidInput)

// Inputs is one scenario evaluation request.
type Inputs struct {
	Config                   lca.TrayConfiguration
	Context                  lca.Context
	LandfillFractionBaseline float64
	CompostFractionScenario  float64

	// GridKWhPerTray is grid electricity drawn to produce one tray.
	GridKWhPerTray float64
}

// Result is the composite score plus the intermediate metrics it was built from.
type Result struct {
	EcoScore     lca.EcoScore              `json:"ecoScore"`
	Displacement lca.DisplacementScore     `json:"displacement"`
	Methane      lca.MethaneAvoidanceScore `json:"methane"`
}

// Calculator scores scenarios against a material catalog. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	catalog *materials.Catalog
	policy  lca.Policy
}

// NewCalculator creates a Calculator using lca.DefaultPolicy.
func NewCalculator(catalog *materials.Catalog) *Calculator {
	return &Calculator{
		catalog: catalog,
		policy:  lca.DefaultPolicy(),
	}
}

// NewCalculatorWithPolicy creates a Calculator with a custom score policy.
func NewCalculatorWithPolicy(catalog *materials.Catalog, policy lca.Policy) (*Calculator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{catalog: catalog, policy: policy}, nil
}

// Policy returns the score policy in use.
func (c *Calculator) Policy() lca.Policy {
	return c.policy
}

// Calculate evaluates one scenario.
//
// It fails with materials.ErrUnknownMaterial when the material id does not
// resolve, lca.ErrInvalidTrayMass when the tray mass is not positive, and
// ErrInvalidGridEnergy when the grid energy is negative. Methane fractions
// are passed through unvalidated.
func (c *Calculator) Calculate(in Inputs) (Result, error) {
	material, err := c.catalog.Get(in.Config.MaterialID)
	if err != nil {
		return Result{}, err
	}
	if err := in.Config.Validate(); err != nil {
		return Result{}, err
	}
	if in.GridKWhPerTray < 0 || math.IsNaN(in.GridKWhPerTray) || math.IsInf(in.GridKWhPerTray, 0) {
		return Result{}, fmt.Errorf("%w: got %g kWh", ErrInvalidGridEnergy, in.GridKWhPerTray)
	}

	metrics := displacement.ComputeMetrics(displacement.Inputs{
		Config:                   in.Config,
		Context:                  in.Context,
		LandfillFractionBaseline: in.LandfillFractionBaseline,
		CompostFractionScenario:  in.CompostFractionScenario,
	})

	score := c.policy.Score(
		metrics.Displacement,
		metrics.Methane,
		in.GridKWhPerTray,
		in.Context,
		material.ID,
		in.Config.IntegratedSystem,
	)

	return Result{
		EcoScore:     score,
		Displacement: metrics.Displacement,
		Methane:      metrics.Methane,
	}, nil
}
