// Package displacement bundles the fossil-plastic displacement and methane
// avoidance calculations for one tray configuration.
package displacement

import "github.com/rshade/ecotray/internal/domain/lca"

// Inputs is the parameter bundle for ComputeMetrics.
type Inputs struct {
	Config                   lca.TrayConfiguration
	Context                  lca.Context
	LandfillFractionBaseline float64
	CompostFractionScenario  float64
}

// Metrics pairs the two intermediate scores consumed by the eco-score.
type Metrics struct {
	Displacement lca.DisplacementScore     `json:"displacement"`
	Methane      lca.MethaneAvoidanceScore `json:"methane"`
}

// ComputeMetrics runs lca.ComputeDisplacement and lca.ComputeMethaneAvoidance
// on the same inputs. The configuration is taken as already resolved, so
// there is no lookup and no failure mode.
func ComputeMetrics(in Inputs) Metrics {
	return Metrics{
		Displacement: lca.ComputeDisplacement(in.Config, in.Context),
		Methane: lca.ComputeMethaneAvoidance(
			in.Config,
			in.Context,
			in.LandfillFractionBaseline,
			in.CompostFractionScenario,
		),
	}
}
