package scenario

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	domaindecay "github.com/rshade/ecotray/internal/domain/decay"
	"github.com/rshade/ecotray/internal/domain/lca"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/rshade/ecotray/internal/report"
	decaysvc "github.com/rshade/ecotray/internal/services/decay"
	"github.com/rshade/ecotray/internal/services/ecoscore"
)

// DecayEstimate is the projected state of the tray at the scenario's
// decay query.
type DecayEstimate struct {
	Environment materials.Environment `json:"environment"`
	ElapsedDays float64               `json:"elapsedDays"`
	domaindecay.Result
}

// Report is the outcome of running one scenario.
type Report struct {
	// EvaluationID is unique per run.
	EvaluationID  string               `json:"evaluationId"`
	Scenario      Scenario             `json:"scenario"`
	Context       lca.Context          `json:"context"`
	Eco           ecoscore.Result      `json:"eco"`
	Decay         *DecayEstimate       `json:"decay,omitempty"`
	Equivalencies report.Equivalencies `json:"equivalencies"`
}

// Runner evaluates scenarios against a catalog. It is safe for concurrent use.
type Runner struct {
	catalog    *materials.Catalog
	calculator *ecoscore.Calculator
}

// NewRunner creates a Runner using the default score policy.
func NewRunner(catalog *materials.Catalog) *Runner {
	return &Runner{
		catalog:    catalog,
		calculator: ecoscore.NewCalculator(catalog),
	}
}

// NewRunnerWithCalculator creates a Runner around an existing calculator.
func NewRunnerWithCalculator(catalog *materials.Catalog, calculator *ecoscore.Calculator) *Runner {
	return &Runner{catalog: catalog, calculator: calculator}
}

// Run evaluates s under ctx.
func (r *Runner) Run(ctx lca.Context, s Scenario) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}

	eco, err := r.calculator.Calculate(ecoscore.Inputs{
		Config:                   s.Config,
		Context:                  ctx,
		LandfillFractionBaseline: s.LandfillFractionBaseline,
		CompostFractionScenario:  s.CompostFractionScenario,
		GridKWhPerTray:           s.GridKWhPerTray,
	})
	if err != nil {
		return Report{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	rep := Report{
		EvaluationID:  uuid.New().String(),
		Scenario:      s,
		Context:       ctx,
		Eco:           eco,
		Equivalencies: report.ForBatch(eco.EcoScore.ClimateScore),
	}

	if s.HasDecayQuery() {
		// Calculate already resolved the material.
		material, err := r.catalog.Get(s.Config.MaterialID)
		if err != nil {
			return Report{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		res, err := decaysvc.EstimateLocalDecay(material, s.DecayEnvironment, s.DecayElapsedDays)
		if err != nil {
			return Report{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		rep.Decay = &DecayEstimate{
			Environment: s.DecayEnvironment,
			ElapsedDays: s.DecayElapsedDays,
			Result:      res,
		}
	}

	return rep, nil
}

// RunAll evaluates every scenario in parallel. Reports keep the input
// order. If any run fails the first failure in input order is returned
// along with no reports.
func (r *Runner) RunAll(ctx lca.Context, scenarios []Scenario) ([]Report, error) {
	reports := make([]Report, len(scenarios))
	errs := make([]error, len(scenarios))

	var wg sync.WaitGroup
	for i, s := range scenarios {
		wg.Add(1)
		go func(i int, s Scenario) {
			defer wg.Done()
			reports[i], errs[i] = r.Run(ctx, s)
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}
