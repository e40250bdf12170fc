// Package materials holds the immutable reference data for tray materials:
// safety attributes, biodegradation windows per disposal environment,
// performance figures and baseline LCA comparisons.
package materials

import (
	"fmt"
	"math"
)

// MaterialID identifies a tray material in the catalog.
type MaterialID string

const (
	// PHA is polyhydroxyalkanoate, the candidate biopolymer.
	PHA MaterialID = "PHA"

	// Bagasse is molded sugarcane bagasse pulp, the fiber alternative.
	Bagasse MaterialID = "BAGASSE"
)

// Environment is a disposal environment a tray can end up in.
type Environment string

const (
	// HomeCompost is an unmanaged backyard compost heap at ambient temperature.
	HomeCompost Environment = "home_compost"

	// IndustrialCompost is a managed thermophilic composting facility.
	IndustrialCompost Environment = "industrial_compost"

	// Soil is wet soil or farmland.
	Soil Environment = "soil"

	// Marine is open seawater.
	Marine Environment = "marine"

	// Landfill is anaerobic municipal landfill.
	Landfill Environment = "landfill"
)

// knownEnvironments lists every environment a catalog entry may reference.
var knownEnvironments = map[Environment]bool{
	HomeCompost:       true,
	IndustrialCompost: true,
	Soil:              true,
	Marine:            true,
	Landfill:          true,
}

// IsKnown reports whether e is one of the defined disposal environments.
func (e Environment) IsKnown() bool {
	return knownEnvironments[e]
}

// Resistance is a coarse low/medium/high rating.
type Resistance string

// Resistance ratings.
const (
	// ResistanceLow means the tray fails under sustained exposure.
	ResistanceLow Resistance = "low"
	// ResistanceMedium means the tray holds for typical single-use service.
	ResistanceMedium Resistance = "medium"
	// ResistanceHigh means the tray holds under prolonged exposure.
	ResistanceHigh Resistance = "high"
)

// Safety carries informational safety attributes. None of these feed the
// scoring formulas.
type Safety struct {
	Biobased             bool     `yaml:"biobased" json:"biobased"`
	PFASFree             bool     `yaml:"pfas_free" json:"pfasFree"`
	BPAFree              bool     `yaml:"bpa_free" json:"bpaFree"`
	FoodContactCertified bool     `yaml:"food_contact_certified" json:"foodContactCertified"`
	Certifications       []string `yaml:"certifications" json:"certifications"`
	NonToxicClaim        string   `yaml:"non_toxic_claim" json:"nonToxicClaim"`
}

// BiodegradationWindow is the reported time range for full biodegradation in
// one environment. MinDays and MaxDays are positive and MinDays <= MaxDays.
type BiodegradationWindow struct {
	Environment Environment `yaml:"environment" json:"environment"`
	MinDays     float64     `yaml:"min_days" json:"minDays"`
	MaxDays     float64     `yaml:"max_days" json:"maxDays"`
	Notes       string      `yaml:"notes" json:"notes"`
}

// Validate checks the window invariants.
func (w BiodegradationWindow) Validate() error {
	if !w.Environment.IsKnown() {
		return fmt.Errorf("unknown environment %q", w.Environment)
	}
	if !(w.MinDays > 0) || math.IsInf(w.MinDays, 1) || !(w.MaxDays > 0) || math.IsInf(w.MaxDays, 1) {
		return fmt.Errorf("%s: day bounds must be positive (min=%g, max=%g)", w.Environment, w.MinDays, w.MaxDays)
	}
	if w.MinDays > w.MaxDays {
		return fmt.Errorf("%s: min_days %g exceeds max_days %g", w.Environment, w.MinDays, w.MaxDays)
	}
	return nil
}

// Performance describes in-use properties of a tray. Carried for reporting.
type Performance struct {
	MaxUseTemperatureC float64    `yaml:"max_use_temperature_c" json:"maxUseTemperatureC"`
	MinUseTemperatureC float64    `yaml:"min_use_temperature_c" json:"minUseTemperatureC"`
	GreaseResistance   Resistance `yaml:"grease_resistance" json:"greaseResistance"`
	MoistureResistance Resistance `yaml:"moisture_resistance" json:"moistureResistance"`
	MicrowaveSafe      bool       `yaml:"microwave_safe" json:"microwaveSafe"`
	FreezerSafe        bool       `yaml:"freezer_safe" json:"freezerSafe"`
}

// LCABaseline holds published comparisons against polyethylene. Carried for
// reporting; the scoring formulas do not consume it.
type LCABaseline struct {
	// RelativeGWPVsPE is global warming potential relative to PE (1.0 = parity).
	RelativeGWPVsPE float64 `yaml:"relative_gwp_vs_pe" json:"relativeGwpVsPE"`

	// RelativeFossilDepletionVsPE is fossil depletion relative to PE.
	RelativeFossilDepletionVsPE float64 `yaml:"relative_fossil_depletion_vs_pe" json:"relativeFossilDepletionVsPE"`

	// CostRangeEURPerKg is the [low, high] market price range.
	CostRangeEURPerKg [2]float64 `yaml:"cost_range_eur_per_kg" json:"costRangeEurPerKg"`

	Notes string `yaml:"notes" json:"notes"`
}

// MaterialProfile is the full reference record for one material.
type MaterialProfile struct {
	ID             MaterialID             `yaml:"id" json:"id"`
	Name           string                 `yaml:"name" json:"name"`
	Description    string                 `yaml:"description" json:"description"`
	Safety         Safety                 `yaml:"safety" json:"safety"`
	Biodegradation []BiodegradationWindow `yaml:"biodegradation" json:"biodegradation"`
	Performance    Performance            `yaml:"performance" json:"performance"`
	LCABaseline    LCABaseline            `yaml:"lca_baseline" json:"lcaBaseline"`
}

// Window returns the biodegradation window for env. It fails with
// ErrNoEnvironmentData when the material has no entry for env; there is no
// fallback window.
func (p MaterialProfile) Window(env Environment) (BiodegradationWindow, error) {
	for _, w := range p.Biodegradation {
		if w.Environment == env {
			return w, nil
		}
	}
	return BiodegradationWindow{}, fmt.Errorf("%w: material %s has no data for %q", ErrNoEnvironmentData, p.ID, env)
}

// Environments lists the environments the material has data for, in catalog order.
func (p MaterialProfile) Environments() []Environment {
	envs := make([]Environment, 0, len(p.Biodegradation))
	for _, w := range p.Biodegradation {
		envs = append(envs, w.Environment)
	}
	return envs
}

// validate checks the profile invariants enforced by NewCatalog.
func (p MaterialProfile) validate() error {
	if p.ID == "" {
		return fmt.Errorf("material id is required")
	}
	if len(p.Biodegradation) == 0 {
		return fmt.Errorf("material %s: at least one biodegradation window is required", p.ID)
	}
	seen := make(map[Environment]bool, len(p.Biodegradation))
	for _, w := range p.Biodegradation {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("material %s: %w", p.ID, err)
		}
		if seen[w.Environment] {
			return fmt.Errorf("material %s: duplicate window for %q", p.ID, w.Environment)
		}
		seen[w.Environment] = true
	}
	return nil
}

// clone returns a deep copy so callers can never mutate catalog state.
func (p MaterialProfile) clone() MaterialProfile {
	out := p
	out.Safety.Certifications = append([]string(nil), p.Safety.Certifications...)
	out.Biodegradation = append([]BiodegradationWindow(nil), p.Biodegradation...)
	return out
}
