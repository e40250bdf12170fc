// Package report turns avoided emissions into relatable equivalencies.
//
// Factors are EPA Greenhouse Gas Equivalencies Calculator values; the
// equivalency for an activity is kg CO2e divided by its factor.
package report

import (
	"fmt"
	"math"
)

const (
	// EPAMilesDrivenFactor is kg CO2e per mile driven in an average
	// passenger vehicle (3.93 x 10^-4 metric tons/mile).
	EPAMilesDrivenFactor = 0.393

	// EPASmartphoneChargeFactor is kg CO2e per full smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// MinDisplayThresholdKg is the smallest avoided mass worth reporting.
	MinDisplayThresholdKg = 0.001

	// BatchSize is the tray count equivalencies are reported for.
	BatchSize = 1000
)

// EquivalencyType identifies an equivalency category.
type EquivalencyType string

const (
	// MilesDriven converts CO2e to miles driven in an average passenger vehicle.
	MilesDriven EquivalencyType = "miles_driven"

	// SmartphonesCharged converts CO2e to full smartphone charges.
	SmartphonesCharged EquivalencyType = "smartphones_charged"
)

// Equivalency is one converted value.
type Equivalency struct {
	Type  EquivalencyType `json:"type"`
	Value float64         `json:"value"`
	Label string          `json:"label"`
}

// Equivalencies is the set of conversions for one batch of trays.
type Equivalencies struct {
	// Trays is the batch size the values refer to.
	Trays int `json:"trays"`

	// AvoidedKgCO2e is the net climate benefit of the whole batch.
	AvoidedKgCO2e float64       `json:"avoidedKgCO2e"`
	Results       []Equivalency `json:"results,omitempty"`
	DisplayText   string        `json:"displayText,omitempty"`
}

// IsEmpty reports whether no equivalency was calculated.
func (e Equivalencies) IsEmpty() bool {
	return len(e.Results) == 0
}

// ForBatch converts a per-tray climate benefit into equivalencies for
// BatchSize trays. Batches avoiding less than MinDisplayThresholdKg, or
// emitting on net, yield an empty result.
func ForBatch(kgCO2eAvoidedPerTray float64) Equivalencies {
	return Calculate(kgCO2eAvoidedPerTray * BatchSize).withTrays(BatchSize)
}

// Calculate converts avoidedKg into equivalencies.
func Calculate(avoidedKg float64) Equivalencies {
	out := Equivalencies{AvoidedKgCO2e: avoidedKg}
	if math.IsNaN(avoidedKg) || math.IsInf(avoidedKg, 0) || avoidedKg < MinDisplayThresholdKg {
		return out
	}

	miles := avoidedKg / EPAMilesDrivenFactor
	charges := avoidedKg / EPASmartphoneChargeFactor
	out.Results = []Equivalency{
		{Type: MilesDriven, Value: miles, Label: "miles driven"},
		{Type: SmartphonesCharged, Value: charges, Label: "smartphones charged"},
	}
	out.DisplayText = fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		formatCount(miles), formatCount(charges))
	return out
}

func (e Equivalencies) withTrays(n int) Equivalencies {
	e.Trays = n
	return e
}

// formatCount rounds to a whole number with thousands separators.
// Values under 10 keep one decimal.
func formatCount(v float64) string {
	if v < 10 {
		return fmt.Sprintf("%.1f", v)
	}
	digits := fmt.Sprintf("%d", int64(math.Round(v)))
	n := len(digits)
	if n <= 3 {
		return digits
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, digits[i])
	}
	return string(buf)
}
