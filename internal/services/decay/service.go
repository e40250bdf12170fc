// Package decay estimates how far a tray has biodegraded in a given disposal
// environment, using the material's reported biodegradation window.
package decay

import (
	"fmt"

	"github.com/rshade/ecotray/internal/domain/decay"
	"github.com/rshade/ecotray/internal/domain/materials"
)

// Point is one sample on a projected decay curve.
type Point struct {
	ElapsedDays float64 `json:"elapsedDays"`
	decay.Result
}

// EstimateLocalDecay projects the remaining and degraded mass fractions of
// material after elapsedDays in env.
//
// The window for env is converted with decay.CompletionHalfLife, so the
// midpoint of the reported window corresponds to decay.CompletionFraction
// mass loss. It fails with materials.ErrNoEnvironmentData when the material
// has no window for env.
func EstimateLocalDecay(material materials.MaterialProfile, env materials.Environment, elapsedDays float64) (decay.Result, error) {
	halfLife, err := halfLifeFor(material, env)
	if err != nil {
		return decay.Result{}, err
	}
	return decay.ComputeDecay(halfLife, elapsedDays)
}

// Curve projects decay at each of days. The half-life is derived once.
func Curve(material materials.MaterialProfile, env materials.Environment, days []float64) ([]Point, error) {
	halfLife, err := halfLifeFor(material, env)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(days))
	for _, d := range days {
		res, err := decay.ComputeDecay(halfLife, d)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{ElapsedDays: d, Result: res})
	}
	return points, nil
}

func halfLifeFor(material materials.MaterialProfile, env materials.Environment) (float64, error) {
	window, err := material.Window(env)
	if err != nil {
		return 0, err
	}
	halfLife, err := decay.CompletionHalfLife(window.MinDays, window.MaxDays)
	if err != nil {
		return 0, fmt.Errorf("material %s, %s: %w", material.ID, env, err)
	}
	return halfLife, nil
}
