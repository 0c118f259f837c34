// Package action integrates a radial bounce profile into the Euclidean
// action that controls the tunneling exponent.
package action

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/shoot"
)

// Action is the Euclidean action of a profile,
//
//	S = integral r^nu * (0.5*(dphi/dr)^2 + V1(phi) - V1(xFalse)) dr
//
// split into its kinetic and potential contributions. It is recomputed
// from scratch each outer deformation iteration and carries the profile's
// convergence status through unchanged.
type Action struct {
	Total     float64
	Kinetic   float64
	Potential float64
	Status    shoot.Status
}

// Evaluate integrates the profile on its own adaptive grid, so the
// quadrature sees exactly the points the stepper produced. Simpson's rule
// is used for grids of three or more points, trapezoid below that.
func Evaluate(prof *shoot.Profile, veff shoot.Veff, nu int, xFalse float64) (Action, error) {
	act := Action{Status: prof.Status}
	n := prof.Samples()
	if n < 2 {
		return act, field.ErrOverflow
	}

	vFalse := veff.V(xFalse)
	kin := make([]float64, n)
	pot := make([]float64, n)
	for i := 0; i < n; i++ {
		w := math.Pow(prof.R[i], float64(nu))
		kin[i] = w * 0.5 * prof.DPhi[i] * prof.DPhi[i]
		pot[i] = w * (veff.V(prof.Phi[i]) - vFalse)
	}

	if n >= 3 {
		act.Kinetic = integrate.Simpsons(prof.R, kin)
		act.Potential = integrate.Simpsons(prof.R, pot)
	} else {
		act.Kinetic = integrate.Trapezoidal(prof.R, kin)
		act.Potential = integrate.Trapezoidal(prof.R, pot)
	}
	act.Total = act.Kinetic + act.Potential

	if math.IsNaN(act.Total) || math.IsInf(act.Total, 0) {
		return act, field.ErrOverflow
	}
	return act, nil
}
