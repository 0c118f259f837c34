package field

import (
	"gonum.org/v1/gonum/diff/fd"
)

// DefaultFDStep is the finite-difference step used when none is configured.
const DefaultFDStep = 1e-6

// FiniteDiff upgrades a bare Potential to a GradPotential using central
// finite differences.
type FiniteDiff struct {
	P    Potential
	Step float64
}

// NewFiniteDiff wraps p with a central-difference gradient of the given
// step size. A non-positive step selects DefaultFDStep.
func NewFiniteDiff(p Potential, step float64) *FiniteDiff {
	if step <= 0 {
		step = DefaultFDStep
	}
	return &FiniteDiff{P: p, Step: step}
}

func (f *FiniteDiff) V(x Point) float64 { return f.P.V(x) }
func (f *FiniteDiff) Dim() int          { return f.P.Dim() }

func (f *FiniteDiff) Grad(x Point) Point {
	dst := make([]float64, len(x))
	fd.Gradient(dst, func(v []float64) float64 { return f.P.V(Point(v)) }, x, &fd.Settings{
		Formula: fd.Central,
		Step:    f.Step,
	})
	return dst
}

// AsGrad returns p itself when it already carries an analytic gradient, or
// a finite-difference wrapper otherwise.
func AsGrad(p Potential, step float64) GradPotential {
	if gp, ok := p.(GradPotential); ok {
		return gp
	}
	return NewFiniteDiff(p, step)
}
