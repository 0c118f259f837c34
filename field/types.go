package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a location in n-dimensional field space.
type Point []float64

func (p Point) Clone() Point {
	c := make(Point, len(p))
	copy(c, p)
	return c
}

func (p Point) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point) Norm() float64 {
	return floats.Norm(p, 2)
}

func (p Point) Dot(other Point) float64 {
	return floats.Dot(p, other)
}

func (p Point) Dist(other Point) float64 {
	return floats.Distance(p, other, 2)
}

func (p Point) Add(other Point) Point {
	result := p.Clone()
	floats.Add(result, other)
	return result
}

func (p Point) Sub(other Point) Point {
	result := p.Clone()
	floats.Sub(result, other)
	return result
}

func (p Point) Scale(factor float64) Point {
	result := p.Clone()
	floats.Scale(factor, result)
	return result
}

// Unit returns p normalized to unit length, or a zero vector when p is
// shorter than eps.
func (p Point) Unit(eps float64) Point {
	n := p.Norm()
	if n <= eps {
		return make(Point, len(p))
	}
	return p.Scale(1 / n)
}

// Potential evaluates a scalar potential over field space. Implementations
// must be deterministic and side-effect-free: the solvers call V repeatedly
// with the same arguments across bracketing iterations.
type Potential interface {
	V(x Point) float64
	Dim() int
}

// GradPotential is a Potential with an analytic gradient. When the
// collaborator cannot supply one, wrap the bare Potential in FiniteDiff.
type GradPotential interface {
	Potential
	Grad(x Point) Point
}

// Configurable exposes tunable potential parameters by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
