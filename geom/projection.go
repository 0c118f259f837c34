package geom

import (
	"github.com/san-kum/bounce/field"
)

// LineVeff restricts an n-field potential to a geometry's path, exposing
// the longitudinal effective potential V1(s) = V(x(s)) and its derivative
// along the unit tangent. It satisfies the shooting solver's Veff
// contract with s = 0 at the false vacuum and s = L at the true vacuum.
type LineVeff struct {
	G   *Geometry
	Pot field.GradPotential
}

func (l *LineVeff) V(s float64) float64 {
	return l.Pot.V(l.G.PositionAt(s))
}

func (l *LineVeff) DV(s float64) float64 {
	pos := l.G.PositionAt(s)
	return l.Pot.Grad(pos).Dot(l.G.TangentAt(s))
}

// NormalForce samples the transverse force residual at every knot:
//
//	F_i = w(s_i) * curvature(s_i) - gradPerp(s_i)
//
// where w is the profile weighting (dphi/dr)^2 at the knot's field value
// and gradPerp the component of the potential gradient perpendicular to
// the path tangent. Endpoint knots are pinned, so their residual is zero
// by construction. At a stationary tunneling path every component trends
// to zero.
func NormalForce(g *Geometry, pot field.GradPotential, w func(s float64) float64) []field.Point {
	n := g.Knots()
	forces := make([]field.Point, n)
	for i := 0; i < n; i++ {
		if i == 0 || i == n-1 {
			forces[i] = make(field.Point, g.Dim())
			continue
		}
		s := g.ArcAt(i)
		tan := g.TangentAt(s)
		grad := pot.Grad(g.PositionAt(s))
		gradPerp := grad.Sub(tan.Scale(grad.Dot(tan)))

		sec := g.SecondAt(s)
		curv := sec.Sub(tan.Scale(sec.Dot(tan)))

		forces[i] = curv.Scale(w(s)).Sub(gradPerp)
	}
	return forces
}

// MaxNorm returns the largest force magnitude in a sample.
func MaxNorm(forces []field.Point) float64 {
	max := 0.0
	for _, f := range forces {
		if n := f.Norm(); n > max {
			max = n
		}
	}
	return max
}
