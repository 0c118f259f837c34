package geom

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/bounce/field"
)

// Geometry is the smooth arclength parameterization of a Path: one natural
// cubic spline per field coordinate against the cumulative chord length.
// It is rebuilt from scratch each time the knots move.
type Geometry struct {
	path    *Path
	s       []float64
	splines []interp.NaturalCubic
	total   float64
	minSeg  float64
	maxSeg  float64
}

func NewGeometry(p *Path) (*Geometry, error) {
	n, dim := p.Len(), p.Dim()
	g := &Geometry{
		path:   p,
		s:      make([]float64, n),
		minSeg: math.Inf(1),
	}

	for i := 1; i < n; i++ {
		seg := p.Knot(i).Dist(p.Knot(i - 1))
		if seg <= 0 {
			return nil, field.ErrDegeneratePath
		}
		g.s[i] = g.s[i-1] + seg
		g.minSeg = math.Min(g.minSeg, seg)
		g.maxSeg = math.Max(g.maxSeg, seg)
	}
	g.total = g.s[n-1]

	g.splines = make([]interp.NaturalCubic, dim)
	ys := make([]float64, n)
	for d := 0; d < dim; d++ {
		for i := 0; i < n; i++ {
			ys[i] = p.Knot(i)[d]
		}
		if err := g.splines[d].Fit(g.s, ys); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Geometry) Path() *Path          { return g.path }
func (g *Geometry) Knots() int           { return g.path.Len() }
func (g *Geometry) Dim() int             { return g.path.Dim() }
func (g *Geometry) TotalLength() float64 { return g.total }

// ArcAt returns the arclength coordinate of knot i.
func (g *Geometry) ArcAt(i int) float64 { return g.s[i] }

// clamp keeps spline queries inside the fitted range; the shooting stepper
// can probe slightly past an endpoint while localizing a crossing.
func (g *Geometry) clamp(s float64) float64 {
	return math.Min(math.Max(s, 0), g.total)
}

func (g *Geometry) PositionAt(s float64) field.Point {
	s = g.clamp(s)
	pos := make(field.Point, g.Dim())
	for d := range g.splines {
		pos[d] = g.splines[d].Predict(s)
	}
	return pos
}

// TangentAt returns the unit tangent at s.
func (g *Geometry) TangentAt(s float64) field.Point {
	s = g.clamp(s)
	t := make(field.Point, g.Dim())
	for d := range g.splines {
		t[d] = g.splines[d].PredictDerivative(s)
	}
	return t.Unit(1e-14)
}

// SecondAt returns the second derivative of position with respect to
// arclength at s, by central differencing of the spline's analytic first
// derivative with a step tied to the local knot spacing.
func (g *Geometry) SecondAt(s float64) field.Point {
	s = g.clamp(s)
	h := 0.25 * g.minSeg
	lo, hi := s-h, s+h
	if lo < 0 {
		lo = 0
	}
	if hi > g.total {
		hi = g.total
	}
	sec := make(field.Point, g.Dim())
	if hi <= lo {
		return sec
	}
	for d := range g.splines {
		sec[d] = (g.splines[d].PredictDerivative(hi) - g.splines[d].PredictDerivative(lo)) / (hi - lo)
	}
	return sec
}

// SegmentRatio reports max/min knot spacing. The deformer re-parameterizes
// when it drifts too far from 1, before the spline conditioning degrades.
func (g *Geometry) SegmentRatio() float64 {
	if g.minSeg <= 0 {
		return math.Inf(1)
	}
	return g.maxSeg / g.minSeg
}

// Resample returns a new n-knot path at uniform arclength through the
// spline. Endpoints are preserved exactly.
func (g *Geometry) Resample(n int) (*Path, error) {
	if n < 2 {
		return nil, field.ErrDegeneratePath
	}
	dim := g.Dim()
	p := &Path{coords: make([]float64, n*dim), dim: dim}
	for i := 0; i < n; i++ {
		var pos field.Point
		switch i {
		case 0:
			pos = g.path.Knot(0).Clone()
		case n - 1:
			pos = g.path.Knot(g.path.Len() - 1).Clone()
		default:
			pos = g.PositionAt(float64(i) / float64(n-1) * g.total)
		}
		copy(p.coords[i*dim:(i+1)*dim], pos)
	}
	return p, nil
}
