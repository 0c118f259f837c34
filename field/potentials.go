package field

import (
	"math"
)

// QuarticDoubleWell is the single-field potential
//
//	V(x) = A*(x^2 - B^2)^2 + Tilt*(x - B)/(2B)
//
// With Tilt = 0 the minima at x = +B and x = -B are degenerate (thin-wall
// limit). A positive Tilt lowers the x = -B well by roughly Tilt, making
// x = +B the false vacuum and x = -B the true vacuum.
type QuarticDoubleWell struct {
	A, B, Tilt float64
}

func NewQuarticDoubleWell(tilt float64) *QuarticDoubleWell {
	return &QuarticDoubleWell{A: 1.0, B: 1.0, Tilt: tilt}
}

func (q *QuarticDoubleWell) Dim() int { return 1 }

func (q *QuarticDoubleWell) V(x Point) float64 {
	p := x[0]
	d := p*p - q.B*q.B
	return q.A*d*d + q.Tilt*(p-q.B)/(2*q.B)
}

func (q *QuarticDoubleWell) Grad(x Point) Point {
	p := x[0]
	return Point{4*q.A*p*(p*p-q.B*q.B) + q.Tilt/(2*q.B)}
}

// FalseVacuum and TrueVacuum return the well locations, Newton-refined
// from +-B. The profile asymptotes to the actual stationary point, so the
// shooting solver needs the refined value, not the untilted +-B.
func (q *QuarticDoubleWell) FalseVacuum() Point { return Point{q.refine(q.B)} }
func (q *QuarticDoubleWell) TrueVacuum() Point  { return Point{q.refine(-q.B)} }

func (q *QuarticDoubleWell) refine(x float64) float64 {
	for i := 0; i < 12; i++ {
		d := 4*q.A*x*(x*x-q.B*q.B) + q.Tilt/(2*q.B)
		d2 := 4 * q.A * (3*x*x - q.B*q.B)
		if d2 == 0 {
			break
		}
		x -= d / d2
	}
	return x
}

// WallTension is the thin-wall surface tension integral(sqrt(2V)) across
// the degenerate barrier, used to cross-check computed actions.
func (q *QuarticDoubleWell) WallTension() float64 {
	return math.Sqrt(2*q.A) * 4 * q.B * q.B * q.B / 3
}

func (q *QuarticDoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": q.A, "B": q.B, "tilt": q.Tilt}
}

func (q *QuarticDoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		q.A = v
	case "B":
		q.B = v
	case "tilt":
		q.Tilt = v
	default:
		return ErrBadConfig
	}
	return nil
}

// HiggsLike is the single-field potential
//
//	V(x) = Lambda*x^4 - C3*x^3 + C2*x^2
//
// with a metastable minimum at x = 0 and, for 9*C3^2 > 32*Lambda*C2, a
// stable minimum past the barrier.
type HiggsLike struct {
	Lambda, C3, C2 float64
}

func NewHiggsLike() *HiggsLike {
	return &HiggsLike{Lambda: 0.25, C3: 0.45, C2: 0.15}
}

func (h *HiggsLike) Dim() int { return 1 }

func (h *HiggsLike) V(x Point) float64 {
	p := x[0]
	return h.Lambda*p*p*p*p - h.C3*p*p*p + h.C2*p*p
}

func (h *HiggsLike) Grad(x Point) Point {
	p := x[0]
	return Point{4*h.Lambda*p*p*p - 3*h.C3*p*p + 2*h.C2*p}
}

func (h *HiggsLike) Hess(x Point) float64 {
	p := x[0]
	return 12*h.Lambda*p*p - 6*h.C3*p + 2*h.C2
}

// Minima returns the metastable minimum, the barrier top and the stable
// minimum, solving dV = x*(4*Lambda*x^2 - 3*C3*x + 2*C2) = 0 in closed
// form. The second return reports whether the barrier and stable minimum
// exist (positive discriminant).
func (h *HiggsLike) Minima() (meta, barrier, stable Point, ok bool) {
	disc := 9*h.C3*h.C3 - 32*h.Lambda*h.C2
	if disc <= 0 {
		return Point{0}, nil, nil, false
	}
	root := math.Sqrt(disc)
	lo := (3*h.C3 - root) / (8 * h.Lambda)
	hi := (3*h.C3 + root) / (8 * h.Lambda)
	return Point{0}, Point{lo}, Point{hi}, true
}

func (h *HiggsLike) GetParams() map[string]float64 {
	return map[string]float64{"lambda": h.Lambda, "c3": h.C3, "c2": h.C2}
}

func (h *HiggsLike) SetParam(n string, v float64) error {
	switch n {
	case "lambda":
		h.Lambda = v
	case "c3":
		h.C3 = v
	case "c2":
		h.C2 = v
	default:
		return ErrBadConfig
	}
	return nil
}

// CoupledQuartic is a two-field potential with a curved tunneling valley,
//
//	V(x, y) = (x^2 + y^2) * (C1*(x-1)^2 + C2*(y-1)^2 - Delta)
//
// False vacuum at the origin, true vacuum near (1, 1). The C1/C2 asymmetry
// bends the minimum-energy path away from the straight diagonal, which is
// what exercises the path deformation.
type CoupledQuartic struct {
	C1, C2, Delta float64
}

func NewCoupledQuartic(delta float64) *CoupledQuartic {
	return &CoupledQuartic{C1: 1.8, C2: 0.2, Delta: delta}
}

func (c *CoupledQuartic) Dim() int { return 2 }

func (c *CoupledQuartic) V(p Point) float64 {
	x, y := p[0], p[1]
	f := x*x + y*y
	g := c.C1*(x-1)*(x-1) + c.C2*(y-1)*(y-1) - c.Delta
	return f * g
}

func (c *CoupledQuartic) Grad(p Point) Point {
	x, y := p[0], p[1]
	f := x*x + y*y
	g := c.C1*(x-1)*(x-1) + c.C2*(y-1)*(y-1) - c.Delta
	return Point{
		2*x*g + f*2*c.C1*(x-1),
		2*y*g + f*2*c.C2*(y-1),
	}
}

func (c *CoupledQuartic) FalseVacuum() Point { return Point{0, 0} }
func (c *CoupledQuartic) TrueVacuum() Point  { return Point{1, 1} }

func (c *CoupledQuartic) GetParams() map[string]float64 {
	return map[string]float64{"c1": c.C1, "c2": c.C2, "delta": c.Delta}
}

func (c *CoupledQuartic) SetParam(n string, v float64) error {
	switch n {
	case "c1":
		c.C1 = v
	case "c2":
		c.C2 = v
	case "delta":
		c.Delta = v
	default:
		return ErrBadConfig
	}
	return nil
}
