package geom

import (
	"github.com/san-kum/bounce/field"
)

// Path is an ordered knot sequence through field space. Knots live in a
// flat index-addressed arena (knot i occupies coords[i*dim:(i+1)*dim]),
// which keeps re-parameterization and resizing cheap compared to linked
// structures. The first knot is the false vacuum, the last the true
// vacuum; the deformer owns its Path exclusively and hands read-only
// clones downstream.
type Path struct {
	coords []float64
	dim    int
}

// NewPath copies the given knots into a fresh path. All knots must share a
// dimension and there must be at least two of them.
func NewPath(knots []field.Point) (*Path, error) {
	if len(knots) < 2 {
		return nil, field.ErrDegeneratePath
	}
	dim := len(knots[0])
	if dim < 1 {
		return nil, field.ErrDimensionMismatch
	}
	p := &Path{coords: make([]float64, 0, len(knots)*dim), dim: dim}
	for _, k := range knots {
		if len(k) != dim {
			return nil, field.ErrDimensionMismatch
		}
		p.coords = append(p.coords, k...)
	}
	return p, nil
}

// StraightPath places n knots evenly on the segment from the false vacuum
// a to the true vacuum b.
func StraightPath(a, b field.Point, n int) (*Path, error) {
	if n < 2 {
		return nil, field.ErrDegeneratePath
	}
	if len(a) != len(b) || len(a) == 0 {
		return nil, field.ErrDimensionMismatch
	}
	dim := len(a)
	p := &Path{coords: make([]float64, n*dim), dim: dim}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		for d := 0; d < dim; d++ {
			p.coords[i*dim+d] = a[d] + t*(b[d]-a[d])
		}
	}
	return p, nil
}

func (p *Path) Len() int { return len(p.coords) / p.dim }
func (p *Path) Dim() int { return p.dim }

// Knot returns a view of knot i. Callers that need to keep the value past
// the next mutation must clone it.
func (p *Path) Knot(i int) field.Point {
	return field.Point(p.coords[i*p.dim : (i+1)*p.dim])
}

func (p *Path) Clone() *Path {
	c := make([]float64, len(p.coords))
	copy(c, p.coords)
	return &Path{coords: c, dim: p.dim}
}

// SetKnot overwrites knot i. Only the deformer calls this, on its private
// working copy.
func (p *Path) SetKnot(i int, pt field.Point) {
	copy(p.coords[i*p.dim:(i+1)*p.dim], pt)
}
