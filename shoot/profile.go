package shoot

import "sort"

// Status reports how a shooting solve ended.
type Status int

const (
	StatusConverged Status = iota
	StatusMaxIterations
	StatusBracketFailure
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max-iterations-reached"
	case StatusBracketFailure:
		return "bracket-failure"
	default:
		return "unknown"
	}
}

// Profile is a radial bounce solution sampled on the integrator's own
// accepted grid, from r near 0 (true-vacuum side) outward. Profiles are
// built once per solve and never mutated afterwards.
type Profile struct {
	R    []float64
	Phi  []float64
	DPhi []float64

	// X0 is the launch field value at r = 0.
	X0 float64
	// Iters is the number of shooting iterations used.
	Iters int
	// BracketWidth is the final bracket extent as a fraction of the
	// vacuum separation.
	BracketWidth float64
	Status       Status
}

func (p *Profile) Samples() int { return len(p.R) }

// DPhiAtField interpolates dphi/dr at the radius where the field passes
// through x. The profile field values are monotone between the vacua, so a
// binary search locates the crossing; x outside the sampled range returns 0
// (the field sits in a vacuum there and the wall weighting vanishes).
func (p *Profile) DPhiAtField(x float64) float64 {
	n := len(p.Phi)
	if n == 0 {
		return 0
	}
	if n == 1 {
		if p.Phi[0] == x {
			return p.DPhi[0]
		}
		return 0
	}

	descending := p.Phi[0] > p.Phi[n-1]
	lo, hi := p.Phi[n-1], p.Phi[0]
	if !descending {
		lo, hi = p.Phi[0], p.Phi[n-1]
	}
	if x < lo || x > hi {
		return 0
	}

	// Index of the first sample past x in the traversal direction.
	i := sort.Search(n, func(i int) bool {
		if descending {
			return p.Phi[i] <= x
		}
		return p.Phi[i] >= x
	})
	if i == 0 {
		return p.DPhi[0]
	}
	if i >= n {
		return p.DPhi[n-1]
	}

	f0, f1 := p.Phi[i-1], p.Phi[i]
	if f1 == f0 {
		return p.DPhi[i]
	}
	t := (x - f0) / (f1 - f0)
	return p.DPhi[i-1] + t*(p.DPhi[i]-p.DPhi[i-1])
}
