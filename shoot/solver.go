package shoot

import (
	"context"
	"math"

	"github.com/san-kum/bounce/field"
)

// Veff is the 1-D effective potential the radial equation is integrated
// against: either a bare single-field potential or a multi-field potential
// restricted to a path. Both methods must be deterministic.
type Veff interface {
	V(x float64) float64
	DV(x float64) float64
}

// Curver is an optional Veff extension supplying an analytic second
// derivative, used to seed the small-r series. Without it the solver falls
// back to differencing DV.
type Curver interface {
	D2V(x float64) float64
}

// Config collects the shooting tolerances and budgets.
type Config struct {
	// Nu is the friction exponent: the spatial dimension of the bounce
	// minus one (2 for a 3-D Euclidean bounce, 3 for 4-D).
	Nu int
	// RelTol and AbsTol bound the final bracket width as a fraction of the
	// vacuum separation, and double as the integrator error tolerances.
	RelTol float64
	AbsTol float64
	// MaxIters caps the total number of shooting trials, bracket
	// establishment included.
	MaxIters int
	// RMaxScale is the radial guard in units of the wall-thickness scale.
	// A trial still in flight past it is classified as overshoot.
	RMaxScale float64
	// OverflowFactor bounds the field excursion, in units of the vacuum
	// separation, beyond which a trial counts as diverged.
	OverflowFactor float64
}

func DefaultConfig() Config {
	return Config{
		Nu:             2,
		RelTol:         1e-6,
		AbsTol:         1e-10,
		MaxIters:       200,
		RMaxScale:      1e4,
		OverflowFactor: 100,
	}
}

func (c Config) validate() error {
	if c.Nu < 1 {
		return field.ErrBadConfig
	}
	if c.RelTol <= 0 || c.AbsTol <= 0 {
		return field.ErrBadConfig
	}
	if c.MaxIters <= 0 || c.RMaxScale <= 0 || c.OverflowFactor <= 1 {
		return field.ErrBadConfig
	}
	return nil
}

// Solver finds the bounce profile for a 1-D effective potential by the
// overshoot/undershoot shooting method. xTrue is the field value the
// profile launches near (phi'(0) = 0) and xFalse the value it must
// asymptote to as r grows.
type Solver struct {
	veff   Veff
	xFalse float64
	xTrue  float64
	cfg    Config

	dphi   float64 // xFalse - xTrue
	sigma  float64 // travel direction sign
	rscale float64
	st     *stepper
}

func New(veff Veff, xFalse, xTrue float64, cfg Config) (*Solver, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if xFalse == xTrue {
		return nil, field.ErrBadConfig
	}
	s := &Solver{
		veff:   veff,
		xFalse: xFalse,
		xTrue:  xTrue,
		cfg:    cfg,
		dphi:   xFalse - xTrue,
		st:     newStepper(),
	}
	s.sigma = 1.0
	if s.dphi < 0 {
		s.sigma = -1.0
	}
	s.rscale = s.wallScale()
	return s, nil
}

// wallScale estimates the bounce wall thickness from the barrier height
// between the vacua, falling back to the vacuum energy split for
// barrierless (thick-wall) potentials.
func (s *Solver) wallScale() float64 {
	const samples = 100
	vFalse := s.veff.V(s.xFalse)
	vTop := math.Inf(-1)
	for i := 0; i <= samples; i++ {
		x := s.xTrue + float64(i)/samples*s.dphi
		if v := s.veff.V(x); v > vTop {
			vTop = v
		}
	}
	barrier := vTop - vFalse
	if dv := vFalse - s.veff.V(s.xTrue); dv > barrier {
		barrier = dv
	}
	if barrier <= 0 || math.IsInf(vTop, 0) {
		barrier = 1
	}
	return math.Abs(s.dphi) / math.Sqrt(6*barrier)
}

func (s *Solver) d2v(x float64) float64 {
	if c, ok := s.veff.(Curver); ok {
		return c.D2V(x)
	}
	h := 1e-4 * math.Abs(s.dphi)
	return (s.veff.DV(x+h) - s.veff.DV(x-h)) / (2 * h)
}

// launch maps a bracket parameter to the field value at r = 0.
func (s *Solver) launch(beta float64) float64 {
	return s.xTrue + math.Exp(-beta)*s.dphi
}

// seed evaluates the small-r series solution of the radial equation at r0,
// avoiding the singular nu/r friction term at the origin:
//
//	phi(r)  = x0 + a*r^2 + b*r^4
//	a = V'(x0)/(2(nu+1)),  b = a*V''(x0)/(4(nu+3))
func (s *Solver) seed(x0, r0 float64) state {
	nu := float64(s.cfg.Nu)
	a := s.veff.DV(x0) / (2 * (nu + 1))
	b := a * s.d2v(x0) / (4 * (nu + 3))
	return state{
		x0 + a*r0*r0 + b*r0*r0*r0*r0,
		2*a*r0 + 4*b*r0*r0*r0,
	}
}

// trial integrates a single shot launched at x0 and classifies it. With
// record set, the accepted integration points are returned for profile
// assembly, ending at the terminating event (or at the false-vacuum
// approach tolerance).
func (s *Solver) trial(x0 float64, record bool) (Event, []float64, []float64, []float64) {
	nu := float64(s.cfg.Nu)
	f := func(r float64, y state) state {
		return state{y[1], s.veff.DV(y[0]) - nu/r*y[1]}
	}

	r := 1e-2 * s.rscale
	y := s.seed(x0, r)
	dr := r
	drMin := 1e-14 * s.rscale
	rMax := s.cfg.RMaxScale * s.rscale
	ftol := math.Max(s.cfg.AbsTol, s.cfg.RelTol*math.Abs(s.dphi))
	overflow := s.cfg.OverflowFactor * math.Abs(s.dphi)

	var rs, phis, dphis []float64
	if record {
		rs = append(rs, 0, r)
		phis = append(phis, x0, y[0])
		dphis = append(dphis, 0, y[1])
	}

	for {
		yNew, drUsed, drNext, err := s.st.advance(f, r, y, dr, s.cfg.RelTol, s.cfg.AbsTol, drMin)
		if err != nil {
			return EventOverflow, rs, phis, dphis
		}
		r += drUsed
		y = yNew
		dr = drNext

		if record {
			rs = append(rs, r)
			phis = append(phis, y[0])
			dphis = append(dphis, y[1])
		}

		switch {
		case math.Abs(y[0]-s.xTrue) > overflow || math.Abs(y[1])*s.rscale > overflow:
			return EventOverflow, rs, phis, dphis
		case (y[0]-s.xFalse)*s.sigma > 0:
			return EventOvershoot, rs, phis, dphis
		case record && math.Abs(y[0]-s.xFalse) <= ftol && math.Abs(y[1])*s.rscale <= ftol:
			// Close enough to the false vacuum on the final pass.
			return EventUndershoot, rs, phis, dphis
		case y[1]*s.sigma < 0:
			return EventUndershoot, rs, phis, dphis
		case r > rMax:
			return EventOvershoot, rs, phis, dphis
		}
	}
}

// FindProfile runs the shooting iteration. On bracket failure it returns a
// nil profile and an error wrapping field.ErrBracketing. On budget
// exhaustion it returns the best profile found together with an error
// wrapping field.ErrNonconvergence; callers may treat that as a warning.
func (s *Solver) FindProfile(ctx context.Context) (*Profile, error) {
	iters := 0
	shot := func(beta float64) Event {
		iters++
		ev, _, _, _ := s.trial(s.launch(beta), false)
		return ev
	}

	br, err := s.establish(ctx, shot, &iters)
	if err != nil {
		return nil, err
	}

	tolW := s.cfg.RelTol + s.cfg.AbsTol/math.Abs(s.dphi)
	for br.Width() > tolW && iters < s.cfg.MaxIters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		beta := br.Mid()
		next := Update(br, beta, shot(beta))
		br = next
	}

	prof, ev := s.assemble(br)
	if err := s.vetProfile(prof, ev, iters); err != nil {
		return nil, err
	}

	if br.Width() > tolW {
		prof.Status = StatusMaxIterations
		prof.Iters = iters
		return prof, &field.SolveError{Iter: iters, Wrapped: field.ErrNonconvergence}
	}
	prof.Status = StatusConverged
	prof.Iters = iters
	return prof, nil
}

// establish scans for the initial [under, over] bracket: geometric walk in
// beta from 1 until one trial of each classification is in hand.
func (s *Solver) establish(ctx context.Context, shot func(float64) Event, iters *int) (Bracket, error) {
	const maxScan = 60

	if err := ctx.Err(); err != nil {
		return Bracket{}, err
	}
	beta := 1.0
	ev := shot(beta)

	if ev == EventUndershoot {
		under := beta
		for i := 0; i < maxScan && *iters < s.cfg.MaxIters; i++ {
			beta *= 2
			if shot(beta) != EventUndershoot {
				return Bracket{Under: under, Over: beta}, nil
			}
			under = beta
		}
		return Bracket{}, &field.SolveError{Iter: *iters, Wrapped: field.ErrBracketing}
	}

	over := beta
	for i := 0; i < maxScan && *iters < s.cfg.MaxIters; i++ {
		beta /= 2
		if shot(beta) == EventUndershoot {
			return Bracket{Under: beta, Over: over}, nil
		}
		over = beta
	}
	return Bracket{}, &field.SolveError{Iter: *iters, Wrapped: field.ErrBracketing}
}

// assemble integrates one final recorded pass at the bracket midpoint.
func (s *Solver) assemble(br Bracket) (*Profile, Event) {
	x0 := s.launch(br.Mid())
	ev, rs, phis, dphis := s.trial(x0, true)
	return &Profile{
		R:            rs,
		Phi:          phis,
		DPhi:         dphis,
		X0:           x0,
		BracketWidth: br.Width(),
	}, ev
}

// vetProfile rejects an assembled profile that cannot stand as a bounce
// estimate. Overflow on the terminal pass means the equation blew up even at
// the bracketed launch point. Separately, a bracket can close spuriously when
// no finite bounce exists (for example degenerate vacua, where every
// resolvable trial undershoots and only the stuck launch at the true vacuum
// reads as overshoot); a genuine profile must actually approach the false
// vacuum.
func (s *Solver) vetProfile(prof *Profile, ev Event, iters int) error {
	if ev == EventOverflow {
		var lastR float64
		if n := len(prof.R); n > 0 {
			lastR = prof.R[n-1]
		}
		return &field.SolveError{Iter: iters, R: lastR, Wrapped: field.ErrOverflow}
	}
	closest := math.Inf(1)
	for _, p := range prof.Phi {
		if d := math.Abs(p - s.xFalse); d < closest {
			closest = d
		}
	}
	if closest > 0.1*math.Abs(s.dphi) {
		return &field.SolveError{Iter: iters, Wrapped: field.ErrBracketing}
	}
	return nil
}

// Rscale exposes the wall-thickness estimate; the path deformer uses it to
// size finite-difference steps consistently with the profile.
func (s *Solver) Rscale() float64 { return s.rscale }
