// Package deform relaxes a multi-field tunneling path until the transverse
// force along it vanishes, coupling a spline path geometry to the radial
// shooting solver in a fixed-point iteration.
package deform

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/bounce/action"
	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/geom"
	"github.com/san-kum/bounce/shoot"
)

// State labels a phase of the relaxation loop.
type State int

const (
	StateInitializing State = iota
	StateProfileSolving
	StateForceEvaluating
	StateDeforming
	StateConverged
	StateFailed
	StateMaxIterations
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateProfileSolving:
		return "profile-solving"
	case StateForceEvaluating:
		return "force-evaluating"
	case StateDeforming:
		return "deforming"
	case StateConverged:
		return "converged"
	case StateFailed:
		return "failed"
	case StateMaxIterations:
		return "max-iterations-reached"
	default:
		return "unknown"
	}
}

// Status is the outcome reported to the collaborator.
type Status int

const (
	StatusConverged Status = iota
	StatusMaxIterationsReached
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterationsReached:
		return "max-iterations-reached"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config collects the outer-loop tolerances and budgets. The inner shooting
// solver carries its own independent settings so multiple solves can run
// with different budgets side by side.
type Config struct {
	// Tol is the convergence threshold on the maximum normal-force
	// residual, relative to the largest potential gradient along the path.
	Tol float64
	// MaxIters caps the outer deformation iterations.
	MaxIters int
	// StepScale is the initial knot displacement in units of the mean
	// knot spacing; the controller moves it between MinStep and MaxStep.
	StepScale float64
	MinStep   float64
	MaxStep   float64
	// ActionTol is the fractional action increase tolerated before the
	// controller backtracks a deformation step.
	ActionTol float64
	// ReparamRatio triggers arclength re-parameterization when the
	// max/min knot spacing exceeds it.
	ReparamRatio float64

	Shoot shoot.Config
}

func DefaultConfig() Config {
	return Config{
		Tol:          0.02,
		MaxIters:     200,
		StepScale:    0.1,
		MinStep:      1e-6,
		MaxStep:      1.0,
		ActionTol:    1e-2,
		ReparamRatio: 4.0,
		Shoot:        shoot.DefaultConfig(),
	}
}

func (c Config) validate() error {
	if c.Tol <= 0 || c.MaxIters <= 0 {
		return field.ErrBadConfig
	}
	if c.StepScale <= 0 || c.MinStep <= 0 || c.MaxStep < c.MinStep {
		return field.ErrBadConfig
	}
	if c.ActionTol < 0 || c.ReparamRatio < 1 {
		return field.ErrBadConfig
	}
	return nil
}

// IterRecord is one outer iteration's diagnostics.
type IterRecord struct {
	Iter     int
	S        float64
	Residual float64
	Step     float64
	// Accepted is false when the controller backtracked the move.
	Accepted bool
}

// Result is the relaxation outcome. On MaxIterationsReached it holds the
// best (lowest-action) path seen, never a silently stale one.
type Result struct {
	Path       *geom.Path
	Profile    *shoot.Profile
	Action     action.Action
	Status     Status
	FinalState State
	Iters      int
	Residual   float64
	Trace      []IterRecord
	Message    string
}

// S is the total Euclidean action.
func (r *Result) S() float64 { return r.Action.Total }

// Deformer runs the outer relaxation. It owns its working path exclusively;
// everything handed to the inner solver or recorded in results is a
// snapshot.
type Deformer struct {
	pot     field.GradPotential
	initial *geom.Path
	cfg     Config
}

func New(pot field.GradPotential, initial *geom.Path, cfg Config) (*Deformer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if initial.Dim() != pot.Dim() {
		return nil, field.ErrDimensionMismatch
	}
	return &Deformer{pot: pot, initial: initial, cfg: cfg}, nil
}

// Run iterates profile solving, force evaluation and knot deformation
// until the residual meets tolerance, the budget runs out, or the inner
// solver fails twice in a row to bracket a profile.
func (d *Deformer) Run(ctx context.Context) (*Result, error) {
	path := d.initial.Clone()
	step := d.cfg.StepScale
	prevS := math.Inf(1)
	var prevPath *geom.Path
	var best *Result
	bracketFails := 0

	var trace []IterRecord
	st := StateInitializing

	fail := func(msg string, err error) (*Result, error) {
		res := best
		if res == nil {
			res = &Result{Path: path}
		}
		res.Status = StatusFailed
		res.FinalState = StateFailed
		res.Trace = trace
		res.Iters = len(trace)
		res.Message = msg + " (" + st.String() + ")"
		return res, err
	}

	for iter := 0; iter < d.cfg.MaxIters; iter++ {
		if err := ctx.Err(); err != nil {
			return fail("canceled", err)
		}

		g, err := geom.NewGeometry(path)
		if err != nil {
			return fail("path degenerated during deformation", err)
		}
		if g.SegmentRatio() > d.cfg.ReparamRatio {
			if rp, rerr := g.Resample(path.Len()); rerr == nil {
				path = rp
				if g, err = geom.NewGeometry(path); err != nil {
					return fail("re-parameterization degenerated the path", err)
				}
			}
		}

		st = StateProfileSolving
		veff := &geom.LineVeff{G: g, Pot: d.pot}
		solver, err := shoot.New(veff, 0, g.TotalLength(), d.cfg.Shoot)
		if err != nil {
			return fail("invalid shooting setup", err)
		}
		prof, serr := solver.FindProfile(ctx)
		if serr != nil {
			switch {
			case errors.Is(serr, field.ErrBracketing):
				bracketFails++
				if bracketFails >= 2 {
					return fail("no usable profile at this path", serr)
				}
				// One retry on a freshly re-parameterized path.
				if rp, rerr := g.Resample(path.Len()); rerr == nil {
					path = rp
				}
				continue
			case errors.Is(serr, field.ErrNonconvergence):
				// Recoverable: prof holds the last best estimate.
			case errors.Is(serr, context.Canceled) || errors.Is(serr, context.DeadlineExceeded):
				return fail("canceled", serr)
			default:
				return fail("profile solve failed", serr)
			}
		}
		bracketFails = 0

		st = StateForceEvaluating
		act, aerr := action.Evaluate(prof, veff, d.cfg.Shoot.Nu, 0)
		if aerr != nil {
			return fail("action diverged", aerr)
		}
		w := func(s float64) float64 {
			dp := prof.DPhiAtField(s)
			return dp * dp
		}
		forces := geom.NormalForce(g, d.pot, w)
		resid := geom.MaxNorm(forces) / d.gradScale(g)

		if best == nil || act.Total <= best.Action.Total {
			best = &Result{
				Path:     path.Clone(),
				Profile:  prof,
				Action:   act,
				Residual: resid,
			}
		}

		if resid < d.cfg.Tol {
			trace = append(trace, IterRecord{Iter: iter, S: act.Total, Residual: resid, Step: step, Accepted: true})
			res := &Result{
				Path:       path.Clone(),
				Profile:    prof,
				Action:     act,
				Status:     StatusConverged,
				FinalState: StateConverged,
				Iters:      iter + 1,
				Residual:   resid,
				Trace:      trace,
			}
			// A passing force residual cannot upgrade a radial profile
			// whose bracket never met tolerance.
			if prof.Status != shoot.StatusConverged {
				res.Status = StatusMaxIterationsReached
				res.FinalState = StateMaxIterations
				res.Message = field.ErrNonconvergence.Error()
			}
			return res, nil
		}

		st = StateDeforming
		if act.Total > prevS*(1+d.cfg.ActionTol) && prevPath != nil && step > d.cfg.MinStep {
			// The last move raised the action: shrink the step and retry
			// from the previous knots.
			step = math.Max(step*0.5, d.cfg.MinStep)
			trace = append(trace, IterRecord{Iter: iter, S: act.Total, Residual: resid, Step: step, Accepted: false})
			path = prevPath
			prevPath = nil
			continue
		}
		trace = append(trace, IterRecord{Iter: iter, S: act.Total, Residual: resid, Step: step, Accepted: true})

		prevS = act.Total
		prevPath = path.Clone()
		path = moveKnots(g, path, forces, step)
		step = math.Min(step*1.15, d.cfg.MaxStep)
	}

	if best == nil {
		return fail("no usable profile within budget", field.ErrDeformStalled)
	}
	best.Status = StatusMaxIterationsReached
	best.FinalState = StateMaxIterations
	best.Iters = d.cfg.MaxIters
	best.Trace = trace
	best.Message = field.ErrDeformStalled.Error()
	return best, nil
}

// gradScale is the residual normalization: the largest potential gradient
// magnitude sampled at the knots.
func (d *Deformer) gradScale(g *geom.Geometry) float64 {
	max := 0.0
	for i := 0; i < g.Knots(); i++ {
		if n := d.pot.Grad(g.PositionAt(g.ArcAt(i))).Norm(); n > max {
			max = n
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}

// moveKnots displaces each interior knot along its normal-force direction,
// the largest residual moving by step times the mean knot spacing.
// Endpoints stay pinned to the vacua.
func moveKnots(g *geom.Geometry, path *geom.Path, forces []field.Point, step float64) *geom.Path {
	maxF := geom.MaxNorm(forces)
	if maxF <= 0 {
		return path
	}
	h := g.TotalLength() / float64(path.Len()-1)
	scale := step * h / maxF

	next := path.Clone()
	for i := 1; i < path.Len()-1; i++ {
		next.SetKnot(i, path.Knot(i).Add(forces[i].Scale(scale)))
	}
	return next
}
