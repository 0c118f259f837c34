package bounce

import (
	"context"

	"github.com/san-kum/bounce/action"
	"github.com/san-kum/bounce/config"
	"github.com/san-kum/bounce/deform"
	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/geom"
	"github.com/san-kum/bounce/shoot"
)

// Result is the outcome of a full tunneling solve.
type Result struct {
	// Path is the converged (or best-so-far) tunneling path.
	Path *geom.Path
	// Profile is the radial bounce profile along that path.
	Profile *shoot.Profile
	// Action is the Euclidean action split; Action.Total sets the
	// tunneling exponent.
	Action action.Action
	// Status never reads Converged unless the force residual actually met
	// tolerance.
	Status   deform.Status
	Residual float64
	Iters    int
	Trace    []deform.IterRecord
	Message  string
}

// S is the total Euclidean action.
func (r *Result) S() float64 { return r.Action.Total }

// Solve computes the bounce between two given vacua, starting from a
// straight-line path. falseVac is the metastable vacuum tunneled from,
// trueVac the deeper vacuum tunneled to. A nil cfg selects defaults. For
// single-field potentials the path cannot deform and the call reduces to
// the direct radial solve.
func Solve(ctx context.Context, pot field.Potential, falseVac, trueVac field.Point, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(falseVac) != pot.Dim() || len(trueVac) != pot.Dim() {
		return nil, field.ErrDimensionMismatch
	}

	knots := cfg.Knots
	if pot.Dim() == 1 {
		knots = 2
	}
	path, err := geom.StraightPath(falseVac, trueVac, knots)
	if err != nil {
		return nil, err
	}
	return solvePath(ctx, field.AsGrad(pot, cfg.FDStep), path, cfg)
}

// SolveAlong is Solve with a user-supplied initial knot sequence, first
// knot at the false vacuum and last at the true vacuum.
func SolveAlong(ctx context.Context, pot field.Potential, knots []field.Point, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path, err := geom.NewPath(knots)
	if err != nil {
		return nil, err
	}
	return solvePath(ctx, field.AsGrad(pot, cfg.FDStep), path, cfg)
}

func solvePath(ctx context.Context, pot field.GradPotential, path *geom.Path, cfg *config.Config) (*Result, error) {
	d, err := deform.New(pot, path, cfg.DeformConfig())
	if err != nil {
		return nil, err
	}
	res, err := d.Run(ctx)
	if res == nil {
		return nil, err
	}
	return &Result{
		Path:     res.Path,
		Profile:  res.Profile,
		Action:   res.Action,
		Status:   res.Status,
		Residual: res.Residual,
		Iters:    res.Iters,
		Trace:    res.Trace,
		Message:  res.Message,
	}, err
}

// veff1D adapts a single-field potential to the shooting solver's
// effective-potential contract.
type veff1D struct {
	pot field.GradPotential
}

func (v veff1D) V(x float64) float64  { return v.pot.V(field.Point{x}) }
func (v veff1D) DV(x float64) float64 { return v.pot.Grad(field.Point{x})[0] }

// SolveRadial runs the radial shooting solver directly on a single-field
// potential, bypassing the path machinery entirely. Solve on a 1-D
// potential must agree with this within tolerance.
func SolveRadial(ctx context.Context, pot field.Potential, falseVac, trueVac float64, cfg *config.Config) (*shoot.Profile, action.Action, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, action.Action{}, err
	}
	if pot.Dim() != 1 {
		return nil, action.Action{}, field.ErrDimensionMismatch
	}

	veff := veff1D{pot: field.AsGrad(pot, cfg.FDStep)}
	solver, err := shoot.New(veff, falseVac, trueVac, cfg.ShootConfig())
	if err != nil {
		return nil, action.Action{}, err
	}
	prof, serr := solver.FindProfile(ctx)
	if prof == nil {
		return nil, action.Action{}, serr
	}
	act, aerr := action.Evaluate(prof, veff, cfg.Dimension, falseVac)
	if aerr != nil {
		return prof, act, aerr
	}
	return prof, act, serr
}
