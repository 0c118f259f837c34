package bounce_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bounce"
	"github.com/san-kum/bounce/config"
	"github.com/san-kum/bounce/deform"
	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/shoot"
)

func TestSolve_SingleFieldMatchesRadial(t *testing.T) {
	q := field.NewQuarticDoubleWell(0.5)
	fv, tv := q.FalseVacuum(), q.TrueVacuum()

	res, err := bounce.Solve(context.Background(), q, fv, tv, nil)
	require.NoError(t, err)
	require.Equal(t, deform.StatusConverged, res.Status)
	require.Greater(t, res.S(), 0.0)

	prof, act, err := bounce.SolveRadial(context.Background(), q, fv[0], tv[0], nil)
	require.NoError(t, err)
	require.NotNil(t, prof)

	// A 1-D path cannot deform, so the full solve reduces to the direct
	// radial one up to the arclength change of variables.
	assert.InDelta(t, act.Total, res.S(), 0.01*math.Abs(act.Total))
}

func TestSolve_StarvedShootingBudget(t *testing.T) {
	// A shooting budget too small for its tolerance leaves the profile a
	// best estimate; the top-level status has to say so even when the path
	// residual passes.
	q := field.NewQuarticDoubleWell(0.5)
	cfg := config.DefaultConfig()
	cfg.MaxShootIters = 8
	cfg.ShootRelTol = 1e-12

	res, err := bounce.Solve(context.Background(), q, q.FalseVacuum(), q.TrueVacuum(), cfg)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.Profile)

	assert.Equal(t, shoot.StatusMaxIterations, res.Profile.Status)
	assert.Equal(t, deform.StatusMaxIterationsReached, res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestSolveRadial_ThinWallEstimate(t *testing.T) {
	// For a weakly tilted double well the bounce is a thin wall and
	//   S ~ 4*sigma^3/(3*eps^2), nu = 2,
	// with sigma the flat-well wall tension and eps the vacuum split.
	q := field.NewQuarticDoubleWell(0.5)
	fv, tv := q.FalseVacuum(), q.TrueVacuum()
	eps := q.V(fv) - q.V(tv)
	require.Greater(t, eps, 0.0)

	cfg := config.DefaultConfig()
	cfg.ShootRelTol = 1e-8
	_, act, err := bounce.SolveRadial(context.Background(), q, fv[0], tv[0], cfg)
	require.NoError(t, err)

	sigma := q.WallTension()
	want := 4 * sigma * sigma * sigma / (3 * eps * eps)
	ratio := act.Total / want
	assert.Greater(t, ratio, 0.5, "S=%g, thin-wall estimate %g", act.Total, want)
	assert.Less(t, ratio, 1.5, "S=%g, thin-wall estimate %g", act.Total, want)
}

func TestSolve_HiggsPreset(t *testing.T) {
	h := field.NewHiggsLike()
	meta, _, stable, ok := h.Minima()
	require.True(t, ok)

	res, err := bounce.Solve(context.Background(), h, meta, stable, config.GetPreset("higgs-tutorial"))
	require.NoError(t, err)
	assert.Equal(t, deform.StatusConverged, res.Status)
	assert.Greater(t, res.S(), 0.0)
	assert.NotNil(t, res.Profile)
}

func TestSolveAlong_BentPath(t *testing.T) {
	pot := field.NewCoupledQuartic(0.4)
	knots := []field.Point{
		{0, 0}, {0.2, 0.3}, {0.45, 0.6}, {0.7, 0.85}, {1, 1},
	}

	res, err := bounce.SolveAlong(context.Background(), pot, knots, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotEqual(t, deform.StatusFailed, res.Status)

	// The vacua never move.
	assert.Equal(t, field.Point{0, 0}, res.Path.Knot(0).Clone())
	assert.Equal(t, field.Point{1, 1}, res.Path.Knot(res.Path.Len()-1).Clone())
}

func TestSolve_Validation(t *testing.T) {
	q := field.NewQuarticDoubleWell(0.5)

	// Vacuum dimension must match the potential.
	_, err := bounce.Solve(context.Background(), q, field.Point{0, 0}, field.Point{1, 1}, nil)
	assert.ErrorIs(t, err, field.ErrDimensionMismatch)

	bad := config.DefaultConfig()
	bad.Knots = 1
	_, err = bounce.Solve(context.Background(), q, q.FalseVacuum(), q.TrueVacuum(), bad)
	assert.ErrorIs(t, err, field.ErrBadConfig)

	// SolveRadial is single-field only.
	c := field.NewCoupledQuartic(0.4)
	_, _, err = bounce.SolveRadial(context.Background(), c, 0, 1, nil)
	assert.ErrorIs(t, err, field.ErrDimensionMismatch)
}

func TestSolve_Canceled(t *testing.T) {
	q := field.NewQuarticDoubleWell(0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bounce.Solve(ctx, q, q.FalseVacuum(), q.TrueVacuum(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkSolveRadial(b *testing.B) {
	q := field.NewQuarticDoubleWell(0.5)
	fv, tv := q.FalseVacuum(), q.TrueVacuum()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := bounce.SolveRadial(ctx, q, fv[0], tv[0], nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveCoupled(b *testing.B) {
	pot := field.NewCoupledQuartic(0.4)
	cfg := config.GetPreset("coarse")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bounce.Solve(ctx, pot, pot.FalseVacuum(), pot.TrueVacuum(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
