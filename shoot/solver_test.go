package shoot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/shoot"
)

// pot1d adapts a single-field potential to the effective-potential
// contract.
type pot1d struct {
	p field.GradPotential
}

func (v pot1d) V(x float64) float64  { return v.p.V(field.Point{x}) }
func (v pot1d) DV(x float64) float64 { return v.p.Grad(field.Point{x})[0] }

func TestFindProfile_HiggsTutorial(t *testing.T) {
	h := field.NewHiggsLike()
	meta, barrier, stable, ok := h.Minima()
	require.True(t, ok)

	s, err := shoot.New(pot1d{h}, meta[0], stable[0], shoot.DefaultConfig())
	require.NoError(t, err)

	prof, err := s.FindProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, shoot.StatusConverged, prof.Status)

	// Launch point sits between the barrier top and the stable vacuum.
	assert.Greater(t, prof.X0, barrier[0])
	assert.LessOrEqual(t, prof.X0, stable[0])

	// phi'(0) = 0 and phi(0) = x0.
	require.NotEmpty(t, prof.R)
	assert.Equal(t, 0.0, prof.R[0])
	assert.Equal(t, prof.X0, prof.Phi[0])
	assert.Equal(t, 0.0, prof.DPhi[0])

	// Radial grid strictly increasing; field interpolates monotonically
	// toward the metastable vacuum (tiny slack for the terminal step).
	slack := 1e-3 * stable[0]
	for i := 1; i < prof.Samples(); i++ {
		assert.Greater(t, prof.R[i], prof.R[i-1])
		assert.LessOrEqual(t, prof.Phi[i], prof.Phi[i-1]+slack)
	}
	last := prof.Phi[prof.Samples()-1]
	assert.InDelta(t, meta[0], last, 0.1*stable[0], "profile must approach the false vacuum")

	assert.Greater(t, prof.Iters, 0)
	assert.LessOrEqual(t, prof.Iters, shoot.DefaultConfig().MaxIters)
	assert.LessOrEqual(t, prof.BracketWidth, shoot.DefaultConfig().RelTol+shoot.DefaultConfig().AbsTol)
}

func TestFindProfile_SwappedVacuaFailsToBracket(t *testing.T) {
	// Tunneling "uphill" (launching at the deeper vacuum, asymptote at the
	// shallower one) has no bounce: every trial overshoots.
	q := field.NewQuarticDoubleWell(0.5)
	fv, tv := q.FalseVacuum(), q.TrueVacuum()

	s, err := shoot.New(pot1d{q}, tv[0], fv[0], shoot.DefaultConfig())
	require.NoError(t, err)

	prof, err := s.FindProfile(context.Background())
	assert.Nil(t, prof)
	assert.ErrorIs(t, err, field.ErrBracketing)
}

func TestFindProfile_BudgetExhaustion(t *testing.T) {
	h := field.NewHiggsLike()
	meta, _, stable, _ := h.Minima()

	cfg := shoot.DefaultConfig()
	cfg.MaxIters = 8
	cfg.RelTol = 1e-9
	s, err := shoot.New(pot1d{h}, meta[0], stable[0], cfg)
	require.NoError(t, err)

	prof, err := s.FindProfile(context.Background())
	assert.ErrorIs(t, err, field.ErrNonconvergence)
	require.NotNil(t, prof, "budget exhaustion must still hand back the best estimate")
	assert.Equal(t, shoot.StatusMaxIterations, prof.Status)
}

func TestFindProfile_Canceled(t *testing.T) {
	h := field.NewHiggsLike()
	meta, _, stable, _ := h.Minima()

	s, err := shoot.New(pot1d{h}, meta[0], stable[0], shoot.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.FindProfile(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	h := field.NewHiggsLike()

	_, err := shoot.New(pot1d{h}, 1, 1, shoot.DefaultConfig())
	assert.ErrorIs(t, err, field.ErrBadConfig)

	bad := shoot.DefaultConfig()
	bad.RelTol = 0
	_, err = shoot.New(pot1d{h}, 0, 1, bad)
	assert.ErrorIs(t, err, field.ErrBadConfig)

	bad = shoot.DefaultConfig()
	bad.Nu = 0
	_, err = shoot.New(pot1d{h}, 0, 1, bad)
	assert.ErrorIs(t, err, field.ErrBadConfig)
}

func TestProfile_DPhiAtField(t *testing.T) {
	// Descending field values, as the solver produces them.
	prof := &shoot.Profile{
		R:    []float64{0, 1, 2, 3},
		Phi:  []float64{1.0, 0.8, 0.4, 0.0},
		DPhi: []float64{0, -0.2, -0.4, -0.1},
	}

	assert.Equal(t, 0.0, prof.DPhiAtField(1.0))
	assert.InDelta(t, -0.3, prof.DPhiAtField(0.6), 1e-12)
	assert.InDelta(t, -0.1, prof.DPhiAtField(0.0), 1e-12)
	// Outside the sampled range the wall weighting vanishes.
	assert.Equal(t, 0.0, prof.DPhiAtField(1.5))
	assert.Equal(t, 0.0, prof.DPhiAtField(-0.5))
}
