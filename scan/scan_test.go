package scan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/scan"
)

func TestRun_TiltSweep(t *testing.T) {
	shallow := field.NewQuarticDoubleWell(0.4)
	steep := field.NewQuarticDoubleWell(0.8)

	scenarios := []scan.Scenario{
		{Name: "tilt-0.4", Pot: shallow, FalseVac: shallow.FalseVacuum(), TrueVac: shallow.TrueVacuum()},
		{Name: "tilt-0.8", Pot: steep, FalseVac: steep.FalseVacuum(), TrueVac: steep.TrueVacuum()},
	}

	outcomes := scan.Run(context.Background(), scenarios)
	require.Len(t, outcomes, 2)

	// Outcomes come back in input order regardless of completion order.
	assert.Equal(t, "tilt-0.4", outcomes[0].Name)
	assert.Equal(t, "tilt-0.8", outcomes[1].Name)

	for _, o := range outcomes {
		require.NoError(t, o.Err, o.Name)
		require.NotNil(t, o.Result, o.Name)
		assert.Greater(t, o.Result.S(), 0.0, o.Name)
	}

	// A smaller vacuum energy split means a larger tunneling action.
	assert.Greater(t, outcomes[0].Result.S(), outcomes[1].Result.S())
}

func TestRun_MixedOutcomes(t *testing.T) {
	q := field.NewQuarticDoubleWell(0.5)

	scenarios := []scan.Scenario{
		{Name: "good", Pot: q, FalseVac: q.FalseVacuum(), TrueVac: q.TrueVacuum()},
		// Swapped vacua: tunneling out of the global minimum never brackets.
		{Name: "swapped", Pot: q, FalseVac: q.TrueVacuum(), TrueVac: q.FalseVacuum()},
	}

	outcomes := scan.Run(context.Background(), scenarios)
	require.Len(t, outcomes, 2)

	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, field.ErrBracketing)
}

func TestRun_Empty(t *testing.T) {
	outcomes := scan.Run(context.Background(), nil)
	assert.Empty(t, outcomes)
}
