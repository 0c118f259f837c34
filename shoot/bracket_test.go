package shoot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate_Shrinks(t *testing.T) {
	br := Bracket{Under: 1, Over: 8}

	cases := []struct {
		beta float64
		ev   Event
		want Bracket
	}{
		{4.5, EventUndershoot, Bracket{Under: 4.5, Over: 8}},
		{4.5, EventOvershoot, Bracket{Under: 1, Over: 4.5}},
		{4.5, EventOverflow, Bracket{Under: 1, Over: 4.5}},
	}
	for _, c := range cases {
		got := Update(br, c.beta, c.ev)
		assert.Equal(t, c.want, got, "event %v", c.ev)
		assert.LessOrEqual(t, got.Width(), br.Width(), "bracket must never widen")
	}
}

func TestUpdate_IgnoresOutOfBracketTrials(t *testing.T) {
	br := Bracket{Under: 2, Over: 4}

	// An undershoot below Under or an overshoot above Over carries no new
	// information and must not widen the bracket.
	assert.Equal(t, br, Update(br, 1, EventUndershoot))
	assert.Equal(t, br, Update(br, 5, EventOvershoot))
}

func TestBracket_BisectionConverges(t *testing.T) {
	// Classify against a hidden threshold and check monotone shrink down
	// to a tight bracket, the way the solver drives it.
	const target = 2.7182818
	br := Bracket{Under: 1, Over: 16}

	for i := 0; i < 200 && br.Width() > 1e-12; i++ {
		beta := br.Mid()
		ev := EventUndershoot
		if beta >= target {
			ev = EventOvershoot
		}
		next := Update(br, beta, ev)
		assert.Less(t, next.Width(), br.Width(), "iteration %d", i)
		br = next
	}

	assert.LessOrEqual(t, br.Under, target)
	assert.GreaterOrEqual(t, br.Over, target)
	assert.Less(t, br.Width(), 1e-12)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "undershoot", EventUndershoot.String())
	assert.Equal(t, "overshoot", EventOvershoot.String())
	assert.Equal(t, "overflow", EventOverflow.String())
}
