package shoot

import "math"

// Event classifies the outcome of a single shooting trial.
type Event int

const (
	// EventUndershoot: the field turned around before reaching the false
	// vacuum. The launch point needs more energy (closer to the true
	// vacuum).
	EventUndershoot Event = iota
	// EventOvershoot: the field crossed past the false vacuum, or ran out
	// of the radial guard while still in flight.
	EventOvershoot
	// EventOverflow: the trial diverged numerically. Treated as overshoot
	// for bracketing purposes.
	EventOverflow
)

func (e Event) String() string {
	switch e {
	case EventUndershoot:
		return "undershoot"
	case EventOvershoot:
		return "overshoot"
	case EventOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Bracket bounds the launch parameter beta, where the launch field value is
//
//	x0(beta) = xTrue + exp(-beta) * (xFalse - xTrue)
//
// Larger beta starts closer to the true vacuum and carries more energy, so
// Under (a known undershoot) is always below Over (a known overshoot).
// The exponential parameterization keeps thin-wall solutions, whose x0 sits
// exponentially close to the true vacuum, resolvable.
type Bracket struct {
	Under, Over float64
}

// Width is the bracket extent in field space, as a fraction of the vacuum
// separation.
func (b Bracket) Width() float64 {
	return math.Exp(-b.Under) - math.Exp(-b.Over)
}

// Mid is the next trial parameter: plain bisection in beta.
func (b Bracket) Mid() float64 {
	return 0.5 * (b.Under + b.Over)
}

// Update returns the bracket shrunk by observing event ev at trial beta.
// Overflow counts as overshoot. The result is never wider than b; callers
// rely on that invariant to guarantee termination.
func Update(b Bracket, beta float64, ev Event) Bracket {
	if ev == EventUndershoot {
		if beta > b.Under {
			b.Under = beta
		}
	} else {
		if beta < b.Over {
			b.Over = beta
		}
	}
	return b
}
