package field

import (
	"errors"
	"fmt"
)

// Domain errors for tunneling solves.
var (
	// ErrBracketing indicates no overshoot/undershoot bracket could be
	// established for a shooting call. Fatal for that call.
	ErrBracketing = errors.New("bounce: cannot establish overshoot/undershoot bracket")

	// ErrNonconvergence indicates the shooting bracket did not narrow below
	// tolerance within the iteration budget. Recoverable; the last best
	// profile accompanies it.
	ErrNonconvergence = errors.New("bounce: shooting bracket did not converge within budget")

	// ErrDeformStalled indicates the outer deformation loop exhausted its
	// iteration budget before the force residual met tolerance.
	ErrDeformStalled = errors.New("bounce: path deformation exhausted iteration budget")

	// ErrOverflow indicates a field value or action diverged (NaN or Inf).
	ErrOverflow = errors.New("bounce: numerical overflow (field value diverged)")

	// ErrBadConfig indicates an invalid configuration value.
	ErrBadConfig = errors.New("bounce: invalid configuration")

	// ErrDimensionMismatch indicates mismatched point/potential dimensions.
	ErrDimensionMismatch = errors.New("bounce: dimension mismatch between point and potential")

	// ErrDegeneratePath indicates coincident or out-of-order path knots.
	ErrDegeneratePath = errors.New("bounce: degenerate path (arclength not strictly increasing)")
)

// SolveError wraps a domain error with solver context.
type SolveError struct {
	Iter    int
	R       float64
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("iter %d (r=%.4g): %v", e.Iter, e.R, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
