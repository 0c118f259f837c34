package shoot

import (
	"math"

	"github.com/san-kum/bounce/field"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// state is the radial integration state (phi, dphi/dr).
type state [2]float64

func (y state) isValid() bool {
	return !math.IsNaN(y[0]) && !math.IsInf(y[0], 0) &&
		!math.IsNaN(y[1]) && !math.IsInf(y[1], 0)
}

// deriv evaluates the right-hand side of the radial field equation at r.
type deriv func(r float64, y state) state

type stepper struct {
	safety   float64
	minScale float64
	maxScale float64
}

func newStepper() *stepper {
	return &stepper{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// attempt takes a single trial step of size dr and returns the new state
// together with the max scaled error estimate.
func (st *stepper) attempt(f deriv, r float64, y state, dr, relTol, absTol float64) (state, float64) {
	k1 := f(r, y)

	var y2 state
	for i := range y {
		y2[i] = y[i] + dr*b21*k1[i]
	}
	k2 := f(r+a2*dr, y2)

	var y3 state
	for i := range y {
		y3[i] = y[i] + dr*(b31*k1[i]+b32*k2[i])
	}
	k3 := f(r+a3*dr, y3)

	var y4 state
	for i := range y {
		y4[i] = y[i] + dr*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := f(r+a4*dr, y4)

	var y5 state
	for i := range y {
		y5[i] = y[i] + dr*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := f(r+a5*dr, y5)

	var y6 state
	for i := range y {
		y6[i] = y[i] + dr*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := f(r+dr, y6)

	var yNew state
	for i := range y {
		yNew[i] = y[i] + dr*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := f(r+dr, yNew)

	errRatio := 0.0
	for i := range y {
		errEst := dr * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := absTol + relTol*(math.Abs(y[i])+math.Abs(dr*k1[i]))
		errRatio = math.Max(errRatio, math.Abs(errEst)/scale)
	}

	return yNew, errRatio
}

// advance takes one accepted step, shrinking dr until the embedded error
// estimate passes. Returns the accepted state, the step actually used and
// the proposed next step. Fails with ErrOverflow when dr underflows drMin
// or the state stops being finite.
func (st *stepper) advance(f deriv, r float64, y state, dr, relTol, absTol, drMin float64) (state, float64, float64, error) {
	for {
		yNew, errRatio := st.attempt(f, r, y, dr, relTol, absTol)

		if !yNew.isValid() {
			return y, 0, 0, &field.SolveError{R: r, Wrapped: field.ErrOverflow}
		}

		if errRatio <= 1 {
			var drNext float64
			if errRatio > 0 {
				drNext = dr * math.Min(st.maxScale, st.safety*math.Pow(errRatio, -0.2))
			} else {
				drNext = dr * st.maxScale
			}
			return yNew, dr, drNext, nil
		}

		dr *= math.Max(st.minScale, st.safety*math.Pow(errRatio, -0.25))
		if dr < drMin {
			return y, 0, 0, &field.SolveError{R: r, Wrapped: field.ErrOverflow}
		}
	}
}
