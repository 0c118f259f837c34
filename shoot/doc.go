// Package shoot solves the O(nu+1)-symmetric Euclidean field equation
//
//	phi'' + (nu/r) phi' = V'(phi),  phi'(0) = 0,  phi(inf) = xFalse
//
// by the overshoot/undershoot shooting method: the unknown launch value
// phi(0) is bracketed between a trial that falls back short of the false
// vacuum (undershoot) and one that crosses past it (overshoot), then
// bisected until the bracket is below tolerance. Integration uses an
// adaptive Dormand-Prince stepper; the singular friction term at r = 0 is
// sidestepped with a small-r series seed.
//
// Bracket bookkeeping is a pure function ([Update] over [Bracket] and
// [Event]) so the classification logic is testable in isolation from the
// integrator.
package shoot
