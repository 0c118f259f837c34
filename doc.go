// Package bounce computes instanton (bounce) solutions interpolating
// between two vacua of a scalar-field potential, and the Euclidean action
// that sets the tunneling rate of a cosmological phase transition.
//
// The solve is a two-level boundary-value problem:
//
//   - [shoot.Solver]: single effective field, O(nu+1)-symmetric profile by
//     the overshoot/undershoot shooting method
//   - [deform.Deformer]: multiple fields, a spline path through field
//     space relaxed until the transverse force vanishes, re-solving the
//     radial profile along the path each iteration
//   - [action.Evaluate]: r^nu-weighted quadrature of the converged profile
//
// Candidate vacua are supplied by the caller; the package does not hunt
// for minima or critical temperatures itself.
//
// # Example
//
//	pot := field.NewHiggsLike()
//	meta, _, stable, _ := pot.Minima()
//	res, err := bounce.Solve(ctx, pot, meta, stable, nil)
//	if err == nil && res.Status == deform.StatusConverged {
//	    fmt.Println("S =", res.S())
//	}
//
// # Concurrency
//
// Solvers are sequential by construction; paths and profiles are immutable
// snapshots between stages. For independent scenarios run in parallel, use
// the [scan] package.
package bounce
