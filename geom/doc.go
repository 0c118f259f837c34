// Package geom represents the tunneling path through field space: an
// index-addressed knot arena with arclength parameterization and natural
// cubic splines per coordinate, plus the projections that turn an n-field
// potential into the 1-D effective potential and transverse force samples
// the solvers consume.
package geom
