// Package field provides the core field-space primitives for tunneling
// solves:
//
//   - [Point]: n-dimensional field-space vector
//   - [Potential], [GradPotential]: the collaborator-supplied evaluator
//     contract (pure, deterministic)
//   - [FiniteDiff]: central-difference gradient fallback
//   - built-in benchmark potentials ([QuarticDoubleWell], [HiggsLike],
//     [CoupledQuartic])
//
// It also defines the error taxonomy shared by every solver stage.
package field
