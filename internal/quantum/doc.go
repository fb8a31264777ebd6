// Package quantum provides the finite-dimensional operator algebra used by the
// solver: immutable complex operators, kets, and the standard two-level
// constructors.
//
//   - [Operator]: n×n complex matrix backed by gonum's CDense
//   - [Ket]: column state vector
//   - [SigmaX], [SigmaY], [SigmaZ], [Destroy], [Number]: standard operators
//
// Arithmetic never mutates its receiver; every method returns a new value.
// Mixing operators of different dimension is a programming error and panics
// with [ErrDimensionMismatch], the same way gonum/mat panics on shape errors.
//
// # Conventions
//
// Basis state 0 is the ground state of [Number]: Destroy(2) maps |1> to |0>
// and SigmaZ is diag(1, -1).
package quantum
