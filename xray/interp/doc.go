// Package interp builds continuous functions from sparse tabulated data.
//
// A [Table] is a piecewise-linear interpolant over (x, y) knots evaluated in
// one of two working spaces, selected by [Mode]:
//
//   - [ModeLogLog]: linear in (ln x, ln y). Suited to photon attenuation
//     coefficients, which are close to power laws between tabulated energies.
//   - [ModeLinear]: linear in (x, y). Kept for numerical compatibility with
//     older scalar attenuation sweeps.
//
// Knots may repeat an x value. Repeated knots model step discontinuities
// (absorption edges) and are kept in table order; a query exactly at such an
// x returns the value on the low-x side of the step. Queries outside the
// table range extrapolate the end segments linearly in the working space.
package interp
