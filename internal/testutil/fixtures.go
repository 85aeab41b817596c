package testutil

import (
	"math/rand"
	"strconv"
)

// TungstenDensity is the density of tungsten in g/cm^3.
const TungstenDensity = 19.35

// tungsten holds NIST XCOM-style rows for W:
// energy (MeV), mu/rho (cm^2/g), coherent-corrected mu/rho (cm^2/g).
// Repeated energies are absorption edges.
var tungsten = [][3]float64{
	{1.00000e-03, 3.683e+03, 3.671e+03},
	{1.50000e-03, 1.643e+03, 1.632e+03},
	{1.80920e-03, 1.108e+03, 1.097e+03},
	{1.80920e-03, 1.327e+03, 1.311e+03},
	{1.84014e-03, 1.911e+03, 1.883e+03},
	{1.87160e-03, 2.901e+03, 2.853e+03},
	{1.87160e-03, 3.170e+03, 3.116e+03},
	{2.00000e-03, 3.922e+03, 3.853e+03},
	{2.28100e-03, 2.828e+03, 2.781e+03},
	{2.28100e-03, 3.279e+03, 3.226e+03},
	{2.42350e-03, 2.833e+03, 2.786e+03},
	{2.57490e-03, 2.445e+03, 2.407e+03},
	{2.57490e-03, 2.599e+03, 2.558e+03},
	{2.69447e-03, 2.339e+03, 2.301e+03},
	{2.81960e-03, 2.104e+03, 2.071e+03},
	{2.81960e-03, 2.194e+03, 2.160e+03},
	{3.00000e-03, 1.902e+03, 1.873e+03},
	{4.00000e-03, 9.564e+02, 9.405e+02},
	{5.00000e-03, 5.534e+02, 5.423e+02},
	{6.00000e-03, 3.514e+02, 3.428e+02},
	{8.00000e-03, 1.705e+02, 1.643e+02},
	{1.00000e-02, 9.691e+01, 9.204e+01},
	{1.02068e-02, 9.201e+01, 8.724e+01},
	{1.02068e-02, 2.334e+02, 1.966e+02},
	{1.08548e-02, 1.983e+02, 1.684e+02},
	{1.15440e-02, 1.689e+02, 1.444e+02},
	{1.15440e-02, 2.312e+02, 1.889e+02},
	{1.18186e-02, 2.268e+02, 1.797e+02},
	{1.20998e-02, 2.065e+02, 1.699e+02},
	{1.20998e-02, 2.382e+02, 1.948e+02},
	{1.50000e-02, 1.389e+02, 1.172e+02},
	{2.00000e-02, 6.573e+01, 5.697e+01},
	{3.00000e-02, 2.273e+01, 1.991e+01},
	{4.00000e-02, 1.067e+01, 9.240e+00},
	{5.00000e-02, 5.949e+00, 5.050e+00},
	{6.00000e-02, 3.713e+00, 3.070e+00},
	{6.95250e-02, 2.552e+00, 2.049e+00},
	{6.95250e-02, 1.123e+01, 3.212e+00},
	{8.00000e-02, 7.810e+00, 2.879e+00},
	{1.00000e-01, 4.438e+00, 2.100e+00},
	{1.50000e-01, 1.581e+00, 9.378e-01},
	{2.00000e-01, 7.844e-01, 4.913e-01},
	{3.00000e-01, 3.238e-01, 1.973e-01},
	{4.00000e-01, 1.925e-01, 1.100e-01},
	{5.00000e-01, 1.378e-01, 7.440e-02},
	{6.00000e-01, 1.093e-01, 5.673e-02},
	{8.00000e-01, 8.066e-02, 4.028e-02},
	{1.00000e+00, 6.618e-02, 3.276e-02},
	{1.25000e+00, 5.577e-02, 2.761e-02},
	{1.50000e+00, 5.000e-02, 2.484e-02},
	{2.00000e+00, 4.433e-02, 2.256e-02},
	{3.00000e+00, 4.075e-02, 2.236e-02},
	{4.00000e+00, 4.038e-02, 2.363e-02},
	{5.00000e+00, 4.103e-02, 2.510e-02},
	{6.00000e+00, 4.210e-02, 2.649e-02},
	{8.00000e+00, 4.472e-02, 2.886e-02},
	{1.00000e+01, 4.747e-02, 3.072e-02},
	{1.50000e+01, 5.384e-02, 3.360e-02},
	{2.00000e+01, 5.893e-02, 3.475e-02},
}

// TungstenTable returns fresh copies of the tungsten energy (MeV), mu/rho and
// coherent-corrected mu/rho columns.
func TungstenTable() (energy, mac, coherent []float64) {
	energy = make([]float64, len(tungsten))
	mac = make([]float64, len(tungsten))
	coherent = make([]float64, len(tungsten))
	for i, row := range tungsten {
		energy[i], mac[i], coherent[i] = row[0], row[1], row[2]
	}
	return energy, mac, coherent
}

// TungstenCSV returns the tungsten table in the delimited layout read by
// material.DelimitedTable.
func TungstenCSV() string {
	var b []byte
	b = append(b, "Energy,MAC,Coherent-Corrected MAC\n"...)
	for _, row := range tungsten {
		b = appendRow(b, row)
	}
	return string(b)
}

func appendRow(b []byte, row [3]float64) []byte {
	for i, v := range row {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, v, 'E', -1, 64)
	}
	return append(b, '\n')
}

// LinearGrid returns n evenly spaced values from start to stop inclusive.
func LinearGrid(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

// NoisyCounts generates a deterministic bremsstrahlung-like count spectrum over
// energies (MeV) with endpoint maxMeV, plus zero-mean noise that can push
// individual bins below zero.
func NoisyCounts(seed int64, energies []float64, maxMeV, noise float64) []float64 {
	out := make([]float64, len(energies))
	rng := rand.New(rand.NewSource(seed))
	for i, e := range energies {
		v := 0.0
		if e < maxMeV {
			v = 1000 * (maxMeV - e) / maxMeV
		}
		out[i] = v + (rng.Float64()*2-1)*noise
	}
	return out
}

// DC generates a constant-valued slice.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
