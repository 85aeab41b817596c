package spectrum

import "gonum.org/v1/gonum/floats"

// Summary holds descriptive statistics of a spectrum.
type Summary struct {
	Bins       int
	MinEnergy  float64 // MeV
	MaxEnergy  float64 // MeV
	Total      float64 // sum of counts
	MeanEnergy float64 // count-weighted mean energy (MeV)
	PeakEnergy float64 // energy of the largest bin (MeV)
	PeakCounts float64
}

// Summarize computes the statistics of s. An empty spectrum yields a zero
// Summary, and MeanEnergy is zero when the spectrum has no counts.
func Summarize(s Spectrum) Summary {
	n := s.Len()
	if n == 0 || len(s.Counts) != n {
		return Summary{}
	}

	sum := Summary{
		Bins:      n,
		MinEnergy: floats.Min(s.Energy),
		MaxEnergy: floats.Max(s.Energy),
		Total:     floats.Sum(s.Counts),
	}

	peak := floats.MaxIdx(s.Counts)
	sum.PeakEnergy = s.Energy[peak]
	sum.PeakCounts = s.Counts[peak]

	if sum.Total > 0 {
		sum.MeanEnergy = floats.Dot(s.Energy, s.Counts) / sum.Total
	}
	return sum
}
