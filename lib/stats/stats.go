/*package stats summarizes the particles in a snapshot file, one summary per
particle type.
*/
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/fakegas/lib/snapio"
)

// TypeSummary describes the particles of one type.
type TypeSummary struct {
	Type int
	Count int
	// FixedMass is the header's mass for this type, or zero if masses are
	// stored per particle.
	FixedMass float64
	// TotalMass, MinMass, and MaxMass are computed from the particles
	// themselves.
	TotalMass, MinMass, MaxMass float64
	// Min and Max are the corners of the smallest box holding every
	// particle's position.
	Min, Max [3]float64
	// MeanVel is the mean velocity and VelDisp is the one-dimensional
	// velocity dispersion, sqrt((sx^2 + sy^2 + sz^2) / 3).
	MeanVel [3]float64
	VelDisp float64
}

// Summarize returns a summary for every type with at least one particle in
// p, in increasing type order. Particles are grouped by their Type field.
func Summarize(hd *snapio.Header, p []snapio.Particle) []TypeSummary {
	groups := [snapio.NTypes][]int{ }
	for i := range p {
		groups[p[i].Type] = append(groups[p[i].Type], i)
	}

	out := []TypeSummary{ }
	for typ := range groups {
		if len(groups[typ]) == 0 { continue }
		out = append(out, summarizeType(typ, hd.Mass[typ], p, groups[typ]))
	}
	return out
}

func summarizeType(
	typ int, fixedMass float64, p []snapio.Particle, idx []int,
) TypeSummary {
	n := len(idx)
	mass := make([]float64, n)
	var x, v [3][]float64
	for dim := 0; dim < 3; dim++ {
		x[dim], v[dim] = make([]float64, n), make([]float64, n)
	}

	for j, i := range idx {
		mass[j] = float64(p[i].Mass)
		for dim := 0; dim < 3; dim++ {
			x[dim][j] = float64(p[i].Pos[dim])
			v[dim][j] = float64(p[i].Vel[dim])
		}
	}

	s := TypeSummary{
		Type: typ, Count: n, FixedMass: fixedMass,
		TotalMass: floats.Sum(mass),
		MinMass: floats.Min(mass), MaxMass: floats.Max(mass),
	}

	sumVar := 0.0
	for dim := 0; dim < 3; dim++ {
		s.Min[dim], s.Max[dim] = floats.Min(x[dim]), floats.Max(x[dim])

		mean, std := stat.MeanStdDev(v[dim], nil)
		// A single sample has an undefined (NaN) unbiased variance.
		if n < 2 { std = 0 }
		s.MeanVel[dim] = mean
		sumVar += std*std
	}
	s.VelDisp = math.Sqrt(sumVar / 3)

	return s
}
