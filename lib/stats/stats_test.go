package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/fakegas/lib/eq"
	"github.com/phil-mansfield/fakegas/lib/snapio"
)

func TestSummarize(t *testing.T) {
	hd := &snapio.Header{ }
	hd.NPart = [snapio.NTypes]uint32{2, 0, 0, 0, 1, 0}
	hd.Mass[4] = 3

	p := []snapio.Particle{
		{Pos: [3]float32{0, 1, 2}, Vel: [3]float32{1, 0, -1}, Mass: 1},
		{Pos: [3]float32{4, -1, 2}, Vel: [3]float32{3, 0, 1}, Mass: 2},
		{Pos: [3]float32{5, 5, 5}, Vel: [3]float32{7, 7, 7}, Type: 4, Mass: 3},
	}

	s := Summarize(hd, p)
	require.Len(t, s, 2)

	gas := s[0]
	require.Equal(t, 0, gas.Type)
	require.Equal(t, 2, gas.Count)
	require.Equal(t, 0.0, gas.FixedMass)
	require.Equal(t, 3.0, gas.TotalMass)
	require.Equal(t, 1.0, gas.MinMass)
	require.Equal(t, 2.0, gas.MaxMass)
	require.Equal(t, [3]float64{0, -1, 2}, gas.Min)
	require.Equal(t, [3]float64{4, 1, 2}, gas.Max)
	require.True(t, eq.Float64sEps(gas.MeanVel[:], []float64{2, 0, 0}, 1e-12),
		"%v", gas.MeanVel)
	// Sample variances are 2, 0, and 2.
	require.InDelta(t, math.Sqrt(4.0/3), gas.VelDisp, 1e-12)

	star := s[1]
	require.Equal(t, 4, star.Type)
	require.Equal(t, 1, star.Count)
	require.Equal(t, 3.0, star.FixedMass)
	require.Equal(t, 0.0, star.VelDisp)
	require.Equal(t, [3]float64{7, 7, 7}, star.MeanVel)
}

func TestSummarizeEmpty(t *testing.T) {
	require.Empty(t, Summarize(&snapio.Header{ }, nil))
}
