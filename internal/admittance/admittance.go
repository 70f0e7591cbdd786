// Package admittance assembles the nodal admittance matrix from a system's
// pi-model transmission lines. The core's DC power flow only
// needs the susceptance matrix B = Im(Y), but Y is built as complex128 to
// keep the series/shunt accumulation identical to a standard pi-model build
// and to leave room for an AC-minded reader to recognize the formulation.
package admittance

// Matrix is a dense, bus-index-keyed admittance matrix. internal/transmission
// scans Y once to build per-bus neighbor lists and reads MaxFlow once per
// (bus, scenario, timepoint), the hottest loop in model assembly.
type Matrix struct {
	N int
	Y [][]complex128 // Y[i][j], i,j in [0,N)

	// MaxFlow[i] is the aggregate flow cap at bus i: the sum of RateMW over
	// every line incident to bus i.
	MaxFlow []float64
}

// B returns the susceptance (imaginary part of Y) between buses i and j.
func (m *Matrix) B(i, j int) float64 {
	return imag(m.Y[i][j])
}

// Line is the minimal per-line input admittance.Build needs: bus indices
// (already resolved by the caller against model.System.BusIndex) plus the
// pi-model parameters.
type Line struct {
	FromIdx, ToIdx int
	RateMW         float64
	R, X           float64
	G, B           float64
}

// Build assembles Y and MaxFlow for n buses given lines. When includeShunts
// is true, each line's shunt admittance (g + jb) is added at *both*
// endpoints without the conventional /2 split, reproducing the source
// formulation as-is.
func Build(n int, lines []Line, includeShunts bool) *Matrix {
	y := make([][]complex128, n)
	for i := range y {
		y[i] = make([]complex128, n)
	}
	maxFlow := make([]float64, n)

	for _, l := range lines {
		z := complex(l.R, l.X)
		yr := 1 / z

		f, t := l.FromIdx, l.ToIdx
		y[f][t] -= yr
		y[t][f] -= yr
		y[f][f] += yr
		y[t][t] += yr

		if includeShunts {
			shunt := complex(l.G, l.B)
			y[f][f] += shunt
			y[t][t] += shunt
		}

		maxFlow[f] += l.RateMW
		maxFlow[t] += l.RateMW
	}

	return &Matrix{N: n, Y: y, MaxFlow: maxFlow}
}
