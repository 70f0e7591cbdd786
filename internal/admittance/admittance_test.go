package admittance

import "testing"

func TestBuildSingleLineSusceptance(t *testing.T) {
	lines := []Line{{FromIdx: 0, ToIdx: 1, RateMW: 100, X: 0.1}}
	m := Build(2, lines, false)

	// y = 1/(jx) = -j/x and Y[f][t] = -y, so B(f,t) = -(-1/x) = +1/x.
	want := -imag(1 / complex(0, 0.1))
	if got := m.B(0, 1); got != want {
		t.Fatalf("B(0,1) = %g, want %g", got, want)
	}
	if m.B(0, 1) != m.B(1, 0) {
		t.Fatalf("expected symmetric susceptance matrix")
	}
	if m.MaxFlow[0] != 100 || m.MaxFlow[1] != 100 {
		t.Fatalf("expected MaxFlow 100 at both endpoints, got %v", m.MaxFlow)
	}
}

func TestBuildParallelLinesSumAdditively(t *testing.T) {
	lines := []Line{
		{FromIdx: 0, ToIdx: 1, RateMW: 50, X: 0.2},
		{FromIdx: 0, ToIdx: 1, RateMW: 50, X: 0.2},
	}
	m := Build(2, lines, false)

	single := Build(2, lines[:1], false)
	want := 2 * single.B(0, 1)
	if got := m.B(0, 1); got != want {
		t.Fatalf("parallel lines should sum additively: got %g want %g", got, want)
	}
	if m.MaxFlow[0] != 100 {
		t.Fatalf("expected MaxFlow to sum across parallel lines, got %g", m.MaxFlow[0])
	}
}

func TestBuildShuntAppliedAtBothEndpointsWithoutHalving(t *testing.T) {
	lines := []Line{{FromIdx: 0, ToIdx: 1, RateMW: 10, X: 0.1, G: 0.01, B: 0.02}}
	withShunt := Build(2, lines, true)
	withoutShunt := Build(2, lines, false)

	// Shunt (g+jb) is added in full at *each* endpoint, not halved, so each
	// diagonal grows by the full shunt admittance. Compare sums rather than
	// differences: (yr+shunt)-yr is not exact in float64, yr+shunt is.
	wantShunt := complex(0.01, 0.02)
	wantF := withoutShunt.Y[0][0] + wantShunt
	wantT := withoutShunt.Y[1][1] + wantShunt
	if withShunt.Y[0][0] != wantF || withShunt.Y[1][1] != wantT {
		t.Fatalf("expected full (unhalved) shunt at both endpoints, got f=%v t=%v want f=%v t=%v", withShunt.Y[0][0], withShunt.Y[1][1], wantF, wantT)
	}
}
