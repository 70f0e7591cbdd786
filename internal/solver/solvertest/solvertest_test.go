package solvertest

import (
	"context"
	"math"
	"testing"

	"github.com/ream-lab/catex/internal/solver"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMinimizeSquareConvergesToZero(t *testing.T) {
	s := New()
	v, _ := s.AddVariable(-10, 10)
	obj := solver.QuadExpr{}.AddSquare(v, 1)
	if err := s.AddQuadraticObjective(obj); err != nil {
		t.Fatalf("AddQuadraticObjective: %v", err)
	}

	status, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !status.Solved() {
		t.Fatalf("expected solved status, got %v", status)
	}

	got, _ := s.Value(v)
	if !approxEqual(got, 0, 1e-2) {
		t.Fatalf("expected x≈0 minimizing x^2, got %g", got)
	}
}

func TestFixPinsVariable(t *testing.T) {
	s := New()
	v, _ := s.AddVariable(-10, 10)
	if err := s.Fix(v, 3.5); err != nil {
		t.Fatalf("Fix: %v", err)
	}
	if _, err := s.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got, _ := s.Value(v)
	if got != 3.5 {
		t.Fatalf("expected fixed value to be preserved, got %g", got)
	}
}

func TestLinearConstraintIsApproximatelyRespected(t *testing.T) {
	s := New()
	v, _ := s.AddVariable(0, 100)
	// Minimize v subject to v >= 50.
	obj := solver.QuadExpr{}.AddLinear(v, 1)
	_ = s.AddQuadraticObjective(obj)
	_ = s.AddLinearConstraint(solver.LinearExpr{}.Add(v, 1), solver.GE, 50)

	if _, err := s.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got, _ := s.Value(v)
	if got < 49.0 {
		t.Fatalf("expected v to approach the 50 lower bound from minimizing v, got %g", got)
	}
}
