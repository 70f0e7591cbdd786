// Package solvertest provides a small, deterministic in-memory convex
// solver implementing internal/solver.Model. It exists so the composer's
// wiring (internal/expansion and every submodel) can be exercised end to end
// in tests and in cmd/demo without pulling in (or fabricating) a real QP
// solver dependency; production deployments supply their own solver.Model
// wrapping an actual QP solver.
//
// The algorithm is a quadratic-penalty projected-gradient method: constraint
// violations are squared and added to the objective with a growing penalty
// weight across a handful of outer rounds, each round refined with plain
// gradient descent projected onto variable bounds, using a step size
// divided by that round's penalty weight. It is not a production
// QP solver (it has no optimality certificate and will not scale), but it
// is order-independent and reproduces the small systems this repo's tests
// and two-bus demo exercise closely enough to check the model's invariants
// within test tolerances.
package solvertest

import (
	"context"
	"math"

	"github.com/ream-lab/catex/internal/solver"
)

type variable struct {
	lb, ub float64
	fixed  bool
	value  float64
}

type linearConstraint struct {
	expr  solver.LinearExpr
	sense solver.Sense
	rhs   float64
}

// Solver is an in-memory solver.Model implementation. Use New to create one;
// the zero value is not usable.
type Solver struct {
	vars        []variable
	constraints []linearConstraint
	objective   solver.QuadExpr

	outerRounds int
	innerSteps  int
	stepSize    float64
}

// New returns a Solver with default iteration/step-size parameters tuned for
// the small systems this repo's tests and demo construct.
func New() *Solver {
	return &Solver{
		outerRounds: 8,
		innerSteps:  600,
		stepSize:    0.02,
	}
}

func (s *Solver) AddVariable(lb, ub float64) (solver.Var, error) {
	id := len(s.vars)
	mid := clampFinite((lb + ub) / 2)
	s.vars = append(s.vars, variable{lb: lb, ub: ub, value: mid})
	return solver.NewVar(id), nil
}

func (s *Solver) AddLinearConstraint(expr solver.LinearExpr, sense solver.Sense, rhs float64) error {
	s.constraints = append(s.constraints, linearConstraint{expr: expr, sense: sense, rhs: rhs})
	return nil
}

func (s *Solver) AddQuadraticObjective(expr solver.QuadExpr) error {
	s.objective = s.objective.Plus(expr)
	return nil
}

func (s *Solver) Fix(v solver.Var, value float64) error {
	idx := v.ID()
	if idx < 0 || idx >= len(s.vars) {
		return errInvalidVar
	}
	s.vars[idx].fixed = true
	s.vars[idx].value = value
	return nil
}

func (s *Solver) Value(v solver.Var) (float64, error) {
	idx := v.ID()
	if idx < 0 || idx >= len(s.vars) {
		return 0, errInvalidVar
	}
	return s.vars[idx].value, nil
}

// Solve runs the penalty/projected-gradient loop. It always reports
// StatusLocallyOptimal unless ctx is already cancelled, since this solver
// never detects true infeasibility/unboundedness; callers that need to
// exercise the composer's infeasible-path handling should use a hand-rolled
// solver.Model stub instead (see internal/expansion's tests for that case).
func (s *Solver) Solve(ctx context.Context) (solver.TerminationStatus, error) {
	if err := ctx.Err(); err != nil {
		return solver.StatusSolverError, err
	}

	x := make([]float64, len(s.vars))
	for i, v := range s.vars {
		x[i] = v.value
	}

	penalty := 1.0
	for round := 0; round < s.outerRounds; round++ {
		// Shrink the step as the penalty grows so equality constraints
		// (whose squared violation is two-sided) do not overshoot and diverge.
		stepSize := s.stepSize / penalty
		for step := 0; step < s.innerSteps; step++ {
			grad := s.gradient(x, penalty)
			for i := range x {
				if s.vars[i].fixed {
					continue
				}
				x[i] -= stepSize * grad[i]
				x[i] = clamp(x[i], s.vars[i].lb, s.vars[i].ub)
			}
		}
		penalty *= 8
	}

	for i := range x {
		s.vars[i].value = x[i]
	}
	return solver.StatusLocallyOptimal, nil
}

// gradient returns d/dx of objective(x) + penalty * sum(violation(x)^2).
func (s *Solver) gradient(x []float64, penalty float64) []float64 {
	grad := make([]float64, len(x))

	for _, t := range s.objective.Linear.Terms {
		grad[t.V.ID()] += t.Coeff
	}
	for _, t := range s.objective.Quad {
		if t.V1.ID() == t.V2.ID() {
			grad[t.V1.ID()] += 2 * t.Coeff * x[t.V1.ID()]
		} else {
			grad[t.V1.ID()] += t.Coeff * x[t.V2.ID()]
			grad[t.V2.ID()] += t.Coeff * x[t.V1.ID()]
		}
	}

	for _, c := range s.constraints {
		val := evalLinear(c.expr, x)
		var g, sign float64
		switch c.sense {
		case solver.LE:
			g = val - c.rhs
			sign = 1
		case solver.GE:
			g = c.rhs - val
			sign = -1
		case solver.EQ:
			g = val - c.rhs
			sign = 1
		}

		viol := g
		if c.sense != solver.EQ && viol < 0 {
			continue // satisfied inequality contributes no gradient
		}
		coeff := 2 * penalty * viol * sign
		for _, t := range c.expr.Terms {
			grad[t.V.ID()] += coeff * t.Coeff
		}
	}

	return grad
}

func evalLinear(e solver.LinearExpr, x []float64) float64 {
	sum := e.Constant
	for _, t := range e.Terms {
		sum += t.Coeff * x[t.V.ID()]
	}
	return sum
}

func clamp(v, lb, ub float64) float64 {
	if v < lb {
		return lb
	}
	if v > ub {
		return ub
	}
	return v
}

func clampFinite(v float64) float64 {
	const bound = 1e6
	if math.IsInf(v, 1) || v > bound {
		return bound
	}
	if math.IsInf(v, -1) || v < -bound {
		return -bound
	}
	return v
}

type errString string

func (e errString) Error() string { return string(e) }

const errInvalidVar = errString("solvertest: invalid variable reference")
