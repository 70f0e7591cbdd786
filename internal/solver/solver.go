// Package solver defines the contract the model-assembly core consumes from
// an external convex QP solver. The core treats the solver as an
// opaque black box: add_variable, add_linear_constraint, add_quadratic_objective,
// solve, value. No concrete solver binding lives here, only the interface
// and the termination-status
// taxonomy every submodel and the composer (internal/expansion) code against.
package solver

import "context"

// Var is an opaque reference to a decision variable returned by
// Model.AddVariable. Submodels pass Vars back into expressions; they never
// need to know the concrete representation a solver backend uses.
type Var struct {
	id int
}

// ID exposes the raw identity for backends/test doubles that need it as a
// map key; it is not meaningful outside an implementation of Model.
func (v Var) ID() int { return v.id }

// NewVar constructs a Var from a backend-assigned id. Only Model
// implementations should call this.
func NewVar(id int) Var { return Var{id: id} }

// Sense is a linear constraint's relational operator.
type Sense int

const (
	LE Sense = iota // <=
	GE              // >=
	EQ              // ==
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	default:
		return "?"
	}
}

// TerminationStatus mirrors the status a convex solver reports after Solve.
// The composer surfaces this verbatim on failure; it is
// never retried or reinterpreted.
type TerminationStatus int

const (
	StatusUnknown TerminationStatus = iota
	StatusOptimal
	StatusLocallyOptimal
	StatusInfeasible
	StatusUnbounded
	StatusSolverError
)

func (s TerminationStatus) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusLocallyOptimal:
		return "LOCALLY_OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	case StatusSolverError:
		return "SOLVER_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Solved reports whether status is one the composer may extract results
// from.
func (s TerminationStatus) Solved() bool {
	return s == StatusOptimal || s == StatusLocallyOptimal
}

// Model is the opaque solver contract consumed by the core. A Model is
// acquired before assembly begins and must be released (via a backend's own
// Close/pool-return mechanism, outside this interface) on every exit path.
type Model interface {
	// AddVariable registers a new real-valued decision variable with bounds
	// [lb, ub] and returns an opaque handle to it.
	AddVariable(lb, ub float64) (Var, error)

	// AddLinearConstraint adds expr <sense> rhs to the model.
	AddLinearConstraint(expr LinearExpr, sense Sense, rhs float64) error

	// AddQuadraticObjective accumulates expr into the model's (single,
	// additive) objective. The composer calls this once with the fully
	// assembled Sum(weight_t * CostPerTimepoint[t]) + CostPerPeriod; the
	// accumulation happens in internal/costaccum before this call, not here.
	AddQuadraticObjective(expr QuadExpr) error

	// Fix pins a variable to an exact value, used by the transmission
	// submodel to fix the slack bus's angle to 0.
	Fix(v Var, value float64) error

	// Solve invokes the solver. ctx is the sole cancellation boundary:
	// cancelling it must interrupt the solver via its native API.
	Solve(ctx context.Context) (TerminationStatus, error)

	// Value returns the primal value of v. Valid only after Solve returns a
	// Solved() status.
	Value(v Var) (float64, error)
}
