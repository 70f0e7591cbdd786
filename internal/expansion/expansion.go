// Package expansion is the composer: it owns the model-assembly state
// machine and wires internal/generators, internal/storage,
// internal/transmission and internal/policy together against a shared
// solver.Model, internal/busexpr.Builder and internal/costaccum.Accumulator.
package expansion

import (
	"context"
	"fmt"

	"github.com/ream-lab/catex/internal/admittance"
	"github.com/ream-lab/catex/internal/busexpr"
	"github.com/ream-lab/catex/internal/costaccum"
	"github.com/ream-lab/catex/internal/generators"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/policy"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
	"github.com/ream-lab/catex/internal/storage"
	"github.com/ream-lab/catex/internal/transmission"
)

// State is one step of the model-assembly state machine.
type State int

const (
	Created State = iota
	DataLoaded
	VarsAdded
	ConstraintsAdded
	ObjectiveSet
	Solving
	Solved
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "CREATED"
	case DataLoaded:
		return "DATA_LOADED"
	case VarsAdded:
		return "VARS_ADDED"
	case ConstraintsAdded:
		return "CONSTRAINTS_ADDED"
	case ObjectiveSet:
		return "OBJECTIVE_SET"
	case Solving:
		return "SOLVING"
	case Solved:
		return "SOLVED"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Result is the fully assembled and solved model: every submodel's output,
// ready for internal/results and internal/report to read back. It is fully
// populated only when Run returns with State == Solved; on failure Run still
// returns it with State == Failed, the solver's Status, and whichever
// submodel results were built before the failure.
type Result struct {
	State  State
	Status solver.TerminationStatus

	Generators   *generators.Result
	Storages     *storage.Result
	Transmission *transmission.Result
	Admittance   *admittance.Matrix
	Accum        *costaccum.Accumulator
}

// Run drives the full state machine once, start to finish, against sys
// using m as the solver backend. It never writes partial output: on any
// failure it returns a Result with State == Failed and the error, leaving m
// in whatever state the failing call left it.
func Run(ctx context.Context, m solver.Model, sys *model.System, opts runopts.Options) (*Result, error) {
	res := &Result{State: DataLoaded}

	y := buildAdmittance(sys, opts)
	res.Admittance = y
	res.State = VarsAdded

	bus := busexpr.New()
	accum := costaccum.New(timepointIDs(sys))
	res.Accum = accum

	genRes, err := generators.Build(m, sys, bus, accum, opts)
	if err != nil {
		res.State = Failed
		return res, fmt.Errorf("expansion: generators.Build: %w", err)
	}
	res.Generators = genRes

	stgRes, err := storage.Build(m, sys, bus, accum, opts)
	if err != nil {
		res.State = Failed
		return res, fmt.Errorf("expansion: storage.Build: %w", err)
	}
	res.Storages = stgRes

	txRes, err := transmission.Build(m, sys, y, bus, opts)
	if err != nil {
		res.State = Failed
		return res, fmt.Errorf("expansion: transmission.Build: %w", err)
	}
	res.Transmission = txRes
	res.State = ConstraintsAdded

	if err := policy.Build(m, sys, txRes.Theta); err != nil {
		res.State = Failed
		return res, fmt.Errorf("expansion: policy.Build: %w", err)
	}

	weights := make(map[int]float64, len(sys.Timepoints))
	for _, tp := range sys.Timepoints {
		weights[tp.ID] = tp.Weight
	}
	objective := accum.Objective(weights)
	if err := m.AddQuadraticObjective(objective); err != nil {
		res.State = Failed
		return res, fmt.Errorf("expansion: AddQuadraticObjective: %w", err)
	}
	res.State = ObjectiveSet

	res.State = Solving
	status, err := m.Solve(ctx)
	res.Status = status
	if err != nil {
		res.State = Failed
		return res, fmt.Errorf("expansion: Solve: %w", err)
	}
	if !status.Solved() {
		res.State = Failed
		return res, fmt.Errorf("expansion: solve terminated with status %s", status)
	}

	res.State = Solved
	return res, nil
}

func buildAdmittance(sys *model.System, opts runopts.Options) *admittance.Matrix {
	lines := make([]admittance.Line, len(sys.Lines))
	for i, l := range sys.Lines {
		lines[i] = admittance.Line{
			FromIdx: sys.BusIndex[l.FromBus],
			ToIdx:   sys.BusIndex[l.ToBus],
			RateMW:  l.RateMW,
			R:       l.R,
			X:       l.X,
			G:       l.G,
			B:       l.B,
		}
	}
	return admittance.Build(len(sys.Buses), lines, opts.IncludeShunts)
}

func timepointIDs(sys *model.System) []int {
	ids := make([]int, len(sys.Timepoints))
	for i, tp := range sys.Timepoints {
		ids[i] = tp.ID
	}
	return ids
}
