// Package generators implements the Generator Submodel: it
// splits generators into dispatchable (GN, stage-1) and variable (GV,
// stage-2) sets, adds their capacity and dispatch variables and constraints,
// contributes their net injection into the shared bus-injection builder, and
// accumulates their cost terms into the shared cost accumulator.
package generators

import (
	"fmt"

	"github.com/ream-lab/catex/internal/busexpr"
	"github.com/ream-lab/catex/internal/costaccum"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
)

// Result holds every variable the submodel registered, keyed the way the
// composer and results writer need to read them back.
type Result struct {
	// CapGN[gen] is the stage-1 installed capacity variable.
	CapGN map[string]solver.Var
	// GenGN[gen][timepointID] is the stage-1 dispatch variable.
	GenGN map[string]map[int]solver.Var

	// CapGV[gen][scenario] is the stage-2 installed capacity variable.
	CapGV map[string]map[string]solver.Var
	// GenGV[gen][scenario][timepointID] is the stage-2 dispatch variable.
	GenGV map[string]map[string]map[int]solver.Var
}

// Build registers every generator's variables/constraints/cost terms.
func Build(m solver.Model, sys *model.System, bus *busexpr.Builder, accum *costaccum.Accumulator, opts runopts.Options) (*Result, error) {
	res := &Result{
		CapGN: make(map[string]solver.Var),
		GenGN: make(map[string]map[int]solver.Var),
		CapGV: make(map[string]map[string]solver.Var),
		GenGV: make(map[string]map[string]map[int]solver.Var),
	}

	numScenarios := len(sys.Scenarios)

	for _, g := range sys.Generators {
		busIdx, ok := sys.BusIndex[g.BusName]
		if !ok {
			return nil, fmt.Errorf("generators: bus %q not found for generator %q", g.BusName, g.Name)
		}

		switch g.Stage {
		case model.StageDispatchable:
			if err := buildDispatchable(m, sys, bus, accum, res, g, busIdx); err != nil {
				return nil, err
			}
		case model.StageVariable:
			if err := buildVariable(m, sys, bus, accum, res, opts, g, busIdx, numScenarios); err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}

func buildDispatchable(m solver.Model, sys *model.System, bus *busexpr.Builder, accum *costaccum.Accumulator, res *Result, g model.Generator, busIdx int) error {
	capVar, err := m.AddVariable(g.ExistCap, g.CapLimit)
	if err != nil {
		return fmt.Errorf("generators: add capacity var for %q: %w", g.Name, err)
	}
	res.CapGN[g.Name] = capVar

	period := solver.QuadExpr{}.AddLinear(capVar, g.InvestCost)
	accum.AddToPeriodCost(period)

	res.GenGN[g.Name] = make(map[int]solver.Var, len(sys.Timepoints))

	for _, tp := range sys.Timepoints {
		gen, err := m.AddVariable(0, g.CapLimit)
		if err != nil {
			return fmt.Errorf("generators: add dispatch var for %q at %q: %w", g.Name, tp.Name, err)
		}
		res.GenGN[g.Name][tp.ID] = gen

		dispatchLEcap := solver.LinearExpr{}.Add(gen, 1).Add(capVar, -1)
		if err := m.AddLinearConstraint(dispatchLEcap, solver.LE, 0); err != nil {
			return fmt.Errorf("generators: dispatch<=capacity constraint for %q at %q: %w", g.Name, tp.Name, err)
		}

		cost := solver.QuadExpr{}.
			AddSquare(gen, g.C2).
			AddLinear(gen, g.C1+g.VarOMCost).
			AddConstant(g.C0)
		accum.AddToTimepointCost(tp.ID, cost)

		for _, sc := range sys.Scenarios {
			key := busexpr.Key{BusIdx: busIdx, ScenarioIdx: sys.ScenarioIndex[sc.Name], TimepointID: tp.ID}
			bus.AddVar(key, gen, 1)
		}
	}

	return nil
}

func buildVariable(m solver.Model, sys *model.System, bus *busexpr.Builder, accum *costaccum.Accumulator, res *Result, opts runopts.Options, g model.Generator, busIdx, numScenarios int) error {
	res.CapGV[g.Name] = make(map[string]solver.Var, numScenarios)
	res.GenGV[g.Name] = make(map[string]map[int]solver.Var, numScenarios)

	for _, sc := range sys.Scenarios {
		weight := opts.ScenarioWeight(sc.Probability, numScenarios)

		capVar, err := m.AddVariable(g.ExistCap, g.CapLimit)
		if err != nil {
			return fmt.Errorf("generators: add variable-capacity var for %q scenario %q: %w", g.Name, sc.Name, err)
		}
		res.CapGV[g.Name][sc.Name] = capVar

		accum.AddToPeriodCost(solver.QuadExpr{}.AddLinear(capVar, weight*g.InvestCost))

		res.GenGV[g.Name][sc.Name] = make(map[int]solver.Var, len(sys.Timepoints))
		scenarioIdx := sys.ScenarioIndex[sc.Name]

		for _, tp := range sys.Timepoints {
			cf := sys.CapacityFactors.At(g.Name, sc.Name, tp.ID)

			gen, err := m.AddVariable(0, g.CapLimit)
			if err != nil {
				return fmt.Errorf("generators: add variable-dispatch var for %q scenario %q at %q: %w", g.Name, sc.Name, tp.Name, err)
			}
			res.GenGV[g.Name][sc.Name][tp.ID] = gen

			dispatchLEcf := solver.LinearExpr{}.Add(gen, 1).Add(capVar, -cf)
			if err := m.AddLinearConstraint(dispatchLEcf, solver.LE, 0); err != nil {
				return fmt.Errorf("generators: dispatch<=cf*capacity constraint for %q scenario %q at %q: %w", g.Name, sc.Name, tp.Name, err)
			}

			cost := solver.QuadExpr{}.
				AddSquare(gen, g.C2).
				AddLinear(gen, g.C1+g.VarOMCost).
				AddConstant(g.C0).
				Scale(weight)
			accum.AddToTimepointCost(tp.ID, cost)

			key := busexpr.Key{BusIdx: busIdx, ScenarioIdx: scenarioIdx, TimepointID: tp.ID}
			bus.AddVar(key, gen, 1)
		}
	}

	return nil
}
