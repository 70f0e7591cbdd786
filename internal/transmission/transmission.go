// Package transmission implements the Transmission Submodel:
// bus-angle variables, the DC flow expression per bus, the flow-limit
// constraint, and the power-balance constraint that ties generation,
// storage and flow together at every bus.
package transmission

import (
	"fmt"

	"github.com/ream-lab/catex/internal/admittance"
	"github.com/ream-lab/catex/internal/busexpr"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
)

// bigAngle bounds the otherwise-free bus-angle variables; internal/policy
// further tightens this via an explicit constraint when configured.
const bigAngle = 1e3

// Result holds every variable the submodel registered, plus the flow
// expression at each (bus, scenario, timepoint) for callers (e.g.
// internal/report) that want to inspect it post-solve.
type Result struct {
	Theta map[int]map[int]map[int]solver.Var // [busIdx][scenarioIdx][timepointID]
	Flow  map[busScenarioTimepoint]solver.LinearExpr
}

type busScenarioTimepoint struct {
	BusIdx      int
	ScenarioIdx int
	TimepointID int
}

// FlowAt returns the DC flow expression at (busIdx, scenarioIdx,
// timepointID), for post-solve analysis (e.g. internal/report's congestion
// ranking). Returns the zero expression if the key was never registered.
func (r *Result) FlowAt(busIdx, scenarioIdx, timepointID int) solver.LinearExpr {
	return r.Flow[busScenarioTimepoint{BusIdx: busIdx, ScenarioIdx: scenarioIdx, TimepointID: timepointID}]
}

// neighbor is one other bus connected to a given bus, with the aggregate
// susceptance between them (already summed across parallel lines by
// internal/admittance).
type neighbor struct {
	busIdx int
	b      float64
}

// Build registers bus angles, flow and balance constraints for every
// (bus, scenario, timepoint). sys.Loads supplies the demand side of the
// balance; busGen is the generator+storage net-injection builder populated
// by internal/generators and internal/storage before this call.
func Build(m solver.Model, sys *model.System, y *admittance.Matrix, busGen *busexpr.Builder, opts runopts.Options) (*Result, error) {
	slackIdx, ok := sys.BusIndex[sys.SlackBus]
	if !ok {
		return nil, fmt.Errorf("transmission: slack bus %q not indexed", sys.SlackBus)
	}

	neighbors := buildNeighborLists(y)

	res := &Result{
		Theta: make(map[int]map[int]map[int]solver.Var),
		Flow:  make(map[busScenarioTimepoint]solver.LinearExpr),
	}

	for busIdx := range sys.Buses {
		res.Theta[busIdx] = make(map[int]map[int]solver.Var, len(sys.Scenarios))
		for _, sc := range sys.Scenarios {
			scenarioIdx := sys.ScenarioIndex[sc.Name]
			res.Theta[busIdx][scenarioIdx] = make(map[int]solver.Var, len(sys.Timepoints))
			for _, tp := range sys.Timepoints {
				theta, err := m.AddVariable(-bigAngle, bigAngle)
				if err != nil {
					return nil, fmt.Errorf("transmission: add angle var for bus %d: %w", busIdx, err)
				}
				res.Theta[busIdx][scenarioIdx][tp.ID] = theta
				if busIdx == slackIdx {
					if err := m.Fix(theta, 0); err != nil {
						return nil, fmt.Errorf("transmission: fix slack angle: %w", err)
					}
				}
			}
		}
	}

	for busIdx := range sys.Buses {
		for _, sc := range sys.Scenarios {
			scenarioIdx := sys.ScenarioIndex[sc.Name]
			for _, tp := range sys.Timepoints {
				thetaN := res.Theta[busIdx][scenarioIdx][tp.ID]

				flow := solver.LinearExpr{}
				for _, nb := range neighbors[busIdx] {
					thetaM := res.Theta[nb.busIdx][scenarioIdx][tp.ID]
					flow = flow.Add(thetaN, nb.b).Add(thetaM, -nb.b)
				}
				key := busScenarioTimepoint{BusIdx: busIdx, ScenarioIdx: scenarioIdx, TimepointID: tp.ID}
				res.Flow[key] = flow

				if err := addFlowLimit(m, sys, y, busIdx, scenarioIdx, tp, flow, opts, neighbors, res.Theta); err != nil {
					return nil, err
				}

				// eGenAtBus >= load + eFlowAtBus
				genKey := busexpr.Key{BusIdx: busIdx, ScenarioIdx: scenarioIdx, TimepointID: tp.ID}
				gen := busGen.Expr(genKey)
				load := sys.Loads.At(sys.Buses[busIdx].Name, sc.Name, tp.ID)

				balance := gen.Plus(flow.Scale(-1))
				if err := m.AddLinearConstraint(balance, solver.GE, load); err != nil {
					return nil, fmt.Errorf("transmission: balance constraint at bus %d: %w", busIdx, err)
				}
			}
		}
	}

	return res, nil
}

func addFlowLimit(m solver.Model, sys *model.System, y *admittance.Matrix, busIdx, scenarioIdx int, tp model.Timepoint, flow solver.LinearExpr, opts runopts.Options, neighbors map[int][]neighbor, theta map[int]map[int]map[int]solver.Var) error {
	if !opts.PerLineFlowLimit {
		maxFlow := y.MaxFlow[busIdx]
		if err := m.AddLinearConstraint(flow, solver.LE, maxFlow); err != nil {
			return fmt.Errorf("transmission: aggregate flow-limit (upper) at bus %d: %w", busIdx, err)
		}
		if err := m.AddLinearConstraint(flow, solver.GE, -maxFlow); err != nil {
			return fmt.Errorf("transmission: aggregate flow-limit (lower) at bus %d: %w", busIdx, err)
		}
		return nil
	}

	for _, l := range sys.Lines {
		fromIdx, toIdx := sys.BusIndex[l.FromBus], sys.BusIndex[l.ToBus]
		if fromIdx != busIdx {
			continue
		}
		b := imag(1 / complex(l.R, l.X))
		lineFlow := solver.LinearExpr{}.
			Add(theta[fromIdx][scenarioIdx][tp.ID], b).
			Add(theta[toIdx][scenarioIdx][tp.ID], -b)
		if err := m.AddLinearConstraint(lineFlow, solver.LE, l.RateMW); err != nil {
			return fmt.Errorf("transmission: per-line flow-limit (upper) for %q: %w", l.Name, err)
		}
		if err := m.AddLinearConstraint(lineFlow, solver.GE, -l.RateMW); err != nil {
			return fmt.Errorf("transmission: per-line flow-limit (lower) for %q: %w", l.Name, err)
		}
	}
	return nil
}

func buildNeighborLists(y *admittance.Matrix) map[int][]neighbor {
	out := make(map[int][]neighbor, y.N)
	for i := 0; i < y.N; i++ {
		for j := 0; j < y.N; j++ {
			if i == j {
				continue
			}
			b := y.B(i, j)
			if b == 0 {
				continue
			}
			out[i] = append(out[i], neighbor{busIdx: j, b: b})
		}
	}
	return out
}
