// Package storage implements the Storage Submodel: capacity,
// charge/discharge power, and state-of-energy variables with a cyclic
// boundary condition across each timeseries, plus its net bus injection and
// cost contributions.
package storage

import (
	"fmt"
	"math"

	"github.com/ream-lab/catex/internal/busexpr"
	"github.com/ream-lab/catex/internal/costaccum"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
)

// bigCap bounds otherwise-unbounded investment/dispatch variables. Storage
// power/energy capacity has no explicit upper bound (unlike generators'
// cap_limit); a large finite bound keeps every solver.Model
// implementation (including the bounded-box in-memory test double in
// internal/solver/solvertest) well-posed.
const bigCap = 1e7

// Result holds every variable the submodel registered.
type Result struct {
	PowerCap  map[string]solver.Var                       // [storage] installed power capacity
	EnergyCap map[string]solver.Var                       // [storage] installed energy capacity
	Charge    map[string]map[string]map[int]solver.Var    // [storage][scenario][timepointID]
	Discharge map[string]map[string]map[int]solver.Var    // [storage][scenario][timepointID]
	SOE       map[string]map[string]map[int]solver.Var    // [storage][scenario][timepointID]
}

// Build registers every storage unit's variables/constraints/cost terms.
func Build(m solver.Model, sys *model.System, bus *busexpr.Builder, accum *costaccum.Accumulator, opts runopts.Options) (*Result, error) {
	res := &Result{
		PowerCap:  make(map[string]solver.Var),
		EnergyCap: make(map[string]solver.Var),
		Charge:    make(map[string]map[string]map[int]solver.Var),
		Discharge: make(map[string]map[string]map[int]solver.Var),
		SOE:       make(map[string]map[string]map[int]solver.Var),
	}

	numScenarios := len(sys.Scenarios)
	tpByID := make(map[int]model.Timepoint, len(sys.Timepoints))
	for _, tp := range sys.Timepoints {
		tpByID[tp.ID] = tp
	}

	for _, e := range sys.Storages {
		busIdx, ok := sys.BusIndex[e.BusName]
		if !ok {
			return nil, fmt.Errorf("storage: bus %q not found for storage %q", e.BusName, e.Name)
		}

		powerCap, err := m.AddVariable(e.ExistPowerCap, bigCap)
		if err != nil {
			return nil, fmt.Errorf("storage: add power-capacity var for %q: %w", e.Name, err)
		}
		res.PowerCap[e.Name] = powerCap

		energyCap, err := m.AddVariable(e.ExistEnergyCap, bigCap*e.Duration)
		if err != nil {
			return nil, fmt.Errorf("storage: add energy-capacity var for %q: %w", e.Name, err)
		}
		res.EnergyCap[e.Name] = energyCap

		// vEECAP[e] = duration * vEPCAP[e]
		energyDef := solver.LinearExpr{}.Add(energyCap, 1).Add(powerCap, -e.Duration)
		if err := m.AddLinearConstraint(energyDef, solver.EQ, 0); err != nil {
			return nil, fmt.Errorf("storage: energy-capacity definition for %q: %w", e.Name, err)
		}

		accum.AddToPeriodCost(solver.QuadExpr{}.AddLinear(powerCap, e.InvestCost))

		res.Charge[e.Name] = make(map[string]map[int]solver.Var, numScenarios)
		res.Discharge[e.Name] = make(map[string]map[int]solver.Var, numScenarios)
		res.SOE[e.Name] = make(map[string]map[int]solver.Var, numScenarios)

		sqrtEff := math.Sqrt(e.Efficiency)

		for _, sc := range sys.Scenarios {
			weight := opts.ScenarioWeight(sc.Probability, numScenarios)
			scenarioIdx := sys.ScenarioIndex[sc.Name]

			res.Charge[e.Name][sc.Name] = make(map[int]solver.Var, len(sys.Timepoints))
			res.Discharge[e.Name][sc.Name] = make(map[int]solver.Var, len(sys.Timepoints))
			res.SOE[e.Name][sc.Name] = make(map[int]solver.Var, len(sys.Timepoints))

			for _, tp := range sys.Timepoints {
				chg, err := m.AddVariable(0, bigCap)
				if err != nil {
					return nil, fmt.Errorf("storage: add charge var for %q scenario %q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}
				dis, err := m.AddVariable(0, bigCap)
				if err != nil {
					return nil, fmt.Errorf("storage: add discharge var for %q scenario %q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}
				soe, err := m.AddVariable(0, bigCap*e.Duration)
				if err != nil {
					return nil, fmt.Errorf("storage: add SOE var for %q scenario %q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}

				res.Charge[e.Name][sc.Name][tp.ID] = chg
				res.Discharge[e.Name][sc.Name][tp.ID] = dis
				res.SOE[e.Name][sc.Name][tp.ID] = soe

				// vCHG + vDIS <= vEPCAP
				powerLimit := solver.LinearExpr{}.Add(chg, 1).Add(dis, 1).Add(powerCap, -1)
				if err := m.AddLinearConstraint(powerLimit, solver.LE, 0); err != nil {
					return nil, fmt.Errorf("storage: power-limit constraint for %q scenario %q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}

				// vSOE <= vEECAP
				soeLimit := solver.LinearExpr{}.Add(soe, 1).Add(energyCap, -1)
				if err := m.AddLinearConstraint(soeLimit, solver.LE, 0); err != nil {
					return nil, fmt.Errorf("storage: SOE upper-bound constraint for %q scenario %q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}

				// Net injection = discharge - charge.
				key := busexpr.Key{BusIdx: busIdx, ScenarioIdx: scenarioIdx, TimepointID: tp.ID}
				bus.AddVar(key, dis, 1)
				bus.AddVar(key, chg, -1)

				cost := solver.QuadExpr{}.AddLinear(chg, e.VarOMCost).AddLinear(dis, e.VarOMCost).Scale(weight)
				accum.AddToTimepointCost(tp.ID, cost)
			}

			// Dynamics need the previous timepoint's SOE variable, and the
			// first timepoint of each timeseries wraps to the last, so every
			// SOE variable must exist before any dynamics constraint is added.
			for _, tp := range sys.Timepoints {
				soe := res.SOE[e.Name][sc.Name][tp.ID]
				chg := res.Charge[e.Name][sc.Name][tp.ID]
				dis := res.Discharge[e.Name][sc.Name][tp.ID]
				prevSOE, ok := res.SOE[e.Name][sc.Name][tp.PrevTimepointID]
				if !ok {
					return nil, fmt.Errorf("storage: prev timepoint %d for %q has no SOE variable", tp.PrevTimepointID, tp.Name)
				}

				// vSOE[t] = vSOE[prev(t)] + sqrt(eff)*vCHG[t]*dur - (1/sqrt(eff))*vDIS[t]*dur
				dur := tp.DurationHrs
				dynamics := solver.LinearExpr{}.
					Add(soe, 1).
					Add(prevSOE, -1).
					Add(chg, -sqrtEff*dur).
					Add(dis, dur/sqrtEff)
				if err := m.AddLinearConstraint(dynamics, solver.EQ, 0); err != nil {
					return nil, fmt.Errorf("storage: SOE dynamics constraint for %q scenario %q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}
			}
		}
	}

	return res, nil
}
