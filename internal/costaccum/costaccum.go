// Package costaccum holds the two shared cost-expression accumulators every
// submodel writes into additively. The composer owns one
// Accumulator and passes it by reference into each submodel in turn; this
// replaces the source's "unregister and re-register a named model-level
// expression" trick with an explicit builder object.
package costaccum

import "github.com/ream-lab/catex/internal/solver"

// Accumulator is the composer's (eCostPerPeriod, eCostPerTimepoint[t])
// pair. Mutation is additive and order-independent: submodels may add to it
// in any order. It is not synchronized, so all additions must come from one
// goroutine (assembly is single-threaded).
type Accumulator struct {
	periodCost    solver.QuadExpr
	timepointCost map[int]solver.QuadExpr
}

// New creates an Accumulator with a zeroed timepoint-cost entry for every id
// in timepointIDs, per the composer's "Initializes eCostPerPeriod := 0,
// eCostPerTimepoint[t] := 0 for all t" step.
func New(timepointIDs []int) *Accumulator {
	a := &Accumulator{timepointCost: make(map[int]solver.QuadExpr, len(timepointIDs))}
	for _, id := range timepointIDs {
		a.timepointCost[id] = solver.QuadExpr{}
	}
	return a
}

// AddToPeriodCost adds term to the per-period cost register.
func (a *Accumulator) AddToPeriodCost(term solver.QuadExpr) {
	a.periodCost = a.periodCost.Plus(term)
}

// AddToTimepointCost adds term to the per-timepoint cost register for
// timepointID.
func (a *Accumulator) AddToTimepointCost(timepointID int, term solver.QuadExpr) {
	a.timepointCost[timepointID] = a.timepointCost[timepointID].Plus(term)
}

// PeriodCost returns the accumulated per-period cost expression.
func (a *Accumulator) PeriodCost() solver.QuadExpr { return a.periodCost }

// TimepointCost returns the accumulated per-timepoint cost expression for
// timepointID (zero expression if nothing was ever added).
func (a *Accumulator) TimepointCost(timepointID int) solver.QuadExpr {
	return a.timepointCost[timepointID]
}

// TimepointIDs returns the set of timepoint ids this accumulator tracks, in
// no particular order; callers that need a stable order should sort it.
func (a *Accumulator) TimepointIDs() []int {
	ids := make([]int, 0, len(a.timepointCost))
	for id := range a.timepointCost {
		ids = append(ids, id)
	}
	return ids
}

// Objective assembles the composer's final objective: Sum(weight_t *
// CostPerTimepoint[t]) + CostPerPeriod, given each timepoint's
// weight.
func (a *Accumulator) Objective(weightByTimepoint map[int]float64) solver.QuadExpr {
	total := a.periodCost
	for id, cost := range a.timepointCost {
		total = total.Plus(cost.Scale(weightByTimepoint[id]))
	}
	return total
}
