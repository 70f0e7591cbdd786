package results

import (
	"fmt"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
)

func evalQuad(m solver.Model, e solver.QuadExpr) (float64, error) {
	sum := e.Linear.Constant
	for _, t := range e.Linear.Terms {
		v, err := m.Value(t.V)
		if err != nil {
			return 0, fmt.Errorf("results: eval linear term: %w", err)
		}
		sum += t.Coeff * v
	}
	for _, q := range e.Quad {
		v1, err := m.Value(q.V1)
		if err != nil {
			return 0, fmt.Errorf("results: eval quad term: %w", err)
		}
		v2, err := m.Value(q.V2)
		if err != nil {
			return 0, fmt.Errorf("results: eval quad term: %w", err)
		}
		sum += q.Coeff * v1 * v2
	}
	return sum, nil
}

// CostSummary is the itemized cost breakdown of a solved model, matching the
// component rows of costs_itemized.csv.
type CostSummary struct {
	CostPerTimepoint float64
	CostPerPeriod    float64
	TotalCost        float64
}

// Summary evaluates the composer's two shared cost registers against the
// solved primal values: Sum(weight_t * CostPerTimepoint[t]) plus
// CostPerPeriod.
func Summary(m solver.Model, sys *model.System, res *expansion.Result) (CostSummary, error) {
	perPeriod, err := evalQuad(m, res.Accum.PeriodCost())
	if err != nil {
		return CostSummary{}, err
	}

	perTimepoint := 0.0
	for _, tp := range sys.Timepoints {
		cost, err := evalQuad(m, res.Accum.TimepointCost(tp.ID))
		if err != nil {
			return CostSummary{}, err
		}
		perTimepoint += tp.Weight * cost
	}

	return CostSummary{
		CostPerTimepoint: perTimepoint,
		CostPerPeriod:    perPeriod,
		TotalCost:        perTimepoint + perPeriod,
	}, nil
}

func writeCostsItemized(path string, m solver.Model, sys *model.System, res *expansion.Result) error {
	sum, err := Summary(m, sys, res)
	if err != nil {
		return err
	}
	return writeCostRows(path, sum.CostPerTimepoint, sum.CostPerPeriod)
}

// writeGenCostsItemized recomputes just the generator submodel's cost
// contribution from the solved dispatch/capacity values, since the shared
// accumulator mixes every submodel's terms together.
func writeGenCostsItemized(path string, m solver.Model, sys *model.System, res *expansion.Result, opts runopts.Options) error {
	numScenarios := len(sys.Scenarios)

	perPeriod := 0.0
	perTimepoint := 0.0

	for _, g := range sys.Generators {
		if g.IsVariable() {
			capVal, err := sumVariableCapacityCost(m, sys, res, g, numScenarios, opts)
			if err != nil {
				return err
			}
			perPeriod += capVal

			dispatchCost, err := sumVariableDispatchCost(m, sys, res, g, numScenarios, opts)
			if err != nil {
				return err
			}
			perTimepoint += dispatchCost
			continue
		}

		capVal, err := m.Value(res.Generators.CapGN[g.Name])
		if err != nil {
			return fmt.Errorf("results: read capacity for %q: %w", g.Name, err)
		}
		perPeriod += g.InvestCost * capVal

		for _, tp := range sys.Timepoints {
			gen, err := m.Value(res.Generators.GenGN[g.Name][tp.ID])
			if err != nil {
				return fmt.Errorf("results: read dispatch for %q at %q: %w", g.Name, tp.Name, err)
			}
			cost := g.C2*gen*gen + (g.C1+g.VarOMCost)*gen + g.C0
			perTimepoint += tp.Weight * cost
		}
	}

	return writeCostRows(path, perTimepoint, perPeriod)
}

func sumVariableCapacityCost(m solver.Model, sys *model.System, res *expansion.Result, g model.Generator, numScenarios int, opts runopts.Options) (float64, error) {
	total := 0.0
	for _, sc := range sys.Scenarios {
		weight := opts.ScenarioWeight(sc.Probability, numScenarios)
		capVal, err := m.Value(res.Generators.CapGV[g.Name][sc.Name])
		if err != nil {
			return 0, fmt.Errorf("results: read variable capacity for %q/%q: %w", g.Name, sc.Name, err)
		}
		total += weight * g.InvestCost * capVal
	}
	return total, nil
}

func sumVariableDispatchCost(m solver.Model, sys *model.System, res *expansion.Result, g model.Generator, numScenarios int, opts runopts.Options) (float64, error) {
	total := 0.0
	for _, sc := range sys.Scenarios {
		weight := opts.ScenarioWeight(sc.Probability, numScenarios)
		for _, tp := range sys.Timepoints {
			gen, err := m.Value(res.Generators.GenGV[g.Name][sc.Name][tp.ID])
			if err != nil {
				return 0, fmt.Errorf("results: read variable dispatch for %q/%q at %q: %w", g.Name, sc.Name, tp.Name, err)
			}
			cost := g.C2*gen*gen + (g.C1+g.VarOMCost)*gen + g.C0
			total += tp.Weight * weight * cost
		}
	}
	return total, nil
}

func writeCostRows(path string, perTimepoint, perPeriod float64) error {
	w, f, err := newWriter(path, []string{"component", "cost"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	rows := [][]string{
		{"CostPerTimepoint", fmtFloat(perTimepoint)},
		{"CostPerPeriod", fmtFloat(perPeriod)},
		{"TotalCost", fmtFloat(perTimepoint + perPeriod)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("results: write cost row %v: %w", row, err)
		}
	}
	return w.Error()
}
