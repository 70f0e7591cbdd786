// Package report provides post-solve analysis over an already-solved
// expansion.Result. Congestion ranking orders buses by how often their
// flow-limit constraint binds across scenarios and timepoints. It is a
// read-only view over a solved model, not a new decision variable.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
)

// bindTolerance is how close |flow| must be to its limit to count as
// "binding," to absorb the in-memory test solver's convergence slack as well
// as a real QP solver's optimality tolerance.
const bindTolerance = 1e-3

// CongestionRank summarizes how often a bus's flow-limit constraint binds.
type CongestionRank struct {
	BusName       string
	BindCount     int
	TotalSamples  int
	BindFrequency float64
}

// Rank computes a CongestionRank per bus and returns them sorted by
// descending bind frequency. The bind check compares the bus's aggregate
// flow against Admittance.MaxFlow, so it is only a faithful measure of
// congestion under the default aggregate flow-limit formulation; when
// opts.PerLineFlowLimit is set the composer enforces per-line limits instead
// and this ranking is a coarser approximation.
func Rank(m solver.Model, sys *model.System, res *expansion.Result, opts runopts.Options) ([]CongestionRank, error) {
	ranks := make([]CongestionRank, 0, len(sys.Buses))

	for busIdx, bus := range sys.Buses {
		limit := res.Admittance.MaxFlow[busIdx]

		rank := CongestionRank{BusName: bus.Name}
		for _, sc := range sys.Scenarios {
			scenarioIdx := sys.ScenarioIndex[sc.Name]
			for _, tp := range sys.Timepoints {
				flowExpr := res.Transmission.FlowAt(busIdx, scenarioIdx, tp.ID)
				flow, err := evalLinear(m, flowExpr)
				if err != nil {
					return nil, fmt.Errorf("report: eval flow at bus %q: %w", bus.Name, err)
				}

				rank.TotalSamples++
				if limit-math.Abs(flow) <= bindTolerance {
					rank.BindCount++
				}
			}
		}
		if rank.TotalSamples > 0 {
			rank.BindFrequency = float64(rank.BindCount) / float64(rank.TotalSamples)
		}
		ranks = append(ranks, rank)
	}

	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].BindFrequency > ranks[j].BindFrequency
	})
	return ranks, nil
}

func evalLinear(m solver.Model, e solver.LinearExpr) (float64, error) {
	sum := e.Constant
	for _, t := range e.Terms {
		v, err := m.Value(t.V)
		if err != nil {
			return 0, err
		}
		sum += t.Coeff * v
	}
	return sum, nil
}
