// Package policy implements the Policy Submodel: the system-wide
// angle-difference limit applied to every bus's angle variable.
package policy

import (
	"fmt"

	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/solver"
)

// Build constrains every bus angle to [-limit, limit] when sys.Policy sets a
// positive MaxDiffAngleRadians. A zero limit means the policy is not
// configured and no constraints are added (the bigAngle box bound from
// internal/transmission still applies).
func Build(m solver.Model, sys *model.System, theta map[int]map[int]map[int]solver.Var) error {
	limit := sys.Policy.MaxDiffAngleRadians
	if limit <= 0 {
		return nil
	}

	for busIdx := range sys.Buses {
		for _, sc := range sys.Scenarios {
			scenarioIdx := sys.ScenarioIndex[sc.Name]
			for _, tp := range sys.Timepoints {
				th := theta[busIdx][scenarioIdx][tp.ID]

				upper := solver.LinearExpr{}.Add(th, 1)
				if err := m.AddLinearConstraint(upper, solver.LE, limit); err != nil {
					return fmt.Errorf("policy: angle upper-bound at bus %d: %w", busIdx, err)
				}
				lower := solver.LinearExpr{}.Add(th, 1)
				if err := m.AddLinearConstraint(lower, solver.GE, -limit); err != nil {
					return fmt.Errorf("policy: angle lower-bound at bus %d: %w", busIdx, err)
				}
			}
		}
	}
	return nil
}
