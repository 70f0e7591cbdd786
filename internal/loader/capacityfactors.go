package loader

import (
	"fmt"

	"github.com/ream-lab/catex/internal/model"
)

func loadCapacityFactors(path string, tpIDByName map[string]int) (model.CapacityFactors, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cfs := make(model.CapacityFactors, len(t.rows))
	for i, row := range t.rows {
		genName, err := t.str(row, i+2, "generator_name")
		if err != nil {
			return nil, err
		}
		scenarioName, err := t.str(row, i+2, "scenario_name")
		if err != nil {
			return nil, err
		}
		tpName, err := t.str(row, i+2, "timepoint_name")
		if err != nil {
			return nil, err
		}
		cf, err := t.float(row, i+2, "cf")
		if err != nil {
			return nil, err
		}

		tpID, ok := tpIDByName[tpName]
		if !ok {
			return nil, fmt.Errorf("loader: %s row %d: unknown timepoint_name %q", path, i+2, tpName)
		}

		cfs[model.CapacityFactorKey{GeneratorName: genName, ScenarioName: scenarioName, TimepointID: tpID}] = cf
	}
	return cfs, nil
}

// tagGeneratorStages retags every generator with at least one capacity-factor
// entry as StageVariable: a generator is variable iff it appears in
// capacity_factors.csv. The implicit classification is made explicit here
// rather than re-checked in every submodel.
func tagGeneratorStages(gens []model.Generator, cfs model.CapacityFactors) {
	variable := make(map[string]bool, len(cfs))
	for key := range cfs {
		variable[key.GeneratorName] = true
	}
	for i := range gens {
		if variable[gens[i].Name] {
			gens[i].Stage = model.StageVariable
		}
	}
}
