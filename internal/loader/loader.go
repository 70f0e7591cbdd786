package loader

import (
	"path/filepath"

	"github.com/ream-lab/catex/internal/model"
)

// Load reads every input CSV from dir/inputs and assembles a validated
// model.System. Input-shape errors (missing file, missing required column,
// non-numeric value in a required numeric column) abort immediately, naming
// the offending file. Optional columns (for example bus kv/lat/lon, line
// g/b, generator var_om_cost) are not type-checked: an absent, empty or
// non-numeric value falls back to 0.
func Load(dir string) (*model.System, error) {
	inputs := filepath.Join(dir, "inputs")

	scenarios, err := loadScenarios(filepath.Join(inputs, "scenarios.csv"))
	if err != nil {
		return nil, err
	}
	buses, err := loadBuses(filepath.Join(inputs, "buses.csv"))
	if err != nil {
		return nil, err
	}
	lines, err := loadLines(filepath.Join(inputs, "lines.csv"))
	if err != nil {
		return nil, err
	}
	timeseries, timepoints, err := loadAndResolveTimescale(
		filepath.Join(inputs, "timeseries.csv"),
		filepath.Join(inputs, "timepoints.csv"),
	)
	if err != nil {
		return nil, err
	}
	generators, err := loadGenerators(filepath.Join(inputs, "generators.csv"))
	if err != nil {
		return nil, err
	}
	storages, err := loadStorages(filepath.Join(inputs, "energy_storage.csv"))
	if err != nil {
		return nil, err
	}

	tpIDByName := timepointIDByName(timepoints)

	loads, err := loadLoads(filepath.Join(inputs, "loads.csv"), tpIDByName)
	if err != nil {
		return nil, err
	}
	capacityFactors, err := loadCapacityFactors(filepath.Join(inputs, "capacity_factors.csv"), tpIDByName)
	if err != nil {
		return nil, err
	}
	tagGeneratorStages(generators, capacityFactors)

	policy, err := loadPolicy(filepath.Join(inputs, "max_diffangle.csv"))
	if err != nil {
		return nil, err
	}

	return model.New(buses, lines, generators, storages, scenarios, timeseries, timepoints, loads, capacityFactors, policy)
}
