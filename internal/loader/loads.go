package loader

import (
	"fmt"

	"github.com/ream-lab/catex/internal/model"
)

func loadLoads(path string, tpIDByName map[string]int) (model.Loads, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	loads := make(model.Loads, len(t.rows))
	for i, row := range t.rows {
		busName, err := t.str(row, i+2, "bus_name")
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
		mw, err := t.float(row, i+2, "mw")
		if err != nil {
			return nil, err
		}

		tpID, ok := tpIDByName[tpName]
		if !ok {
			return nil, fmt.Errorf("loader: %s row %d: unknown timepoint_name %q", path, i+2, tpName)
		}

		loads[model.LoadKey{BusName: busName, ScenarioName: scenarioName, TimepointID: tpID}] = mw
	}
	return loads, nil
}
