package loader

import "github.com/ream-lab/catex/internal/model"

func loadScenarios(path string) ([]model.Scenario, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	scenarios := make([]model.Scenario, 0, len(t.rows))
	for i, row := range t.rows {
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		prob, err := t.float(row, i+2, "probability")
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, model.Scenario{Name: name, Probability: prob})
	}
	return scenarios, nil
}
