package loader

import "github.com/ream-lab/catex/internal/model"

func loadStorages(path string) ([]model.EnergyStorage, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	storages := make([]model.EnergyStorage, 0, len(t.rows))
	for i, row := range t.rows {
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		busName, err := t.str(row, i+2, "bus_name")
		if err != nil {
			return nil, err
		}
		efficiency, err := t.float(row, i+2, "efficiency")
		if err != nil {
			return nil, err
		}
		duration, err := t.float(row, i+2, "duration")
		if err != nil {
			return nil, err
		}
		storages = append(storages, model.EnergyStorage{
			Name:           name,
			Tech:           t.strOr(row, i+2, "tech", ""),
			BusName:        busName,
			InvestCost:     t.floatOr(row, i+2, "invest_cost", 0),
			ExistPowerCap:  t.floatOr(row, i+2, "exist_power_cap", 0),
			ExistEnergyCap: t.floatOr(row, i+2, "exist_energy_cap", 0),
			VarOMCost:      t.floatOr(row, i+2, "var_om_cost", 0),
			Efficiency:     efficiency,
			Duration:       duration,
		})
	}
	return storages, nil
}
