package loader

import "github.com/ream-lab/catex/internal/model"

func loadGenerators(path string) ([]model.Generator, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	gens := make([]model.Generator, 0, len(t.rows))
	for i, row := range t.rows {
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		busName, err := t.str(row, i+2, "bus_name")
		if err != nil {
			return nil, err
		}
		c2, err := t.float(row, i+2, "c2")
		if err != nil {
			return nil, err
		}
		c1, err := t.float(row, i+2, "c1")
		if err != nil {
			return nil, err
		}
		c0, err := t.float(row, i+2, "c0")
		if err != nil {
			return nil, err
		}
		investCost, err := t.float(row, i+2, "invest_cost")
		if err != nil {
			return nil, err
		}
		existCap, err := t.float(row, i+2, "exist_cap")
		if err != nil {
			return nil, err
		}
		capLimit, err := t.float(row, i+2, "cap_limit")
		if err != nil {
			return nil, err
		}
		gens = append(gens, model.Generator{
			Name:       name,
			Tech:       t.strOr(row, i+2, "tech", ""),
			BusName:    busName,
			C2:         c2,
			C1:         c1,
			C0:         c0,
			InvestCost: investCost,
			ExistCap:   existCap,
			CapLimit:   capLimit,
			VarOMCost:  t.floatOr(row, i+2, "var_om_cost", 0),
			Stage:      model.StageDispatchable, // retagged by loader.tagGeneratorStages once capacity factors are loaded
		})
	}
	return gens, nil
}
