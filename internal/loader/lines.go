package loader

import "github.com/ream-lab/catex/internal/model"

func loadLines(path string) ([]model.Line, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	lines := make([]model.Line, 0, len(t.rows))
	for i, row := range t.rows {
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		fromBus, err := t.str(row, i+2, "from_bus")
		if err != nil {
			return nil, err
		}
		toBus, err := t.str(row, i+2, "to_bus")
		if err != nil {
			return nil, err
		}
		rate, err := t.float(row, i+2, "rate")
		if err != nil {
			return nil, err
		}
		r, err := t.float(row, i+2, "r")
		if err != nil {
			return nil, err
		}
		x, err := t.float(row, i+2, "x")
		if err != nil {
			return nil, err
		}
		lines = append(lines, model.Line{
			Name:    name,
			FromBus: fromBus,
			ToBus:   toBus,
			RateMW:  rate,
			R:       r,
			X:       x,
			G:       t.floatOr(row, i+2, "g", 0),
			B:       t.floatOr(row, i+2, "b", 0),
		})
	}
	return lines, nil
}
