package loader

import "github.com/ream-lab/catex/internal/model"

func loadBuses(path string) ([]model.Bus, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	buses := make([]model.Bus, 0, len(t.rows))
	for i, row := range t.rows {
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		slack, err := t.boolVal(row, i+2, "slack")
		if err != nil {
			return nil, err
		}
		buses = append(buses, model.Bus{
			Name:  name,
			KV:    t.floatOr(row, i+2, "kv", 0),
			Type:  t.strOr(row, i+2, "type", ""),
			Lat:   t.floatOr(row, i+2, "lat", 0),
			Lon:   t.floatOr(row, i+2, "lon", 0),
			Slack: slack,
		})
	}
	return buses, nil
}
