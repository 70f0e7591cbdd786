package loader

import (
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/timescale"
)

func loadTimeseries(path string) ([]model.Timeseries, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	out := make([]model.Timeseries, 0, len(t.rows))
	for i, row := range t.rows {
		id, err := t.intVal(row, i+2, "id")
		if err != nil {
			return nil, err
		}
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		dur, err := t.float(row, i+2, "duration_of_timepoints")
		if err != nil {
			return nil, err
		}
		numTp, err := t.intVal(row, i+2, "number_timepoints")
		if err != nil {
			return nil, err
		}
		scale, err := t.float(row, i+2, "scale_to_period")
		if err != nil {
			return nil, err
		}
		out = append(out, model.Timeseries{
			ID:                   id,
			Name:                 name,
			DurationOfTimepoints: dur,
			NumberTimepoints:     numTp,
			ScaleToPeriod:        scale,
		})
	}
	return out, nil
}

// loadTimepoints reads the bare input fields (id, name, timeseries_name);
// the derived fields (duration_hrs, weight, prev_timepoint_id) are filled in
// by internal/timescale.Resolve.
func loadTimepoints(path string) ([]model.Timepoint, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	out := make([]model.Timepoint, 0, len(t.rows))
	for i, row := range t.rows {
		id, err := t.intVal(row, i+2, "id")
		if err != nil {
			return nil, err
		}
		name, err := t.str(row, i+2, "name")
		if err != nil {
			return nil, err
		}
		tsName, err := t.str(row, i+2, "timeseries_name")
		if err != nil {
			return nil, err
		}
		out = append(out, model.Timepoint{ID: id, Name: name, TimeseriesName: tsName})
	}
	return out, nil
}

// loadAndResolveTimescale loads timeseries.csv and timepoints.csv and runs
// internal/timescale.Resolve against them.
func loadAndResolveTimescale(timeseriesPath, timepointsPath string) ([]model.Timeseries, []model.Timepoint, error) {
	ts, err := loadTimeseries(timeseriesPath)
	if err != nil {
		return nil, nil, err
	}
	tps, err := loadTimepoints(timepointsPath)
	if err != nil {
		return nil, nil, err
	}
	return timescale.Resolve(ts, tps)
}

// timepointIDByName builds the name->id index loads.csv and
// capacity_factors.csv need to resolve their timepoint_name column.
func timepointIDByName(timepoints []model.Timepoint) map[string]int {
	out := make(map[string]int, len(timepoints))
	for _, tp := range timepoints {
		out[tp.Name] = tp.ID
	}
	return out
}
