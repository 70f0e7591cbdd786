// Package timescale links timepoints to their timeseries and derives the
// per-timepoint weight and cyclic previous-timepoint pointer used by the
// storage submodel's state-of-energy dynamics.
package timescale

import (
	"fmt"
	"sort"

	"github.com/ream-lab/catex/internal/model"
)

// Resolve takes raw timeseries and timepoints as loaded from CSV (timepoints
// carry only ID, Name and TimeseriesName; timeseries carry everything except
// TimepointIDs) and returns copies with every derived field filled in:
//   - timeseries.TimepointIDs, in timepoint-id order
//   - timepoint.TimeseriesID, DurationHrs, Weight
//   - timepoint.PrevTimepointID, wrapping cyclically within its timeseries
//
// Resolve requires that timepoint ids within a timeseries form a contiguous
// range; this is what makes "prev := id-1, wrapping to last at the start" a
// valid closed loop.
func Resolve(timeseries []model.Timeseries, timepoints []model.Timepoint) ([]model.Timeseries, []model.Timepoint, error) {
	tsByName := make(map[string]int, len(timeseries))
	outTS := make([]model.Timeseries, len(timeseries))
	for i, ts := range timeseries {
		outTS[i] = ts
		outTS[i].TimepointIDs = nil
		tsByName[ts.Name] = i
	}

	membership := make(map[string][]int, len(timeseries))
	for _, tp := range timepoints {
		if _, ok := tsByName[tp.TimeseriesName]; !ok {
			return nil, nil, fmt.Errorf("timescale: timepoint %q references unknown timeseries %q", tp.Name, tp.TimeseriesName)
		}
		membership[tp.TimeseriesName] = append(membership[tp.TimeseriesName], tp.ID)
	}

	for name, ids := range membership {
		sort.Ints(ids)
		if err := requireContiguous(name, ids); err != nil {
			return nil, nil, err
		}
		outTS[tsByName[name]].TimepointIDs = ids
	}

	prevOf := make(map[int]int, len(timepoints))
	for _, ids := range membership {
		last := ids[len(ids)-1]
		prev := last
		for _, id := range ids {
			prevOf[id] = prev
			prev = id
		}
	}

	outTP := make([]model.Timepoint, len(timepoints))
	for i, tp := range timepoints {
		idx := tsByName[tp.TimeseriesName]
		ts := outTS[idx]
		tp.TimeseriesID = ts.ID
		tp.DurationHrs = ts.DurationOfTimepoints
		tp.Weight = ts.DurationOfTimepoints * ts.ScaleToPeriod
		tp.PrevTimepointID = prevOf[tp.ID]
		outTP[i] = tp
	}

	return outTS, outTP, nil
}

// requireContiguous checks that ids form a contiguous integer range, which
// is what lets "first's prev := last" produce a true cyclic boundary rather
// than an arbitrary jump.
func requireContiguous(timeseriesName string, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("timescale: timeseries %q has no timepoints", timeseriesName)
	}
	start := ids[0]
	for i, id := range ids {
		if id != start+i {
			return fmt.Errorf("timescale: timeseries %q timepoint ids are not contiguous (expected %d, got %d)", timeseriesName, start+i, id)
		}
	}
	return nil
}
