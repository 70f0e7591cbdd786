package timescale

import (
	"testing"

	"github.com/ream-lab/catex/internal/model"
)

func TestResolveWrapsCyclically(t *testing.T) {
	ts := []model.Timeseries{
		{ID: 0, Name: "ts1", DurationOfTimepoints: 2, ScaleToPeriod: 10, NumberTimepoints: 3},
	}
	tps := []model.Timepoint{
		{ID: 0, Name: "t0", TimeseriesName: "ts1"},
		{ID: 1, Name: "t1", TimeseriesName: "ts1"},
		{ID: 2, Name: "t2", TimeseriesName: "ts1"},
	}

	outTS, outTP, err := Resolve(ts, tps)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := outTS[0].TimepointIDs; len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("unexpected timepoint ids: %v", got)
	}

	byID := make(map[int]model.Timepoint)
	for _, tp := range outTP {
		byID[tp.ID] = tp
	}
	if byID[0].PrevTimepointID != 2 {
		t.Fatalf("expected first timepoint's prev to wrap to last (2), got %d", byID[0].PrevTimepointID)
	}
	if byID[1].PrevTimepointID != 0 {
		t.Fatalf("expected timepoint 1's prev to be 0, got %d", byID[1].PrevTimepointID)
	}
	if byID[2].PrevTimepointID != 1 {
		t.Fatalf("expected timepoint 2's prev to be 1, got %d", byID[2].PrevTimepointID)
	}
	if byID[0].Weight != 20 {
		t.Fatalf("expected weight = duration*scale = 20, got %g", byID[0].Weight)
	}
}

func TestResolveSingleTimepointWrapsToItself(t *testing.T) {
	ts := []model.Timeseries{{ID: 0, Name: "ts1", DurationOfTimepoints: 1, ScaleToPeriod: 1, NumberTimepoints: 1}}
	tps := []model.Timepoint{{ID: 0, Name: "t0", TimeseriesName: "ts1"}}

	_, outTP, err := Resolve(ts, tps)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if outTP[0].PrevTimepointID != 0 {
		t.Fatalf("single-timepoint timeseries must wrap to itself, got prev=%d", outTP[0].PrevTimepointID)
	}
}

func TestResolveRejectsNonContiguousIDs(t *testing.T) {
	ts := []model.Timeseries{{ID: 0, Name: "ts1", DurationOfTimepoints: 1, ScaleToPeriod: 1, NumberTimepoints: 2}}
	tps := []model.Timepoint{
		{ID: 0, Name: "t0", TimeseriesName: "ts1"},
		{ID: 5, Name: "t1", TimeseriesName: "ts1"},
	}
	if _, _, err := Resolve(ts, tps); err == nil {
		t.Fatalf("expected error for non-contiguous timepoint ids")
	}
}

func TestResolveRejectsUnknownTimeseries(t *testing.T) {
	tps := []model.Timepoint{{ID: 0, Name: "t0", TimeseriesName: "missing"}}
	if _, _, err := Resolve(nil, tps); err == nil {
		t.Fatalf("expected error for timepoint referencing unknown timeseries")
	}
}
