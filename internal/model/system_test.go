package model

import "testing"

func twoBusSystem(t *testing.T) *System {
	t.Helper()
	buses := []Bus{
		{Name: "A", Slack: true},
		{Name: "B"},
	}
	lines := []Line{
		{Name: "A-B", FromBus: "A", ToBus: "B", RateMW: 100, X: 0.1},
	}
	gens := []Generator{
		{Name: "gA", BusName: "A", C1: 10, CapLimit: 1000, Stage: StageDispatchable},
	}
	scenarios := []Scenario{{Name: "s1", Probability: 1}}
	ts := []Timeseries{{ID: 0, Name: "ts1", DurationOfTimepoints: 1, NumberTimepoints: 1, ScaleToPeriod: 1, TimepointIDs: []int{0}}}
	tps := []Timepoint{{ID: 0, Name: "t1", TimeseriesName: "ts1", TimeseriesID: 0, DurationHrs: 1, Weight: 1, PrevTimepointID: 0}}
	loads := Loads{{BusName: "B", ScenarioName: "s1", TimepointID: 0}: 50}

	sys, err := New(buses, lines, gens, nil, scenarios, ts, tps, loads, nil, Policy{MaxDiffAngleRadians: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys
}

func TestNewValidSystem(t *testing.T) {
	sys := twoBusSystem(t)
	if sys.SlackBus != "A" {
		t.Fatalf("expected slack bus A, got %q", sys.SlackBus)
	}
	if sys.Loads.At("B", "s1", 0) != 50 {
		t.Fatalf("expected load 50 at B")
	}
	if sys.Loads.At("A", "s1", 0) != 0 {
		t.Fatalf("expected zero load at A (sparse default)")
	}
}

func TestNewRejectsMissingSlack(t *testing.T) {
	buses := []Bus{{Name: "A"}, {Name: "B"}}
	gens := []Generator{{Name: "gA", BusName: "A", CapLimit: 1}}
	scenarios := []Scenario{{Name: "s1", Probability: 1}}
	ts := []Timeseries{{Name: "ts1", DurationOfTimepoints: 1, NumberTimepoints: 1, ScaleToPeriod: 1, TimepointIDs: []int{0}}}
	tps := []Timepoint{{ID: 0, Name: "t1", TimeseriesName: "ts1", DurationHrs: 1, Weight: 1}}

	_, err := New(buses, nil, gens, nil, scenarios, ts, tps, nil, nil, Policy{})
	if err == nil {
		t.Fatalf("expected error for missing slack bus")
	}
}

func TestNewRejectsBadProbabilitySum(t *testing.T) {
	sys := twoBusSystem(t)
	scenarios := append([]Scenario{}, sys.Scenarios...)
	scenarios[0].Probability = 0.5

	_, err := New(sys.Buses, sys.Lines, sys.Generators, sys.Storages, scenarios, sys.Timeseries, sys.Timepoints, sys.Loads, sys.CapacityFactors, sys.Policy)
	if err == nil {
		t.Fatalf("expected error for probabilities not summing to 1")
	}
}

func TestNewRejectsUnknownBusReference(t *testing.T) {
	sys := twoBusSystem(t)
	gens := append([]Generator{}, sys.Generators...)
	gens[0].BusName = "nonexistent"

	_, err := New(sys.Buses, sys.Lines, gens, sys.Storages, sys.Scenarios, sys.Timeseries, sys.Timepoints, sys.Loads, sys.CapacityFactors, sys.Policy)
	if err == nil {
		t.Fatalf("expected error for generator referencing unknown bus")
	}
}

func TestVariableGeneratorRequiresFullCapacityFactorCoverage(t *testing.T) {
	sys := twoBusSystem(t)
	gens := append([]Generator{}, sys.Generators...)
	gens = append(gens, Generator{Name: "gv", BusName: "B", CapLimit: 10, Stage: StageVariable})

	_, err := New(sys.Buses, sys.Lines, gens, sys.Storages, sys.Scenarios, sys.Timeseries, sys.Timepoints, sys.Loads, nil, sys.Policy)
	if err == nil {
		t.Fatalf("expected error: variable generator has no capacity factor entries")
	}

	cf := CapacityFactors{{GeneratorName: "gv", ScenarioName: "s1", TimepointID: 0}: 1}
	if _, err := New(sys.Buses, sys.Lines, gens, sys.Storages, sys.Scenarios, sys.Timeseries, sys.Timepoints, sys.Loads, cf, sys.Policy); err != nil {
		t.Fatalf("expected covered variable generator to validate, got %v", err)
	}
}

func TestGeneratorsAtBusSplitsByStage(t *testing.T) {
	sys := twoBusSystem(t)
	gn, gv := sys.GeneratorsAtBus("A")
	if len(gn) != 1 || len(gv) != 0 {
		t.Fatalf("expected 1 GN and 0 GV at bus A, got gn=%v gv=%v", gn, gv)
	}
}
