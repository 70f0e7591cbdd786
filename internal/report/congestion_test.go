package report

import (
	"context"
	"testing"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver/solvertest"
)

func TestRankFlagsTightLineAsCongested(t *testing.T) {
	buses := []model.Bus{{Name: "A", Slack: true}, {Name: "B"}}
	lines := []model.Line{{Name: "l1", FromBus: "A", ToBus: "B", RateMW: 10, X: 0.1, R: 0.01}}
	gens := []model.Generator{
		{Name: "gn1", BusName: "A", C1: 10, CapLimit: 100, Stage: model.StageDispatchable},
	}
	scenarios := []model.Scenario{{Name: "s1", Probability: 1}}
	ts := []model.Timeseries{{ID: 0, Name: "ts1", DurationOfTimepoints: 1, NumberTimepoints: 1, ScaleToPeriod: 1, TimepointIDs: []int{0}}}
	tps := []model.Timepoint{{ID: 0, Name: "t0", TimeseriesName: "ts1", TimeseriesID: 0, DurationHrs: 1, Weight: 1}}
	loads := model.Loads{{BusName: "B", ScenarioName: "s1", TimepointID: 0}: 10}

	sys, err := model.New(buses, lines, gens, nil, scenarios, ts, tps, loads, nil, model.Policy{})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}

	m := solvertest.New()
	res, err := expansion.Run(context.Background(), m, sys, runopts.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ranks, err := Rank(m, sys, res, runopts.Default())
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("expected 2 ranks, got %d", len(ranks))
	}
	if ranks[0].BindFrequency <= 0 {
		t.Fatalf("expected the top-ranked bus to show some congestion, got %+v", ranks[0])
	}
}
