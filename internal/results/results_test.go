package results

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver/solvertest"
)

func solvedTwoBusResult(t *testing.T) (*model.System, *solvertest.Solver, *expansion.Result) {
	t.Helper()
	buses := []model.Bus{{Name: "A", Slack: true}, {Name: "B"}}
	lines := []model.Line{{Name: "l1", FromBus: "A", ToBus: "B", RateMW: 100, X: 0.1, R: 0.01}}
	gens := []model.Generator{
		{Name: "gn1", BusName: "A", C1: 20, CapLimit: 100, Stage: model.StageDispatchable},
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
	return sys, m, res
}

func TestWriteProducesAllOutputFiles(t *testing.T) {
	sys, m, res := solvedTwoBusResult(t)
	dir := t.TempDir()

	if err := Write(dir, m, sys, res, runopts.Default()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	expected := []string{
		"gen_cap.csv", "gen_dispatch.csv", "var_gen_cap.csv", "var_gen_dispatch.csv",
		"storage_cap.csv", "storage_dispatch.csv", "costs_itemized.csv", "gen_costs_itemized.csv",
	}
	for _, name := range expected {
		path := filepath.Join(dir, "outputs", name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected output file %s: %v", name, err)
		}
	}
}

func TestCostsItemizedHasThreeComponents(t *testing.T) {
	sys, m, res := solvedTwoBusResult(t)
	dir := t.TempDir()

	if err := Write(dir, m, sys, res, runopts.Default()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "outputs", "costs_itemized.csv"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(raw)
	for _, component := range []string{"CostPerTimepoint", "CostPerPeriod", "TotalCost"} {
		if !strings.Contains(content, component) {
			t.Fatalf("expected costs_itemized.csv to contain %q, got:\n%s", component, content)
		}
	}
}
