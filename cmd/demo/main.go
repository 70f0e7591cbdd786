package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/results"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver/solvertest"
	"github.com/ream-lab/catex/internal/timescale"
)

// Demo:
// - Build a two-bus system in memory: a slack bus with a cheap generator and
//   a load bus connected by a single line
// - Assemble and solve the expansion model with the built-in reference solver
// - Print capacities, dispatch, angles and the itemized costs, so the whole
//   pipeline can be seen end to end without any input CSVs
func main() {
	loadMW := flag.Float64("load", 50, "Demand at bus B, MW")
	investCost := flag.Float64("invest", 100, "Generator investment cost, $/MW")
	dumpPath := flag.String("dump", "", "Optional path to write a model.txt dump")
	flag.Parse()

	sys, err := buildTwoBusSystem(*loadMW, *investCost)
	if err != nil {
		panic(err)
	}

	m := solvertest.New()
	res, err := expansion.Run(context.Background(), m, sys, runopts.Default())
	if err != nil {
		panic(err)
	}

	capA, err := m.Value(res.Generators.CapGN["gen_a"])
	if err != nil {
		panic(err)
	}
	genA, err := m.Value(res.Generators.GenGN["gen_a"][1])
	if err != nil {
		panic(err)
	}
	thetaB, err := m.Value(res.Transmission.Theta[sys.BusIndex["B"]][0][1])
	if err != nil {
		panic(err)
	}

	sum, err := results.Summary(m, sys, res)
	if err != nil {
		panic(err)
	}

	fmt.Printf("status: %s\n", res.Status)
	fmt.Printf("gen_a capacity: %.2f MW (dispatch %.2f MW)\n", capA, genA)
	fmt.Printf("theta at B: %.4f rad\n", thetaB)
	fmt.Printf("CostPerTimepoint=%.2f CostPerPeriod=%.2f TotalCost=%.2f\n",
		sum.CostPerTimepoint, sum.CostPerPeriod, sum.TotalCost)

	if *dumpPath != "" {
		if err := results.WriteModelDump(*dumpPath, m, sys, res); err != nil {
			panic(err)
		}
		fmt.Printf("wrote %s\n", *dumpPath)
	}
}

func buildTwoBusSystem(loadMW, investCost float64) (*model.System, error) {
	buses := []model.Bus{
		{Name: "A", KV: 230, Slack: true},
		{Name: "B", KV: 230},
	}
	lines := []model.Line{
		{Name: "ab", FromBus: "A", ToBus: "B", RateMW: 100, R: 0.01, X: 0.1},
	}
	gens := []model.Generator{
		{
			Name:       "gen_a",
			Tech:       "ccgt",
			BusName:    "A",
			C1:         10,
			InvestCost: investCost,
			CapLimit:   1000,
		},
	}
	scenarios := []model.Scenario{{Name: "s1", Probability: 1}}

	ts := []model.Timeseries{
		{ID: 1, Name: "day", DurationOfTimepoints: 1, NumberTimepoints: 1, ScaleToPeriod: 1},
	}
	tps := []model.Timepoint{
		{ID: 1, Name: "t1", TimeseriesName: "day"},
	}
	ts, tps, err := timescale.Resolve(ts, tps)
	if err != nil {
		return nil, err
	}

	loads := model.Loads{
		{BusName: "B", ScenarioName: "s1", TimepointID: 1}: loadMW,
	}

	return model.New(buses, lines, gens, nil, scenarios, ts, tps,
		loads, model.CapacityFactors{}, model.Policy{MaxDiffAngleRadians: 0.5})
}
