package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ream-lab/catex/internal/config"
	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/loader"
	"github.com/ream-lab/catex/internal/report"
	"github.com/ream-lab/catex/internal/results"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver/solvertest"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "solve":
		cmdSolve(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "congestion":
		cmdCongestion(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli solve --dir case/ --config run.yaml [--dump]")
	fmt.Println("  cli validate --dir case/")
	fmt.Println("  cli congestion --dir case/ [--limit 10]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - solve reads <dir>/inputs/*.csv and writes <dir>/outputs/*.csv on success")
	fmt.Println("  - validate loads and cross-checks the inputs without building a model")
	fmt.Println("  - congestion solves, then ranks buses by how often their flow cap binds")
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	dir := fs.String("dir", ".", "Case directory holding inputs/ and outputs/")
	cfgPath := fs.String("config", "", "Path to YAML run config (optional)")
	dump := fs.Bool("dump", false, "Also write a human-readable model.txt")
	_ = fs.Parse(args)

	opts, timeout := loadOptions(*cfgPath)

	sys, err := loader.Load(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := solvertest.New()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := expansion.Run(ctx, m, sys, opts)
	if err != nil {
		// No result files on a failed solve; surface the termination status.
		fmt.Fprintf(os.Stderr, "solve failed (state=%s status=%s): %v\n", res.State, res.Status, err)
		os.Exit(1)
	}

	if err := results.Write(*dir, m, sys, res, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *dump {
		dumpPath := filepath.Join(*dir, "outputs", "model.txt")
		if err := results.WriteModelDump(dumpPath, m, sys, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	sum, err := results.Summary(m, sys, res)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Solved (%s)\n", res.Status)
	fmt.Printf("CostPerTimepoint=%.4f CostPerPeriod=%.4f TotalCost=%.4f\n",
		sum.CostPerTimepoint, sum.CostPerPeriod, sum.TotalCost)
	fmt.Printf("Wrote results to %s\n", filepath.Join(*dir, "outputs"))
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	dir := fs.String("dir", ".", "Case directory holding inputs/")
	_ = fs.Parse(args)

	sys, err := loader.Load(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	varGens := 0
	for _, g := range sys.Generators {
		if g.IsVariable() {
			varGens++
		}
	}

	fmt.Printf("OK: %d buses (slack=%s), %d lines, %d generators (%d variable), %d storages, %d scenarios, %d timepoints\n",
		len(sys.Buses), sys.SlackBus, len(sys.Lines), len(sys.Generators), varGens,
		len(sys.Storages), len(sys.Scenarios), len(sys.Timepoints))
}

func cmdCongestion(args []string) {
	fs := flag.NewFlagSet("congestion", flag.ExitOnError)
	dir := fs.String("dir", ".", "Case directory holding inputs/")
	cfgPath := fs.String("config", "", "Path to YAML run config (optional)")
	limit := fs.Int("limit", 0, "Optional: limit to top N buses (0=all)")
	_ = fs.Parse(args)

	opts, timeout := loadOptions(*cfgPath)

	sys, err := loader.Load(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := solvertest.New()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := expansion.Run(ctx, m, sys, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "solve failed (state=%s status=%s): %v\n", res.State, res.Status, err)
		os.Exit(1)
	}

	ranks, err := report.Rank(m, sys, res, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *limit > 0 && *limit < len(ranks) {
		ranks = ranks[:*limit]
	}

	fmt.Printf("%-4s %-18s %-8s %-8s %-10s\n", "rank", "bus", "binds", "samples", "frequency")
	for i, r := range ranks {
		fmt.Printf("%-4d %-18s %-8d %-8d %-10.3f\n", i+1, r.BusName, r.BindCount, r.TotalSamples, r.BindFrequency)
	}
}

func loadOptions(cfgPath string) (runopts.Options, time.Duration) {
	if cfgPath == "" {
		return runopts.Default(), 0
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg.ToRunOptions(), cfg.SolverTimeout()
}
