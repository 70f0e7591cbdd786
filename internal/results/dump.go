package results

import (
	"fmt"
	"os"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/solver"
)

// WriteModelDump writes the optional human-readable model.txt debugging
// dump. Unlike Write, callers may invoke this even outside
// dir/outputs since it is a debugging aid, not a primary result file.
func WriteModelDump(path string, m solver.Model, sys *model.System, res *expansion.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("results: create %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "state: %s\n", res.State)
	fmt.Fprintf(f, "status: %s\n", res.Status)
	fmt.Fprintf(f, "buses: %d\n", len(sys.Buses))
	fmt.Fprintf(f, "lines: %d\n", len(sys.Lines))
	fmt.Fprintf(f, "generators: %d\n", len(sys.Generators))
	fmt.Fprintf(f, "storages: %d\n", len(sys.Storages))
	fmt.Fprintf(f, "scenarios: %d\n", len(sys.Scenarios))
	fmt.Fprintf(f, "timepoints: %d\n", len(sys.Timepoints))

	if res.State != expansion.Solved {
		return nil
	}

	fmt.Fprintln(f, "\ngenerator capacities:")
	for _, g := range sys.Generators {
		if g.IsVariable() {
			continue
		}
		v, _ := m.Value(res.Generators.CapGN[g.Name])
		fmt.Fprintf(f, "  %s: %.4f\n", g.Name, v)
	}

	return nil
}
