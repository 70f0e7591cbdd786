// Package results writes the primal solution and itemized costs of a solved
// expansion.Result back out as CSV. Callers must only invoke Write after expansion.Run reports
// State == Solved; writing partial output on a failed solve is the
// composer's responsibility to prevent, not this package's.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
)

// Write emits every result CSV into dir/outputs.
func Write(dir string, m solver.Model, sys *model.System, res *expansion.Result, opts runopts.Options) error {
	outputs := filepath.Join(dir, "outputs")
	if err := os.MkdirAll(outputs, 0o755); err != nil {
		return fmt.Errorf("results: create output dir: %w", err)
	}

	if err := writeGenCap(filepath.Join(outputs, "gen_cap.csv"), m, sys, res.Generators); err != nil {
		return err
	}
	if err := writeGenDispatch(filepath.Join(outputs, "gen_dispatch.csv"), m, sys, res.Generators); err != nil {
		return err
	}
	if err := writeVarGenCap(filepath.Join(outputs, "var_gen_cap.csv"), m, sys, res.Generators); err != nil {
		return err
	}
	if err := writeVarGenDispatch(filepath.Join(outputs, "var_gen_dispatch.csv"), m, sys, res.Generators); err != nil {
		return err
	}
	if err := writeStorageCap(filepath.Join(outputs, "storage_cap.csv"), m, sys, res.Storages); err != nil {
		return err
	}
	if err := writeStorageDispatch(filepath.Join(outputs, "storage_dispatch.csv"), m, sys, res.Storages); err != nil {
		return err
	}
	if err := writeCostsItemized(filepath.Join(outputs, "costs_itemized.csv"), m, sys, res); err != nil {
		return err
	}
	if err := writeGenCostsItemized(filepath.Join(outputs, "gen_costs_itemized.csv"), m, sys, res, opts); err != nil {
		return err
	}
	return nil
}

func newWriter(path string, header []string) (*csv.Writer, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("results: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("results: write header for %s: %w", path, err)
	}
	return w, f, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func value(m solver.Model, v solver.Var) (string, error) {
	val, err := m.Value(v)
	if err != nil {
		return "", fmt.Errorf("results: read value: %w", err)
	}
	return fmtFloat(val), nil
}
