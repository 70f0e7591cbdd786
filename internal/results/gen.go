package results

import (
	"fmt"

	"github.com/ream-lab/catex/internal/generators"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/solver"
)

func writeGenCap(path string, m solver.Model, sys *model.System, gr *generators.Result) error {
	w, f, err := newWriter(path, []string{"gen_name", "GenCapacity"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, g := range sys.Generators {
		if g.IsVariable() {
			continue
		}
		val, err := value(m, gr.CapGN[g.Name])
		if err != nil {
			return err
		}
		if err := w.Write([]string{g.Name, val}); err != nil {
			return fmt.Errorf("results: write gen_cap row for %q: %w", g.Name, err)
		}
	}
	return w.Error()
}

func writeGenDispatch(path string, m solver.Model, sys *model.System, gr *generators.Result) error {
	w, f, err := newWriter(path, []string{"gen_name", "timepoint_name", "Dispatch"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, g := range sys.Generators {
		if g.IsVariable() {
			continue
		}
		for _, tp := range sys.Timepoints {
			val, err := value(m, gr.GenGN[g.Name][tp.ID])
			if err != nil {
				return err
			}
			if err := w.Write([]string{g.Name, tp.Name, val}); err != nil {
				return fmt.Errorf("results: write gen_dispatch row for %q at %q: %w", g.Name, tp.Name, err)
			}
		}
	}
	return w.Error()
}

func writeVarGenCap(path string, m solver.Model, sys *model.System, gr *generators.Result) error {
	w, f, err := newWriter(path, []string{"gen_name", "scenario_name", "VarGenCapacity"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, g := range sys.Generators {
		if !g.IsVariable() {
			continue
		}
		for _, sc := range sys.Scenarios {
			val, err := value(m, gr.CapGV[g.Name][sc.Name])
			if err != nil {
				return err
			}
			if err := w.Write([]string{g.Name, sc.Name, val}); err != nil {
				return fmt.Errorf("results: write var_gen_cap row for %q/%q: %w", g.Name, sc.Name, err)
			}
		}
	}
	return w.Error()
}

func writeVarGenDispatch(path string, m solver.Model, sys *model.System, gr *generators.Result) error {
	w, f, err := newWriter(path, []string{"gen_name", "scenario_name", "timepoint_name", "VarGenDispatch"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, g := range sys.Generators {
		if !g.IsVariable() {
			continue
		}
		for _, sc := range sys.Scenarios {
			for _, tp := range sys.Timepoints {
				val, err := value(m, gr.GenGV[g.Name][sc.Name][tp.ID])
				if err != nil {
					return err
				}
				if err := w.Write([]string{g.Name, sc.Name, tp.Name, val}); err != nil {
					return fmt.Errorf("results: write var_gen_dispatch row for %q/%q at %q: %w", g.Name, sc.Name, tp.Name, err)
				}
			}
		}
	}
	return w.Error()
}
