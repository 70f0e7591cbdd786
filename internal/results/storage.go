package results

import (
	"fmt"

	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/solver"
	"github.com/ream-lab/catex/internal/storage"
)

func writeStorageCap(path string, m solver.Model, sys *model.System, sr *storage.Result) error {
	w, f, err := newWriter(path, []string{"storage_name", "PowerCapacity", "EnergyCapacity"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, e := range sys.Storages {
		power, err := value(m, sr.PowerCap[e.Name])
		if err != nil {
			return err
		}
		energy, err := value(m, sr.EnergyCap[e.Name])
		if err != nil {
			return err
		}
		if err := w.Write([]string{e.Name, power, energy}); err != nil {
			return fmt.Errorf("results: write storage_cap row for %q: %w", e.Name, err)
		}
	}
	return w.Error()
}

func writeStorageDispatch(path string, m solver.Model, sys *model.System, sr *storage.Result) error {
	w, f, err := newWriter(path, []string{"storage_name", "scenario_name", "timepoint_name", "Charge", "Discharge", "SOE"})
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, e := range sys.Storages {
		for _, sc := range sys.Scenarios {
			for _, tp := range sys.Timepoints {
				chg, err := value(m, sr.Charge[e.Name][sc.Name][tp.ID])
				if err != nil {
					return err
				}
				dis, err := value(m, sr.Discharge[e.Name][sc.Name][tp.ID])
				if err != nil {
					return err
				}
				soe, err := value(m, sr.SOE[e.Name][sc.Name][tp.ID])
				if err != nil {
					return err
				}
				if err := w.Write([]string{e.Name, sc.Name, tp.Name, chg, dis, soe}); err != nil {
					return fmt.Errorf("results: write storage_dispatch row for %q/%q at %q: %w", e.Name, sc.Name, tp.Name, err)
				}
			}
		}
	}
	return w.Error()
}
