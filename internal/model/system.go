package model

import (
	"fmt"
	"math"
	"sort"
)

// System is the immutable, validated description of a power network and its
// two-stage stochastic capacity-expansion inputs. It is built once (by
// internal/loader, via New) and is read-only to every submodel thereafter.
type System struct {
	Buses     []Bus
	BusIndex  map[string]int // bus name -> index into Buses
	SlackBus  string

	Lines []Line

	Generators []Generator
	GenIndex   map[string]int // generator name -> index into Generators

	Storages []EnergyStorage
	StgIndex map[string]int

	Scenarios     []Scenario
	ScenarioIndex map[string]int

	Timeseries      []Timeseries
	TimeseriesIndex map[string]int // timeseries name -> index

	Timepoints     []Timepoint
	TimepointIndex map[int]int // timepoint id -> index into Timepoints

	Loads           Loads
	CapacityFactors CapacityFactors

	Policy Policy
}

// New assembles and validates a System from already-loaded, already-resolved
// parts. Callers (internal/loader) are responsible for invoking
// internal/timescale.Resolve on timeseries/timepoints before calling New, and
// for tagging each generator's Stage from the presence of capacity-factor
// entries (see model.GeneratorStage).
func New(
	buses []Bus,
	lines []Line,
	generators []Generator,
	storages []EnergyStorage,
	scenarios []Scenario,
	timeseries []Timeseries,
	timepoints []Timepoint,
	loads Loads,
	capacityFactors CapacityFactors,
	policy Policy,
) (*System, error) {
	sys := &System{
		Buses:           buses,
		Lines:           lines,
		Generators:      generators,
		Storages:        storages,
		Scenarios:       scenarios,
		Timeseries:      timeseries,
		Timepoints:      timepoints,
		Loads:           loads,
		CapacityFactors: capacityFactors,
		Policy:          policy,
	}
	sys.buildIndices()
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *System) buildIndices() {
	s.BusIndex = make(map[string]int, len(s.Buses))
	for i, b := range s.Buses {
		s.BusIndex[b.Name] = i
		if b.Slack {
			s.SlackBus = b.Name
		}
	}

	s.GenIndex = make(map[string]int, len(s.Generators))
	for i, g := range s.Generators {
		s.GenIndex[g.Name] = i
	}

	s.StgIndex = make(map[string]int, len(s.Storages))
	for i, e := range s.Storages {
		s.StgIndex[e.Name] = i
	}

	s.ScenarioIndex = make(map[string]int, len(s.Scenarios))
	for i, sc := range s.Scenarios {
		s.ScenarioIndex[sc.Name] = i
	}

	s.TimeseriesIndex = make(map[string]int, len(s.Timeseries))
	for i, ts := range s.Timeseries {
		s.TimeseriesIndex[ts.Name] = i
	}

	s.TimepointIndex = make(map[int]int, len(s.Timepoints))
	for i, tp := range s.Timepoints {
		s.TimepointIndex[tp.ID] = i
	}
}

// Validate checks the system's referential-integrity invariants.
// Input-shape errors (missing columns, wrong types) are the loader's
// responsibility; Validate only checks cross-references and numeric
// invariants that require the whole System to be assembled.
func (s *System) Validate() error {
	if len(s.Buses) == 0 {
		return fmt.Errorf("model: system has no buses")
	}

	slackCount := 0
	for _, b := range s.Buses {
		if b.Slack {
			slackCount++
		}
	}
	if slackCount != 1 {
		return fmt.Errorf("model: exactly one bus must be marked slack, found %d", slackCount)
	}

	for _, l := range s.Lines {
		if _, ok := s.BusIndex[l.FromBus]; !ok {
			return fmt.Errorf("model: line %q references unknown from_bus %q", l.Name, l.FromBus)
		}
		if _, ok := s.BusIndex[l.ToBus]; !ok {
			return fmt.Errorf("model: line %q references unknown to_bus %q", l.Name, l.ToBus)
		}
		if l.RateMW <= 0 {
			return fmt.Errorf("model: line %q rate must be > 0", l.Name)
		}
		if l.X <= 0 {
			return fmt.Errorf("model: line %q reactance x must be > 0", l.Name)
		}
	}

	for _, g := range s.Generators {
		if _, ok := s.BusIndex[g.BusName]; !ok {
			return fmt.Errorf("model: generator %q references unknown bus %q", g.Name, g.BusName)
		}
		if g.C2 < 0 {
			return fmt.Errorf("model: generator %q c2 must be >= 0", g.Name)
		}
		if g.InvestCost < 0 {
			return fmt.Errorf("model: generator %q invest_cost must be >= 0", g.Name)
		}
		if g.ExistCap < 0 {
			return fmt.Errorf("model: generator %q exist_cap must be >= 0", g.Name)
		}
		if g.CapLimit < g.ExistCap {
			return fmt.Errorf("model: generator %q cap_limit (%g) must be >= exist_cap (%g)", g.Name, g.CapLimit, g.ExistCap)
		}
		if g.VarOMCost < 0 {
			return fmt.Errorf("model: generator %q var_om_cost must be >= 0", g.Name)
		}
	}

	for _, e := range s.Storages {
		if _, ok := s.BusIndex[e.BusName]; !ok {
			return fmt.Errorf("model: storage %q references unknown bus %q", e.Name, e.BusName)
		}
		if e.ExistPowerCap < 0 {
			return fmt.Errorf("model: storage %q exist_power_cap must be >= 0", e.Name)
		}
		if e.ExistEnergyCap < 0 {
			return fmt.Errorf("model: storage %q exist_energy_cap must be >= 0", e.Name)
		}
		if e.Efficiency <= 0 || e.Efficiency > 1 {
			return fmt.Errorf("model: storage %q efficiency must be in (0,1], got %g", e.Name, e.Efficiency)
		}
		if e.Duration <= 0 {
			return fmt.Errorf("model: storage %q duration must be > 0", e.Name)
		}
	}

	probSum := 0.0
	for _, sc := range s.Scenarios {
		if sc.Probability < 0 || sc.Probability > 1 {
			return fmt.Errorf("model: scenario %q probability must be in [0,1], got %g", sc.Name, sc.Probability)
		}
		probSum += sc.Probability
	}
	if len(s.Scenarios) == 0 {
		return fmt.Errorf("model: system has no scenarios")
	}
	if math.Abs(probSum-1) > Tolerance {
		return fmt.Errorf("model: scenario probabilities must sum to 1, got %g", probSum)
	}

	for _, ts := range s.Timeseries {
		if ts.NumberTimepoints != len(ts.TimepointIDs) {
			return fmt.Errorf("model: timeseries %q declares %d timepoints but has %d resolved", ts.Name, ts.NumberTimepoints, len(ts.TimepointIDs))
		}
		if ts.DurationOfTimepoints <= 0 {
			return fmt.Errorf("model: timeseries %q duration_of_timepoints must be > 0", ts.Name)
		}
	}

	for _, tp := range s.Timepoints {
		if _, ok := s.TimeseriesIndex[tp.TimeseriesName]; !ok {
			return fmt.Errorf("model: timepoint %q references unknown timeseries %q", tp.Name, tp.TimeseriesName)
		}
		if tp.DurationHrs <= 0 {
			return fmt.Errorf("model: timepoint %q duration_hrs must be > 0 (was timescale.Resolve run?)", tp.Name)
		}
	}

	for key := range s.Loads {
		if _, ok := s.BusIndex[key.BusName]; !ok {
			return fmt.Errorf("model: load entry references unknown bus %q", key.BusName)
		}
		if _, ok := s.ScenarioIndex[key.ScenarioName]; !ok {
			return fmt.Errorf("model: load entry references unknown scenario %q", key.ScenarioName)
		}
	}

	for key, cf := range s.CapacityFactors {
		if _, ok := s.GenIndex[key.GeneratorName]; !ok {
			return fmt.Errorf("model: capacity factor entry references unknown generator %q", key.GeneratorName)
		}
		if cf < 0 || cf > 1 {
			return fmt.Errorf("model: capacity factor for %q must be in [0,1], got %g", key.GeneratorName, cf)
		}
	}

	if err := s.validateVariableGeneratorCoverage(); err != nil {
		return err
	}

	return nil
}

// validateVariableGeneratorCoverage fails fast if a variable generator
// (one with at least one capacity-factor entry) is missing an entry for some
// (scenario, timepoint) pair it is expected to cover.
func (s *System) validateVariableGeneratorCoverage() error {
	for _, g := range s.Generators {
		if g.Stage != StageVariable {
			continue
		}
		for _, sc := range s.Scenarios {
			for _, tp := range s.Timepoints {
				key := CapacityFactorKey{GeneratorName: g.Name, ScenarioName: sc.Name, TimepointID: tp.ID}
				if _, ok := s.CapacityFactors[key]; !ok {
					return fmt.Errorf("model: variable generator %q missing capacity factor for scenario %q timepoint %q", g.Name, sc.Name, tp.Name)
				}
			}
		}
	}
	return nil
}

// GeneratorsAtBus returns the names of generators attached to bus, split
// into dispatchable (GN) and variable (GV) subsets, in stable (input) order.
func (s *System) GeneratorsAtBus(bus string) (gn, gv []string) {
	for _, g := range s.Generators {
		if g.BusName != bus {
			continue
		}
		if g.Stage == StageVariable {
			gv = append(gv, g.Name)
		} else {
			gn = append(gn, g.Name)
		}
	}
	return gn, gv
}

// StoragesAtBus returns the names of storage units attached to bus.
func (s *System) StoragesAtBus(bus string) []string {
	var out []string
	for _, e := range s.Storages {
		if e.BusName == bus {
			out = append(out, e.Name)
		}
	}
	return out
}

// SortedBusNames returns bus names in the order buses were loaded (already
// stable); kept as a helper so callers don't need to reach into BusIndex to
// iterate deterministically.
func (s *System) SortedBusNames() []string {
	names := make([]string, len(s.Buses))
	for i, b := range s.Buses {
		names[i] = b.Name
	}
	return names
}

// sortedKeys returns m's keys in sorted order, for a deterministic iteration
// order over a map without depending on Go's randomized map order. Nothing
// calls it at present.
func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
