package model

// CapacityFactorKey identifies one (generator, scenario, timepoint)
// capacity-factor entry.
type CapacityFactorKey struct {
	GeneratorName string
	ScenarioName  string
	TimepointID   int
}

// CapacityFactors is a sparse lookup of a variable generator's available
// output fraction, in [0,1], keyed by (generator, scenario, timepoint). A
// generator with at least one entry here is variable (GV); see
// model.GeneratorStage.
type CapacityFactors map[CapacityFactorKey]float64

// At returns the capacity factor for the given key, defaulting to 0 when
// absent (no entry means no available output that timepoint).
func (c CapacityFactors) At(gen, scenario string, timepointID int) float64 {
	return c[CapacityFactorKey{GeneratorName: gen, ScenarioName: scenario, TimepointID: timepointID}]
}
