package model

// Scenario is one stage-2 realization of uncertainty. Probabilities across
// all scenarios in a System must sum to 1 (within Tolerance).
type Scenario struct {
	Name        string
	Probability float64
}

// Tolerance is the absolute slack allowed when checking that scenario
// probabilities sum to 1, when a System is validated.
const Tolerance = 1e-6
