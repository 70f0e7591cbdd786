// Package runopts holds the run-time options shared by every submodel and
// the composer. It is a small leaf package (rather than living on
// internal/expansion) specifically so internal/generators, internal/storage,
// internal/transmission and internal/policy can depend on it without
// importing the composer that depends on them.
package runopts

// ExpectationMode switches between reproducing the source formulation's
// stage-2 cost weighting (prob_s AND 1/|S|) and a probability-only
// interpretation. Default is SourceCompat: the questionable original
// weighting is reproduced, not silently fixed.
type ExpectationMode int

const (
	SourceCompat ExpectationMode = iota
	ProbabilityOnly
)

// Options configures the source-compatibility switches plus the reserved
// shed-variable extension point.
type Options struct {
	ExpectationMode ExpectationMode

	// IncludeShunts is passed through to internal/admittance.Build.
	IncludeShunts bool

	// PerLineFlowLimit switches the transmission submodel from the source's
	// aggregate per-bus flow cap to a per-line |flow| <= rate formulation
	//. Default false reproduces the source.
	PerLineFlowLimit bool

	// ShedPenalty is a reserved extension point for an explicit load-shed
	// variable with a cost penalty. Zero (the default) leaves the inequality power balance
	// unchanged; internal/transmission does not currently read this field.
	ShedPenalty float64
}

// Default returns the source-compatible defaults: reproduce the original
// expectation-value weighting, apply shunts at both endpoints, and use the
// aggregate (not per-line) flow limit.
func Default() Options {
	return Options{
		ExpectationMode:  SourceCompat,
		IncludeShunts:    true,
		PerLineFlowLimit: false,
	}
}

// ScenarioWeight returns the weight applied to a stage-2 (scenario-indexed)
// cost term: prob_s under ProbabilityOnly, or prob_s/numScenarios under
// SourceCompat.
func (o Options) ScenarioWeight(probability float64, numScenarios int) float64 {
	if o.ExpectationMode == ProbabilityOnly || numScenarios == 0 {
		return probability
	}
	return probability / float64(numScenarios)
}
