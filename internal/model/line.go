package model

// Line is a pi-model transmission line between two buses. Parallel lines
// between the same pair of buses are permitted; their admittance contributions
// sum additively (see internal/admittance).
type Line struct {
	Name    string
	FromBus string
	ToBus   string

	RateMW float64 // thermal/flow rating, MW

	R float64 // series resistance, p.u.
	X float64 // series reactance, p.u. (must be > 0)
	G float64 // shunt conductance, p.u.
	B float64 // shunt susceptance, p.u.
}
