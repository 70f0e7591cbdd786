// Package busexpr is the shared, additively-populated per-bus net-injection
// expression that the generator and storage submodels write into and the
// transmission submodel reads from when writing the power-balance
// constraint. Like
// internal/costaccum, this replaces a mutated named model-level global with
// an explicit builder object owned by the composer.
package busexpr

import "github.com/ream-lab/catex/internal/solver"

// Key identifies one (bus, scenario, timepoint) injection-expression slot.
type Key struct {
	BusIdx      int
	ScenarioIdx int
	TimepointID int
}

// Builder accumulates net power injection per (bus, scenario, timepoint).
type Builder struct {
	exprs map[Key]solver.LinearExpr
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{exprs: make(map[Key]solver.LinearExpr)}
}

// AddVar adds coeff*v to the injection expression at key.
func (b *Builder) AddVar(key Key, v solver.Var, coeff float64) {
	b.exprs[key] = b.exprs[key].Add(v, coeff)
}

// AddConstant adds a constant offset to the injection expression at key.
func (b *Builder) AddConstant(key Key, c float64) {
	b.exprs[key] = b.exprs[key].AddConstant(c)
}

// Expr returns the accumulated injection expression at key (the zero
// expression if nothing was ever added, i.e. no generation or storage at
// that bus).
func (b *Builder) Expr(key Key) solver.LinearExpr {
	return b.exprs[key]
}
