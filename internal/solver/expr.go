package solver

// LinearTerm is one coeff*var addend of a LinearExpr.
type LinearTerm struct {
	V     Var
	Coeff float64
}

// LinearExpr is a sum of coeff*var terms plus a constant. The zero value is
// the zero expression, so submodels can accumulate into a LinearExpr without
// an explicit constructor.
type LinearExpr struct {
	Terms    []LinearTerm
	Constant float64
}

// Add appends coeff*v to the expression and returns it (for chaining).
func (e LinearExpr) Add(v Var, coeff float64) LinearExpr {
	if coeff == 0 {
		return e
	}
	e.Terms = append(append([]LinearTerm{}, e.Terms...), LinearTerm{V: v, Coeff: coeff})
	return e
}

// AddConstant adds a constant offset and returns the expression.
func (e LinearExpr) AddConstant(c float64) LinearExpr {
	e.Constant += c
	return e
}

// Plus returns the sum of two linear expressions.
func (e LinearExpr) Plus(other LinearExpr) LinearExpr {
	out := LinearExpr{
		Terms:    make([]LinearTerm, 0, len(e.Terms)+len(other.Terms)),
		Constant: e.Constant + other.Constant,
	}
	out.Terms = append(out.Terms, e.Terms...)
	out.Terms = append(out.Terms, other.Terms...)
	return out
}

// Scale multiplies every term and the constant by c.
func (e LinearExpr) Scale(c float64) LinearExpr {
	out := LinearExpr{Terms: make([]LinearTerm, len(e.Terms)), Constant: e.Constant * c}
	for i, t := range e.Terms {
		out.Terms[i] = LinearTerm{V: t.V, Coeff: t.Coeff * c}
	}
	return out
}

// QuadTerm is one coeff*v1*v2 addend of a QuadExpr. When V1 == V2 this is a
// squared term (used for the c2*dispatch^2 cost terms).
type QuadTerm struct {
	V1, V2 Var
	Coeff  float64
}

// QuadExpr is a linear expression plus a sum of quadratic terms. Zero value
// is the zero expression.
type QuadExpr struct {
	Linear LinearExpr
	Quad   []QuadTerm
}

// AddLinear adds coeff*v to the expression's linear part.
func (e QuadExpr) AddLinear(v Var, coeff float64) QuadExpr {
	e.Linear = e.Linear.Add(v, coeff)
	return e
}

// AddConstant adds a constant offset to the expression's linear part.
func (e QuadExpr) AddConstant(c float64) QuadExpr {
	e.Linear = e.Linear.AddConstant(c)
	return e
}

// AddQuad adds coeff*v1*v2 to the expression.
func (e QuadExpr) AddQuad(v1, v2 Var, coeff float64) QuadExpr {
	if coeff == 0 {
		return e
	}
	e.Quad = append(append([]QuadTerm{}, e.Quad...), QuadTerm{V1: v1, V2: v2, Coeff: coeff})
	return e
}

// AddSquare adds coeff*v^2 to the expression.
func (e QuadExpr) AddSquare(v Var, coeff float64) QuadExpr {
	return e.AddQuad(v, v, coeff)
}

// Plus returns the sum of two quadratic expressions.
func (e QuadExpr) Plus(other QuadExpr) QuadExpr {
	out := QuadExpr{
		Linear: e.Linear.Plus(other.Linear),
		Quad:   make([]QuadTerm, 0, len(e.Quad)+len(other.Quad)),
	}
	out.Quad = append(out.Quad, e.Quad...)
	out.Quad = append(out.Quad, other.Quad...)
	return out
}

// Scale multiplies every term of the expression by c.
func (e QuadExpr) Scale(c float64) QuadExpr {
	out := QuadExpr{Linear: e.Linear.Scale(c), Quad: make([]QuadTerm, len(e.Quad))}
	for i, t := range e.Quad {
		out.Quad[i] = QuadTerm{V1: t.V1, V2: t.V2, Coeff: t.Coeff * c}
	}
	return out
}

// FromLinear lifts a LinearExpr into a QuadExpr with no quadratic terms.
func FromLinear(e LinearExpr) QuadExpr {
	return QuadExpr{Linear: e}
}
