package numerics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"
)

// Trapezoid integrates y over the (possibly nonuniform) grid x using the
// trapezoidal rule: sum of (x[i+1]-x[i])*(y[i]+y[i+1])/2.
func Trapezoid(x, y []float64) float64 {
	return integrate.Trapezoidal(x, y)
}

// LogSpaced returns n points logarithmically spaced between min and max
// inclusive. Both endpoints must be positive.
func LogSpaced(min, max float64, n int) []float64 {
	dst := make([]float64, n)
	return floats.LogSpan(dst, min, max)
}

// Linspace returns n points linearly spaced between min and max inclusive.
func Linspace(min, max float64, n int) []float64 {
	dst := make([]float64, n)
	return floats.Span(dst, min, max)
}

// Curve is a piecewise-linear interpolant over a strictly increasing grid.
// Evaluation outside the grid domain returns zero, matching the fill
// behavior expected of probability-density curves.
type Curve struct {
	xs []float64
	ys []float64
	pl interp.PiecewiseLinear
}

// NewCurve builds a curve from aligned grid and value slices. The grid must
// hold at least two strictly increasing points.
func NewCurve(xs, ys []float64) (*Curve, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("curve: grid length %d does not match value length %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("curve: need at least 2 grid points, got %d", len(xs))
	}
	c := &Curve{xs: xs, ys: ys}
	if err := c.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("curve: fit failed: %w", err)
	}
	return c, nil
}

// At evaluates the curve at x, returning zero outside the grid domain.
func (c *Curve) At(x float64) float64 {
	if x < c.xs[0] || x > c.xs[len(c.xs)-1] {
		return 0
	}
	return c.pl.Predict(x)
}

// Grid returns the underlying grid. Callers must treat it as read-only.
func (c *Curve) Grid() []float64 {
	return c.xs
}

// Values returns the curve values aligned with Grid. Read-only.
func (c *Curve) Values() []float64 {
	return c.ys
}

// Integral returns the trapezoidal integral of the curve over its grid.
func (c *Curve) Integral() float64 {
	return Trapezoid(c.xs, c.ys)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
