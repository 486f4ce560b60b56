// Package minimize provides a derivative-free bounded scalar minimizer.
//
// Bounded implements Brent's method for a function of one variable on a closed
// interval: successive parabolic interpolation, falling back to golden-section
// steps whenever the parabola is not acceptable. Only function values are
// used, so objectives with kinks (points where the derivative jumps) are
// handled as long as they are unimodal on the interval. The end points are
// never evaluated.
package minimize

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/mathutil"
)

var (
	// ErrNotConverged is matched by every ConvergenceError.
	ErrNotConverged = errors.New("minimizer did not converge")

	// ErrInvalidBounds is returned when lower >= upper or a bound is not finite.
	ErrInvalidBounds = errors.New("invalid search bounds")

	// ErrNaN is returned when the objective produces NaN.
	ErrNaN = errors.New("objective returned NaN")
)

// goldenRatio is (3 - sqrt(5)) / 2, the golden-section step fraction.
var goldenRatio = 0.5 * (3.0 - math.Sqrt(5.0))

// sqrtEps is the square root of the float64 machine epsilon.
var sqrtEps = math.Sqrt(2.2e-16)

// Objective is a scalar function to minimize. A returned error aborts the
// search and is passed back to the caller.
type Objective func(x float64) (float64, error)

// Settings tunes the search.
type Settings struct {
	// XTol is the absolute tolerance on the argument.
	XTol float64
	// MaxEvaluations caps the number of objective evaluations.
	MaxEvaluations int
}

// DefaultSettings returns XTol = 1e-5 and a budget of 500 evaluations.
func DefaultSettings() Settings {
	return Settings{XTol: constants.DefaultXTolerance, MaxEvaluations: constants.DefaultMaxEvaluations}
}

func (s Settings) normalized() Settings {
	defaults := DefaultSettings()
	if s.XTol <= 0 {
		s.XTol = defaults.XTol
	}
	if s.MaxEvaluations <= 0 {
		s.MaxEvaluations = defaults.MaxEvaluations
	}
	return s
}

// Result is the outcome of a bounded search.
type Result struct {
	X           float64
	F           float64
	Iterations  int
	Evaluations int
	Converged   bool
}

// ConvergenceError reports an exhausted evaluation budget. Last holds the best
// point found so far.
type ConvergenceError struct {
	Evaluations int
	Last        Result
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("bounded search did not converge within %d evaluations (best x=%g, f=%g)",
		e.Evaluations, e.Last.X, e.Last.F)
}

// Is lets errors.Is match ErrNotConverged.
func (e *ConvergenceError) Is(target error) bool {
	return target == ErrNotConverged
}

// Bounded minimizes f on [lower, upper].
func Bounded(f Objective, lower, upper float64, settings Settings) (Result, error) {
	if !mathutil.AllFinite(lower, upper) || lower >= upper {
		return Result{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidBounds, lower, upper)
	}
	settings = settings.normalized()

	evaluations := 0
	eval := func(x float64) (float64, error) {
		evaluations++
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(fx) {
			return 0, fmt.Errorf("%w at x=%g", ErrNaN, x)
		}
		return fx, nil
	}

	a, b := lower, upper
	// x is the best point so far, w the second best, v the previous w.
	x := a + goldenRatio*(b-a)
	w, v := x, x
	fx, err := eval(x)
	if err != nil {
		return Result{}, err
	}
	fw, fv := fx, fx

	var d, e float64
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(x) + settings.XTol/3.0
	tol2 := 2.0 * tol1
	iterations := 0

	for math.Abs(x-xm) > tol2-0.5*(b-a) {
		if evaluations >= settings.MaxEvaluations {
			return Result{}, &ConvergenceError{
				Evaluations: evaluations,
				Last:        Result{X: x, F: fx, Iterations: iterations, Evaluations: evaluations},
			}
		}
		iterations++

		golden := true
		if math.Abs(e) > tol1 {
			golden = false
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2.0 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = d

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				// Do not evaluate too close to the bounds.
				if u-a < tol2 || b-u < tol2 {
					d = tol1 * mathutil.Sign(xm-x)
				}
			} else {
				golden = true
			}
		}
		if golden {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenRatio * e
		}

		u := x + mathutil.Sign(d)*math.Max(math.Abs(d), tol1)
		fu, err := eval(u)
		if err != nil {
			return Result{}, err
		}

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(x) + settings.XTol/3.0
		tol2 = 2.0 * tol1
	}

	return Result{X: x, F: fx, Iterations: iterations, Evaluations: evaluations, Converged: true}, nil
}
