package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/kilianp07/evinsight/analysis"
	"github.com/kilianp07/evinsight/config"
)

// ErrInsufficientData indicates the fitting sample holds fewer than two
// distinct years, making the two-parameter fit ill-posed.
var ErrInsufficientData = errors.New("fewer than 2 distinct years in fitting sample")

// Model is the fitted growth curve count = A * exp(B * (year - BaseYear)).
// B may be negative; projected values are not clamped.
type Model struct {
	A        float64
	B        float64
	BaseYear int
}

// Fit fits the exponential growth model to the per-year counts, using only
// years at or before cutoff, by least squares.
func Fit(counts []analysis.YearCount, cutoff int) (Model, error) {
	var years []int
	var values []float64
	for _, yc := range counts {
		if yc.Year <= cutoff {
			years = append(years, yc.Year)
			values = append(values, float64(yc.Count))
		}
	}
	if len(years) < 2 {
		return Model{}, ErrInsufficientData
	}
	base := years[0]
	for _, y := range years[1:] {
		if y < base {
			base = y
		}
	}
	xs := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y - base)
	}

	sse := func(p []float64) float64 {
		a, b := p[0], p[1]
		var sum float64
		for i, x := range xs {
			r := a*math.Exp(b*x) - values[i]
			sum += r * r
		}
		return sum
	}

	result, err := optimize.Minimize(optimize.Problem{Func: sse}, initialGuess(xs, values), nil, &optimize.NelderMead{})
	if err != nil {
		return Model{}, fmt.Errorf("fit exponential model: %w", err)
	}
	if err := result.Status.Err(); err != nil {
		return Model{}, fmt.Errorf("fit did not converge: %w", err)
	}
	a, b := result.X[0], result.X[1]
	if math.IsNaN(a) || math.IsNaN(b) {
		return Model{}, fmt.Errorf("fit produced degenerate parameters a=%v b=%v", a, b)
	}
	return Model{A: a, B: b, BaseYear: base}, nil
}

// At evaluates the model at a year.
func (m Model) At(year int) float64 {
	return m.A * math.Exp(m.B*float64(year-m.BaseYear))
}

// Project maps every year in [from, to] to the model's value.
func (m Model) Project(from, to int) map[int]float64 {
	out := make(map[int]float64, to-from+1)
	for y := from; y <= to; y++ {
		out[y] = m.At(y)
	}
	return out
}

// Forecast fits the model and projects the configured horizon.
func Forecast(counts []analysis.YearCount, cfg config.ForecastConfig) (map[int]float64, error) {
	m, err := Fit(counts, cfg.CutoffYear)
	if err != nil {
		return nil, err
	}
	return m.Project(cfg.HorizonStart, cfg.HorizonEnd), nil
}

// initialGuess seeds the optimizer from the sample endpoints. For clean
// exponential data this starts near the optimum.
func initialGuess(xs, values []float64) []float64 {
	a := values[0]
	if a <= 0 {
		a = 1
	}
	b := 0.1
	first, last := values[0], values[len(values)-1]
	span := xs[len(xs)-1] - xs[0]
	if first > 0 && last > 0 && span > 0 {
		b = math.Log(last/first) / span
	}
	return []float64{a, b}
}
