package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kilianp07/evinsight/analysis"
	"github.com/kilianp07/evinsight/config"
	"github.com/kilianp07/evinsight/core/logger"
)

// Slugs identify each chart inside its artifact filename.
const (
	SlugAdoption    = "ev_adoption_over_time"
	SlugTopCities   = "top_cities_in_top_counties"
	SlugTypes       = "ev_type_distribution"
	SlugTopMakes    = "top_5_makes"
	SlugTopModels   = "top_models_in_top_makes"
	SlugAvgRange    = "average_range_by_year"
	SlugRangeModels = "top_models_by_range"
	SlugForecast    = "ev_market_forecast"
)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	lineGreen = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	lineBlue  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	lineRed   = color.RGBA{R: 214, G: 39, B: 40, A: 255}

	// Series palette for grouped bars.
	palette = []color.RGBA{
		{R: 68, G: 1, B: 84, A: 255},
		{R: 59, G: 82, B: 139, A: 255},
		{R: 33, G: 145, B: 140, A: 255},
		{R: 94, G: 201, B: 98, A: 255},
		{R: 253, G: 231, B: 37, A: 255},
	}
)

// Renderer writes the chart batch to the output directory.
type Renderer struct {
	cfg config.ChartsConfig
	log logger.Logger
	now func() time.Time
}

// New returns a Renderer.
func New(cfg config.ChartsConfig, log logger.Logger) *Renderer {
	return &Renderer{cfg: cfg, log: log, now: time.Now}
}

// Render draws the eight charts sequentially and returns the written paths.
// Every chart is built and saved inside its own function scope, so figure
// buffers are released between renders. The first failing chart aborts the
// batch.
func (r *Renderer) Render(s analysis.Summary, forecasted map[int]float64, fcfg config.ForecastConfig) ([]string, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	stamp := r.now().Format("20060102_150405")

	charts := []struct {
		slug string
		draw func(path string) error
	}{
		{SlugAdoption, func(p string) error { return r.adoptionChart(s.AdoptionByYear, p) }},
		{SlugTopCities, func(p string) error {
			return r.groupedBarhChart(s.CityPairs, "Top Cities in Top Counties by EV Registrations", "Number of Vehicles", "City", p)
		}},
		{SlugTypes, func(p string) error {
			return r.barhChart(s.TypeCounts, "Distribution of Electric Vehicle Types", "Number of Vehicles", "Electric Vehicle Type", 6, 4, p)
		}},
		{SlugTopMakes, func(p string) error {
			return r.barhChart(s.MakeCounts, "Top 5 Popular EV Makes", "Number of Vehicles", "Make", 8, 4, p)
		}},
		{SlugTopModels, func(p string) error {
			return r.groupedBarhChart(s.ModelPairs, "Top Models in Top 3 Makes by EV Registrations", "Number of Vehicles", "Model", p)
		}},
		{SlugAvgRange, func(p string) error { return r.rangeChart(s.RangeByYear, p) }},
		{SlugRangeModels, func(p string) error {
			return r.groupedBarhChart(s.RangePairs, "Top 5 Models by Average Range in Top Makes", "Average Electric Range (miles)", "Model", p)
		}},
		{SlugForecast, func(p string) error { return r.forecastChart(s.AdoptionByYear, forecasted, fcfg, p) }},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := r.artifactPath(c.slug, stamp)
		if err := c.draw(path); err != nil {
			return nil, fmt.Errorf("render %s: %w", c.slug, err)
		}
		r.log.Infof("saved %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) artifactPath(slug, stamp string) string {
	return filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s_%s_%s.png", r.cfg.Prefix, slug, stamp))
}

// adoptionChart draws registrations per model year as vertical bars.
func (r *Renderer) adoptionChart(counts []analysis.YearCount, path string) error {
	p := plot.New()
	p.Title.Text = "EV Adoption Over Time"
	p.X.Label.Text = "Model Year"
	p.Y.Label.Text = "Number of Vehicles"

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, yc := range counts {
		values[i] = float64(yc.Count)
		labels[i] = strconv.Itoa(yc.Year)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(16))
	if err != nil {
		return err
	}
	bars.Color = steelBlue
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// barhChart draws ranked counts as horizontal bars.
func (r *Renderer) barhChart(counts []analysis.KeyCount, title, xLabel, yLabel string, wInch, hInch float64, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, kc := range counts {
		values[i] = float64(kc.Count)
		labels[i] = kc.Key
	}
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = steelBlue
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)

	return p.Save(vg.Length(wInch)*vg.Inch, vg.Length(hInch)*vg.Inch, path)
}

// groupedBarhChart draws (group, label) pairs as horizontal bars colored per
// group, with one legend entry per group in first-appearance order.
func (r *Renderer) groupedBarhChart(pairs []analysis.PairValue, title, xLabel, yLabel, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	labels := make([]string, len(pairs))
	for i, pv := range pairs {
		labels[i] = pv.Label
	}
	var groups []string
	seen := make(map[string]bool)
	for _, pv := range pairs {
		if !seen[pv.Group] {
			seen[pv.Group] = true
			groups = append(groups, pv.Group)
		}
	}
	for gi, g := range groups {
		values := make(plotter.Values, len(pairs))
		for i, pv := range pairs {
			if pv.Group == g {
				values[i] = pv.Value
			}
		}
		bars, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return err
		}
		bars.Horizontal = true
		bars.Color = palette[gi%len(palette)]
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.Legend.Add(g, bars)
	}
	p.NominalY(labels...)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// rangeChart draws the mean electric range per model year as a marked line.
func (r *Renderer) rangeChart(means []analysis.YearMean, path string) error {
	p := plot.New()
	p.Title.Text = "Average Electric Range by Model Year"
	p.X.Label.Text = "Model Year"
	p.Y.Label.Text = "Average Electric Range (miles)"

	pts := make(plotter.XYs, len(means))
	for i, ym := range means {
		pts[i] = plotter.XY{X: float64(ym.Year), Y: ym.Mean}
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = lineGreen
	line.Width = vg.Points(2)
	points.Color = lineGreen
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(3)
	p.Add(line, points, plotter.NewGrid())

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// forecastChart draws the actual per-year counts through the cutoff year next
// to the projected horizon. Years after the cutoff are excluded from the
// actual series, matching the fitting sample.
func (r *Renderer) forecastChart(counts []analysis.YearCount, forecasted map[int]float64, fcfg config.ForecastConfig, path string) error {
	p := plot.New()
	p.Title.Text = "Current & Estimated EV Market"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of EV Registrations"

	var actual plotter.XYs
	for _, yc := range counts {
		if yc.Year <= fcfg.CutoffYear {
			actual = append(actual, plotter.XY{X: float64(yc.Year), Y: float64(yc.Count)})
		}
	}
	projected := make(plotter.XYs, 0, fcfg.HorizonEnd-fcfg.HorizonStart+1)
	for y := fcfg.HorizonStart; y <= fcfg.HorizonEnd; y++ {
		v, ok := forecasted[y]
		if !ok {
			return fmt.Errorf("forecast value missing for year %d", y)
		}
		projected = append(projected, plotter.XY{X: float64(y), Y: v})
	}

	actualLine, actualPoints, err := plotter.NewLinePoints(actual)
	if err != nil {
		return err
	}
	actualLine.Color = lineBlue
	actualLine.Width = vg.Points(2)
	actualPoints.Color = lineBlue
	actualPoints.Shape = draw.CircleGlyph{}
	actualPoints.Radius = vg.Points(3)

	projLine, projPoints, err := plotter.NewLinePoints(projected)
	if err != nil {
		return err
	}
	projLine.Color = lineRed
	projLine.Width = vg.Points(2)
	projLine.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	projPoints.Color = lineRed
	projPoints.Shape = draw.CircleGlyph{}
	projPoints.Radius = vg.Points(3)

	p.Add(actualLine, actualPoints, projLine, projPoints, plotter.NewGrid())
	p.Legend.Add("Actual Registrations", actualLine, actualPoints)
	p.Legend.Add("Forecasted Registrations", projLine, projPoints)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
