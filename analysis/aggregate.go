package analysis

import (
	"sort"

	"github.com/kilianp07/evinsight/config"
	"github.com/kilianp07/evinsight/core/model"
)

// YearCount is a per-model-year registration count.
type YearCount struct {
	Year  int
	Count int
}

// KeyCount is a per-category registration count.
type KeyCount struct {
	Key   string
	Count int
}

// YearMean is a per-model-year mean electric range.
type YearMean struct {
	Year int
	Mean float64
}

// PairValue is a (group, label) entry carrying a count or a mean, e.g.
// (county, city) or (make, model).
type PairValue struct {
	Group string
	Label string
	Value float64
}

// Summary bundles every aggregation consumed by the renderer and the
// workbook. All slices carry their display ordering.
type Summary struct {
	AdoptionByYear []YearCount
	CountyCounts   []KeyCount
	TopCounties    []string
	CityPairs      []PairValue
	TypeCounts     []KeyCount
	MakeCounts     []KeyCount
	TopMakes       []string
	ModelPairs     []PairValue
	RangeByYear    []YearMean
	RangePairs     []PairValue
}

// Summarize computes every aggregation off the table in one place. The table
// is not mutated.
func Summarize(t *model.Table, cfg config.AnalysisConfig) Summary {
	s := Summary{
		AdoptionByYear: CountByYear(t),
		CountyCounts:   CountByCounty(t),
		TypeCounts:     CountByType(t),
		MakeCounts:     CountByMake(t, cfg.TopMakes),
		RangeByYear:    MeanRangeByYear(t),
	}
	s.TopCounties = TopKeys(s.CountyCounts, cfg.TopCounties)
	s.TopMakes = TopKeys(s.MakeCounts, cfg.ChartMakes)
	s.CityPairs = TopCityPairs(t, s.TopCounties, cfg.TopPairs, cfg.LabelLimit)
	s.ModelPairs = TopModelPairs(t, s.TopMakes, cfg.TopPairs, cfg.LabelLimit)
	s.RangePairs = TopModelsByRange(t, s.TopMakes, cfg.TopPairs, cfg.LabelLimit)
	return s
}

// CountByYear counts registrations per model year, ascending.
func CountByYear(t *model.Table) []YearCount {
	counts := make(map[int]int)
	for i := 0; i < t.Len(); i++ {
		counts[int(t.Year[i])]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CountByCounty counts registrations per county, descending.
func CountByCounty(t *model.Table) []KeyCount {
	return countBy(t.Len(), t.County.Value)
}

// CountByType counts registrations per vehicle type, descending.
func CountByType(t *model.Table) []KeyCount {
	return countBy(t.Len(), t.Type.Value)
}

// CountByMake counts registrations per manufacturer, descending, truncated to
// the top n.
func CountByMake(t *model.Table, n int) []KeyCount {
	out := countBy(t.Len(), t.Make.Value)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopKeys returns the first n keys of a ranked count slice.
func TopKeys(counts []KeyCount, n int) []string {
	if n > len(counts) {
		n = len(counts)
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = counts[i].Key
	}
	return keys
}

// MeanRangeByYear computes the mean electric range per model year, ascending.
func MeanRangeByYear(t *model.Table) []YearMean {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := 0; i < t.Len(); i++ {
		y := int(t.Year[i])
		sums[y] += float64(t.Range[i])
		counts[y]++
	}
	out := make([]YearMean, 0, len(sums))
	for y, sum := range sums {
		out = append(out, YearMean{Year: y, Mean: sum / float64(counts[y])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopCityPairs counts registrations per (county, city) within the given
// counties, descending, truncated to the top limit pairs overall. City labels
// are shortened for display.
func TopCityPairs(t *model.Table, counties []string, limit, labelLimit int) []PairValue {
	in := keySet(counties)
	pairs := countPairs(t.Len(), func(i int) (string, string, bool) {
		c := t.County.Value(i)
		if !in[c] {
			return "", "", false
		}
		return c, t.City.Value(i), true
	})
	return headTruncated(pairs, limit, labelLimit)
}

// TopModelPairs counts registrations per (make, model) within the given
// makes, descending, truncated to the top limit pairs overall.
func TopModelPairs(t *model.Table, makes []string, limit, labelLimit int) []PairValue {
	in := keySet(makes)
	pairs := countPairs(t.Len(), func(i int) (string, string, bool) {
		m := t.Make.Value(i)
		if !in[m] {
			return "", "", false
		}
		return m, t.Model.Value(i), true
	})
	return headTruncated(pairs, limit, labelLimit)
}

// TopModelsByRange computes the mean electric range per (make, model) within
// the given makes, descending by mean, truncated to the top limit pairs.
func TopModelsByRange(t *model.Table, makes []string, limit, labelLimit int) []PairValue {
	in := keySet(makes)
	type agg struct {
		sum float64
		n   int
	}
	sums := make(map[[2]string]*agg)
	var order [][2]string
	for i := 0; i < t.Len(); i++ {
		m := t.Make.Value(i)
		if !in[m] {
			continue
		}
		k := [2]string{m, t.Model.Value(i)}
		a, ok := sums[k]
		if !ok {
			a = &agg{}
			sums[k] = a
			order = append(order, k)
		}
		a.sum += float64(t.Range[i])
		a.n++
	}
	out := make([]PairValue, 0, len(order))
	for _, k := range order {
		a := sums[k]
		out = append(out, PairValue{Group: k[0], Label: k[1], Value: a.sum / float64(a.n)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return headTruncated(out, limit, labelLimit)
}

// TruncateLabel shortens a display label longer than limit characters to its
// first limit characters plus an ellipsis marker.
func TruncateLabel(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// countBy groups rows by a categorical accessor and ranks the groups by count
// descending. Ties keep first-seen order.
func countBy(n int, value func(int) string) []KeyCount {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < n; i++ {
		k := value(i)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]KeyCount, 0, len(order))
	for _, k := range order {
		out = append(out, KeyCount{Key: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// countPairs groups rows by a (group, label) accessor and ranks pairs by
// count descending with first-seen tie order.
func countPairs(n int, pair func(int) (string, string, bool)) []PairValue {
	counts := make(map[[2]string]int)
	var order [][2]string
	for i := 0; i < n; i++ {
		g, l, ok := pair(i)
		if !ok {
			continue
		}
		k := [2]string{g, l}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]PairValue, 0, len(order))
	for _, k := range order {
		out = append(out, PairValue{Group: k[0], Label: k[1], Value: float64(counts[k])})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func headTruncated(pairs []PairValue, limit, labelLimit int) []PairValue {
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	for i := range pairs {
		pairs[i].Label = TruncateLabel(pairs[i].Label, labelLimit)
	}
	return pairs
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
