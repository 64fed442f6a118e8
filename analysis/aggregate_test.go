package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evinsight/config"
	"github.com/kilianp07/evinsight/core/model"
)

func testCfg() config.AnalysisConfig {
	cfg := config.AnalysisConfig{}
	cfg.SetDefaults()
	return cfg
}

func buildTable(recs []model.Record) *model.Table {
	b := model.NewBuilder()
	for _, r := range recs {
		b.Append(r)
	}
	return b.Table()
}

func sampleTable() *model.Table {
	rec := func(year int16, mk, md, county, city, typ string, rng float32) model.Record {
		return model.Record{State: "WA", Year: year, Make: mk, Model: md, County: county, City: city, Type: typ, RangeMile: rng}
	}
	return buildTable([]model.Record{
		rec(2020, "TESLA", "MODEL 3", "King", "Seattle", "BEV", 266),
		rec(2021, "TESLA", "MODEL Y", "King", "Seattle", "BEV", 291),
		rec(2021, "TESLA", "MODEL 3", "King", "Bellevue", "BEV", 266),
		rec(2021, "NISSAN", "LEAF", "Pierce", "Tacoma", "BEV", 150),
		rec(2022, "NISSAN", "LEAF", "Pierce", "Tacoma", "BEV", 151),
		rec(2022, "TOYOTA", "PRIUS PRIME", "Snohomish", "Everett", "PHEV", 25),
		rec(2022, "TESLA", "MODEL Y", "King", "Seattle", "BEV", 303),
		rec(2023, "CHEVROLET", "BOLT EV", "Thurston", "Olympia", "BEV", 259),
		rec(2023, "TESLA", "MODEL 3", "King", "Seattle", "BEV", 272),
		rec(2023, "TOYOTA", "PRIUS PRIME", "Snohomish", "Everett", "PHEV", 25),
	})
}

func TestCountByYearSumsToTableLen(t *testing.T) {
	tbl := sampleTable()
	counts := CountByYear(tbl)

	total := 0
	last := 0
	for _, yc := range counts {
		total += yc.Count
		assert.Greater(t, yc.Year, last, "years must ascend")
		last = yc.Year
	}
	assert.Equal(t, tbl.Len(), total)
	assert.Equal(t, []YearCount{{2020, 1}, {2021, 3}, {2022, 3}, {2023, 3}}, counts)
}

func TestCountByCountyDescending(t *testing.T) {
	counts := CountByCounty(sampleTable())
	require.NotEmpty(t, counts)
	assert.Equal(t, KeyCount{Key: "King", Count: 5}, counts[0])
	for i := 1; i < len(counts); i++ {
		assert.GreaterOrEqual(t, counts[i-1].Count, counts[i].Count)
	}

	top := TopKeys(counts, 3)
	assert.Len(t, top, 3)
	assert.Equal(t, "King", top[0])
}

func TestCountTiesKeepFirstSeenOrder(t *testing.T) {
	counts := CountByCounty(sampleTable())
	// Pierce and Snohomish both count 2; Pierce appears first in the data.
	var idxPierce, idxSnohomish int
	for i, kc := range counts {
		switch kc.Key {
		case "Pierce":
			idxPierce = i
		case "Snohomish":
			idxSnohomish = i
		}
	}
	assert.Less(t, idxPierce, idxSnohomish)
}

func TestCountByMakeTruncates(t *testing.T) {
	counts := CountByMake(sampleTable(), 2)
	require.Len(t, counts, 2)
	assert.Equal(t, "TESLA", counts[0].Key)
	assert.Equal(t, 5, counts[0].Count)
}

func TestTopCityPairsScopedAndLimited(t *testing.T) {
	tbl := sampleTable()
	pairs := TopCityPairs(tbl, []string{"King", "Pierce"}, 2, 12)
	require.Len(t, pairs, 2)
	assert.Equal(t, PairValue{Group: "King", Label: "Seattle", Value: 4}, pairs[0])
	for _, pv := range pairs {
		assert.Contains(t, []string{"King", "Pierce"}, pv.Group)
	}
}

func TestMeanRangeByYear(t *testing.T) {
	means := MeanRangeByYear(sampleTable())
	require.Len(t, means, 4)
	assert.Equal(t, 2020, means[0].Year)
	assert.InDelta(t, 266, means[0].Mean, 0.001)
	// 2022: (151 + 25 + 303) / 3
	assert.InDelta(t, 159.6667, means[2].Mean, 0.001)
}

func TestTopModelsByRangeDescending(t *testing.T) {
	pairs := TopModelsByRange(sampleTable(), []string{"TESLA", "NISSAN"}, 5, 12)
	require.NotEmpty(t, pairs)
	assert.Equal(t, "MODEL Y", pairs[0].Label)
	assert.InDelta(t, 297, pairs[0].Value, 0.001)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i-1].Value, pairs[i].Value)
	}
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "Seattle", TruncateLabel("Seattle", 12))
	assert.Equal(t, "University P...", TruncateLabel("University Place", 12))
	assert.Equal(t, "exactlytwelv", TruncateLabel("exactlytwelv", 12))
}

func TestSummarizeShapes(t *testing.T) {
	cfg := testCfg()
	s := Summarize(sampleTable(), cfg)

	assert.Len(t, s.TopCounties, 3)
	assert.LessOrEqual(t, len(s.MakeCounts), cfg.TopMakes)
	assert.Len(t, s.TopMakes, cfg.ChartMakes)
	assert.LessOrEqual(t, len(s.CityPairs), cfg.TopPairs)
	assert.LessOrEqual(t, len(s.ModelPairs), cfg.TopPairs)
	assert.LessOrEqual(t, len(s.RangePairs), cfg.TopPairs)
	for _, pv := range s.CityPairs {
		assert.LessOrEqual(t, len([]rune(pv.Label)), cfg.LabelLimit+3)
	}
}
