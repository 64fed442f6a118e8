package config

import "fmt"

// AnalysisConfig names the top-N cut points used by the aggregations.
type AnalysisConfig struct {
	// TopCounties scopes the city-level view to the N busiest counties.
	TopCounties int `json:"top_counties"`
	// TopMakes is the length of the make ranking.
	TopMakes int `json:"top_makes"`
	// ChartMakes scopes the model-level views to the N busiest makes.
	ChartMakes int `json:"chart_makes"`
	// TopPairs truncates the (county,city) and (make,model) views.
	TopPairs int `json:"top_pairs"`
	// LabelLimit is the display length above which labels are shortened.
	LabelLimit int `json:"label_limit"`
}

// SetDefaults applies the reference cut points.
func (c *AnalysisConfig) SetDefaults() {
	if c.TopCounties == 0 {
		c.TopCounties = 3
	}
	if c.TopMakes == 0 {
		c.TopMakes = 5
	}
	if c.ChartMakes == 0 {
		c.ChartMakes = 3
	}
	if c.TopPairs == 0 {
		c.TopPairs = 5
	}
	if c.LabelLimit == 0 {
		c.LabelLimit = 12
	}
}

// Validate checks the cut points are usable.
func (c AnalysisConfig) Validate() error {
	for name, v := range map[string]int{
		"top_counties": c.TopCounties,
		"top_makes":    c.TopMakes,
		"chart_makes":  c.ChartMakes,
		"top_pairs":    c.TopPairs,
		"label_limit":  c.LabelLimit,
	} {
		if v < 1 {
			return fmt.Errorf("analysis %s must be positive", name)
		}
	}
	if c.ChartMakes > c.TopMakes {
		return fmt.Errorf("analysis chart_makes cannot exceed top_makes")
	}
	return nil
}
