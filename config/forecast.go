package config

import "fmt"

// ForecastConfig fixes the fitting sample cutoff and the projection horizon.
type ForecastConfig struct {
	// CutoffYear is the last model year admitted to the fitting sample.
	CutoffYear int `json:"cutoff_year"`
	// HorizonStart and HorizonEnd bound the projected years, inclusive.
	HorizonStart int `json:"horizon_start"`
	HorizonEnd   int `json:"horizon_end"`
}

// SetDefaults applies the reference horizon: fit through 2023, project
// 2024-2029.
func (c *ForecastConfig) SetDefaults() {
	if c.CutoffYear == 0 {
		c.CutoffYear = 2023
	}
	if c.HorizonStart == 0 {
		c.HorizonStart = c.CutoffYear + 1
	}
	if c.HorizonEnd == 0 {
		c.HorizonEnd = c.HorizonStart + 5
	}
}

// Validate checks the horizon is well formed.
func (c ForecastConfig) Validate() error {
	if c.HorizonStart <= c.CutoffYear {
		return fmt.Errorf("forecast horizon_start must follow cutoff_year")
	}
	if c.HorizonEnd < c.HorizonStart {
		return fmt.Errorf("forecast horizon_end precedes horizon_start")
	}
	return nil
}
