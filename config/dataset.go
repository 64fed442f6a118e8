package config

import "fmt"

// DatasetConfig locates the input file and fixes the region filter.
type DatasetConfig struct {
	// Path is the delimited registration dataset.
	Path string `json:"path"`
	// Region keeps only rows whose State column equals this value.
	Region string `json:"region"`
	// PreviewRows is the number of rows dumped after loading.
	PreviewRows int `json:"preview_rows"`
}

// SetDefaults applies the reference dataset location and filter.
func (c *DatasetConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "input/ev_data.csv"
	}
	if c.Region == "" {
		c.Region = "WA"
	}
	if c.PreviewRows == 0 {
		c.PreviewRows = 5
	}
}

// Validate checks mandatory fields.
func (c DatasetConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	if c.Region == "" {
		return fmt.Errorf("dataset region is required")
	}
	return nil
}
