package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ChartsConfig controls where chart images are written and how they are named.
type ChartsConfig struct {
	// OutputDir receives the rendered images. Created if absent.
	OutputDir string `json:"output_dir"`
	// Prefix is the leading token of every artifact filename.
	Prefix string `json:"prefix"`
}

// SetDefaults derives the prefix from the dataset filename, as the reference
// run does.
func (c *ChartsConfig) SetDefaults(datasetPath string) {
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.Prefix == "" {
		base := filepath.Base(datasetPath)
		c.Prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}
}

// Validate checks mandatory fields.
func (c ChartsConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("charts output_dir is required")
	}
	if c.Prefix == "" {
		return fmt.Errorf("charts prefix is required")
	}
	return nil
}

// ReportConfig controls the summary workbook.
type ReportConfig struct {
	// Disabled skips writing the workbook.
	Disabled bool `json:"disabled"`
}
