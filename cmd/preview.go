package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evinsight/config"
	"github.com/kilianp07/evinsight/dataset"
	"github.com/kilianp07/evinsight/infra/logger"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Load the dataset and print its leading rows",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	table, err := dataset.Load(cfg.Dataset, logger.New("preview"))
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	n := cfg.Dataset.PreviewRows
	if n > table.Len() {
		n = table.Len()
	}
	for i := 0; i < n; i++ {
		rec := table.Row(i)
		fmt.Printf("%s %d %s %s %s/%s %s %.1f mi\n",
			rec.State, rec.Year, rec.Make, rec.Model, rec.County, rec.City, rec.Type, rec.RangeMile)
	}
	fmt.Printf("%d rows for region %s\n", table.Len(), cfg.Dataset.Region)
	return nil
}
