package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/evinsight/config"
	"github.com/kilianp07/evinsight/core/logger"
	"github.com/kilianp07/evinsight/core/model"
)

// Column headers required in the input file, name-exact.
const (
	ColState  = "State"
	ColYear   = "Model Year"
	ColMake   = "Make"
	ColModel  = "Model"
	ColCounty = "County"
	ColCity   = "City"
	ColType   = "Electric Vehicle Type"
	ColRange  = "Electric Range"
)

// Columns lists the tracked headers in schema order.
var Columns = []string{ColState, ColYear, ColMake, ColModel, ColCounty, ColCity, ColType, ColRange}

// Load reads the delimited registration dataset at cfg.Path, restricts it to
// the tracked columns, drops rows with a missing value in any of them, and
// keeps only rows matching cfg.Region. The returned table is densely indexed
// and read-only.
func Load(cfg config.DatasetConfig, log logger.Logger) (*model.Table, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(Columns))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	cols := make([]int, len(Columns))
	for i, name := range Columns {
		j, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = j
	}

	b := model.NewBuilder()
	total, missing, filtered := 0, 0, 0
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++
		total++

		cells := make([]string, len(cols))
		incomplete := false
		for i, j := range cols {
			v := strings.TrimSpace(rec[j])
			if v == "" {
				incomplete = true
				break
			}
			cells[i] = v
		}
		if incomplete {
			missing++
			continue
		}
		if total <= cfg.PreviewRows {
			log.Infof("preview row %d: %s", total, strings.Join(cells, " | "))
		}

		year, err := strconv.ParseInt(cells[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse %s %q: %w", row, ColYear, cells[1], err)
		}
		rng, err := strconv.ParseFloat(cells[7], 32)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse %s %q: %w", row, ColRange, cells[7], err)
		}
		if cells[0] != cfg.Region {
			filtered++
			continue
		}

		b.Append(model.Record{
			State:     cells[0],
			Year:      int16(year),
			Make:      cells[2],
			Model:     cells[3],
			County:    cells[4],
			City:      cells[5],
			Type:      cells[6],
			RangeMile: float32(rng),
		})
	}

	t := b.Table()
	log.Infof("loaded %s: %d rows, %d tracked columns", cfg.Path, total, len(Columns))
	log.Infof("dropped %d rows with missing values, remaining: %d", missing, total-missing)
	log.Infof("filtered for region %s: kept %d rows, dropped %d", cfg.Region, t.Len(), filtered)
	return t, nil
}
