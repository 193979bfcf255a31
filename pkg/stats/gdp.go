package stats

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// GDPPoint is the chained-dollar GDP of one quarter.
type GDPPoint struct {
	Quarter Quarter
	Value   float64
}

// GDPSeries is a quarterly GDP series, strictly ordered by quarter.
type GDPSeries []GDPPoint

// GDPOptions locates the quarterly series inside the BEA gdplev sheet.
// Column indexes are zero based.
type GDPOptions struct {
	QuarterCol   int
	ValueCol     int
	FirstQuarter Quarter
}

func DefaultGDPOptions() GDPOptions {
	return GDPOptions{
		QuarterCol:   4,
		ValueCol:     6,
		FirstQuarter: Quarter{Year: 2000, Q: 1},
	}
}

// LoadGDP reads the quarterly GDP series from an XLS, XLSX or CSV file.
func LoadGDP(path string, opts GDPOptions) (GDPSeries, error) {
	var rows [][]string
	err := ExtractDataFromFile(path, func(row []string) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s, err := ParseGDPRows(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("GDP file '%s': %w", path, err)
	}

	slog.Info("Loaded GDP series", "path", path, "quarters", len(s), "from", s[0].Quarter, "to", s[len(s)-1].Quarter)
	return s, nil
}

// ParseGDPRows picks the quarterly series out of raw sheet rows. Data rows
// are only read after a header row whose value column mentions chained
// dollars; rows without a `YYYYqN` label in the quarter column are skipped.
func ParseGDPRows(rows [][]string, opts GDPOptions) (GDPSeries, error) {
	var series GDPSeries
	headerFound := false

	for n, row := range rows {
		cell := func(c int) string {
			if c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}

		if !headerFound {
			if strings.Contains(strings.ToLower(cell(opts.ValueCol)), "chained") {
				headerFound = true
			}
			continue
		}

		label := cell(opts.QuarterCol)
		if !IsQuarterLabel(label) {
			continue
		}
		q, err := ParseQuarter(label)
		if err != nil {
			return nil, err
		}
		if q.Before(opts.FirstQuarter) {
			continue
		}

		raw := strings.ReplaceAll(cell(opts.ValueCol), ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d quarter %s: '%s'", ErrBadValue, n+1, q, raw)
		}

		if len(series) > 0 && !series[len(series)-1].Quarter.Before(q) {
			return nil, fmt.Errorf("%w: %s after %s", ErrUnorderedQuarters, q, series[len(series)-1].Quarter)
		}
		series = append(series, GDPPoint{Quarter: q, Value: v})
	}

	if !headerFound {
		return nil, fmt.Errorf("%w: no chained dollar GDP column at index %d", ErrMissingHeader, opts.ValueCol)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no GDP quarters from %s onwards", opts.FirstQuarter)
	}
	return series, nil
}
