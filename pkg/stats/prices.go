package stats

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
)

// DefaultFirstMonth is the first monthly column kept from the price data.
const DefaultFirstMonth = "2000-01"

// PriceTable holds the mean home price of every region per quarter.
// A region without any observation for a quarter has no entry for it.
type PriceTable struct {
	Quarters []Quarter
	Regions  []*RegionPrices

	index map[RegionKey]*RegionPrices
}

type RegionPrices struct {
	Key    RegionKey
	Prices map[Quarter]float64
}

// LoadPriceTable reads monthly city prices from a CSV, XLS or XLSX file
// and bins them into quarters.
func LoadPriceTable(path, firstMonth string) (*PriceTable, error) {
	var header []string
	var rows [][]string

	err := ExtractDataFromFile(path, func(row []string) error {
		if header == nil {
			header = row
			return nil
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("%w: price file '%s' is empty", ErrMissingHeader, path)
	}

	t, err := BuildPriceTable(header, rows, firstMonth)
	if err != nil {
		return nil, fmt.Errorf("price file '%s': %w", path, err)
	}

	slog.Info("Loaded price table", "path", path, "regions", len(t.Regions), "quarters", len(t.Quarters))
	return t, nil
}

// BuildPriceTable reshapes a wide table of monthly prices (one column per
// `YYYY-MM` month) into quarterly means. Columns before firstMonth are
// discarded; every column from firstMonth on must be a month.
func BuildPriceTable(header []string, rows [][]string, firstMonth string) (*PriceTable, error) {
	if firstMonth == "" {
		firstMonth = DefaultFirstMonth
	}

	nameCol, stateCol, monthCol := -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "RegionName":
			nameCol = i
		case "State":
			stateCol = i
		case firstMonth:
			monthCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: RegionName", ErrMissingColumn)
	}
	if stateCol < 0 {
		return nil, fmt.Errorf("%w: State", ErrMissingColumn)
	}
	if monthCol < 0 {
		return nil, fmt.Errorf("%w: first month %s", ErrMissingColumn, firstMonth)
	}

	colQuarter := make(map[int]Quarter)
	seen := make(map[Quarter]bool)
	t := &PriceTable{index: make(map[RegionKey]*RegionPrices)}

	for c := monthCol; c < len(header); c++ {
		q, err := QuarterOfMonth(strings.TrimSpace(header[c]))
		if err != nil {
			return nil, err
		}
		colQuarter[c] = q
		if !seen[q] {
			seen[q] = true
			t.Quarters = append(t.Quarters, q)
		}
	}
	sort.Slice(t.Quarters, func(i, j int) bool {
		return t.Quarters[i].Before(t.Quarters[j])
	})

	type sum struct {
		Total float64
		Count int
	}

	for n, row := range rows {
		cell := func(c int) string {
			if c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}

		key := RegionKey{
			State:      NormalizeState(cell(stateCol)),
			RegionName: cell(nameCol),
		}
		if _, found := t.index[key]; found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRegion, key)
		}

		sums := make(map[Quarter]*sum)
		for c := monthCol; c < len(header); c++ {
			v := cell(c)
			if v == "" {
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: '%s'", ErrBadValue, n+2, header[c], v)
			}
			if math.IsNaN(f) {
				continue
			}
			q := colQuarter[c]
			if sums[q] == nil {
				sums[q] = &sum{}
			}
			sums[q].Total += f
			sums[q].Count++
		}

		r := &RegionPrices{Key: key, Prices: make(map[Quarter]float64, len(sums))}
		for q, s := range sums {
			r.Prices[q] = s.Total / float64(s.Count)
		}

		t.Regions = append(t.Regions, r)
		t.index[key] = r
	}

	sort.SliceStable(t.Regions, func(i, j int) bool {
		return t.Regions[i].Key.Less(t.Regions[j].Key)
	})

	return t, nil
}

// Price returns the mean price of a region for a quarter.
func (t *PriceTable) Price(key RegionKey, q Quarter) (float64, bool) {
	r, found := t.index[key]
	if !found {
		return 0, false
	}
	v, found := r.Prices[q]
	return v, found
}

// Keys returns the region keys in table order.
func (t *PriceTable) Keys() []RegionKey {
	keys := make([]RegionKey, len(t.Regions))
	for i, r := range t.Regions {
		keys[i] = r.Key
	}
	return keys
}
