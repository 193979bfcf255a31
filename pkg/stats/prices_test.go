package stats

import (
	"fmt"
	"path/filepath"
	"testing"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var priceHeader = []string{"RegionID", "RegionName", "State", "Metro", "1999-12", "2000-01", "2000-02", "2000-03", "2000-04", "2000-05"}

func TestBuildPriceTable_QuarterMeans(t *testing.T) {
	rows := [][]string{
		{"1", "Springfield", "IL", "m", "999", "100", "200", "300", "400", ""},
		{"2", "Albany", "NY", "m", "1", "", "", "", "", ""},
		{"3", "Austin", "TX", "m", "1", "10", "", "30", "", "50"},
	}

	table, err := BuildPriceTable(priceHeader, rows, "2000-01")
	require.NoError(t, err)

	assert.Equal(t, []Quarter{{2000, 1}, {2000, 2}}, table.Quarters)

	v, ok := table.Price(RegionKey{"Illinois", "Springfield"}, Quarter{2000, 1})
	require.True(t, ok)
	assert.InDelta(t, 200.0, v, 1e-9)

	// Only the present month counts.
	v, ok = table.Price(RegionKey{"Illinois", "Springfield"}, Quarter{2000, 2})
	require.True(t, ok)
	assert.InDelta(t, 400.0, v, 1e-9)

	v, ok = table.Price(RegionKey{"Texas", "Austin"}, Quarter{2000, 1})
	require.True(t, ok)
	assert.InDelta(t, 20.0, v, 1e-9)

	_, ok = table.Price(RegionKey{"New York", "Albany"}, Quarter{2000, 1})
	assert.False(t, ok, "quarter without observations has no value")

	_, ok = table.Price(RegionKey{"Illinois", "Springfield"}, Quarter{1999, 4})
	assert.False(t, ok, "columns before the first month are discarded")
}

func TestBuildPriceTable_SortedByRegion(t *testing.T) {
	rows := [][]string{
		{"1", "Zeta", "AL", "", "", "1", "", "", "", ""},
		{"2", "Beta", "WY", "", "", "1", "", "", "", ""},
		{"3", "Alpha", "AL", "", "", "1", "", "", "", ""},
	}

	table, err := BuildPriceTable(priceHeader, rows, "2000-01")
	require.NoError(t, err)

	assert.Equal(t, []RegionKey{
		{"Alabama", "Alpha"},
		{"Alabama", "Zeta"},
		{"Wyoming", "Beta"},
	}, table.Keys())
}

func TestBuildPriceTable_Errors(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   error
	}{
		{
			name:   "duplicate region after normalization",
			header: []string{"RegionName", "State", "2000-01"},
			rows:   [][]string{{"Portland", "OR", "1"}, {"Portland", "Oregon", "2"}},
			want:   ErrDuplicateRegion,
		},
		{
			name:   "malformed month column",
			header: []string{"RegionName", "State", "2000-01", "2000-1x"},
			want:   ErrMalformedColumn,
		},
		{
			name:   "missing first month",
			header: []string{"RegionName", "State", "2000-02"},
			want:   ErrMissingColumn,
		},
		{
			name:   "missing state column",
			header: []string{"RegionName", "2000-01"},
			want:   ErrMissingColumn,
		},
		{
			name:   "unparseable price",
			header: []string{"RegionName", "State", "2000-01"},
			rows:   [][]string{{"Portland", "OR", "n/a"}},
			want:   ErrBadValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPriceTable(tt.header, tt.rows, "2000-01")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStateName(t *testing.T) {
	name, ok := StateName("DC")
	assert.True(t, ok)
	assert.Equal(t, "District of Columbia", name)

	_, ok = StateName("XX")
	assert.False(t, ok)
	assert.Equal(t, "XX", NormalizeState("XX"))
}

func TestLoadPriceTable_CSV(t *testing.T) {
	table, err := LoadPriceTable(filepath.Join("testdata", "prices.csv"), DefaultFirstMonth)
	require.NoError(t, err)

	assert.Len(t, table.Regions, 8)
	assert.Len(t, table.Quarters, 5)
	assert.Equal(t, Quarter{2000, 1}, table.Quarters[0])
	assert.Equal(t, Quarter{2001, 1}, table.Quarters[4])

	v, ok := table.Price(RegionKey{"Michigan", "Ann Arbor"}, Quarter{2000, 2})
	require.True(t, ok)
	assert.InDelta(t, 100000.0, v, 1e-6)

	_, ok = table.Price(RegionKey{"Nevada", "Reno"}, Quarter{2001, 1})
	assert.False(t, ok)
}

func TestLoadPriceTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")

	f := xlsx.NewFile()
	sheet := "Sheet1"
	rows := [][]interface{}{
		{"RegionName", "State", "2000-01", "2000-02", "2000-03"},
		{"Ames", "IA", 100, 110, 120},
	}
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row))
	}
	require.NoError(t, f.SaveAs(path))

	table, err := LoadPriceTable(path, "2000-01")
	require.NoError(t, err)

	v, ok := table.Price(RegionKey{"Iowa", "Ames"}, Quarter{2000, 1})
	require.True(t, ok)
	assert.InDelta(t, 110.0, v, 1e-9)
}
