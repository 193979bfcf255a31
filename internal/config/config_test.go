package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anrid/recession-housing/pkg/stats"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "housing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("gdp-path", "", "")
	f.Float64("alpha", 0, "")
	f.Bool("equal-var", true, "")
	f.String("source-gdp", "", "")
	return f
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "City_Zhvi_AllHomes.csv", cfg.PricesPath)
	assert.Equal(t, "university_towns.txt", cfg.TownsPath)
	assert.Equal(t, "gdplev.xls", cfg.GDPPath)
	assert.Equal(t, "2000-01", cfg.FirstMonth)
	assert.Equal(t, "2000q1", cfg.FirstQuarter)
	assert.Equal(t, 4, cfg.GDPQuarterCol)
	assert.Equal(t, 6, cfg.GDPValueCol)
	assert.Equal(t, 0.01, cfg.Alpha)
	assert.True(t, cfg.EqualVar)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Empty(t, cfg.File)

	assert.Equal(t, stats.DefaultAnalysisOptions(), cfg.AnalysisOptions())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
data_dir: /data
gdp_path: file.xls
towns_path: towns.txt
alpha: 0.05
sources:
  prices: http://example.com/prices.csv
`)
	t.Setenv("HOUSING_GDP_PATH", "env.xls")
	t.Setenv("HOUSING_ALPHA", "0.02")
	t.Setenv("HOUSING_SOURCES_TOWNS", "http://example.com/towns.txt")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--gdp-path", "flag.xls", "--equal-var=false"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "flag.xls", cfg.GDPPath)
	assert.Equal(t, 0.02, cfg.Alpha)
	assert.False(t, cfg.EqualVar)
	assert.Equal(t, "towns.txt", cfg.TownsPath)
	assert.Equal(t, "http://example.com/prices.csv", cfg.Sources.Prices)
	assert.Equal(t, "http://example.com/towns.txt", cfg.Sources.Towns)

	d := cfg.Datasets()
	assert.Equal(t, filepath.Join("/data", "flag.xls"), d.GDP.Path)
	assert.Equal(t, filepath.Join("/data", "towns.txt"), d.Towns.Path)
	assert.Equal(t, "http://example.com/prices.csv", d.Prices.URL)

	opts := cfg.AnalysisOptions()
	assert.Equal(t, 0.02, opts.Hypothesis.Alpha)
	assert.False(t, opts.Hypothesis.EqualVar)
}

func TestLoad_SourceFlag(t *testing.T) {
	chdir(t, t.TempDir())

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--source-gdp", "http://example.com/gdplev.xls"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/gdplev.xls", cfg.Sources.GDP)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"output", "output: xml"},
		{"alpha", "alpha: 1.5"},
		{"first month", "first_month: 2000-13"},
		{"first quarter", "first_quarter: 2000q5"},
		{"columns", "gdp_value_col: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml), nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
