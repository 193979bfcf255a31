// Package config loads the settings of the housing command from defaults,
// an optional housing.yaml file, HOUSING_* environment variables and
// command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anrid/recession-housing/pkg/stats"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultConfigFile = "housing.yaml"
	EnvPrefix         = "HOUSING_"

	OutputText = "text"
	OutputJSON = "json"
	OutputDump = "dump"
)

type Config struct {
	DataDir       string  `koanf:"data_dir"`
	PricesPath    string  `koanf:"prices_path"`
	TownsPath     string  `koanf:"towns_path"`
	GDPPath       string  `koanf:"gdp_path"`
	FirstMonth    string  `koanf:"first_month"`
	FirstQuarter  string  `koanf:"first_quarter"`
	GDPQuarterCol int     `koanf:"gdp_quarter_col"`
	GDPValueCol   int     `koanf:"gdp_value_col"`
	Alpha         float64 `koanf:"alpha"`
	EqualVar      bool    `koanf:"equal_var"`
	Output        string  `koanf:"output"`
	Verbose       bool    `koanf:"verbose"`
	Sources       Sources `koanf:"sources"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Sources are the download URLs used by the fetch command.
type Sources struct {
	Prices string `koanf:"prices"`
	Towns  string `koanf:"towns"`
	GDP    string `koanf:"gdp"`
}

func defaults() map[string]interface{} {
	gdp := stats.DefaultGDPOptions()
	return map[string]interface{}{
		"data_dir":        ".",
		"prices_path":     "City_Zhvi_AllHomes.csv",
		"towns_path":      "university_towns.txt",
		"gdp_path":        "gdplev.xls",
		"first_month":     stats.DefaultFirstMonth,
		"first_quarter":   gdp.FirstQuarter.String(),
		"gdp_quarter_col": gdp.QuarterCol,
		"gdp_value_col":   gdp.ValueCol,
		"alpha":           stats.DefaultAlpha,
		"equal_var":       true,
		"output":          OutputText,
		"verbose":         false,
	}
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// HOUSING_GDP_PATH -> gdp_path, HOUSING_SOURCES_GDP -> sources.gdp
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = cfgFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "sources_"); ok {
		return "sources." + rest
	}
	return key
}

// flagKey maps --gdp-path to gdp_path and --source-gdp to sources.gdp.
func flagKey(name string) string {
	if rest, ok := strings.CutPrefix(name, "source-"); ok {
		return "sources." + rest
	}
	return strings.ReplaceAll(name, "-", "_")
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Output {
	case OutputText, OutputJSON, OutputDump:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (text|json|dump)", c.Output))
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		errs = append(errs, fmt.Errorf("alpha must be between 0 and 1, got %g", c.Alpha))
	}
	if _, err := stats.QuarterOfMonth(c.FirstMonth); err != nil {
		errs = append(errs, fmt.Errorf("first_month: %w", err))
	}
	if _, err := stats.ParseQuarter(c.FirstQuarter); err != nil {
		errs = append(errs, fmt.Errorf("first_quarter: %w", err))
	}
	if c.GDPQuarterCol < 0 || c.GDPValueCol < 0 {
		errs = append(errs, errors.New("GDP column indexes must not be negative"))
	}

	return errors.Join(errs...)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// Datasets returns the source files with paths resolved against DataDir.
func (c *Config) Datasets() *stats.Datasets {
	d := stats.NewDatasets(c.resolve(c.PricesPath), c.resolve(c.TownsPath), c.resolve(c.GDPPath))
	d.Prices.URL = c.Sources.Prices
	d.Towns.URL = c.Sources.Towns
	d.GDP.URL = c.Sources.GDP
	return d
}

func (c *Config) AnalysisOptions() stats.AnalysisOptions {
	// Validate has already checked the quarter label.
	first, _ := stats.ParseQuarter(c.FirstQuarter)
	return stats.AnalysisOptions{
		FirstMonth: c.FirstMonth,
		GDP: stats.GDPOptions{
			QuarterCol:   c.GDPQuarterCol,
			ValueCol:     c.GDPValueCol,
			FirstQuarter: first,
		},
		Hypothesis: stats.HypothesisOptions{
			Alpha:    c.Alpha,
			EqualVar: c.EqualVar,
		},
	}
}
