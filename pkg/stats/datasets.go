package stats

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// Datasets are the three source files of the analysis.
type Datasets struct {
	Prices File
	Towns  File
	GDP    File
}

func NewDatasets(prices, towns, gdp string) *Datasets {
	return &Datasets{
		Prices: File{Title: "City home prices", Path: prices},
		Towns:  File{Title: "University towns", Path: towns},
		GDP:    File{Title: "Quarterly GDP", Path: gdp},
	}
}

func (d *Datasets) Files() []*File {
	return []*File{&d.Prices, &d.Towns, &d.GDP}
}

// DownloadAll fetches every dataset that has a URL configured.
func (d *Datasets) DownloadAll(ctx context.Context, client *http.Client) (int, error) {
	n := 0
	for _, f := range d.Files() {
		if f.URL == "" {
			slog.Debug("No URL configured, skipping", "title", f.Title)
			continue
		}
		if err := f.Download(ctx, client); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type AnalysisOptions struct {
	FirstMonth string
	GDP        GDPOptions
	Hypothesis HypothesisOptions
}

func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		FirstMonth: DefaultFirstMonth,
		GDP:        DefaultGDPOptions(),
		Hypothesis: DefaultHypothesisOptions(),
	}
}

// Analyze loads the three datasets, finds the recession and tests the
// hypothesis.
func (d *Datasets) Analyze(opts AnalysisOptions) (*Result, error) {
	gdp, err := LoadGDP(d.GDP.Path, opts.GDP)
	if err != nil {
		return nil, err
	}
	recession, err := DetectRecession(gdp)
	if err != nil {
		return nil, err
	}
	slog.Info("Recession", "start", recession.Start, "bottom", recession.Bottom, "end", recession.End)

	prices, err := LoadPriceTable(d.Prices.Path, opts.FirstMonth)
	if err != nil {
		return nil, err
	}
	towns, err := LoadUniversityTowns(d.Towns.Path)
	if err != nil {
		return nil, err
	}

	return RunHypothesis(prices, towns, recession, opts.Hypothesis)
}

func Dump(w io.Writer, o interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}
