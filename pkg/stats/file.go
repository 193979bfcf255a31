package stats

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// File represents a file containing one of the source datasets.
// This is typically a CSV, XLS or XLSX table, or the plain text list of
// university towns.
type File struct {
	Title string
	Path  string
	URL   string
}

// Download fetches the file from its URL and writes it to Path.
func (f *File) Download(ctx context.Context, client *http.Client) error {
	if f.URL == "" {
		return fmt.Errorf("no download URL configured for %s", f.Title)
	}

	data, err := download(ctx, client, f.URL)
	if err != nil {
		return fmt.Errorf("download %s: %w", f.Title, err)
	}

	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}

	slog.Info("Saved dataset", "title", f.Title, "path", f.Path, "bytes", len(data))
	return nil
}
