package stats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

func download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	slog.Info("Download", "url", url)

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	return io.ReadAll(resp.Body)
}
