package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DownloadError reports that a source asset could not be retrieved. The URL is
// kept so the failure can be surfaced with its context.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Fetcher retrieves remote assets into temporary storage. The caller owns the
// returned asset and is responsible for removing it.
type Fetcher struct {
	Client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{Client: client}
}

// Fetch downloads the full body at url into a temp file with the given unique
// name. A non-2xx response or interrupted transfer yields a *DownloadError; on
// error no file is left behind.
func (f *Fetcher) Fetch(ctx context.Context, url, name string) (*TempAsset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	asset := NewTempAsset(name)
	out, err := os.Create(asset.Path)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		asset.Remove()
		return nil, &DownloadError{URL: url, Err: err}
	}

	if err := out.Close(); err != nil {
		asset.Remove()
		return nil, &DownloadError{URL: url, Err: err}
	}

	return asset, nil
}
