package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"viralshorts/media"
)

// Progress stage strings reported at coarse boundaries of an export.
const (
	StagePreparing   = "preparing"
	StageMerging     = "merging"
	StageDownloading = "downloading"
	StageDone        = "done"
	StageVideoOnly   = "downloading video only"
	WarningNoMerge   = "narration and captions were not merged; video saved as-is"
)

// Exporter is the boundary the dashboard calls. It posts one merge request to
// the remote merge endpoint, saves the resulting MP4, and falls back to a
// video-only download when the endpoint is not deployed. All configuration is
// passed in here; the exporter never reads ambient state.
type Exporter struct {
	client   *http.Client
	endpoint string
	outDir   string
}

func NewExporter(client *http.Client, endpoint, outDir string) *Exporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Exporter{client: client, endpoint: endpoint, outDir: outDir}
}

// Export runs one export to completion and reports coarse progress through
// onProgress (which may be nil). It never panics across its boundary; every
// failure comes back as a Failed outcome with a displayable error. Exports are
// not retried.
func (e *Exporter) Export(ctx context.Context, req media.MergeRequest, onProgress func(stage string)) Outcome {
	progress := func(stage string) {
		if onProgress != nil {
			onProgress(stage)
		}
	}

	progress(StagePreparing)
	if err := req.Validate(); err != nil {
		return failed(&ValidationError{Reason: err.Error()})
	}

	progress(StageMerging)
	body, err := e.merge(ctx, req)
	if errors.Is(err, ErrEndpointUnavailable) {
		progress(StageVideoOnly)
		path, derr := e.download(ctx, req.VideoURL)
		if derr != nil {
			return failed(derr)
		}
		progress(StageDone)
		return degraded(path, WarningNoMerge)
	}
	if err != nil {
		return failed(err)
	}
	defer body.Close()

	progress(StageDownloading)
	path, err := e.save(body)
	if err != nil {
		return failed(err)
	}

	progress(StageDone)
	return success(path)
}

// merge posts the request to the merge endpoint and returns the MP4 stream.
// 404-class statuses map to ErrEndpointUnavailable; other failures decode the
// endpoint's {error, details} body.
func (e *Exporter) merge(ctx context.Context, req media.MergeRequest) (io.ReadCloser, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("merge request failed: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		resp.Body.Close()
		return nil, ErrEndpointUnavailable
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()

		var apiErr struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Error == "" {
			return nil, &MergeError{Message: fmt.Sprintf("failed to merge video (status %d)", resp.StatusCode)}
		}
		return nil, &MergeError{Message: apiErr.Error, Details: apiErr.Details}
	}

	return resp.Body, nil
}

// download fetches url directly into the output directory (fallback path).
func (e *Exporter) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &media.DownloadError{URL: url, Err: err}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &media.DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &media.DownloadError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	return e.save(resp.Body)
}

// save streams the body into a timestamped file under the output directory.
func (e *Exporter) save(body io.Reader) (string, error) {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.outDir, fmt.Sprintf("viralshorts-%d.mp4", time.Now().UnixMilli()))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	return path, nil
}
