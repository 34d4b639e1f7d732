package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"viralshorts/media"
)

func validRequest(endpoint string) media.MergeRequest {
	return media.MergeRequest{
		VideoURL: endpoint + "/video.mp4",
		AudioURL: endpoint + "/audio.mp3",
		Text:     "isso vai mudar tudo",
		Duration: 2.0,
	}
}

func TestExportSuccess(t *testing.T) {
	var received media.MergeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/merge-video" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "video/mp4")
		io.WriteString(w, "MERGED")
	}))
	defer srv.Close()

	outDir := t.TempDir()
	e := NewExporter(srv.Client(), srv.URL+"/api/merge-video", outDir)

	var stages []string
	outcome := e.Export(context.Background(), validRequest(srv.URL), func(stage string) {
		stages = append(stages, stage)
	})

	if outcome.State != StateSuccess {
		t.Fatalf("outcome = %+v; want success", outcome)
	}

	got, err := os.ReadFile(outcome.Path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != "MERGED" {
		t.Fatalf("saved %q; want merged bytes", got)
	}

	if received.Duration != 2.0 || received.Text != "isso vai mudar tudo" {
		t.Fatalf("endpoint received %+v", received)
	}

	want := []string{StagePreparing, StageMerging, StageDownloading, StageDone}
	if !reflect.DeepEqual(stages, want) {
		t.Fatalf("stages = %v; want %v", stages, want)
	}
}

func TestExportFallbackWhenEndpointMissing(t *testing.T) {
	// The server knows the video asset but has no merge route deployed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/video.mp4" {
			io.WriteString(w, "RAWVIDEO")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := NewExporter(srv.Client(), srv.URL+"/api/merge-video", t.TempDir())

	var stages []string
	outcome := e.Export(context.Background(), validRequest(srv.URL), func(stage string) {
		stages = append(stages, stage)
	})

	if outcome.State != StateDegraded {
		t.Fatalf("outcome = %+v; want degraded, not a hard failure", outcome)
	}
	if outcome.Warning == "" {
		t.Fatal("degraded outcome carries no warning")
	}

	got, err := os.ReadFile(outcome.Path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != "RAWVIDEO" {
		t.Fatalf("saved %q; want the raw video bytes", got)
	}

	want := []string{StagePreparing, StageMerging, StageVideoOnly, StageDone}
	if !reflect.DeepEqual(stages, want) {
		t.Fatalf("stages = %v; want %v", stages, want)
	}
}

func TestExportMergeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Failed to merge video",
			"details": "Error while opening encoder for output stream",
		})
	}))
	defer srv.Close()

	e := NewExporter(srv.Client(), srv.URL, t.TempDir())
	outcome := e.Export(context.Background(), validRequest(srv.URL), nil)

	if outcome.State != StateFailed {
		t.Fatalf("outcome = %+v; want failed", outcome)
	}

	var mergeErr *MergeError
	if !errors.As(outcome.Err, &mergeErr) {
		t.Fatalf("err = %v; want *MergeError", outcome.Err)
	}
	if mergeErr.Details != "Error while opening encoder for output stream" {
		t.Fatalf("engine diagnostics altered: %q", mergeErr.Details)
	}
}

func TestExportValidation(t *testing.T) {
	cases := []struct {
		name string
		req  media.MergeRequest
	}{
		{"missing video", media.MergeRequest{AudioURL: "a", Duration: 1}},
		{"missing audio", media.MergeRequest{VideoURL: "v", Duration: 1}},
		{"non-positive duration", media.MergeRequest{VideoURL: "v", AudioURL: "a"}},
	}

	e := NewExporter(nil, "http://localhost:0/api/merge-video", t.TempDir())

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			outcome := e.Export(context.Background(), c.req, nil)

			if outcome.State != StateFailed {
				t.Fatalf("outcome = %+v; want failed", outcome)
			}

			var vErr *ValidationError
			if !errors.As(outcome.Err, &vErr) {
				t.Fatalf("err = %v; want *ValidationError", outcome.Err)
			}
		})
	}
}

func TestExportFallbackDownloadFailure(t *testing.T) {
	// No merge route and the raw video is also gone: now it is a failure.
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	e := NewExporter(srv.Client(), srv.URL+"/api/merge-video", t.TempDir())
	outcome := e.Export(context.Background(), validRequest(srv.URL), nil)

	if outcome.State != StateFailed {
		t.Fatalf("outcome = %+v; want failed", outcome)
	}

	var dlErr *media.DownloadError
	if !errors.As(outcome.Err, &dlErr) {
		t.Fatalf("err = %v; want *DownloadError", outcome.Err)
	}
}
