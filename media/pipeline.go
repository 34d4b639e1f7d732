package media

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"viralshorts/subtitle"
)

// MergeRequest is the wire contract of one merge: where to pull the video and
// narration from, the caption text, and the narration length in seconds.
type MergeRequest struct {
	VideoURL string  `json:"videoUrl"`
	AudioURL string  `json:"audioUrl"`
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Validate checks the fields a merge cannot proceed without. Empty caption
// text is allowed; the merge then runs without burned captions.
func (r MergeRequest) Validate() error {
	if r.VideoURL == "" {
		return errors.New("videoUrl is required")
	}
	if r.AudioURL == "" {
		return errors.New("audioUrl is required")
	}
	if r.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}

// Pipeline runs one merge end to end: fetch both sources, write the subtitle
// file, and invoke the muxer. Each invocation uses temp names derived from a
// fresh UUID, so concurrent merges never collide.
type Pipeline struct {
	fetcher     *Fetcher
	muxer       Muxer
	wordsPerCue int
}

func NewPipeline(fetcher *Fetcher, muxer Muxer, wordsPerCue int) *Pipeline {
	if wordsPerCue < 1 {
		wordsPerCue = 1
	}
	return &Pipeline{fetcher: fetcher, muxer: muxer, wordsPerCue: wordsPerCue}
}

// Merge produces the merged MP4 and returns it as a temp asset the caller now
// owns. The video, audio and subtitle intermediates are removed before Merge
// returns, on success and on every failure path; the output is removed too if
// the mux fails. onProgress (may be nil) fires at coarse stage boundaries.
func (p *Pipeline) Merge(ctx context.Context, req MergeRequest, onProgress func(stage string)) (*TempAsset, error) {
	progress := func(stage string) {
		if onProgress != nil {
			onProgress(stage)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()

	// The two sources are independent until the mux stage; fetch them
	// concurrently and wait for both.
	progress("downloading")
	var videoAsset, audioAsset *TempAsset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := p.fetcher.Fetch(gctx, req.VideoURL, id+"_video.mp4")
		videoAsset = a
		return err
	})
	g.Go(func() error {
		a, err := p.fetcher.Fetch(gctx, req.AudioURL, id+"_audio.mp3")
		audioAsset = a
		return err
	})
	err := g.Wait()
	defer videoAsset.Remove()
	defer audioAsset.Remove()
	if err != nil {
		return nil, err
	}

	srtPath := ""
	if cues := subtitle.GenerateCues(req.Text, req.Duration, p.wordsPerCue); len(cues) > 0 {
		srtAsset := NewTempAsset(id + "_subtitles.srt")
		if err := os.WriteFile(srtAsset.Path, []byte(subtitle.RenderSRT(cues)), 0o644); err != nil {
			srtAsset.Remove()
			return nil, fmt.Errorf("failed to write subtitle file: %w", err)
		}
		defer srtAsset.Remove()
		srtPath = srtAsset.Path
	}

	progress("merging")
	out := NewTempAsset(id + "_output.mp4")
	if err := p.muxer.Mux(ctx, videoAsset.Path, audioAsset.Path, srtPath, out.Path); err != nil {
		out.Remove()
		return nil, err
	}

	return out, nil
}
