package media

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"viralshorts/config"
	"viralshorts/subtitle"
)

// Muxer combines one video stream, one audio stream and an optional subtitle
// file into a single output container. srtPath may be empty, in which case no
// captions are burned in. Implementations must not retain the input files.
type Muxer interface {
	Mux(ctx context.Context, videoPath, audioPath, srtPath, outPath string) error
}

// MuxError carries the transcoding engine's own diagnostic output unmodified;
// it is the most actionable detail available when a merge fails.
type MuxError struct {
	Output string
	Err    error
}

func (e *MuxError) Error() string {
	if strings.TrimSpace(e.Output) != "" {
		return fmt.Sprintf("ffmpeg failed: %v: %s", e.Err, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("ffmpeg failed: %v", e.Err)
}

func (e *MuxError) Unwrap() error { return e.Err }

// FFmpegMuxer runs ffmpeg once per merge: two inputs, fixed H.264/AAC output,
// duration bounded by the shorter input, captions rendered into the frames via
// the subtitles filter (short-form feeds have no soft-subtitle support).
type FFmpegMuxer struct {
	Style subtitle.Style
}

func NewFFmpegMuxer(style subtitle.Style) *FFmpegMuxer {
	return &FFmpegMuxer{Style: style}
}

func (m *FFmpegMuxer) Mux(ctx context.Context, videoPath, audioPath, srtPath, outPath string) error {
	video := ffmpeg.Input(videoPath)
	audio := ffmpeg.Input(audioPath)

	streams := []*ffmpeg.Stream{video, audio}
	if srtPath != "" {
		// The filter string is parsed by ffmpeg itself: forward slashes,
		// escaped colons, and the style value quoted against its commas.
		srtArg := filepath.ToSlash(srtPath)
		srtArg = strings.ReplaceAll(srtArg, ":", "\\:")

		withSubs := ffmpeg.Filter([]*ffmpeg.Stream{video}, "subtitles",
			ffmpeg.Args{srtArg},
			ffmpeg.KwArgs{"force_style": fmt.Sprintf("'%s'", m.Style.ForceStyle())},
		)
		streams = []*ffmpeg.Stream{withSubs, audio}
	}

	var stderr bytes.Buffer
	err := ffmpeg.Output(streams, outPath, ffmpeg.KwArgs{
		"c:v":      config.VideoCodec,
		"c:a":      config.AudioCodec,
		"b:a":      config.AudioBitrate,
		"preset":   config.VideoPreset,
		"shortest": "",
	}).OverWriteOutput().WithErrorOutput(&stderr).Run()

	if err != nil {
		return &MuxError{Output: stderr.String(), Err: err}
	}

	return nil
}
