package subtitle

import (
	"fmt"
	"strings"
)

// Style describes how captions are rendered when burned into the video. It is
// fixed configuration consumed by the muxing stage, expressed as an ASS
// force_style override for the ffmpeg subtitles filter.
type Style struct {
	FontName      string
	FontSize      int
	PrimaryColour string // &H BGR hex, e.g. &HFFFFFF for white
	OutlineColour string
	BorderStyle   int
	Outline       int
	Shadow        int
	Alignment     int // 2 = bottom centre
	MarginV       int // vertical margin in px, lifts captions above platform UI
}

// DefaultStyle is the viral-caption look: large white Arial with a heavy black
// outline, bottom centre, raised off the absolute bottom edge.
func DefaultStyle() Style {
	return Style{
		FontName:      "Arial",
		FontSize:      48,
		PrimaryColour: "&HFFFFFF",
		OutlineColour: "&H000000",
		BorderStyle:   1,
		Outline:       3,
		Shadow:        2,
		Alignment:     2,
		MarginV:       80,
	}
}

// ForceStyle renders the style as the value of the subtitles filter's
// force_style option.
func (s Style) ForceStyle() string {
	parts := []string{
		fmt.Sprintf("FontName=%s", s.FontName),
		fmt.Sprintf("FontSize=%d", s.FontSize),
		fmt.Sprintf("PrimaryColour=%s", s.PrimaryColour),
		fmt.Sprintf("OutlineColour=%s", s.OutlineColour),
		fmt.Sprintf("BorderStyle=%d", s.BorderStyle),
		fmt.Sprintf("Outline=%d", s.Outline),
		fmt.Sprintf("Shadow=%d", s.Shadow),
		fmt.Sprintf("Alignment=%d", s.Alignment),
		fmt.Sprintf("MarginV=%d", s.MarginV),
	}
	return strings.Join(parts, ",")
}
