package subtitle

import (
	"fmt"
	"strings"
)

// FormatTimestamp converts seconds to the SRT timestamp form HH:MM:SS,mmm.
// Every component is floored, never rounded, so adjacent cues that share a
// boundary format to the same instant (no overlap, no gap).
func FormatTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// RenderSRT serializes cues into SRT: a 1-based index, the timing line, the
// cue text, then a blank line, repeated per cue. No cues renders to the empty
// string.
func RenderSRT(cues []Cue) string {
	var b strings.Builder

	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		fmt.Fprintf(&b, "%s\n\n", cue.Text)
	}

	return b.String()
}
