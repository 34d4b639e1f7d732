package subtitle

import "strings"

// Cue is a single caption: one or more words displayed between Start and End
// (seconds from the beginning of the video).
type Cue struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// GenerateCues spreads the words of text uniformly across duration and groups
// them into cues of wordsPerCue consecutive words (the last cue may hold
// fewer). Each word gets duration/wordCount seconds, so adjacent cues share a
// boundary exactly and the whole sequence covers [0, duration]. The last cue's
// end is clamped to duration.
//
// Empty or whitespace-only text yields no cues. The function is pure: same
// inputs, same output.
func GenerateCues(text string, duration float64, wordsPerCue int) []Cue {
	words := strings.Fields(text)
	if len(words) == 0 || duration <= 0 || wordsPerCue < 1 {
		return nil
	}

	perWord := duration / float64(len(words))
	cues := make([]Cue, 0, (len(words)+wordsPerCue-1)/wordsPerCue)

	for i := 0; i < len(words); i += wordsPerCue {
		j := i + wordsPerCue
		if j > len(words) {
			j = len(words)
		}

		end := float64(i+wordsPerCue) * perWord
		if end > duration {
			end = duration
		}

		cues = append(cues, Cue{
			Text:  strings.Join(words[i:j], " "),
			Start: float64(i) * perWord,
			End:   end,
		})
	}

	// Group rounding can leave the final boundary a hair short of duration.
	cues[len(cues)-1].End = duration

	return cues
}
