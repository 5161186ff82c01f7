package rekordbox

import (
	"fmt"
	"sort"

	"github.com/desertthunder/mixxport/internal/models"
)

// MemoryCue is a destination cue marker: a name and a position in seconds.
// It has no identity of its own; it is derived from exactly one source cue.
type MemoryCue struct {
	Name    string
	Seconds float64
}

// defaultSampleRate stands in when the library row carries no sample rate.
const defaultSampleRate = 44100

// unitsPerSecond returns the source position units per second of audio.
// Mixxx cue positions count interleaved stereo samples, so one second spans
// two times the sample rate.
func unitsPerSecond(sampleRate int) float64 {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	return 2 * float64(sampleRate)
}

// TranslateCues converts a track's cue markers into memory cues, in
// ascending position order.
//
// Only hot cues survive; loop markers, the load cue, and intro/outro markers
// have no memory-cue representation and are dropped rather than erroring.
// Positions convert in double precision with no intermediate rounding.
// Unlabeled cues get "Cue N" names by their 1-based position ordinal, which
// is stable across runs for the same source data.
func TranslateCues(t *models.Track) []MemoryCue {
	ups := unitsPerSecond(t.SampleRate)

	var hot []models.CuePoint
	for _, cue := range t.Cues {
		if cue.Type != models.CueTypeHotCue || cue.Position < 0 {
			continue
		}
		hot = append(hot, cue)
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].Position < hot[j].Position })

	cues := make([]MemoryCue, 0, len(hot))
	for i, cue := range hot {
		name, ok := cue.Label.Get()
		if !ok {
			name = fmt.Sprintf("Cue %d", i+1)
		}
		cues = append(cues, MemoryCue{Name: name, Seconds: cue.Position / ups})
	}
	return cues
}
