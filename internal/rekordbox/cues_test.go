package rekordbox

import (
	"math"
	"testing"

	"github.com/desertthunder/mixxport/internal/models"
)

func hotCue(pos float64) models.CuePoint {
	return models.CuePoint{TrackID: 1, Type: models.CueTypeHotCue, Position: pos}
}

func TestTranslateCues(t *testing.T) {
	t.Run("position converts by source units per second", func(t *testing.T) {
		// 500 Hz stereo means 1000 source units per second, so a cue at
		// 5000 lands at exactly 5.0 seconds.
		track := &models.Track{ID: 1, SampleRate: 500, Cues: []models.CuePoint{hotCue(5000)}}

		cues := TranslateCues(track)
		if len(cues) != 1 {
			t.Fatalf("expected 1 cue, got %d", len(cues))
		}
		if math.Abs(cues[0].Seconds-5.0) > 1e-9 {
			t.Errorf("expected 5.0 seconds, got %v", cues[0].Seconds)
		}
	})

	t.Run("44100 Hz track", func(t *testing.T) {
		track := &models.Track{ID: 1, SampleRate: 44100, Cues: []models.CuePoint{hotCue(441000)}}

		cues := TranslateCues(track)
		if math.Abs(cues[0].Seconds-5.0) > 1e-9 {
			t.Errorf("expected 5.0 seconds, got %v", cues[0].Seconds)
		}
	})

	t.Run("missing sample rate falls back to 44100", func(t *testing.T) {
		track := &models.Track{ID: 1, Cues: []models.CuePoint{hotCue(88200)}}

		cues := TranslateCues(track)
		if math.Abs(cues[0].Seconds-1.0) > 1e-9 {
			t.Errorf("expected 1.0 seconds, got %v", cues[0].Seconds)
		}
	})

	t.Run("unlabeled cues synthesize Cue N in position order", func(t *testing.T) {
		track := &models.Track{ID: 1, SampleRate: 44100, Cues: []models.CuePoint{
			hotCue(300000), hotCue(100000), hotCue(200000),
		}}

		cues := TranslateCues(track)
		if len(cues) != 3 {
			t.Fatalf("expected 3 cues, got %d", len(cues))
		}

		want := []string{"Cue 1", "Cue 2", "Cue 3"}
		for i, name := range want {
			if cues[i].Name != name {
				t.Errorf("expected %q at index %d, got %q", name, i, cues[i].Name)
			}
		}
		if !(cues[0].Seconds < cues[1].Seconds && cues[1].Seconds < cues[2].Seconds) {
			t.Error("expected cues in ascending position order")
		}
	})

	t.Run("labels copied verbatim", func(t *testing.T) {
		labeled := hotCue(100)
		labeled.Label = models.Some("Breakdown")
		track := &models.Track{ID: 1, SampleRate: 44100, Cues: []models.CuePoint{labeled, hotCue(200)}}

		cues := TranslateCues(track)
		if cues[0].Name != "Breakdown" {
			t.Errorf("expected verbatim label, got %q", cues[0].Name)
		}
		if cues[1].Name != "Cue 2" {
			t.Errorf("labeled cues still occupy an ordinal, expected Cue 2, got %q", cues[1].Name)
		}
	})

	t.Run("non-hot-cue types dropped", func(t *testing.T) {
		track := &models.Track{ID: 1, SampleRate: 44100, Cues: []models.CuePoint{
			{TrackID: 1, Type: models.CueTypeMainCue, Position: 0},
			{TrackID: 1, Type: models.CueTypeLoop, Position: 100},
			hotCue(200),
			{TrackID: 1, Type: models.CueTypeIntro, Position: 300},
		}}

		cues := TranslateCues(track)
		if len(cues) != 1 {
			t.Fatalf("expected only the hot cue, got %d cues", len(cues))
		}
	})

	t.Run("no cues yields no memory cues", func(t *testing.T) {
		track := &models.Track{ID: 1, SampleRate: 44100}
		if cues := TranslateCues(track); len(cues) != 0 {
			t.Errorf("expected no cues, got %d", len(cues))
		}
	})
}
