package spacedrep

import (
	"testing"
	"time"

	"github.com/riyaagrawal02/clivra/internal/study"
)

func TestBackfill(t *testing.T) {
	studied := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	revised := time.Date(2025, 2, 5, 8, 0, 0, 0, time.UTC)
	scheduled := time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)

	topics := []study.Topic{
		{ID: "studied", ConfidenceLevel: 3, LastStudiedAt: &studied},
		{ID: "revised", ConfidenceLevel: 4, RevisionCount: 2, LastStudiedAt: &studied, LastRevisionDate: &revised},
		{ID: "scheduled", ConfidenceLevel: 4, LastStudiedAt: &studied, NextRevisionAt: &scheduled},
		{ID: "fresh", ConfidenceLevel: 1},
		{ID: "completed", ConfidenceLevel: 5, LastStudiedAt: &studied, IsCompleted: true},
	}

	got := Backfill(topics)

	want := map[string]*time.Time{
		"studied":   at(studied.AddDate(0, 0, 1)),
		"revised":   at(revised.AddDate(0, 0, 7)),
		"scheduled": &scheduled,
		"fresh":     nil,
		"completed": nil,
	}
	for _, topic := range got {
		w := want[topic.ID]
		switch {
		case w == nil && topic.NextRevisionAt != nil:
			t.Errorf("%s: NextRevisionAt = %v, want nil", topic.ID, *topic.NextRevisionAt)
		case w != nil && topic.NextRevisionAt == nil:
			t.Errorf("%s: NextRevisionAt = nil, want %v", topic.ID, *w)
		case w != nil && !topic.NextRevisionAt.Equal(*w):
			t.Errorf("%s: NextRevisionAt = %v, want %v", topic.ID, *topic.NextRevisionAt, *w)
		}
	}

	if topics[0].NextRevisionAt != nil {
		t.Error("Backfill mutated its input")
	}
}
