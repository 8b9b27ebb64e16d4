package fuzzy

import (
	"reflect"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
	}{
		{"empty query", "", "anything", 0},
		{"exact substring", "groc", "grocery list", 0},
		{"case insensitive", "GROC", "Grocery list", 0},
		{"reordered tokens", "list grocery", "grocery list", 0},
		{"no overlap at all", "zzzz", "grocery list", 1},
		{"empty text", "groc", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.query, tt.text); got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
			}
		})
	}
}

func TestScoreSingleEdit(t *testing.T) {
	// One substitution in a 4-char token: distance 1, normalized 0.25.
	got := Score("grok", "grocery list")
	if got != 0.25 {
		t.Errorf("Score = %v, want 0.25", got)
	}
	if got > PermissiveThreshold {
		t.Error("single-edit token should pass the permissive threshold")
	}
	if got <= TightThreshold {
		t.Error("single-edit token should fail the tight threshold")
	}
}

func TestMatchesOrderedBestFirst(t *testing.T) {
	candidates := []string{
		"meeting notes",   // 1 edit against "meetings"? contains "meeting" -> test below
		"random content",  // no match
		"meetings agenda", // exact token
	}
	matches := Matches("meetings", candidates, PermissiveThreshold)
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	// Exact occurrence scores 0 and sorts ahead of the 1-edit candidate.
	if matches[0].Index != 2 {
		t.Errorf("best match index = %d, want 2", matches[0].Index)
	}
	if matches[1].Index != 0 {
		t.Errorf("second match index = %d, want 0", matches[1].Index)
	}
}

func TestMatchesStableOnTies(t *testing.T) {
	candidates := []string{"note one", "note two", "note three"}
	matches := Matches("note", candidates, PermissiveThreshold)
	if len(matches) != 3 {
		t.Fatalf("len(matches) = %d, want 3", len(matches))
	}
	for i, m := range matches {
		if m.Index != i {
			t.Errorf("tie order broken: matches[%d].Index = %d", i, m.Index)
		}
	}
}

func TestBest(t *testing.T) {
	idx, ok := Best("work", []string{"home", "work", "worklog"}, TightThreshold)
	if !ok || idx != 1 {
		t.Errorf("Best = (%d, %v), want (1, true)", idx, ok)
	}

	if _, ok := Best("xyz", []string{"home", "work"}, TightThreshold); ok {
		t.Error("Best matched a tag with no overlap")
	}
}

func TestRangesLiteralOnly(t *testing.T) {
	got := Ranges("groc", "Grocery list")
	want := []Range{{Start: 0, End: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ranges = %v, want %v", got, want)
	}

	// Approximate-only match gets no highlight.
	if got := Ranges("grok", "grocery list"); got != nil {
		t.Errorf("Ranges for approximate match = %v, want nil", got)
	}
}

func TestThresholdBoundary(t *testing.T) {
	// A candidate exactly at the threshold is included.
	// "abcd" vs text containing "abcx": distance 1/4 = 0.25 < 0.3.
	matches := Matches("abcd", []string{"zz abcx zz"}, PermissiveThreshold)
	if len(matches) != 1 {
		t.Errorf("len(matches) = %d, want 1", len(matches))
	}

	// Two edits in four chars (0.5) is out.
	matches = Matches("abcd", []string{"zz abxy zz"}, PermissiveThreshold)
	if len(matches) != 0 {
		t.Errorf("len(matches) = %d, want 0", len(matches))
	}
}
