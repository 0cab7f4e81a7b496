package csvexport

import (
	"bytes"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	data, err := Render(
		[]string{"study_id", "study_name"},
		[][]string{
			{"STD_20260101120000", "Trial A"},
			{"STD_20260102120000", "O'Brien Cohort"},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "study_id,study_name\nSTD_20260101120000,Trial A\nSTD_20260102120000,O'Brien Cohort\n"
	if string(data) != want {
		t.Errorf("unexpected csv:\n%s", data)
	}
}

func TestRender_QuotesEmbeddedCommasAndQuotes(t *testing.T) {
	data, err := Render(
		[]string{"note_title"},
		[][]string{{`baseline, "day 1"`}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "note_title\n\"baseline, \"\"day 1\"\"\"\n"
	if string(data) != want {
		t.Errorf("unexpected csv:\n%q", data)
	}
}

func TestRender_RowWidthMismatch(t *testing.T) {
	if _, err := Render([]string{"a", "b"}, [][]string{{"only one"}}); err == nil {
		t.Error("expected error for ragged row")
	}
}

func TestRender_Deterministic(t *testing.T) {
	header := []string{"a", "b"}
	rows := [][]string{{"1", "2"}, {"3", "4"}}
	first, err := Render(header, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Render(header, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected identical bytes for identical input")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	if got := Filename("participants", now); got != "participants_20260831.csv" {
		t.Errorf("unexpected filename: %s", got)
	}
}
