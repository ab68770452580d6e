package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"prism/internal/accent"
	"prism/internal/ui"
)

func TestPrintExitSummary_NoChanges(t *testing.T) {
	var buf bytes.Buffer
	printExitSummary(&buf, "0.2.0", ui.Session{Started: time.Now().Add(-90 * time.Second)})

	out := buf.String()
	for _, want := range []string{"Prism", "v0.2.0", "1m 30s session", "No accents changed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary, got:\n%s", want, out)
		}
	}
}

func TestPrintExitSummary_ListsChanges(t *testing.T) {
	var buf bytes.Buffer
	printExitSummary(&buf, "", ui.Session{
		Started: time.Now(),
		Changes: []ui.Change{
			{Domain: "com.apple.Safari", Name: "Safari", From: accent.Unset, To: accent.Purple},
			{Domain: "com.apple.Notes", Name: "Notes", From: accent.Green, To: accent.Unset},
		},
	})

	out := buf.String()
	if strings.Contains(out, " v") {
		t.Errorf("expected no version suffix, got:\n%s", out)
	}
	for _, want := range []string{"2 accents changed:", "Safari", "purple", "Notes", "green"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary, got:\n%s", want, out)
		}
	}
}

func TestPrintExitSummary_SingleChange(t *testing.T) {
	var buf bytes.Buffer
	printExitSummary(&buf, "", ui.Session{
		Started: time.Now(),
		Changes: []ui.Change{{Domain: "com.apple.Mail", Name: "Mail", From: accent.Red, To: accent.Blue}},
	})
	if !strings.Contains(buf.String(), "1 accent changed:") {
		t.Errorf("expected singular heading, got:\n%s", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{2 * time.Minute, "2m"},
		{2*time.Minute + 5*time.Second, "2m 5s"},
		{time.Hour, "1h"},
		{time.Hour + 20*time.Minute, "1h 20m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
