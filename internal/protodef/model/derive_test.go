package model

import (
	"testing"
	"time"
)

var deriveNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func upcomingAt(start time.Time) InterviewDo {
	return InterviewDo{ID: "iv", Status: InterviewStatusUpcoming, StartTime: start}
}

func TestDisplayStatusStoredTerminalWins(t *testing.T) {
	// 已完成/已评定的面试无视开始时间，展示落库状态本身。
	starts := []time.Time{
		deriveNow.Add(-48 * time.Hour),
		deriveNow,
		deriveNow.Add(48 * time.Hour),
	}
	for _, stored := range []InterviewStatus{InterviewStatusCompleted, InterviewStatusSucceeded, InterviewStatusFailed} {
		for _, start := range starts {
			iv := InterviewDo{Status: stored, StartTime: start}
			if got := iv.DisplayStatus(deriveNow); got != stored {
				t.Errorf("stored=%s start=%v: got %s", stored, start, got)
			}
		}
	}
}

func TestDisplayStatusUpcomingAndLive(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		want  InterviewStatus
	}{
		{"future start", deriveNow.Add(30 * time.Minute), InterviewStatusUpcoming},
		{"start equals now", deriveNow, InterviewStatusLive},
		{"start in past", deriveNow.Add(-time.Minute), InterviewStatusLive},
	}
	for _, c := range cases {
		iv := upcomingAt(c.start)
		if got := iv.DisplayStatus(deriveNow); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestDisplayStatusIdempotent(t *testing.T) {
	iv := upcomingAt(deriveNow.Add(45 * time.Minute))
	first := iv.DisplayStatus(deriveNow)
	second := iv.DisplayStatus(deriveNow)
	if first != second {
		t.Fatalf("derivation not stable: %s then %s", first, second)
	}
	if iv.TimeUntil(deriveNow) != iv.TimeUntil(deriveNow) {
		t.Fatal("countdown not stable for same instant")
	}
}

func TestTimeUntilBuckets(t *testing.T) {
	cases := []struct {
		name  string
		delta time.Duration
		want  string
	}{
		{"started", -time.Minute, "Started"},
		{"45 minutes away", 45 * time.Minute, "In 45 minutes"},
		{"90 minutes away", 90 * time.Minute, "In 1 hours"},
		{"23 hours away", 23 * time.Hour, "In 23 hours"},
		{"50 hours away", 50 * time.Hour, "In 2 days"},
		{"10 days away", 240 * time.Hour, "In 10 days"},
	}
	for _, c := range cases {
		iv := upcomingAt(deriveNow.Add(c.delta))
		if got := iv.TimeUntil(deriveNow); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestGroupInterviews(t *testing.T) {
	interviews := []InterviewDo{
		{ID: "iv1", Status: InterviewStatusUpcoming},
		{ID: "iv2", Status: InterviewStatusCompleted},
		{ID: "iv3", Status: InterviewStatusSucceeded},
		{ID: "iv4", Status: InterviewStatusUpcoming},
	}
	grouped := GroupInterviews(interviews)
	upcoming := grouped[InterviewStatusUpcoming]
	if len(upcoming) != 2 || upcoming[0].ID != "iv1" || upcoming[1].ID != "iv4" {
		t.Fatalf("upcoming bucket wrong: %+v", upcoming)
	}
	if len(grouped[InterviewStatusCompleted]) != 1 || grouped[InterviewStatusCompleted][0].ID != "iv2" {
		t.Fatalf("completed bucket wrong: %+v", grouped[InterviewStatusCompleted])
	}
	if len(grouped[InterviewStatusSucceeded]) != 1 {
		t.Fatalf("succeeded bucket wrong: %+v", grouped[InterviewStatusSucceeded])
	}
	if _, ok := grouped[InterviewStatusFailed]; ok {
		t.Fatal("failed bucket should be absent")
	}
}

func TestGroupInterviewsEmptyInput(t *testing.T) {
	if got := GroupInterviews(nil); len(got) != 0 {
		t.Fatalf("want empty map, got %v", got)
	}
}

func TestStatusPredicates(t *testing.T) {
	if InterviewStatusLive.IsStored() {
		t.Fatal("live must never be stored")
	}
	for _, s := range []InterviewStatus{InterviewStatusUpcoming, InterviewStatusCompleted, InterviewStatusSucceeded, InterviewStatusFailed} {
		if !s.IsStored() {
			t.Fatalf("%s should be storable", s)
		}
	}
	if !InterviewStatusSucceeded.IsTerminalDecision() || !InterviewStatusFailed.IsTerminalDecision() {
		t.Fatal("succeeded/failed are terminal decisions")
	}
	if InterviewStatusCompleted.IsTerminalDecision() {
		t.Fatal("completed is not a terminal decision")
	}
}
