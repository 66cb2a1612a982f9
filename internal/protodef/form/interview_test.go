package form

import (
	"strings"
	"testing"
	"time"
)

var scheduleNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func validScheduleForm() InterviewScheduleForm {
	return InterviewScheduleForm{
		Title:          "Backend engineer screen",
		Description:    "First round",
		CandidateId:    "user_cand_1",
		InterviewerIds: []string{"user_int_1"},
		Date:           "2024-03-20",
		Time:           "09:00",
	}
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		return nil
	}
	fieldErr, ok := err.(FieldErrors)
	if !ok {
		t.Fatalf("error %v (%T) is not FieldErrors", err, err)
	}
	return fieldErr.FieldMessages()
}

func TestScheduleFormValid(t *testing.T) {
	f := validScheduleForm()
	if err := f.Validate(scheduleNow); err != nil {
		t.Fatalf("want valid, got %v", err)
	}
}

func TestScheduleFormTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"", ErrTitleRequiredMsg},
		{"   ", ErrTitleRequiredMsg},
		{"Hi", ErrTitleTooShortMsg},
		{"This title is way way way way way way way too long!!!!!!", ErrTitleTooLongMsg},
	}
	for _, c := range cases {
		f := validScheduleForm()
		f.Title = c.title
		msgs := fieldMessages(t, f.Validate(scheduleNow))
		if msgs["title"] != c.want {
			t.Errorf("title=%q: got %q, want %q", c.title, msgs["title"], c.want)
		}
	}
}

func TestScheduleFormMultibyteLength(t *testing.T) {
	// 每个汉字3字节，长度限制按字符数而非字节数。
	f := validScheduleForm()
	f.Title = strings.Repeat("面", 20)
	if err := f.Validate(scheduleNow); err != nil {
		t.Fatalf("want 20-rune title valid, got %v", err)
	}
	f.Title = strings.Repeat("面", 2)
	msgs := fieldMessages(t, f.Validate(scheduleNow))
	if msgs["title"] != ErrTitleTooShortMsg {
		t.Errorf("2-rune title: got %v, want %q", msgs, ErrTitleTooShortMsg)
	}
	f.Title = strings.Repeat("面", 51)
	msgs = fieldMessages(t, f.Validate(scheduleNow))
	if msgs["title"] != ErrTitleTooLongMsg {
		t.Errorf("51-rune title: got %v, want %q", msgs, ErrTitleTooLongMsg)
	}

	f = validScheduleForm()
	f.Description = strings.Repeat("试", 200)
	if err := f.Validate(scheduleNow); err != nil {
		t.Fatalf("want 200-rune description valid, got %v", err)
	}
	f.Description = strings.Repeat("试", 201)
	msgs = fieldMessages(t, f.Validate(scheduleNow))
	if msgs["description"] != ErrDescriptionTooLongMsg {
		t.Errorf("201-rune description: got %v, want %q", msgs, ErrDescriptionTooLongMsg)
	}
}

func TestScheduleFormCollectsAllErrors(t *testing.T) {
	f := InterviewScheduleForm{
		Title:          "Hi",
		CandidateId:    "",
		InterviewerIds: nil,
		Date:           "2024-03-14", // 昨天
		Time:           "09:00",
	}
	msgs := fieldMessages(t, f.Validate(scheduleNow))
	for _, field := range []string{"title", "candidateId", "interviewerIds", "date"} {
		if msgs[field] == "" {
			t.Errorf("expected error for field %q, got none (all: %v)", field, msgs)
		}
	}
	if msgs["description"] != "" {
		t.Errorf("unexpected description error: %q", msgs["description"])
	}
}

func TestScheduleFormCandidateOnly(t *testing.T) {
	f := validScheduleForm()
	f.Title = "A valid title"
	f.CandidateId = ""
	msgs := fieldMessages(t, f.Validate(scheduleNow))
	if len(msgs) != 1 || msgs["candidateId"] != ErrCandidateRequiredMsg {
		t.Fatalf("want candidateId error only, got %v", msgs)
	}
}

func TestScheduleFormDescriptionTooLong(t *testing.T) {
	f := validScheduleForm()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	f.Description = string(long)
	msgs := fieldMessages(t, f.Validate(scheduleNow))
	if msgs["description"] != ErrDescriptionTooLongMsg {
		t.Fatalf("got %v", msgs)
	}
}

func TestScheduleFormDateInPast(t *testing.T) {
	f := validScheduleForm()
	f.Date = "2024-03-14"
	msgs := fieldMessages(t, f.Validate(scheduleNow))
	if msgs["date"] != ErrScheduleInPastMsg {
		t.Fatalf("got %v", msgs)
	}
}

func TestScheduleFormTimeToday(t *testing.T) {
	cases := []struct {
		name    string
		time    string
		wantErr bool
	}{
		{"one minute in the past", "09:59", true},
		{"one minute in the future", "10:01", false},
		{"exactly now", "10:00", false}, // 边界取当前时刻本身为合法
	}
	for _, c := range cases {
		f := validScheduleForm()
		f.Date = "2024-03-15" // 今天
		f.Time = c.time
		msgs := fieldMessages(t, f.Validate(scheduleNow))
		gotErr := msgs["time"] != ""
		if gotErr != c.wantErr {
			t.Errorf("%s: time error = %v, want %v (msgs %v)", c.name, gotErr, c.wantErr, msgs)
		}
	}
}

func TestScheduleFormTimeIgnoredForFutureDate(t *testing.T) {
	f := validScheduleForm()
	f.Date = "2024-03-16"
	f.Time = "00:00" // 早于now的钟点，但不是当天，不检查
	if err := f.Validate(scheduleNow); err != nil {
		t.Fatalf("want valid, got %v", err)
	}
}

func TestScheduleFormStartInstant(t *testing.T) {
	f := validScheduleForm()
	f.Date = "2024-03-20"
	f.Time = "14:30"
	instant, err := f.StartInstant(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)
	if !instant.Equal(want) {
		t.Fatalf("got %v, want %v", instant, want)
	}
}
