package form

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DateLayout 日期字段的格式。
	DateLayout = "2006-01-02"
	// TimeLayout 时间字段的格式，对应前端的半小时时段。
	TimeLayout = "15:04"

	ErrTitleRequiredMsg       = "Title is required"
	ErrTitleTooShortMsg       = "Title must be at least 3 characters"
	ErrTitleTooLongMsg        = "Title must be less than 50 characters"
	ErrDescriptionTooLongMsg  = "Description must be less than 200 characters"
	ErrCandidateRequiredMsg   = "You must select a candidate"
	ErrInterviewerRequiredMsg = "At least one interviewer is required"
	ErrScheduleInPastMsg      = "You cannot schedule interviews in the past"
	ErrBadDateMsg             = "Invalid date"
	ErrBadTimeMsg             = "Invalid time"
)

// InterviewScheduleForm 预约面试的表单。
type InterviewScheduleForm struct {
	Title          string   `json:"title" form:"title"`
	Description    string   `json:"description" form:"description"`
	CandidateId    string   `json:"candidateId" form:"candidateId"`
	InterviewerIds []string `json:"interviewerIds" form:"interviewerIds"`
	Date           string   `json:"date" form:"date"`
	Time           string   `json:"time" form:"time"`
}

// Validate 按字段独立校验，错误不短路，全部收集到FieldErrors里。
// now由调用方传入：当天的时段不得早于now，恰好等于now视为合法。
func (f *InterviewScheduleForm) Validate(now time.Time) error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.By(titleRule)),
		validation.Field(&f.Description, validation.By(descriptionRule)),
		validation.Field(&f.CandidateId, validation.Required.Error(ErrCandidateRequiredMsg)),
		validation.Field(&f.InterviewerIds, validation.By(interviewerRule)),
		validation.Field(&f.Date, validation.By(f.dateRule(now))),
		validation.Field(&f.Time, validation.By(f.timeRule(now))),
	)
	return wrap(err)
}

func titleRule(value interface{}) error {
	title := strings.TrimSpace(value.(string))
	// 长度按字符数计，多字节文字不按字节数误判。
	switch {
	case title == "":
		return fmt.Errorf(ErrTitleRequiredMsg)
	case utf8.RuneCountInString(title) < 3:
		return fmt.Errorf(ErrTitleTooShortMsg)
	case utf8.RuneCountInString(title) > 50:
		return fmt.Errorf(ErrTitleTooLongMsg)
	}
	return nil
}

func descriptionRule(value interface{}) error {
	description := strings.TrimSpace(value.(string))
	if utf8.RuneCountInString(description) > 200 {
		return fmt.Errorf(ErrDescriptionTooLongMsg)
	}
	return nil
}

func interviewerRule(value interface{}) error {
	ids := value.([]string)
	if len(ids) == 0 {
		return fmt.Errorf(ErrInterviewerRequiredMsg)
	}
	return nil
}

// dateRule 只比较日历日，早于今天报错。
func (f *InterviewScheduleForm) dateRule(now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		day, err := time.ParseInLocation(DateLayout, value.(string), now.Location())
		if err != nil {
			return fmt.Errorf(ErrBadDateMsg)
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(today) {
			return fmt.Errorf(ErrScheduleInPastMsg)
		}
		return nil
	}
}

// timeRule 只在选中当天时生效，拼出的时刻严格早于now才报错。
func (f *InterviewScheduleForm) timeRule(now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		if _, err := time.Parse(TimeLayout, value.(string)); err != nil {
			return fmt.Errorf(ErrBadTimeMsg)
		}
		instant, err := f.StartInstant(now.Location())
		if err != nil {
			// 日期不合法时由dateRule报错，这里不重复。
			return nil
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		day := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, now.Location())
		if !day.Equal(today) {
			return nil
		}
		if instant.Before(now) {
			return fmt.Errorf(ErrScheduleInPastMsg)
		}
		return nil
	}
}

// StartInstant 把date+time两个字段拼成面试开始时刻。
func (f *InterviewScheduleForm) StartInstant(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, f.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(TimeLayout, f.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
