package model

import (
	"fmt"
	"time"
)

/*
	derive.go: 展示状态与倒计时的派生逻辑。
	纯函数，当前时间由调用方显式传入，同一时刻重复求值结果一致。
*/

// DisplayStatus 按当前时间派生展示状态。
// 已落库的 completed/succeeded/failed 原样展示；
// 其余情况，开始时间已到则为 live，否则为 upcoming。
func (i *InterviewDo) DisplayStatus(now time.Time) InterviewStatus {
	switch i.Status {
	case InterviewStatusCompleted, InterviewStatusSucceeded, InterviewStatusFailed:
		return i.Status
	}
	if !now.Before(i.StartTime) {
		return InterviewStatusLive
	}
	return InterviewStatusUpcoming
}

// TimeUntil 返回距开始时间的人类可读倒计时，只对 upcoming 展示有意义。
func (i *InterviewDo) TimeUntil(now time.Time) string {
	if now.After(i.StartTime) {
		return "Started"
	}
	diff := i.StartTime.Sub(now)
	mins := int(diff.Round(time.Minute) / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("In %d minutes", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("In %d hours", hours)
	}
	return fmt.Sprintf("In %d days", hours/24)
}

// GroupInterviews 按落库状态把面试列表分桶，桶内保持输入顺序。
// 没有命中的状态不出现在结果里，调用方需兼容缺桶。
func GroupInterviews(interviews []InterviewDo) map[InterviewStatus][]InterviewDo {
	grouped := make(map[InterviewStatus][]InterviewDo)
	for _, interview := range interviews {
		grouped[interview.Status] = append(grouped[interview.Status], interview)
	}
	return grouped
}

// InterviewCategory 仪表盘的展示分组。
type InterviewCategory struct {
	ID    InterviewStatus `json:"id"`
	Title string          `json:"title"`
}

// InterviewCategories 仪表盘分组的展示顺序。
var InterviewCategories = []InterviewCategory{
	{ID: InterviewStatusUpcoming, Title: "Upcoming Interviews"},
	{ID: InterviewStatusCompleted, Title: "Completed"},
	{ID: InterviewStatusSucceeded, Title: "Succeeded"},
	{ID: InterviewStatusFailed, Title: "Failed"},
}
