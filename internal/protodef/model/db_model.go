package model

import (
	"fmt"
	"time"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
)

/*
	db_model.go: 规定数据存储的格式。
*/

// UserRole 用户角色。由身份服务同步而来。
type UserRole string

const (
	UserRoleInterviewer UserRole = "interviewer"
	UserRoleCandidate   UserRole = "candidate"
)

// UserDo 用户信息，以身份服务的clerkId作为唯一标识。
// 本服务不负责注册登录，只消费身份服务推送的用户数据。
type UserDo struct {
	ClerkID  string   `json:"clerkId" bson:"_id"`
	Name     string   `json:"name" bson:"name"`
	Email    string   `json:"email" bson:"email"`
	Image    string   `json:"image,omitempty" bson:"image,omitempty"`
	Role     UserRole `json:"role" bson:"role"`
	SyncTime time.Time `json:"syncTime" bson:"syncTime"`
}

// InterviewStatus 面试的持久化状态。
// live 只用于展示，由 DisplayStatus 派生，不落库。
type InterviewStatus string

const (
	InterviewStatusUpcoming  InterviewStatus = "upcoming"
	InterviewStatusLive      InterviewStatus = "live"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusSucceeded InterviewStatus = "succeeded"
	InterviewStatusFailed    InterviewStatus = "failed"
)

// IsStored 判断状态是否允许落库。
func (s InterviewStatus) IsStored() bool {
	switch s {
	case InterviewStatusUpcoming, InterviewStatusCompleted,
		InterviewStatusSucceeded, InterviewStatusFailed:
		return true
	}
	return false
}

// IsTerminalDecision 面试官评定的终态。
func (s InterviewStatus) IsTerminalDecision() bool {
	return s == InterviewStatusSucceeded || s == InterviewStatusFailed
}

type InterviewDo struct {
	ID          string          `json:"id" bson:"_id"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	StartTime   time.Time       `json:"startTime" bson:"startTime"`
	Status      InterviewStatus `json:"status" bson:"status"`
	// StreamCallId 视频服务的call标识，对本服务是不透明的。
	StreamCallId   string    `json:"streamCallId" bson:"streamCallId"`
	CandidateId    string    `json:"candidateId" bson:"candidateId"`
	InterviewerIds []string  `json:"interviewerIds" bson:"interviewerIds"`
	IMGroupId      string    `json:"imGroupId,omitempty" bson:"imGroupId,omitempty"`
	Recorded       bool      `json:"recorded" bson:"recorded"`
	RecordURL      string    `json:"recordURL,omitempty" bson:"recordURL,omitempty"`
	CreateTime     time.Time `json:"createTime" bson:"createTime"`
	UpdateTime     time.Time `json:"updateTime" bson:"updateTime"`
	Creator        string    `json:"creator" bson:"creator"`
}

// HasParticipant 判断用户是否为该面试的参与者。
func (i *InterviewDo) HasParticipant(userID string) bool {
	if i.CandidateId == userID {
		return true
	}
	for _, id := range i.InterviewerIds {
		if id == userID {
			return true
		}
	}
	return false
}

// HasInterviewer 判断用户是否为该面试的面试官。
func (i *InterviewDo) HasInterviewer(userID string) bool {
	for _, id := range i.InterviewerIds {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentDo 面试评价，只增不改不删。
type CommentDo struct {
	ID            string    `json:"id" bson:"_id"`
	InterviewId   string    `json:"interviewId" bson:"interviewId"`
	InterviewerId string    `json:"interviewerId" bson:"interviewerId"`
	Content       string    `json:"content" bson:"content"`
	Rating        int       `json:"rating" bson:"rating"`
	CreationTime  time.Time `json:"creationTime" bson:"creationTime"`
}

// TaskResultDo 定时任务的记录: 录制已结束面试
type TaskResultDo struct {
	ID         string                            `json:"id" bson:"_id"`
	CreateAt   time.Time                         `json:"create_at" bson:"create_at"`
	UpdateAt   time.Time                         `json:"update_at" bson:"update_at"`
	Subject    string                            `json:"subject" bson:"subject"`
	Action     string                            `json:"action" bson:"action"`
	Result     string                            `json:"result" bson:"result"`
	Status     TaskStatus                        `json:"status" bson:"status"`
	SubjectID  string                            `json:"subject_id" bson:"subject_id"`
	HandleFunc func() (result string, err error) `json:"-" bson:"-"`
	RetryCount int                               `json:"retry_count" bson:"retry_count"`
}

const (
	DefaultTaskRetryCountMax = 5
)

type TaskStatus string

const (
	TaskStatusRunning = TaskStatus("running")
	TaskStatusSuccess = TaskStatus("success")
	TaskStatusFailed  = TaskStatus("failed")
)

// NewTask
func NewTask(subjectId, subject, action string) *TaskResultDo {
	task := &TaskResultDo{
		Subject:   subject,
		Action:    action,
		SubjectID: subjectId,
	}
	return task
}

func (m *TaskResultDo) beforeRun(c *mgo.Collection, xl *xlog.Logger) (err error) {
	var old TaskResultDo
	condition := bson.M{"subject": m.Subject, "action": m.Action, "subject_id": m.SubjectID}
	err = c.Find(condition).One(&old)
	switch err {
	case mgo.ErrNotFound:
		// new task
		m.ID = utils.GenerateID()
		m.CreateAt = time.Now()
		m.UpdateAt = time.Now()
		m.Status = TaskStatusRunning
		err = c.Insert(*m)
		if err != nil && xl != nil {
			xl.Errorf("error creating task record err:%v", err)
		}
	case nil:
		*m = old
		if m.Status == TaskStatusSuccess || m.RetryCount >= DefaultTaskRetryCountMax {
			return errTaskFinished
		}
	default:
		return err
	}
	return err
}

var errTaskFinished = fmt.Errorf("task already finished")

// Handle 设置任务执行体。
func (m *TaskResultDo) Handle(handle func() (result string, err error)) *TaskResultDo {
	m.HandleFunc = handle
	return m
}

// Start 执行任务并将结果落库。
func (m *TaskResultDo) Start(c *mgo.Collection, xl *xlog.Logger) {
	if err := m.beforeRun(c, xl); err != nil {
		return
	}
	result, err := m.HandleFunc()
	m.UpdateAt = time.Now()
	if err != nil {
		m.Status = TaskStatusFailed
		m.RetryCount++
		m.Result = err.Error()
	} else {
		m.Status = TaskStatusSuccess
		m.Result = result
	}
	if updateErr := c.UpdateId(m.ID, m); updateErr != nil && xl != nil {
		xl.Errorf("error updating task record err:%v", updateErr)
	}
}
