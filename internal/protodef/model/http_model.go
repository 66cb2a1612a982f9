// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/*
	http_model.go: 规定API的参数与返回值的定义，***Args 表示 *** 接口的参数，***Response表示 *** 接口的返回体格式。
*/

const (
	// RequestIDHeader 七牛 request ID 头部。
	RequestIDHeader = "X-Reqid"
	// XLogKey gin context中，用于获取记录请求相关日志的 xlog logger的key。
	XLogKey = "xlog-logger"

	// UserIDContextKey 存放在请求context 中的用户ID。
	UserIDContextKey = "userID"
	// UserContextKey 存放用户对象
	UserContextKey = "user"

	// PageNumContextKey 分页参数。
	PageNumContextKey  = "pageNum"
	PageSizeContextKey = "pageSize"

	// RequestStartKey 存放在gin context中的请求开始时间。
	RequestStartKey = "request-start-timestamp-nano"

	// 状态码和状态信息
	ResponseStatusCodeSuccess    ResponseStatusCode    = 0
	ResponseStatusMessageSuccess ResponseStatusMessage = "success"
)

// 状态码和状态信息
type ResponseStatusCode int
type ResponseStatusMessage string

type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    int(ResponseStatusCodeSuccess),
		Message: string(ResponseStatusMessageSuccess),
		Data:    data,
	}
}

func NewFailResponse(err ResponseError) *Response {
	return &Response{
		Code:    int(err.Code),
		Message: string(err.Message),
		Data:    err.Fields,
	}
}

func (r *Response) WithRequestID(requestID string) *Response {
	r.RequestID = requestID
	return r
}

func (r *Response) Send(c *gin.Context) {
	c.JSON(http.StatusOK, r)
}

// UserInfoResponse 用户的信息。
type UserInfoResponse struct {
	ClerkID string `json:"clerkId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image,omitempty"`
	Role    string `json:"role"`
}

func NewUserInfoResponse(user *UserDo) UserInfoResponse {
	return UserInfoResponse{
		ClerkID: user.ClerkID,
		Name:    user.Name,
		Email:   user.Email,
		Image:   user.Image,
		Role:    string(user.Role),
	}
}

type Pagination struct {
	Total          int           `json:"total"`
	Cnt            int           `json:"cnt"`
	CurrentPageNum int           `json:"currentPageNum"`
	NextPageNum    int           `json:"nextPageNum"`
	PageSize       int           `json:"pageSize"`
	EndPage        bool          `json:"endPage"`
	List           []interface{} `json:"list"`
}

// InterviewResponse 面试详情。status为展示状态，startsIn只在upcoming时有值。
type InterviewResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	StartTime      int64              `json:"startTime"`
	Status         string             `json:"status"`
	StoredStatus   string             `json:"storedStatus"`
	StartsIn       string             `json:"startsIn,omitempty"`
	StreamCallId   string             `json:"streamCallId"`
	CandidateId    string             `json:"candidateId"`
	Candidate      *UserInfoResponse  `json:"candidate,omitempty"`
	InterviewerIds []string           `json:"interviewerIds"`
	Interviewers   []UserInfoResponse `json:"interviewers,omitempty"`
	MeetingUrl     string             `json:"meetingUrl"`
	RecordURL      string             `json:"recordURL,omitempty"`
}

// UpsertInterviewResponse 创建或者更新的面试结果
type UpsertInterviewResponse struct {
	ID           string `json:"id"`
	StreamCallId string `json:"streamCallId"`
}

// InterviewListResponse 面试列表结果
type InterviewListResponse struct {
	Pagination
}

// InterviewGroupResponse 仪表盘的一个分组。只下发非空分组。
type InterviewGroupResponse struct {
	ID    string              `json:"id"`
	Title string              `json:"title"`
	Count int                 `json:"count"`
	List  []InterviewResponse `json:"list"`
}

// MeetingRoomResponse 进入视频会议所需的信息。
type MeetingRoomResponse struct {
	InterviewId string `json:"interviewId,omitempty"`
	CallId      string `json:"callId"`
	RoomToken   string `json:"roomToken"`
	MeetingUrl  string `json:"meetingUrl"`
	ImToken     string `json:"imToken,omitempty"`
	ImGroupId   string `json:"imGroupId,omitempty"`
}

// CommentResponse 单条面试评价。
type CommentResponse struct {
	ID            string            `json:"id"`
	InterviewId   string            `json:"interviewId"`
	InterviewerId string            `json:"interviewerId"`
	Interviewer   *UserInfoResponse `json:"interviewer,omitempty"`
	Content       string            `json:"content"`
	Rating        int               `json:"rating"`
	CreationTime  int64             `json:"creationTime"`
}

// RecordingResponse 一条录制回放。
type RecordingResponse struct {
	InterviewId string `json:"interviewId"`
	Title       string `json:"title"`
	CallId      string `json:"callId"`
	RecordURL   string `json:"recordURL"`
	StartTime   int64  `json:"startTime"`
}
