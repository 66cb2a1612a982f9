package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/errors"
	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/cloud"
)

// 会议相关接口挂在面试handler上，二者共享视频与IM服务。

type joinMeetingArgs struct {
	CallId string `json:"callId" form:"callId"`
}

// contextUser 取认证中间件放进上下文的用户，省得再查一次库。
func contextUser(c *gin.Context) *model.UserDo {
	value, ok := c.Get(model.UserContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(model.UserDo)
	if !ok {
		return nil
	}
	return &user
}

func joinPermission(user *model.UserDo) string {
	if user != nil && user.Role == model.UserRoleInterviewer {
		return cloud.PermissionAdmin
	}
	return cloud.PermissionUser
}

// InstantMeeting 立即开一场会议。不关联面试记录，call即开即用。
func (h *InterviewApiHandler) InstantMeeting(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)

	callID := utils.NewCallID()
	if err := h.Video.GetOrCreateCall(callID, time.Now(), "Instant Meeting", ""); err != nil {
		xl.Errorf("failed to create instant call, error %v", err)
		responseErr := model.NewResponseErrorExternalService()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := model.MeetingRoomResponse{
		CallId:     callID,
		RoomToken:  h.Video.RoomToken(callID, userID, cloud.PermissionAdmin),
		MeetingUrl: h.meetingURL(callID),
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// JoinMeeting 凭call标识加入会议。空标识在触达任何外部服务前就拒绝。
func (h *InterviewApiHandler) JoinMeeting(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	args := &joinMeetingArgs{}
	if err := c.Bind(args); err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	callID := strings.TrimSpace(args.CallId)
	if callID == "" {
		xl.Infof("empty call id in join request")
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	user := contextUser(c)
	resp := model.MeetingRoomResponse{
		CallId:     callID,
		RoomToken:  h.Video.RoomToken(callID, userID, joinPermission(user)),
		MeetingUrl: h.meetingURL(callID),
	}

	interview, err := h.Interview.GetInterviewByStreamCallId(xl, callID)
	if err != nil {
		serverErr, ok := err.(*errors.ServerError)
		if !ok || serverErr.Code != errors.ServerErrorInterviewNotFound {
			xl.Errorf("failed to look up interview by call %s, error %v", callID, err)
			responseErr := model.NewResponseErrorInternal()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
		// 即时会议没有面试记录，直接入会。
		model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
		return
	}

	resp.InterviewId = interview.ID
	if interview.IMGroupId != "" {
		name := userID
		if user != nil {
			name = user.Name
		}
		imUser, imErr := h.IM.GetUserToken(xl, userID, name)
		if imErr != nil {
			xl.Errorf("failed to get im token for user %s, error %v", userID, imErr)
		} else {
			resp.ImToken = imUser.Token
			resp.ImGroupId = interview.IMGroupId
		}
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}
