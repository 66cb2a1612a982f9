package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/form"
	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/db"
)

type CommentApiHandler struct {
	User      UserInterface
	Interview InterviewInterface
	Comment   CommentInterface
}

type CommentInterface interface {
	AddComment(xl *xlog.Logger, comment *model.CommentDo) (*model.CommentDo, error)
	ListComments(xl *xlog.Logger, interviewID string) ([]model.CommentDo, error)
}

func NewCommentApiHandler(conf utils.Config) *CommentApiHandler {
	h := new(CommentApiHandler)
	var err error
	h.User, err = db.NewUserService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	h.Interview, err = db.NewInterviewService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	h.Comment, err = db.NewCommentService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	return h
}

// AddComment 面试官对面试提交评价。未给评分时记默认分。
func (h *CommentApiHandler) AddComment(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	args := &form.CommentCreateForm{}
	if err := c.Bind(args); err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	args.FillDefault()
	if err := args.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	interview, err := h.Interview.GetInterviewByID(xl, args.InterviewId)
	if err != nil {
		xl.Infof("interview %s not found, error %v", args.InterviewId, err)
		responseErr := model.NewResponseErrorNoSuchInterview()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if !interview.HasInterviewer(userID) {
		xl.Infof("user %s is not interviewer of %s, refuse comment", userID, args.InterviewId)
		responseErr := model.NewResponseErrorUnauthorized()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	comment := &model.CommentDo{
		InterviewId:   interview.ID,
		InterviewerId: userID,
		Content:       args.Content,
		Rating:        args.Rating,
	}
	created, err := h.Comment.AddComment(xl, comment)
	if err != nil {
		xl.Errorf("failed to add comment on interview %s, error %v", interview.ID, err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := h.commentResponse(xl, created, make(map[string]*model.UserDo))
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// ListComments 面试的全部评价，按提交时间正序。
func (h *CommentApiHandler) ListComments(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	if _, err := h.Interview.GetInterviewByID(xl, interviewID); err != nil {
		xl.Infof("interview %s not found, error %v", interviewID, err)
		responseErr := model.NewResponseErrorNoSuchInterview()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	comments, err := h.Comment.ListComments(xl, interviewID)
	if err != nil {
		xl.Errorf("failed to list comments of interview %s, error %v", interviewID, err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	users := make(map[string]*model.UserDo)
	resp := make([]model.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, h.commentResponse(xl, &comments[i], users))
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

func (h *CommentApiHandler) commentResponse(xl *xlog.Logger, comment *model.CommentDo, users map[string]*model.UserDo) model.CommentResponse {
	resp := model.CommentResponse{
		ID:            comment.ID,
		InterviewId:   comment.InterviewId,
		InterviewerId: comment.InterviewerId,
		Content:       comment.Content,
		Rating:        comment.Rating,
		CreationTime:  comment.CreationTime.Unix(),
	}
	user, ok := users[comment.InterviewerId]
	if !ok {
		var err error
		user, err = h.User.GetUserByClerkID(xl, comment.InterviewerId)
		if err != nil {
			xl.Debugf("interviewer %s not found when assembling comment, error %v", comment.InterviewerId, err)
			user = nil
		}
		users[comment.InterviewerId] = user
	}
	if user != nil {
		info := model.NewUserInfoResponse(user)
		resp.Interviewer = &info
	}
	return resp
}
