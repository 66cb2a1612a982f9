package handler

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/errors"
	"github.com/solutions/meet-cube/internal/protodef/form"
	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/cloud"
	"github.com/solutions/meet-cube/internal/service/db"
)

type InterviewApiHandler struct {
	User            UserInterface
	Interview       InterviewInterface
	Video           *cloud.VideoCallService
	IM              *cloud.RongCloudIMService
	FrontendUrlHost string
}

type InterviewInterface interface {
	CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) (*model.InterviewDo, error)
	ListAllInterviews(xl *xlog.Logger) ([]model.InterviewDo, error)
	ListAllInterviewsByPage(xl *xlog.Logger, pageNum int, pageSize int) ([]model.InterviewDo, int, error)
	ListMyInterviewsByPage(xl *xlog.Logger, userID string, pageNum int, pageSize int) ([]model.InterviewDo, int, error)
	ListCompletedRecordedInterviews(xl *xlog.Logger, userID string) ([]model.InterviewDo, error)
	GetInterviewByID(xl *xlog.Logger, interviewID string) (*model.InterviewDo, error)
	GetInterviewByStreamCallId(xl *xlog.Logger, callID string) (*model.InterviewDo, error)
	UpdateInterview(xl *xlog.Logger, id string, interview *model.InterviewDo) (*model.InterviewDo, error)
	UpdateInterviewStatus(xl *xlog.Logger, id string, status model.InterviewStatus) (*model.InterviewDo, error)
}

func NewInterviewApiHandler(conf utils.Config) *InterviewApiHandler {
	i := new(InterviewApiHandler)
	i.Video = cloud.NewVideoCallService(conf)
	i.IM = cloud.NewRongCloudIMService(conf)
	var err error
	i.User, err = db.NewUserService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.Interview, err = db.NewInterviewService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	i.FrontendUrlHost = conf.FrontendUrlHost
	return i
}

// meetingURL 拼接前端面试房间链接。
func (h *InterviewApiHandler) meetingURL(callID string) string {
	return h.FrontendUrlHost + "/meeting/" + callID
}

// interviewResponse 组装面试详情，展示状态与倒计时按now派生。
func (h *InterviewApiHandler) interviewResponse(xl *xlog.Logger, interview *model.InterviewDo, now time.Time, users map[string]*model.UserDo) model.InterviewResponse {
	resp := model.InterviewResponse{
		ID:             interview.ID,
		Title:          interview.Title,
		Description:    interview.Description,
		StartTime:      interview.StartTime.Unix(),
		Status:         string(interview.DisplayStatus(now)),
		StoredStatus:   string(interview.Status),
		StreamCallId:   interview.StreamCallId,
		CandidateId:    interview.CandidateId,
		InterviewerIds: interview.InterviewerIds,
		MeetingUrl:     h.meetingURL(interview.StreamCallId),
		RecordURL:      interview.RecordURL,
	}
	if resp.Status == string(model.InterviewStatusUpcoming) {
		resp.StartsIn = interview.TimeUntil(now)
	}
	if candidate := h.lookupUser(xl, interview.CandidateId, users); candidate != nil {
		info := model.NewUserInfoResponse(candidate)
		resp.Candidate = &info
	}
	for _, id := range interview.InterviewerIds {
		if interviewer := h.lookupUser(xl, id, users); interviewer != nil {
			resp.Interviewers = append(resp.Interviewers, model.NewUserInfoResponse(interviewer))
		}
	}
	return resp
}

// lookupUser 带缓存的用户查询，users作为同一请求内的缓存。
func (h *InterviewApiHandler) lookupUser(xl *xlog.Logger, userID string, users map[string]*model.UserDo) *model.UserDo {
	if userID == "" {
		return nil
	}
	if user, ok := users[userID]; ok {
		return user
	}
	user, err := h.User.GetUserByClerkID(xl, userID)
	if err != nil {
		xl.Debugf("user %s not found when assembling response, error %v", userID, err)
		users[userID] = nil
		return nil
	}
	users[userID] = user
	return user
}

func (h *InterviewApiHandler) CreateInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	args := &form.InterviewScheduleForm{}
	err := c.Bind(args)
	if err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	now := time.Now()
	if err := args.Validate(now); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	startTime, err := args.StartInstant(time.Local)
	if err != nil {
		xl.Infof("bad start instant, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	if _, err := h.User.GetUserByClerkID(xl, args.CandidateId); err != nil {
		xl.Infof("candidate %s not found, error %v", args.CandidateId, err)
		responseErr := model.NewResponseErrorNoSuchUser()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	for _, interviewerID := range args.InterviewerIds {
		if _, err := h.User.GetUserByClerkID(xl, interviewerID); err != nil {
			xl.Infof("interviewer %s not found, error %v", interviewerID, err)
			responseErr := model.NewResponseErrorNoSuchUser()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
	}

	// 先开call再落库，call创建失败时不留下面试记录。
	callID := utils.NewCallID()
	if err := h.Video.GetOrCreateCall(callID, startTime, args.Title, args.Description); err != nil {
		xl.Errorf("failed to create call for interview, error %v", err)
		responseErr := model.NewResponseErrorExternalService()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	interview := &model.InterviewDo{
		ID:             utils.GenerateID(),
		Title:          args.Title,
		Description:    args.Description,
		StartTime:      startTime,
		Status:         model.InterviewStatusUpcoming,
		StreamCallId:   callID,
		CandidateId:    args.CandidateId,
		InterviewerIds: args.InterviewerIds,
		Recorded:       true,
		CreateTime:     now,
		UpdateTime:     now,
		Creator:        userID,
	}

	// 面试群聊尽力创建，失败不阻塞排期。
	members := append([]string{interview.CandidateId}, interview.InterviewerIds...)
	groupID := "interview-" + interview.ID
	if err := h.IM.CreateInterviewGroup(xl, groupID, interview.Title, members); err != nil {
		xl.Errorf("failed to create im group for interview %s, error %v", interview.ID, err)
	} else {
		interview.IMGroupId = groupID
	}

	if _, err := h.Interview.CreateInterview(xl, interview); err != nil {
		xl.Errorf("failed to create interview, error %v", err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := model.UpsertInterviewResponse{
		ID:           interview.ID,
		StreamCallId: interview.StreamCallId,
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) ListAllInterviews(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	pageNum := c.GetInt(model.PageNumContextKey)
	pageSize := c.GetInt(model.PageSizeContextKey)
	interviews, total, err := h.Interview.ListAllInterviewsByPage(xl, pageNum, pageSize)
	if err != nil {
		xl.Errorf("failed to list interviews, error %v", err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := newInterviewListResponse(h.interviewListItems(xl, interviews), total, pageNum, pageSize)
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) ListMyInterviews(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	pageNum := c.GetInt(model.PageNumContextKey)
	pageSize := c.GetInt(model.PageSizeContextKey)
	interviews, total, err := h.Interview.ListMyInterviewsByPage(xl, userID, pageNum, pageSize)
	if err != nil {
		xl.Errorf("failed to list interviews of user %s, error %v", userID, err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := newInterviewListResponse(h.interviewListItems(xl, interviews), total, pageNum, pageSize)
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) interviewListItems(xl *xlog.Logger, interviews []model.InterviewDo) []model.InterviewResponse {
	now := time.Now()
	users := make(map[string]*model.UserDo)
	resp := make([]model.InterviewResponse, 0, len(interviews))
	for i := range interviews {
		resp = append(resp, h.interviewResponse(xl, &interviews[i], now, users))
	}
	return resp
}

// newInterviewListResponse 拼装分页结果。total为条件命中的总数。
func newInterviewListResponse(items []model.InterviewResponse, total, pageNum, pageSize int) *model.InterviewListResponse {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	resp := &model.InterviewListResponse{}
	for _, item := range items {
		resp.List = append(resp.List, item)
	}
	resp.Total = total
	resp.Cnt = len(items)
	resp.PageSize = pageSize
	resp.CurrentPageNum = pageNum
	if len(items)+(pageNum-1)*pageSize >= total {
		resp.EndPage = true
		resp.NextPageNum = pageNum
	} else {
		resp.EndPage = false
		resp.NextPageNum = pageNum + 1
	}
	return resp
}

// GroupedInterviews 仪表盘分组视图。按落库状态分桶，空桶不下发。
func (h *InterviewApiHandler) GroupedInterviews(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviews, err := h.Interview.ListAllInterviews(xl)
	if err != nil {
		xl.Errorf("failed to list interviews, error %v", err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	now := time.Now()
	users := make(map[string]*model.UserDo)
	grouped := model.GroupInterviews(interviews)
	resp := make([]model.InterviewGroupResponse, 0, len(model.InterviewCategories))
	for _, category := range model.InterviewCategories {
		bucket, ok := grouped[category.ID]
		if !ok || len(bucket) == 0 {
			continue
		}
		group := model.InterviewGroupResponse{
			ID:    string(category.ID),
			Title: category.Title,
			Count: len(bucket),
			List:  make([]model.InterviewResponse, 0, len(bucket)),
		}
		for i := range bucket {
			group.List = append(group.List, h.interviewResponse(xl, &bucket[i], now, users))
		}
		resp = append(resp, group)
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

func (h *InterviewApiHandler) GetInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	interview, err := h.Interview.GetInterviewByID(xl, interviewID)
	if err != nil {
		xl.Infof("interview %s not found, error %v", interviewID, err)
		responseErr := model.NewResponseErrorNoSuchInterview()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	users := make(map[string]*model.UserDo)
	resp := h.interviewResponse(xl, interview, time.Now(), users)
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// GetInterviewByCall 根据call标识反查面试。会议页面由此拿到面试上下文。
func (h *InterviewApiHandler) GetInterviewByCall(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	callID := c.Param("callId")
	interview, err := h.Interview.GetInterviewByStreamCallId(xl, callID)
	if err != nil {
		xl.Infof("call %s has no interview, error %v", callID, err)
		responseErr := model.NewResponseErrorNoSuchCall()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	users := make(map[string]*model.UserDo)
	resp := h.interviewResponse(xl, interview, time.Now(), users)
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

type updateStatusArgs struct {
	Status string `json:"status" form:"status"`
}

// UpdateInterviewStatus 状态流转。只接受completed/succeeded/failed，
// 评定succeeded/failed仅限该面试的面试官。
func (h *InterviewApiHandler) UpdateInterviewStatus(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviewID := c.Param("interviewId")
	args := &updateStatusArgs{}
	if err := c.Bind(args); err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	status := model.InterviewStatus(args.Status)
	if !status.IsStored() || status == model.InterviewStatusUpcoming {
		xl.Infof("status %s not allowed as transition target", args.Status)
		responseErr := model.NewResponseErrorBadTransition()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	interview, err := h.Interview.GetInterviewByID(xl, interviewID)
	if err != nil {
		xl.Infof("interview %s not found, error %v", interviewID, err)
		responseErr := model.NewResponseErrorNoSuchInterview()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if status.IsTerminalDecision() && !interview.HasInterviewer(userID) {
		xl.Infof("user %s is not interviewer of %s, refuse decision %s", userID, interviewID, status)
		responseErr := model.NewResponseErrorUnauthorized()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	updated, err := h.Interview.UpdateInterviewStatus(xl, interviewID, status)
	if err != nil {
		xl.Errorf("failed to update status of interview %s, error %v", interviewID, err)
		serverErr, ok := err.(*errors.ServerError)
		var responseErr *model.ResponseError
		if ok && serverErr.Code == errors.ServerErrorBadTransition {
			responseErr = model.NewResponseErrorBadTransition()
		} else {
			responseErr = model.NewResponseErrorInternal()
		}
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	users := make(map[string]*model.UserDo)
	resp := h.interviewResponse(xl, updated, time.Now(), users)
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// EndInterview 结束面试。踢出call内用户与落库completed并行执行，
// 不等待结果直接返回，失败只汇总记一条日志。
func (h *InterviewApiHandler) EndInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviewID := c.Param("interviewId")
	interview, err := h.Interview.GetInterviewByID(xl, interviewID)
	if err != nil {
		xl.Infof("interview %s not found, error %v", interviewID, err)
		responseErr := model.NewResponseErrorNoSuchInterview()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if !interview.HasParticipant(userID) {
		xl.Infof("user %s is not participant of %s", userID, interviewID)
		responseErr := model.NewResponseErrorUnauthorized()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	var wg sync.WaitGroup
	var endErr, markErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		endErr = h.Video.EndCall(interview.StreamCallId)
	}()
	go func() {
		defer wg.Done()
		_, markErr = h.Interview.UpdateInterviewStatus(nil, interviewID, model.InterviewStatusCompleted)
	}()
	go func() {
		wg.Wait()
		if endErr != nil || markErr != nil {
			xlog.New(requestID).Errorf("failed to end interview %s, end call error %v, mark completed error %v",
				interviewID, endErr, markErr)
		}
	}()
	model.NewSuccessResponse(nil).WithRequestID(requestID).Send(c)
}

// Recordings 当前用户可见的录制回放列表。
func (h *InterviewApiHandler) Recordings(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	userID := c.GetString(model.UserIDContextKey)
	interviews, err := h.Interview.ListCompletedRecordedInterviews(xl, userID)
	if err != nil {
		xl.Errorf("failed to list recorded interviews of user %s, error %v", userID, err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := make([]model.RecordingResponse, 0, len(interviews))
	for _, interview := range interviews {
		if interview.RecordURL == "" {
			continue
		}
		resp = append(resp, model.RecordingResponse{
			InterviewId: interview.ID,
			Title:       interview.Title,
			CallId:      interview.StreamCallId,
			RecordURL:   interview.RecordURL,
			StartTime:   interview.StartTime.Unix(),
		})
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}
