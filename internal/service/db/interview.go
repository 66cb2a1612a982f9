package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/meet-cube/internal/common/utils"
	errors2 "github.com/solutions/meet-cube/internal/protodef/errors"
	model "github.com/solutions/meet-cube/internal/protodef/model"
	dao "github.com/solutions/meet-cube/internal/service/db/dao"
)

// InterviewService 面试记录的读写。
type InterviewService struct {
	mongoClient   *mgo.Session
	interviewColl *mgo.Collection
	xl            *xlog.Logger
}

func NewInterviewService(conf utils.MongoConfig, xl *xlog.Logger) (*InterviewService, error) {
	if xl == nil {
		xl = xlog.New("meet-cube-interview-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	interviewColl := mongoClient.DB(conf.Database).C(dao.CollectionInterview)
	return &InterviewService{
		mongoClient:   mongoClient,
		interviewColl: interviewColl,
		xl:            xl,
	}, nil
}

// CreateInterview 持久化一条新面试。call资源必须已经创建成功，
// 这里失败时不会留下半个面试记录。
func (c *InterviewService) CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	err := c.interviewColl.Insert(interview)
	if err != nil {
		xl.Errorf("failed to insert interview of user %s, error %v", interview.Creator, err)
		return nil, err
	}
	xl.Infof("user %s created interview %s", interview.Creator, interview.ID)
	return interview, nil
}

// ListAllInterviews 列出全部面试，开始时间倒序。
func (c *InterviewService) ListAllInterviews(xl *xlog.Logger) ([]model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviews := []model.InterviewDo{}
	err := c.interviewColl.Find(nil).Sort("-startTime").All(&interviews)
	if err != nil {
		xl.Errorf("failed to list interviews, error %v", err)
		return nil, err
	}
	return interviews, nil
}

// listInterviewsByPage 按条件分页查询，开始时间倒序，同时返回总数。
func (c *InterviewService) listInterviewsByPage(xl *xlog.Logger, condition interface{}, pageNum int, pageSize int) ([]model.InterviewDo, int, error) {
	if xl == nil {
		xl = c.xl
	}
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	total, err := c.interviewColl.Find(condition).Count()
	if err != nil {
		xl.Errorf("failed to count interviews, error %v", err)
		return nil, 0, err
	}
	interviews := []model.InterviewDo{}
	err = c.interviewColl.Find(condition).Sort("-startTime").
		Skip((pageNum - 1) * pageSize).Limit(pageSize).All(&interviews)
	if err != nil {
		xl.Errorf("failed to list interviews, error %v", err)
		return nil, 0, err
	}
	return interviews, total, nil
}

// ListAllInterviewsByPage 分页列出全部面试。
func (c *InterviewService) ListAllInterviewsByPage(xl *xlog.Logger, pageNum int, pageSize int) ([]model.InterviewDo, int, error) {
	return c.listInterviewsByPage(xl, nil, pageNum, pageSize)
}

// ListMyInterviewsByPage 分页列出userID作为应聘者或面试官参与的面试。
func (c *InterviewService) ListMyInterviewsByPage(xl *xlog.Logger, userID string, pageNum int, pageSize int) ([]model.InterviewDo, int, error) {
	condition := bson.M{"$or": []bson.M{
		{"candidateId": userID},
		{"interviewerIds": userID},
	}}
	return c.listInterviewsByPage(xl, condition, pageNum, pageSize)
}

// ListCompletedRecordedInterviews 已结束且已出录制的面试。
func (c *InterviewService) ListCompletedRecordedInterviews(xl *xlog.Logger, userID string) ([]model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interviews := []model.InterviewDo{}
	condition := bson.M{
		"status": bson.M{"$in": []model.InterviewStatus{
			model.InterviewStatusCompleted,
			model.InterviewStatusSucceeded,
			model.InterviewStatusFailed,
		}},
		"recorded": true,
		"$or": []bson.M{
			{"candidateId": userID},
			{"interviewerIds": userID},
		},
	}
	err := c.interviewColl.Find(condition).Sort("-startTime").All(&interviews)
	if err != nil {
		xl.Errorf("failed to list recorded interviews of user %s, error %v", userID, err)
		return nil, err
	}
	return interviews, nil
}

// GetInterviewByFields 根据一组 key/value 关系查找面试。
func (c *InterviewService) GetInterviewByFields(xl *xlog.Logger, fields map[string]interface{}) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview := model.InterviewDo{}
	err := c.interviewColl.Find(fields).One(&interview)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such interview for fields %v", fields)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorInterviewNotFound}
		}
		xl.Errorf("failed to get interview, error %v", fields)
		return nil, err
	}
	return &interview, nil
}

func (c *InterviewService) GetInterviewByID(xl *xlog.Logger, interviewID string) (*model.InterviewDo, error) {
	return c.GetInterviewByFields(xl, map[string]interface{}{"_id": interviewID})
}

// GetInterviewByStreamCallId 按视频服务的call标识查找面试。
func (c *InterviewService) GetInterviewByStreamCallId(xl *xlog.Logger, callID string) (*model.InterviewDo, error) {
	return c.GetInterviewByFields(xl, map[string]interface{}{"streamCallId": callID})
}

// UpdateInterview 覆盖更新面试。
func (c *InterviewService) UpdateInterview(xl *xlog.Logger, id string, interview *model.InterviewDo) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview.UpdateTime = time.Now()
	err := c.interviewColl.Update(bson.M{"_id": id}, bson.M{"$set": interview})
	if err != nil {
		xl.Errorf("failed to update interview %s, error %v", id, err)
		return nil, err
	}
	return interview, nil
}

// UpdateInterviewStatus 只修改落库状态，拒绝不可落库的状态值。
func (c *InterviewService) UpdateInterviewStatus(xl *xlog.Logger, id string, status model.InterviewStatus) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	if !status.IsStored() {
		return nil, &errors2.ServerError{Code: errors2.ServerErrorBadTransition}
	}
	interview, err := c.GetInterviewByID(xl, id)
	if err != nil {
		return nil, err
	}
	interview.Status = status
	return c.UpdateInterview(xl, id, interview)
}
