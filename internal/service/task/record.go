package task

import (
	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/cloud"
	"github.com/solutions/meet-cube/internal/service/db/dao"
)

type RecordTask struct {
	Video         *cloud.VideoCallService
	conf          utils.Config
	interviewColl *mgo.Collection
	taskColl      *mgo.Collection
	client        *mgo.Session
	xl            *xlog.Logger
}

func NewRecordTask(conf utils.Config) *RecordTask {
	n := new(RecordTask)
	n.Video = cloud.NewVideoCallService(conf)
	n.xl = xlog.New("record task manager")
	var err error
	n.client, err = mgo.Dial(conf.Mongo.URI + "/" + conf.Mongo.Database)
	if err != nil {
		n.xl.Fatalf("error fetching service client err:%v", err)
	}
	n.interviewColl = n.client.DB(conf.Mongo.Database).C(dao.CollectionInterview)
	n.taskColl = n.client.DB(conf.Mongo.Database).C(dao.CollectionTask)
	n.conf = conf
	return n
}

// Start 同步任务
// 面试已结束 && 有录制 && 回放地址未生成
func (r RecordTask) Start() {
	interviews, err := r.listPending()
	if err != nil {
		r.xl.Errorf("error fetching task err:%v", err)
		return
	}
	for _, interview := range interviews {
		model.NewTask(interview.ID, "interview", "record").Handle(r.genHandleFunc(interview)).Start(r.taskColl, r.xl)
	}
}

func (r *RecordTask) genHandleFunc(interview model.InterviewDo) func() (string, error) {
	return func() (string, error) {
		playbackURL, err := r.Video.SaveRecording(interview.StreamCallId)
		if err != nil {
			return "", err
		}
		update := bson.M{"$set": bson.M{"recordURL": playbackURL}}
		_ = r.interviewColl.UpdateId(interview.ID, update)
		return playbackURL, nil
	}
}

func (r *RecordTask) listPending() ([]model.InterviewDo, error) {
	condition := bson.M{
		"status": bson.M{"$in": []model.InterviewStatus{
			model.InterviewStatusCompleted,
			model.InterviewStatusSucceeded,
			model.InterviewStatusFailed,
		}},
		"recorded":  true,
		"recordURL": bson.M{"$in": []interface{}{nil, ""}},
	}
	interviews := make([]model.InterviewDo, 0)
	err := r.interviewColl.Find(condition).Limit(10).All(&interviews)
	if err != nil {
		r.xl.Errorf("fetch interview list err:%v", err)
		return interviews, err
	}
	return interviews, nil
}
