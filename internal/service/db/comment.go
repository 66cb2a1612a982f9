package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/meet-cube/internal/common/utils"
	model "github.com/solutions/meet-cube/internal/protodef/model"
	dao "github.com/solutions/meet-cube/internal/service/db/dao"
)

// CommentService 面试评价的读写。评价只增，不改不删。
type CommentService struct {
	mongoClient *mgo.Session
	commentColl *mgo.Collection
	xl          *xlog.Logger
}

func NewCommentService(conf utils.MongoConfig, xl *xlog.Logger) (*CommentService, error) {
	if xl == nil {
		xl = xlog.New("meet-cube-comment-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	commentColl := mongoClient.DB(conf.Database).C(dao.CollectionComment)
	return &CommentService{
		mongoClient: mongoClient,
		commentColl: commentColl,
		xl:          xl,
	}, nil
}

// AddComment 新增一条评价。
func (c *CommentService) AddComment(xl *xlog.Logger, comment *model.CommentDo) (*model.CommentDo, error) {
	if xl == nil {
		xl = c.xl
	}
	if comment.ID == "" {
		comment.ID = utils.GenerateID()
	}
	comment.CreationTime = time.Now()
	err := c.commentColl.Insert(comment)
	if err != nil {
		xl.Errorf("failed to insert comment of interview %s, error %v", comment.InterviewId, err)
		return nil, err
	}
	xl.Infof("user %s commented interview %s", comment.InterviewerId, comment.InterviewId)
	return comment, nil
}

// ListComments 按面试列出评价，时间正序。
func (c *CommentService) ListComments(xl *xlog.Logger, interviewID string) ([]model.CommentDo, error) {
	if xl == nil {
		xl = c.xl
	}
	comments := []model.CommentDo{}
	err := c.commentColl.Find(bson.M{"interviewId": interviewID}).Sort("creationTime").All(&comments)
	if err != nil && err != mgo.ErrNotFound {
		xl.Errorf("failed to list comments of interview %s, error %v", interviewID, err)
		return nil, err
	}
	return comments, nil
}
