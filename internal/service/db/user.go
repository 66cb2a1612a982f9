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

// UserService 用户数据的读写。用户由身份服务webhook同步，本服务不做注册。
type UserService struct {
	mongoClient *mgo.Session
	userColl    *mgo.Collection
	xl          *xlog.Logger
}

func NewUserService(conf utils.MongoConfig, xl *xlog.Logger) (*UserService, error) {
	if xl == nil {
		xl = xlog.New("meet-cube-user-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	userColl := mongoClient.DB(conf.Database).C(dao.CollectionUser)
	return &UserService{
		mongoClient: mongoClient,
		userColl:    userColl,
		xl:          xl,
	}, nil
}

// SyncUser 按clerkId对用户做upsert，角色只在首次同步时赋默认值。
func (c *UserService) SyncUser(xl *xlog.Logger, user *model.UserDo) error {
	if xl == nil {
		xl = c.xl
	}
	user.SyncTime = time.Now()
	existing, err := c.GetUserByClerkID(xl, user.ClerkID)
	if err == nil {
		if user.Role == "" {
			user.Role = existing.Role
		}
		updateErr := c.userColl.Update(bson.M{"_id": user.ClerkID}, bson.M{"$set": user})
		if updateErr != nil {
			xl.Errorf("failed to update user %s, error %v", user.ClerkID, updateErr)
			return updateErr
		}
		return nil
	}
	if user.Role == "" {
		user.Role = model.UserRoleCandidate
	}
	insertErr := c.userColl.Insert(user)
	if insertErr != nil {
		xl.Errorf("failed to insert user %s, error %v", user.ClerkID, insertErr)
		return insertErr
	}
	xl.Infof("synced new user %s from identity provider", user.ClerkID)
	return nil
}

// GetUserByClerkID 按身份服务的标识查找用户。
func (c *UserService) GetUserByClerkID(xl *xlog.Logger, clerkID string) (*model.UserDo, error) {
	return c.GetUserByFields(xl, map[string]interface{}{"_id": clerkID})
}

// GetUserByFields 根据一组key/value关系查找用户。
func (c *UserService) GetUserByFields(xl *xlog.Logger, fields map[string]interface{}) (*model.UserDo, error) {
	if xl == nil {
		xl = c.xl
	}
	user := model.UserDo{}
	err := c.userColl.Find(fields).One(&user)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such user for fields %v", fields)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorUserNotfound}
		}
		xl.Errorf("failed to get user, error %v", fields)
		return nil, err
	}
	return &user, nil
}

// ListUsers 列出全部用户，按同步时间倒序。
func (c *UserService) ListUsers(xl *xlog.Logger) ([]model.UserDo, error) {
	if xl == nil {
		xl = c.xl
	}
	users := []model.UserDo{}
	err := c.userColl.Find(nil).Sort("-syncTime").All(&users)
	if err != nil {
		xl.Errorf("failed to list users, error %v", err)
		return nil, err
	}
	return users, nil
}

// DeleteUser 身份服务删除用户时的回收。
func (c *UserService) DeleteUser(xl *xlog.Logger, clerkID string) error {
	if xl == nil {
		xl = c.xl
	}
	err := c.userColl.Remove(bson.M{"_id": clerkID})
	if err != nil && err != mgo.ErrNotFound {
		xl.Errorf("failed to delete user %s, error %v", clerkID, err)
		return err
	}
	return nil
}
