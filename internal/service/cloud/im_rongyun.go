package cloud

import (
	"sync"
	"time"

	"github.com/qiniu/x/xlog"
	rcsdk "github.com/rongcloud/server-sdk-go/v3/sdk"

	"github.com/solutions/meet-cube/internal/common/utils"
)

const (
	// DefaultPortraitURL 默认IM头像地址。
	DefaultPortraitURL = "https://developer.rongcloud.cn/static/images/newversion-logo.png"
)

// IMUser IM侧的用户凭证。
type IMUser struct {
	UserID           string    `json:"id"`
	Token            string    `json:"token"`
	LastRegisterTime time.Time `json:"lastRegisterTime"`
}

// RongCloudIMService 融云IM控制器，为每场面试维护一个群聊。
type RongCloudIMService struct {
	appKey          string
	appSecret       string
	systemUserID    string
	userLock        sync.RWMutex
	userMap         map[string]*IMUser
	rongCloudClient *rcsdk.RongCloud
	xl              *xlog.Logger
}

// NewRongCloudIMService 创建新的融云IM控制器。
func NewRongCloudIMService(conf utils.Config) *RongCloudIMService {
	imConf := conf.IM
	c := &RongCloudIMService{
		appKey:          imConf.RongCloud.AppKey,
		appSecret:       imConf.RongCloud.AppSecret,
		systemUserID:    imConf.SystemUserID,
		userMap:         map[string]*IMUser{},
		rongCloudClient: rcsdk.NewRongCloud(imConf.RongCloud.AppKey, imConf.RongCloud.AppSecret),
		xl:              xlog.New("meet-cube-im-controller"),
	}
	return c
}

// GetUserToken 用户注册，生成User token。已注册用户直接复用缓存。
func (c *RongCloudIMService) GetUserToken(xl *xlog.Logger, userID string, name string) (*IMUser, error) {
	if xl == nil {
		xl = c.xl
	}
	if user, ok := c.getIMUser(userID); ok {
		return user, nil
	}
	if name == "" {
		name = userID
	}
	userRes, err := c.rongCloudClient.UserRegister(userID, name, DefaultPortraitURL)
	if err != nil {
		xl.Errorf("failed to get user token from rongcloud, error %v", err)
		return nil, err
	}
	imUser := &IMUser{
		UserID:           userRes.UserID,
		Token:            userRes.Token,
		LastRegisterTime: time.Now(),
	}
	c.setIMUser(imUser)
	return imUser, nil
}

// CreateInterviewGroup 为面试创建群聊，面试的参与者为初始成员。
func (c *RongCloudIMService) CreateInterviewGroup(xl *xlog.Logger, groupID, title string, memberIDs []string) error {
	if xl == nil {
		xl = c.xl
	}
	members := memberIDs
	if c.systemUserID != "" {
		members = append(append([]string{}, memberIDs...), c.systemUserID)
	}
	err := c.rongCloudClient.GroupCreate(groupID, title, members)
	if err != nil {
		xl.Errorf("failed to create im group %s, error %v", groupID, err)
		return err
	}
	xl.Infof("im group %s created for interview", groupID)
	return nil
}

// DismissInterviewGroup 面试结束后解散群聊。尽力而为。
func (c *RongCloudIMService) DismissInterviewGroup(xl *xlog.Logger, groupID string) error {
	if xl == nil {
		xl = c.xl
	}
	if c.systemUserID == "" {
		return nil
	}
	err := c.rongCloudClient.GroupDismiss(groupID, c.systemUserID)
	if err != nil {
		xl.Errorf("failed to dismiss im group %s, error %v", groupID, err)
	}
	return err
}

func (c *RongCloudIMService) setIMUser(user *IMUser) {
	if user == nil || user.UserID == "" {
		return
	}
	c.userLock.Lock()
	defer c.userLock.Unlock()
	c.userMap[user.UserID] = user
}

func (c *RongCloudIMService) getIMUser(userID string) (user *IMUser, ok bool) {
	c.userLock.RLock()
	defer c.userLock.RUnlock()
	user, ok = c.userMap[userID]
	return user, ok
}
