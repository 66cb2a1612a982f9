package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"
	"github.com/tidwall/gjson"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/db"
)

type UserApiHandler struct {
	User          UserInterface
	WebhookSecret string
}

type UserInterface interface {
	SyncUser(xl *xlog.Logger, user *model.UserDo) error
	GetUserByClerkID(xl *xlog.Logger, clerkID string) (*model.UserDo, error)
	ListUsers(xl *xlog.Logger) ([]model.UserDo, error)
	DeleteUser(xl *xlog.Logger, clerkID string) error
}

func NewUserApiHandler(conf utils.Config) *UserApiHandler {
	h := new(UserApiHandler)
	var err error
	h.User, err = db.NewUserService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	h.WebhookSecret = conf.Identity.WebhookSecret
	return h
}

// GetUsers 列出全部用户，供排期页选择应聘者和面试官。
func (h *UserApiHandler) GetUsers(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	users, err := h.User.ListUsers(xl)
	if err != nil {
		xl.Errorf("failed to list users, error %v", err)
		responseErr := model.NewResponseErrorInternal()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := make([]model.UserInfoResponse, 0, len(users))
	for i := range users {
		resp = append(resp, model.NewUserInfoResponse(&users[i]))
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// IdentityWebhook 身份服务的用户同步回调。
// svix三个头部缺一不可，签名校验失败直接拒绝。
func (h *UserApiHandler) IdentityWebhook(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId

	svixID := c.GetHeader("svix-id")
	svixTimestamp := c.GetHeader("svix-timestamp")
	svixSignature := c.GetHeader("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		xl.Infof("webhook request missing svix headers")
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	body, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		xl.Errorf("failed to read webhook body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if !h.verifySignature(svixID, svixTimestamp, svixSignature, body) {
		xl.Infof("webhook signature mismatch, svix-id %s", svixID)
		responseErr := model.NewResponseErrorUnauthorized()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	payload := gjson.ParseBytes(body)
	eventType := payload.Get("type").String()
	clerkID := payload.Get("data.id").String()
	if clerkID == "" {
		xl.Infof("webhook event %s carries no user id", eventType)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	switch eventType {
	case "user.created", "user.updated":
		email := payload.Get("data.email_addresses.0.email_address").String()
		name := strings.TrimSpace(fmt.Sprintf("%s %s",
			payload.Get("data.first_name").String(),
			payload.Get("data.last_name").String()))
		if name == "" {
			name = email
		}
		user := &model.UserDo{
			ClerkID:  clerkID,
			Name:     name,
			Email:    email,
			Image:    payload.Get("data.image_url").String(),
			SyncTime: time.Now(),
		}
		if err := h.User.SyncUser(xl, user); err != nil {
			xl.Errorf("failed to sync user %s, error %v", clerkID, err)
			responseErr := model.NewResponseErrorInternal()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
		xl.Infof("user %s synced on event %s", clerkID, eventType)
	case "user.deleted":
		if err := h.User.DeleteUser(xl, clerkID); err != nil {
			xl.Errorf("failed to delete user %s, error %v", clerkID, err)
			responseErr := model.NewResponseErrorInternal()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
		xl.Infof("user %s deleted", clerkID)
	default:
		xl.Infof("ignore webhook event %s", eventType)
	}
	model.NewSuccessResponse(nil).WithRequestID(requestID).Send(c)
}

// verifySignature 校验svix签名。签名串为 id.timestamp.body 的HMAC-SHA256，
// 密钥为去掉whsec_前缀后base64解码的secret，头部中以空格分隔多个版本签名。
func (h *UserApiHandler) verifySignature(svixID, svixTimestamp, svixSignature string, body []byte) bool {
	if h.WebhookSecret == "" {
		return true
	}
	secret := strings.TrimPrefix(h.WebhookSecret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", svixID, svixTimestamp, body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	for _, part := range strings.Split(svixSignature, " ") {
		fields := strings.SplitN(part, ",", 2)
		if len(fields) != 2 {
			continue
		}
		if hmac.Equal([]byte(fields[1]), []byte(expected)) {
			return true
		}
	}
	return false
}
