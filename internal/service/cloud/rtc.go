package cloud

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/fatih/color"
	qiniuauth "github.com/qiniu/go-sdk/v7/auth"
	qiniurtc "github.com/qiniu/go-sdk/v7/rtc"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
)

// VideoCallService 视频会议服务的薄封装。call由外部服务托管，
// 本服务只负责创建call、签发进房token、结束call和拉取录制。
type VideoCallService struct {
	*qiniurtc.Manager
	conf   utils.QiniuRTCConfig
	signer *qiniuauth.Credentials
	xl     *xlog.Logger
}

const (
	// DefaultRTCRoomTokenTimeout 默认的RTC加入房间用token的过期时间。
	DefaultRTCRoomTokenTimeout = 60 * time.Second
	// PermissionAdmin 面试官进房权限。
	PermissionAdmin = "admin"
	// PermissionUser 应聘者进房权限。
	PermissionUser = "user"
)

func NewVideoCallService(conf utils.Config) *VideoCallService {
	r := new(VideoCallService)
	r.conf = *conf.RTC
	r.xl = xlog.New("video-call-service")
	r.signer = &qiniuauth.Credentials{
		AccessKey: conf.QiniuKeyPair.AccessKey,
		SecretKey: []byte(conf.QiniuKeyPair.SecretKey),
	}
	client := qiniurtc.NewManager(r.signer)
	r.Manager = client
	return r
}

// callMeta 创建call时附带的业务信息。
type callMeta struct {
	StartsAt    string `json:"starts_at"`
	Description string `json:"description,omitempty"`
	Details     string `json:"additionalDetails,omitempty"`
}

// GetOrCreateCall 在视频服务上创建（或复用）一个call。
// 创建失败时调用方不得落库面试记录。
func (r *VideoCallService) GetOrCreateCall(callID string, startsAt time.Time, description, details string) error {
	meta := callMeta{
		StartsAt:    startsAt.UTC().Format(time.RFC3339),
		Description: description,
		Details:     details,
	}
	val, _ := json.Marshal(meta)
	url := fmt.Sprintf("https://rtc.qiniuapi.com/v3/apps/%s/rooms/%s", r.conf.AppID, callID)
	req, err := http.NewRequest("POST", url, bytes.NewReader(val))
	if err != nil {
		r.xl.Errorf("error making req err:%v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	sign, err := r.signer.SignRequestV2(req)
	if err != nil {
		r.xl.Errorf("error signing req err:%v", err)
		return err
	}
	req.Header.Set("Authorization", "Qiniu "+sign)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		r.xl.Errorf("error invoke api %s:%v", url, err)
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		body, _ := ioutil.ReadAll(res.Body)
		r.xl.Errorf("create call %s failed, status %d body %s", callID, res.StatusCode, body)
		return fmt.Errorf("create call failed, status %d", res.StatusCode)
	}
	r.xl.Infof("call %s created, starts at %s", callID, meta.StartsAt)
	return nil
}

// RoomToken 签发进入call的room token。
func (r *VideoCallService) RoomToken(callID, userID, permission string) string {
	roomTimeOut := DefaultRTCRoomTokenTimeout
	if r.conf.RoomTokenExpireSecond > 0 {
		roomTimeOut = time.Duration(r.conf.RoomTokenExpireSecond) * time.Second
	}
	roomAccess := qiniurtc.RoomAccess{
		AppID:      r.conf.AppID,
		RoomName:   callID,
		UserID:     userID,
		ExpireAt:   time.Now().Add(roomTimeOut).Unix(),
		Permission: permission,
	}
	token, _ := r.GetRoomToken(roomAccess)
	return token
}

// ListUser 列出call内的在线用户。
func (r *VideoCallService) ListUser(callID string) (res []string, err error) {
	users, err := r.Manager.ListUser(r.conf.AppID, callID)
	color.Blue(fmt.Sprintf("%d", len(users)))
	if err != nil {
		return nil, err
	}
	res = make([]string, 0, len(users))
	for _, u := range users {
		res = append(res, u.UserID)
	}
	return res, nil
}

// EndCall 结束call：将房间内所有用户踢出。尽力而为，
// 第一个踢人失败即返回错误，由调用方汇总上报。
func (r *VideoCallService) EndCall(callID string) error {
	users, err := r.ListUser(callID)
	if err != nil {
		return err
	}
	for _, userID := range users {
		if kickErr := r.Manager.KickUser(r.conf.AppID, callID, userID); kickErr != nil {
			r.xl.Errorf("failed to kick user %s from call %s, error %v", userID, callID, kickErr)
			return kickErr
		}
	}
	return nil
}

// SaveRecording 对call的直播流做回放保存，返回可访问的回放地址。
func (r *VideoCallService) SaveRecording(callID string) (string, error) {
	streamName := fmt.Sprintf(r.conf.StreamPattern, callID)
	encodedStreamName := base64.StdEncoding.EncodeToString([]byte(streamName))
	params := map[string]interface{}{
		"fname":  streamName,
		"format": "m3u8",
	}
	val, _ := json.Marshal(params)
	url := fmt.Sprintf("https://pili.qiniuapi.com/v2/hubs/%s/streams/%s/saveas", r.conf.Hub, encodedStreamName)
	req, err := http.NewRequest("POST", url, bytes.NewReader(val))
	if err != nil {
		r.xl.Errorf("error making req err:%v", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	sign, err := r.signer.SignRequestV2(req)
	if err != nil {
		r.xl.Errorf("error signing req err:%v", err)
		return "", err
	}
	req.Header.Set("Authorization", "Qiniu "+sign)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		r.xl.Errorf("error invoke api err:%v", err)
		return "", err
	}
	defer res.Body.Close()
	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		r.xl.Errorf("error read body err:%v", err)
		return "", err
	}
	resp := make(map[string]string)
	_ = json.Unmarshal(data, &resp)
	fname, ok := resp["fname"]
	if !ok {
		return "", fmt.Errorf("save recording failed, stream %s resp %s", streamName, data)
	}
	return fmt.Sprintf("%s/%s", r.conf.PlayBackURL, fname), nil
}
