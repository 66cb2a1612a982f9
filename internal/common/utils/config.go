// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"log"
	"os"

	qconfig "github.com/qiniu/x/config"
)

var (
	DefaultConf Config
)

func InitConf(configFilePath string) {
	err := qconfig.LoadFile(&DefaultConf, configFilePath)
	if err != nil {
		log.Fatalf("failed to load config file, error %v", err)
	}
}

// MongoConfig mongo 数据库配置。
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// QiniuKeyPair 七牛API access key/secret key配置。
type QiniuKeyPair struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// QiniuRTCConfig 七牛RTC服务配置。
// Hub 直播空间名字
// StreamPattern 流命名模式
type QiniuRTCConfig struct {
	AppID string `json:"app_id"`
	// RTC room token的有效时间。
	RoomTokenExpireSecond int    `json:"room_token_expire_s"`
	PlayBackURL           string `json:"play_back_url"`
	Hub                   string `json:"hub"`
	StreamPattern         string `json:"stream_pattern"`
	PublishURL            string `json:"publish_url"`
}

// RongCloudIMConfig 融云IM服务配置。
type RongCloudIMConfig struct {
	AppKey    string `json:"app_key"`
	AppSecret string `json:"app_secret"`
}

// IMConfig IM服务配置。
type IMConfig struct {
	Provider string `json:"provider"`
	// SystemUserID 系统用户ID。该用户用于向面试群发送控制消息。
	SystemUserID string             `json:"system_user_id"`
	RongCloud    *RongCloudIMConfig `json:"rongcloud"`
}

// IdentityConfig 外部身份服务配置。登录态由身份服务签发，本服务只做校验。
type IdentityConfig struct {
	// JwtKey 与身份服务共享的签名密钥。
	JwtKey string `json:"jwt_key"`
	// WebhookSecret 用户同步webhook的校验密钥。
	WebhookSecret string `json:"webhook_secret"`
}

// Config 后端配置。
type Config struct {
	// debug等级，为1时输出info/warn/error日志，为0除以上外还输出debug日志
	DebugLevel int    `json:"debug_level"`
	ListenAddr string `json:"listen_addr"`
	// 前端页面host，用于拼接面试房间链接。
	FrontendUrlHost string          `json:"frontend_url_host"`
	Mongo           *MongoConfig    `json:"mongo"`
	QiniuKeyPair    QiniuKeyPair    `json:"qiniu_key_pair"`
	RTC             *QiniuRTCConfig `json:"rtc"`
	IM              *IMConfig       `json:"im"`
	Identity        IdentityConfig  `json:"identity"`
}

// NewSample 返回样例配置。
func NewSample() *Config {
	return &Config{
		DebugLevel: 0,
		ListenAddr: ":8080",
		Mongo: &MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "meet_cube_test",
		},
		RTC: &QiniuRTCConfig{
			AppID:                 os.Getenv("QINIU_RTC_APP_ID"),
			RoomTokenExpireSecond: 60,
		},
		IM: &IMConfig{
			Provider: "test",
			RongCloud: &RongCloudIMConfig{
				AppKey:    os.Getenv("RONGCLOUD_APP_KEY"),
				AppSecret: os.Getenv("RONGCLOUD_APP_SECRET"),
			},
		},
	}
}
