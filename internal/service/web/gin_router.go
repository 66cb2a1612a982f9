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

package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/web/handler"
	"github.com/solutions/meet-cube/internal/service/web/middleware"
)

// NewRouter 返回gin router，分流API。
func NewRouter(config *utils.Config) (*gin.Engine, error) {
	// 1. 初始化GIN
	router := gin.New()
	router.Use(gin.Recovery())
	// 1.1. 全局CORS配置
	router.Use(corsMiddleware())

	// 2. 声明Handler
	userApiHandler := handler.NewUserApiHandler(*config)
	interviewApiHandler := handler.NewInterviewApiHandler(*config)
	commentApiHandler := handler.NewCommentApiHandler(*config)

	middleware.InitMiddleware(*config)

	// 3. 配置V1路径
	v1 := router.Group("/v1", addRequestID, middleware.FetchPageInfo)
	{
		// 3.1 身份服务用户同步回调，无登录态
		v1.POST("webhook/identity", userApiHandler.IdentityWebhook)
	}
	baseAuth := v1.Group("", middleware.Authenticate)
	{
		// 3.2 用户列表
		baseAuth.GET("users", userApiHandler.GetUsers)
		baseAuth.GET("users/", userApiHandler.GetUsers)

		// 3.3 面试列表
		baseAuth.GET("interviews", interviewApiHandler.ListAllInterviews)
		baseAuth.GET("interviews/", interviewApiHandler.ListAllInterviews)
		// 3.4 我参与的面试
		baseAuth.GET("interviews/my", interviewApiHandler.ListMyInterviews)
		// 3.5 仪表盘分组视图
		baseAuth.GET("interviews/grouped", interviewApiHandler.GroupedInterviews)
		// 3.6 排期面试
		baseAuth.POST("interviews", interviewApiHandler.CreateInterview)
		baseAuth.POST("interviews/", interviewApiHandler.CreateInterview)
		// 3.7 根据call反查面试
		baseAuth.GET("interviews/byCall/:callId", interviewApiHandler.GetInterviewByCall)
		// 3.8 面试详情
		baseAuth.GET("interview/:interviewId", interviewApiHandler.GetInterview)
		// 3.9 状态流转
		baseAuth.POST("interview/:interviewId/status", interviewApiHandler.UpdateInterviewStatus)
		// 3.10 结束面试
		baseAuth.POST("endInterview/:interviewId", interviewApiHandler.EndInterview)

		// 3.11 即时会议
		baseAuth.POST("meeting/instant", interviewApiHandler.InstantMeeting)
		// 3.12 加入会议
		baseAuth.POST("meeting/join", interviewApiHandler.JoinMeeting)

		// 3.13 面试评价
		baseAuth.POST("comments", commentApiHandler.AddComment)
		baseAuth.GET("comments/:interviewId", commentApiHandler.ListComments)

		// 3.14 录制回放列表
		baseAuth.GET("recordings", interviewApiHandler.Recordings)
	}

	router.NoRoute(addRequestID, returnNotFound)
	router.RedirectTrailingSlash = false

	return router, nil
}

func addRequestID(c *gin.Context) {
	requestID := ""
	if requestID = c.Request.Header.Get(model.RequestIDHeader); requestID == "" {
		requestID = utils.NewReqID()
		c.Request.Header.Set(model.RequestIDHeader, requestID)
	}
	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(model.XLogKey, xl)
	c.Set(model.RequestStartKey, time.Now())
	c.Next()
	if start, ok := c.Get(model.RequestStartKey); ok {
		xl.Debugf("response: %s %s %d %v", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start.(time.Time)).Round(time.Millisecond))
	}
}

func returnNotFound(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	xl.Debugf("%s %s: not found", c.Request.Method, c.Request.URL.Path)
	responseErr := model.NewResponseErrorNotFound()
	resp := model.NewFailResponse(*responseErr)
	c.JSON(http.StatusOK, resp)
}

func corsMiddleware() gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowAllOrigins = true
	conf.AllowCredentials = true
	conf.AllowHeaders = []string{"Content-Type", "Content-Length", "Accept-Encoding",
		"X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"}
	conf.AllowMethods = []string{"POST", "OPTIONS", "GET", "PUT", "DELETE", "HEAD"}
	return cors.New(conf)
}
