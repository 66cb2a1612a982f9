package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/common/utils"
	"github.com/solutions/meet-cube/internal/protodef/model"
	service "github.com/solutions/meet-cube/internal/service/db"
)

var (
	userService *service.UserService
	jwtKey      string
	xl          = xlog.New("Middleware")
)

func InitMiddleware(conf utils.Config) {
	var err error
	userService, err = service.NewUserService(*conf.Mongo, xl)
	if err != nil {
		xl.Fatalf("error creating user service err:%v", err)
	}
	jwtKey = conf.Identity.JwtKey
	return
}

func FetchPageInfo(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	pageNumArg := c.DefaultQuery("pageNum", "1")
	pageSizeArg := c.DefaultQuery("pageSize", "10")
	pageNum, err := strconv.Atoi(pageNumArg)
	if err != nil {
		xl.Infof("FetchPageInfo.pageNum transfer int err, use default value %v", err)
		pageNum = 1
	}
	pageSize, err := strconv.Atoi(pageSizeArg)
	if err != nil {
		xl.Infof("FetchPageInfo.pageSize transfer int err, use default value %v", err)
		pageSize = 10
	}
	c.Set(model.PageNumContextKey, pageNum)
	c.Set(model.PageSizeContextKey, pageSize)
}
