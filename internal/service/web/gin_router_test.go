package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/meet-cube/internal/protodef/model"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/interviews", nil)
	return c
}

func TestAddRequestID(t *testing.T) {
	c := newTestContext(t)
	addRequestID(c)

	requestID := c.Request.Header.Get(model.RequestIDHeader)
	if requestID == "" {
		t.Fatal("expected request ID header to be set")
	}
	if _, ok := c.MustGet(model.XLogKey).(*xlog.Logger); !ok {
		t.Fatal("expected xlog logger in context")
	}
	start, ok := c.Get(model.RequestStartKey)
	if !ok {
		t.Fatal("expected request start time in context")
	}
	if _, ok := start.(time.Time); !ok {
		t.Fatalf("expected time.Time, got %T", start)
	}
}

func TestAddRequestIDKeepsHeader(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set(model.RequestIDHeader, "req-123")
	addRequestID(c)

	if got := c.Request.Header.Get(model.RequestIDHeader); got != "req-123" {
		t.Fatalf("expected existing request ID to be kept, got %q", got)
	}
}
