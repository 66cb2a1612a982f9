package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/solutions/meet-cube/internal/protodef/model"
	"github.com/solutions/meet-cube/internal/service/cloud"
)

func TestContextUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if user := contextUser(c); user != nil {
		t.Fatalf("expected nil without context user, got %+v", user)
	}

	c.Set(model.UserContextKey, model.UserDo{ClerkID: "user_1", Name: "Li Lei", Role: model.UserRoleInterviewer})
	user := contextUser(c)
	if user == nil {
		t.Fatal("expected context user")
	}
	if user.ClerkID != "user_1" || user.Name != "Li Lei" {
		t.Fatalf("got %+v", user)
	}
}

func TestJoinPermission(t *testing.T) {
	if got := joinPermission(nil); got != cloud.PermissionUser {
		t.Fatalf("nil user: got %q", got)
	}
	candidate := &model.UserDo{Role: model.UserRoleCandidate}
	if got := joinPermission(candidate); got != cloud.PermissionUser {
		t.Fatalf("candidate: got %q", got)
	}
	interviewer := &model.UserDo{Role: model.UserRoleInterviewer}
	if got := joinPermission(interviewer); got != cloud.PermissionAdmin {
		t.Fatalf("interviewer: got %q", got)
	}
}
