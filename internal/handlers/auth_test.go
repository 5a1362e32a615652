package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/models"
)

func (s *HandlerSuite) TestSignup() {
	w := s.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "secret1",
		"userType": "group", "role": "leader", "accessKey": "team01",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	env := s.decode(w)
	s.True(env.Success)
	var user dto.UserDTO
	s.Require().NoError(json.Unmarshal(env.User, &user))
	s.Equal("Alice", user.Name)
	s.Equal(models.RoleLeader, user.Role)
	s.Equal("TEAM01", user.AccessKey)
	s.Equal("TEAM01", user.GroupID)

	w = s.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "secret1",
		"userType": "group", "role": "member", "accessKey": "team01",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	var member dto.UserDTO
	s.Require().NoError(json.Unmarshal(s.decode(w).User, &member))
	s.Equal(models.RoleMember, member.Role)
	s.Empty(member.AccessKey)
	s.Equal("TEAM01", member.GroupID)
}

func (s *HandlerSuite) TestSignupErrors() {
	s.signup("taken", models.UserTypeSingle, "", "")

	tests := []struct {
		name    string
		payload map[string]string
		code    string
	}{
		{"missing fields", map[string]string{"email": "x@example.com"}, apierrors.ErrCodeInvalidInput},
		{"email taken", map[string]string{
			"name": "t", "email": "taken@example.com", "password": "secret1", "userType": "single",
		}, apierrors.ErrCodeConflict},
		{"bad access key", map[string]string{
			"name": "m", "email": "m@example.com", "password": "secret1",
			"userType": "group", "role": "member", "accessKey": "NOPE",
		}, apierrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/auth/signup", tt.payload)
			s.Equal(http.StatusBadRequest, w.Code)
			env := s.decode(w)
			s.False(env.Success)
			s.Equal(tt.code, env.Code)
			s.NotEmpty(env.Message)
		})
	}
}

func (s *HandlerSuite) TestLoginAndMe() {
	s.signup("solo", models.UserTypeSingle, "", "")

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "solo@example.com", "password": "wrong-pass",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password", s.decode(w).Message)

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "solo@example.com", "password": "secret1",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies, "expected session cookie to be set")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	s.Require().Equal(http.StatusOK, me.Code)
	var user dto.UserDTO
	s.Require().NoError(json.Unmarshal(s.decode(me).User, &user))
	s.Equal("solo@example.com", user.Email)

	w = s.do(http.MethodGet, "/api/auth/me", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestGetCurrentUserFromContext() {
	user := s.signup("ctx", models.UserTypeSingle, "", "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	NewAuthHandler(s.auth).GetCurrentUser(c)

	s.Require().Equal(http.StatusOK, w.Code)
	var got dto.UserDTO
	s.Require().NoError(json.Unmarshal(s.decode(w).User, &got))
	s.Equal(user.Name, got.Name)
}
