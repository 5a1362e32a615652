package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/logger"
	"github.com/yukikurage/kanban-board-api/internal/metrics"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/testutil"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Board   *models.Board   `json:"board"`
	User    json.RawMessage `json:"user"`
}

type HandlerSuite struct {
	suite.Suite

	db     *gorm.DB
	router *gin.Engine
	auth   *services.AuthService
	users  repository.UserRepository
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = testutil.NewDB(s.T())
	log := logger.Discard()
	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	s.users = repository.NewUserRepository(s.db)
	boards := repository.NewBoardRepository(s.db)
	comments := repository.NewCommentRepository(s.db)
	notifications := repository.NewNotificationRepository(s.db)

	coordinator := services.NewCoordinator(comments, notifications, s.users, recorder, log)
	s.auth = services.NewAuthService(s.users)
	boardService := services.NewBoardService(boards, coordinator, log)
	notificationService := services.NewNotificationService(notifications, recorder, log)
	commentService := services.NewCommentService(comments, boards, s.users, notificationService, log)

	s.router = NewRouter(RouterDeps{
		SessionStore: cookie.NewStore([]byte("secret")),
		Metrics:      metrics.Handler(registry),
		Auth:         NewAuthHandler(s.auth),
		Board:        NewBoardHandler(boardService, commentService, nil),
		Comment:      NewCommentHandler(commentService),
		Notification: NewNotificationHandler(notificationService),
		User:         NewUserHandler(services.NewGroupService(s.users)),
	})
}

func (s *HandlerSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (s *HandlerSuite) signup(name string, userType models.UserType, role models.Role, accessKey string) *models.User {
	user, err := s.auth.Signup(services.SignupInput{
		Name: name, Email: name + "@example.com", Password: "secret1",
		UserType: userType, Role: role, AccessKey: accessKey,
	})
	s.Require().NoError(err)
	return user
}

func userHeader(user *models.User) []string {
	return []string{constants.HeaderUserID, strconv.FormatUint(user.ID, 10)}
}

func (s *HandlerSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
}
