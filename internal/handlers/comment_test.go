package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yukikurage/kanban-board-api/internal/dto"
	"github.com/yukikurage/kanban-board-api/internal/models"
)

// Alice leads the group, Bob is assigned task t1 and comments on it; Alice
// reads the notification, answers, and then the task is deleted.
func (s *HandlerSuite) TestCommentNotificationFlow() {
	alice := s.signup("alice", models.UserTypeGroup, models.RoleLeader, "TEAM01")
	bob := s.signup("bob", models.UserTypeGroup, models.RoleMember, "TEAM01")
	group := *alice.GroupID

	w := s.do(http.MethodPut, "/api/boards", map[string]any{
		"ownerId": group, "ownerType": "group",
		"columns": []map[string]any{
			{"id": "progress", "title": "In Progress", "tasks": []map[string]any{
				{"id": "t1", "title": "Design", "assignedTo": strconv.FormatUint(bob.ID, 10)},
			}},
		},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	commentPath := "/api/tasks/t1/comments"
	w = s.do(http.MethodPost, commentPath, map[string]any{
		"text": "Started", "authorId": bob.ID, "authorName": "Bob",
		"boardOwnerId": group, "boardOwnerType": "group",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/notifications", nil, userHeader(alice)...)
	s.Require().Equal(http.StatusOK, w.Code)
	var feed struct {
		Notifications []models.Notification `json:"notifications"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &feed))
	s.Require().Len(feed.Notifications, 1)
	s.Equal(`Bob commented on "Design" in In Progress`, feed.Notifications[0].Message)
	s.False(feed.Notifications[0].IsRead)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", feed.Notifications[0].ID), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, commentPath, map[string]any{
		"text": "Thanks", "authorId": strconv.FormatUint(alice.ID, 10), "authorName": "Alice",
		"boardOwnerId": group, "boardOwnerType": "group",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/notifications", nil, userHeader(bob)...)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &feed))
	s.Require().Len(feed.Notifications, 1)

	w = s.do(http.MethodPatch, "/api/notifications/mark-all-read", nil, userHeader(bob)...)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, commentPath+"?boardOwnerId="+group+"&boardOwnerType=group", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list struct {
		Comments []models.Comment `json:"comments"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list.Comments, 2)
	s.Equal("Started", list.Comments[0].Text)

	// deleting the task takes its comments and notifications with it
	w = s.do(http.MethodDelete, "/api/boards/tasks", map[string]any{
		"ownerId": group, "ownerType": "group", "columnId": "progress", "taskId": "t1",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, commentPath+"?boardOwnerId="+group+"&boardOwnerType=group", nil)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Empty(list.Comments)

	for _, u := range []*models.User{alice, bob} {
		w = s.do(http.MethodGet, "/api/notifications", nil, userHeader(u)...)
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &feed))
		s.Empty(feed.Notifications)
	}
}

func (s *HandlerSuite) TestCommentValidation() {
	w := s.do(http.MethodPost, "/api/tasks/t1/comments", map[string]any{
		"text": "hi", "authorName": "x", "boardOwnerId": "1", "boardOwnerType": "user",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Missing required fields: text, authorId, authorName", s.decode(w).Message)

	w = s.do(http.MethodGet, "/api/tasks/t1/comments", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Board owner information required", s.decode(w).Message)
}

func (s *HandlerSuite) TestNotificationsRequireUser() {
	w := s.do(http.MethodGet, "/api/notifications", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPatch, "/api/notifications/abc/read", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestGroupMembers() {
	alice := s.signup("alice", models.UserTypeGroup, models.RoleLeader, "TEAM02")
	bob := s.signup("bob", models.UserTypeGroup, models.RoleMember, "TEAM02")
	solo := s.signup("solo", models.UserTypeSingle, "", "")

	w := s.do(http.MethodGet, "/api/users/group-members", nil, userHeader(bob)...)
	s.Require().Equal(http.StatusOK, w.Code)
	var body struct {
		Members []dto.GroupMemberDTO `json:"members"`
		Count   int                  `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(1, body.Count)
	s.Require().Len(body.Members, 1)
	s.Equal(strconv.FormatUint(alice.ID, 10), body.Members[0].ID)
	s.Equal(models.RoleLeader, body.Members[0].Role)
	s.NotContains(w.Body.String(), "accessKey")

	w = s.do(http.MethodGet, "/api/users/group-members", nil, userHeader(solo)...)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("User is not part of a group", s.decode(w).Message)

	w = s.do(http.MethodGet, "/api/users/group-members", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}
