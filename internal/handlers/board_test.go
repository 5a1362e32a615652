package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/models"
)

func snapshot() []map[string]any {
	return []map[string]any{
		{"id": "todo", "title": "To Do", "order": 0, "tasks": []map[string]any{
			{"id": 17, "title": "Numeric id", "priority": "High"},
			{"id": "t2", "title": "String id"},
		}},
		{"id": "done", "title": "Done", "order": 1, "tasks": []map[string]any{}},
	}
}

func (s *HandlerSuite) TestGetBoardCreatesDefault() {
	w := s.do(http.MethodGet, "/api/boards?ownerId=G1&ownerType=group", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	env := s.decode(w)
	s.Require().NotNil(env.Board)
	s.Equal("Group Board (G1)", env.Board.Name)
	s.Empty(env.Board.Columns)
	s.Contains(w.Body.String(), `"columns":[]`)

	w = s.do(http.MethodGet, "/api/boards?ownerId=G1", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Owner ID and owner type are required", s.decode(w).Message)
}

func (s *HandlerSuite) TestUpdateBoardNormalizesIDs() {
	w := s.do(http.MethodPut, "/api/boards", map[string]any{
		"ownerId": 5, "ownerType": "user", "columns": snapshot(),
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	board := s.decode(w).Board
	s.Require().NotNil(board)
	s.Equal("5", board.OwnerID)
	s.Require().Len(board.Columns, 2)
	s.Equal("17", board.Columns[0].Tasks[0].Key)
	s.Equal(models.PriorityHigh, board.Columns[0].Tasks[0].Priority)
	s.Equal(models.PriorityMedium, board.Columns[0].Tasks[1].Priority)
	s.Contains(w.Body.String(), `"id":"17"`)

	// the numeric and string forms address the same task
	w = s.do(http.MethodPut, "/api/boards/tasks", map[string]any{
		"ownerId": "5", "ownerType": "user", "columnId": "todo", "taskId": "17",
		"updates": map[string]any{"title": "Renamed", "priority": "Low"},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Renamed", s.decode(w).Board.Columns[0].Tasks[0].Title)

	w = s.do(http.MethodPut, "/api/boards/tasks", map[string]any{
		"ownerId": "5", "ownerType": "user", "columnId": "todo", "taskId": "17",
		"updates": map[string]any{"priority": ""},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", s.decode(w).Code)
}

func (s *HandlerSuite) TestUpdateBoardRejectsBadPriority() {
	columns := snapshot()
	columns[0]["tasks"].([]map[string]any)[0]["priority"] = "Critical"

	w := s.do(http.MethodPut, "/api/boards", map[string]any{
		"ownerId": "5", "ownerType": "user", "columns": columns,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", s.decode(w).Code)
}

func (s *HandlerSuite) TestColumnAndTaskRoutes() {
	owner := map[string]any{"ownerId": "9", "ownerType": "user"}
	with := func(extra map[string]any) map[string]any {
		out := map[string]any{}
		for k, v := range owner {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	w := s.do(http.MethodDelete, "/api/boards/columns", with(map[string]any{"columnId": "todo"}))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Board not found", s.decode(w).Message)

	w = s.do(http.MethodPost, "/api/boards/columns", with(map[string]any{
		"column": map[string]any{"id": "todo", "title": "To Do"},
	}))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/boards/columns", with(map[string]any{
		"column": map[string]any{"id": "todo", "title": "Again"},
	}))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("CONFLICT", s.decode(w).Code)

	w = s.do(http.MethodPost, "/api/boards/tasks", with(map[string]any{
		"columnId": "todo", "task": map[string]any{"title": "Minted", "assignedTo": "12"},
	}))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	board := s.decode(w).Board
	s.Require().Len(board.Columns[0].Tasks, 1)
	task := board.Columns[0].Tasks[0]
	s.NotEmpty(task.Key)
	s.Require().NotNil(task.AssignedTo)
	s.Equal(uint64(12), *task.AssignedTo)

	w = s.do(http.MethodPost, "/api/boards/tasks", with(map[string]any{
		"columnId": "missing", "task": map[string]any{"title": "x"},
	}))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Column not found", s.decode(w).Message)

	w = s.do(http.MethodPut, "/api/boards/tasks", with(map[string]any{
		"columnId": "todo", "taskId": task.Key, "updates": map[string]any{"assignedTo": nil},
	}))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Nil(s.decode(w).Board.Columns[0].Tasks[0].AssignedTo)

	w = s.do(http.MethodDelete, "/api/boards/tasks", with(map[string]any{
		"columnId": "todo", "taskId": "nope",
	}))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Task not found", s.decode(w).Message)

	w = s.do(http.MethodDelete, "/api/boards/tasks", with(map[string]any{
		"columnId": "todo", "taskId": task.Key,
	}))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(s.decode(w).Board.Columns[0].Tasks)

	w = s.do(http.MethodDelete, "/api/boards/columns", with(map[string]any{"columnId": "todo"}))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(s.decode(w).Board.Columns)

	w = s.do(http.MethodPost, "/api/boards/columns", owner)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestClearBoard() {
	w := s.do(http.MethodPost, "/api/boards/clear", map[string]any{"ownerId": "G1", "ownerType": "group"})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/boards", map[string]any{
		"ownerId": "G1", "ownerType": "group", "columns": snapshot(),
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/boards/clear", map[string]any{"ownerId": "G1", "ownerType": "group"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Board data cleared successfully", s.decode(w).Message)

	w = s.do(http.MethodGet, "/api/boards?ownerId=G1&ownerType=group", nil)
	s.Empty(s.decode(w).Board.Columns)
}

func (s *HandlerSuite) TestCleanupComments() {
	s.Require().NoError(s.db.Create(&models.Comment{TaskKey: "t", Text: "legacy", AuthorID: 1, AuthorName: "x"}).Error)

	w := s.do(http.MethodPost, "/api/boards/cleanup-comments", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(int64(1), body.DeletedCount)
}

func (s *HandlerSuite) TestGenerateTasksWithoutAI() {
	w := s.do(http.MethodPost, "/api/boards/tasks/generate", map[string]string{"text": "plan things"})
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerSuite) TestParseTaskUpdate() {
	raw := map[string]json.RawMessage{
		"title":      json.RawMessage(`"New"`),
		"dueDate":    json.RawMessage(`null`),
		"assignedTo": json.RawMessage(`42`),
		"order":      json.RawMessage(`3`),
		"id":         json.RawMessage(`"ignored"`),
	}

	update, err := parseTaskUpdate(raw)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "New", *update.Title)
	assert.True(s.T(), update.ClearDueDate)
	assert.Equal(s.T(), uint64(42), *update.AssignedTo)
	assert.Equal(s.T(), 3, *update.Order)
	assert.Nil(s.T(), update.Description)

	_, err = parseTaskUpdate(map[string]json.RawMessage{"dueDate": json.RawMessage(`"tomorrow"`)})
	assert.Error(s.T(), err)

}
