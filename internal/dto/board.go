package dto

import (
	"fmt"
	"time"

	"github.com/yukikurage/kanban-board-api/internal/models"
)

// ColumnInput is a column as sent by the client, either inside a full
// board snapshot or on its own.
type ColumnInput struct {
	ID    FlexID      `json:"id"`
	Title string      `json:"title"`
	Order int         `json:"order"`
	Tasks []TaskInput `json:"tasks"`
}

// TaskInput is a task as sent by the client.
type TaskInput struct {
	ID              FlexID              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Priority        models.TaskPriority `json:"priority"`
	DueDate         *time.Time          `json:"dueDate"`
	AssignedTo      FlexID              `json:"assignedTo"`
	AssignedToName  string              `json:"assignedToName"`
	AssignedToEmail string              `json:"assignedToEmail"`
	Order           int                 `json:"order"`
	CreatedAt       *time.Time          `json:"createdAt"`
}

// ToColumnModels converts a snapshot into models, assigning sequence
// positions from slice order.
func ToColumnModels(inputs []ColumnInput) ([]models.Column, error) {
	columns := make([]models.Column, len(inputs))
	for i, in := range inputs {
		col, err := ToColumnModel(in)
		if err != nil {
			return nil, err
		}
		col.Position = i
		columns[i] = col
	}
	return columns, nil
}

// ToColumnModel converts a single column with its tasks.
func ToColumnModel(in ColumnInput) (models.Column, error) {
	col := models.Column{
		Key:   in.ID.String(),
		Title: in.Title,
		Order: in.Order,
		Tasks: make([]models.Task, len(in.Tasks)),
	}
	for j, t := range in.Tasks {
		task, err := ToTaskModel(t)
		if err != nil {
			return models.Column{}, fmt.Errorf("column %q: %w", col.Key, err)
		}
		task.Position = j
		col.Tasks[j] = task
	}
	return col, nil
}

// ToTaskModel converts a client task. Only the assignee reference can fail.
func ToTaskModel(in TaskInput) (models.Task, error) {
	assignee, err := in.AssignedTo.OptionalUint64()
	if err != nil {
		return models.Task{}, fmt.Errorf("task %q: %w", in.ID.String(), err)
	}

	task := models.Task{
		Key:             in.ID.String(),
		Title:           in.Title,
		Description:     in.Description,
		Priority:        in.Priority,
		DueDate:         in.DueDate,
		AssignedTo:      assignee,
		AssignedToName:  in.AssignedToName,
		AssignedToEmail: in.AssignedToEmail,
		Order:           in.Order,
	}
	if in.CreatedAt != nil {
		task.CreatedAt = *in.CreatedAt
	}
	return task, nil
}
