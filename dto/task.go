package dto

import "checksync/model"

type CreateTaskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssignedTo  []string       `json:"assignedTo"` // nil = the creator
	DueDate     DueDate        `json:"dueDate"`
}

type BulkTasksRequest struct {
	Tasks []CreateTaskRequest `json:"tasks" binding:"required,min=1,dive"`
}

// UpdateTaskRequest is a partial update; omitted fields are unchanged and
// "dueDate": null clears the due date.
type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Priority    *model.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssignedTo  *[]string       `json:"assignedTo"`
	DueDate     DueDate         `json:"dueDate"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

func (r CreateTaskRequest) Task(checklistID string) model.Task {
	return model.Task{
		ChecklistID: checklistID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		DueDate:     r.DueDate.Ptr(),
	}
}
