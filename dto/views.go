package dto

import (
	"checksync/model"
	"checksync/store"
)

type TaskView struct {
	model.Task
	Comments    []model.Comment `json:"comments"`
	CanInteract bool            `json:"canInteract"`
	IsOverdue   bool            `json:"isOverdue"`
}

type MemberView struct {
	model.User
	Role model.Role `json:"role"`
}

// ChecklistCard is a checklist with its progress as the viewer sees it.
type ChecklistCard struct {
	model.Checklist
	Role     model.Role     `json:"role,omitempty"`
	Progress store.Progress `json:"progress"`
	Percent  int            `json:"percent"`
}

type ChecklistDetail struct {
	ChecklistCard
	Members    []MemberView     `json:"members"`
	Tasks      []TaskView       `json:"tasks"`
	Activities []model.Activity `json:"activities"`

	// EmptyMessage is set when Tasks is empty.
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

type DashboardResponse struct {
	Stats      store.Stats     `json:"stats"`
	Percent    int             `json:"percent"`
	Checklists []ChecklistCard `json:"checklists"`
}

type SidebarResponse struct {
	Owned  []model.Checklist `json:"owned"`
	Shared []model.Checklist `json:"shared"`
}

type PendingGroupView struct {
	Checklist model.Checklist `json:"checklist"`
	Tasks     []model.Task    `json:"tasks"`
}

// MutationResponse wraps the result of a write. Ignored is true when the
// input was blank and nothing changed.
type MutationResponse struct {
	Ignored      bool                `json:"ignored,omitempty"`
	Checklist    *model.Checklist    `json:"checklist,omitempty"`
	Task         *model.Task         `json:"task,omitempty"`
	Comment      *model.Comment      `json:"comment,omitempty"`
	Activity     *model.Activity     `json:"activity,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

func FromChange(ch store.Change) MutationResponse {
	return MutationResponse{
		Ignored:      ch.Ignored,
		Checklist:    ch.Checklist,
		Task:         ch.Task,
		Comment:      ch.Comment,
		Activity:     ch.Activity,
		Notification: ch.Notification,
	}
}

// NewCard computes a checklist's card from the tasks userID can see.
func NewCard(c model.Checklist, visible []model.Task, userID string) ChecklistCard {
	p := store.ProgressOf(visible)
	return ChecklistCard{
		Checklist: c,
		Role:      store.RoleOf(c, userID),
		Progress:  p,
		Percent:   p.Rounded(),
	}
}
