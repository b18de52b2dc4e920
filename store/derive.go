package store

import (
	"math"
	"time"

	"checksync/model"
)

// TasksOf returns the tasks that belong to checklistID.
func TasksOf(tasks []model.Task, checklistID string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.ChecklistID == checklistID {
			out = append(out, t)
		}
	}
	return out
}

// VisibleTasks returns the tasks of c that userID may see. Owners and
// everyone on an unrestricted checklist see all of them; otherwise only the
// tasks assigned to userID are returned.
func VisibleTasks(c model.Checklist, tasks []model.Task, userID string) []model.Task {
	own := TasksOf(tasks, c.ID)
	if IsOwner(c, userID) || !c.RestrictViewToAssignedTasks {
		return own
	}
	out := make([]model.Task, 0, len(own))
	for _, t := range own {
		if t.IsAssigned(userID) {
			out = append(out, t)
		}
	}
	return out
}

func IsOwner(c model.Checklist, userID string) bool {
	return userID != "" && c.OwnerID == userID
}

// CanInteract reports whether userID may toggle or comment on t.
func CanInteract(c model.Checklist, t model.Task, userID string) bool {
	return IsOwner(c, userID) || t.IsAssigned(userID)
}

// RoleOf is the badge shown for userID on c.
func RoleOf(c model.Checklist, userID string) model.Role {
	if IsOwner(c, userID) {
		return model.RoleOwner
	}
	return c.SharedRole(userID)
}

type Progress struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

// Rounded is the percentage as displayed.
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent))
}

func ProgressOf(tasks []model.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}

type Stats struct {
	Checklists int `json:"checklists"`
	Progress
}

// DashboardStats aggregates over every task userID can see.
func DashboardStats(checklists []model.Checklist, tasks []model.Task, userID string) Stats {
	var visible []model.Task
	for _, c := range checklists {
		visible = append(visible, VisibleTasks(c, tasks, userID)...)
	}
	return Stats{Checklists: len(checklists), Progress: ProgressOf(visible)}
}

type PendingGroup struct {
	Checklist model.Checklist
	Tasks     []model.Task
}

// Pending groups the open tasks userID can see by checklist, skipping
// checklists with nothing left to do.
func Pending(checklists []model.Checklist, tasks []model.Task, userID string) []PendingGroup {
	var out []PendingGroup
	for _, c := range checklists {
		var open []model.Task
		for _, t := range VisibleTasks(c, tasks, userID) {
			if !t.IsCompleted {
				open = append(open, t)
			}
		}
		if len(open) > 0 {
			out = append(out, PendingGroup{Checklist: c, Tasks: open})
		}
	}
	return out
}

// Partition splits checklists into those userID owns and everyone else's.
func Partition(checklists []model.Checklist, userID string) (owned, shared []model.Checklist) {
	owned = make([]model.Checklist, 0)
	shared = make([]model.Checklist, 0)
	for _, c := range checklists {
		if IsOwner(c, userID) {
			owned = append(owned, c)
		} else {
			shared = append(shared, c)
		}
	}
	return owned, shared
}

func ActivitiesOf(acts []model.Activity, checklistID string) []model.Activity {
	out := make([]model.Activity, 0)
	for _, a := range acts {
		if a.ChecklistID == checklistID {
			out = append(out, a)
		}
	}
	return out
}

func CommentsOf(comments []model.Comment, taskID string) []model.Comment {
	out := make([]model.Comment, 0)
	for _, c := range comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out
}

// Overdue returns the open tasks whose due date has passed.
func Overdue(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}
