package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"checksync/model"
)

// TaskPatch lists the task fields an update may change. Nil means untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	AssignedTo  *[]string
	DueDate     *DueDateChange
}

// DueDateChange sets the due date to Value, or clears it when Value is nil.
type DueDateChange struct {
	Value *time.Time
}

type ChecklistPatch struct {
	Title                       *string
	Description                 *string
	Category                    *string
	RestrictViewToAssignedTasks *bool
	SharedWith                  *[]model.Share
}

// ToggleTask flips the completion state of a task on behalf of actor.
// Completing records who and when; uncompleting clears both. Every toggle
// logs one activity.
func ToggleTask(s State, env Env, actor model.User, taskID string) (State, Change, error) {
	i, t, ok := s.taskIndex(taskID)
	if !ok {
		return s, Change{}, ErrTaskNotFound
	}

	t.IsCompleted = !t.IsCompleted
	typ := model.ActivityUncompleted
	if t.IsCompleted {
		now := env.Now()
		t.CompletedBy = actor.ID
		t.CompletedAt = &now
		typ = model.ActivityCompleted
	} else {
		t.CompletedBy = ""
		t.CompletedAt = nil
	}

	s.Tasks = slices.Clone(s.Tasks)
	s.Tasks[i] = t

	s, act := record(s, env, typ, actor, t.Title, t.ChecklistID)
	return s, Change{Task: &t, Activity: &act}, nil
}

// AddTask appends a new task to an existing checklist. A blank title is
// ignored.
func AddTask(s State, env Env, actor model.User, task model.Task) (State, Change, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return s, Change{Ignored: true}, nil
	}
	if _, ok := s.Checklist(task.ChecklistID); !ok {
		return s, Change{}, ErrChecklistNotFound
	}

	task.ID = env.NewID()
	task.Position = len(s.Tasks)
	task.IsCompleted = false
	task.CompletedBy = ""
	task.CompletedAt = nil
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.AssignedTo == nil {
		task.AssignedTo = []string{actor.ID}
	} else {
		task.AssignedTo = dedupe(task.AssignedTo)
	}

	s.Tasks = append(slices.Clip(s.Tasks), task)

	s, act := record(s, env, model.ActivityAdded, actor, task.Title, task.ChecklistID)
	return s, Change{Task: &task, Activity: &act}, nil
}

// AddChecklist creates a checklist owned by actor. New checklists go first.
func AddChecklist(s State, env Env, actor model.User, c model.Checklist) (State, Change, error) {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return s, Change{Ignored: true}, nil
	}

	now := env.Now()
	c.ID = env.NewID()
	c.OwnerID = actor.ID
	c.SharedWith = normalizeShares(c.SharedWith, actor.ID)
	if c.Category == "" {
		c.Category = "General"
	}
	c.RestrictViewToAssignedTasks = false
	c.CreatedAt = now
	c.UpdatedAt = now

	s.Checklists = append([]model.Checklist{c}, s.Checklists...)

	s, act := record(s, env, model.ActivityAdded, actor, c.Title, c.ID)
	return s, Change{Checklist: &c, Activity: &act}, nil
}

// UpdateTask shallow-merges patch into a task. Only setting a due date is
// logged; other edits, assignment changes included, are silent.
func UpdateTask(s State, env Env, actor model.User, taskID string, patch TaskPatch) (State, Change, error) {
	i, t, ok := s.taskIndex(taskID)
	if !ok {
		return s, Change{}, ErrTaskNotFound
	}
	before := t

	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			t.Title = title
		}
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		t.AssignedTo = dedupe(*patch.AssignedTo)
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate.Value
	}

	s.Tasks = slices.Clone(s.Tasks)
	s.Tasks[i] = t

	ch := Change{Task: &t}
	if patch.DueDate != nil && patch.DueDate.Value != nil {
		var act model.Activity
		s, act = record(s, env, model.ActivityUpdated, actor, before.Title, t.ChecklistID)
		ch.Activity = &act
	}
	return s, ch, nil
}

// UpdateChecklist shallow-merges patch into a checklist and bumps UpdatedAt.
func UpdateChecklist(s State, env Env, checklistID string, patch ChecklistPatch) (State, Change, error) {
	i, ok := s.checklistIndex(checklistID)
	if !ok {
		return s, Change{}, ErrChecklistNotFound
	}
	c := s.Checklists[i]

	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			c.Title = title
		}
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	if patch.RestrictViewToAssignedTasks != nil {
		c.RestrictViewToAssignedTasks = *patch.RestrictViewToAssignedTasks
	}
	if patch.SharedWith != nil {
		c.SharedWith = normalizeShares(*patch.SharedWith, c.OwnerID)
	}
	c.UpdatedAt = env.Now()

	s.Checklists = slices.Clone(s.Checklists)
	s.Checklists[i] = c
	return s, Change{Checklist: &c}, nil
}

// AddComment attaches a comment by actor to a task. Blank text or a missing
// actor is ignored.
func AddComment(s State, env Env, actor model.User, taskID, text string) (State, Change, error) {
	text = strings.TrimSpace(text)
	if text == "" || actor.ID == "" {
		return s, Change{Ignored: true}, nil
	}
	t, ok := s.Task(taskID)
	if !ok {
		return s, Change{}, ErrTaskNotFound
	}

	cm := model.Comment{
		ID:        env.NewID(),
		TaskID:    taskID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Text:      text,
		CreatedAt: env.Now(),
	}
	s.Comments = append(slices.Clip(s.Comments), cm)

	s, act := record(s, env, model.ActivityCommented, actor, t.Title, t.ChecklistID)
	return s, Change{Comment: &cm, Activity: &act}, nil
}

// Simulate toggles a task as if collaborator did it and queues a
// notification about it.
func Simulate(s State, env Env, collaborator model.User, taskID string) (State, Change, error) {
	s, ch, err := ToggleTask(s, env, collaborator, taskID)
	if err != nil {
		return s, ch, err
	}

	verb := "unmarked"
	if ch.Task.IsCompleted {
		verb = "completed"
	}
	n := model.Notification{
		ID:          env.NewID(),
		Text:        fmt.Sprintf("%s %s %q", collaborator.Name, verb, ch.Task.Title),
		UserID:      collaborator.ID,
		ChecklistID: ch.Task.ChecklistID,
		CreatedAt:   env.Now(),
	}
	s.Notifications = prepend(s.Notifications, n, MaxNotifications)
	ch.Notification = &n
	return s, ch, nil
}

func record(s State, env Env, typ model.ActivityType, actor model.User, target, checklistID string) (State, model.Activity) {
	act := model.Activity{
		ID:          env.NewID(),
		Type:        typ,
		UserID:      actor.ID,
		UserName:    actor.Name,
		TargetName:  target,
		ChecklistID: checklistID,
		Timestamp:   env.Now(),
	}
	s.Activities = prepend(s.Activities, act, MaxActivities)
	return s, act
}

func prepend[T any](list []T, v T, limit int) []T {
	n := min(len(list)+1, limit)
	out := make([]T, 0, n)
	out = append(out, v)
	return append(out, list[:n-1]...)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// normalizeShares keeps the first entry per user and drops the owner.
func normalizeShares(shares []model.Share, ownerID string) []model.Share {
	out := make([]model.Share, 0, len(shares))
	seen := map[string]bool{ownerID: true}
	for _, sh := range shares {
		if sh.UserID == "" || seen[sh.UserID] {
			continue
		}
		seen[sh.UserID] = true
		if sh.Role == "" {
			sh.Role = model.RoleViewer
		}
		out = append(out, sh)
	}
	return out
}
