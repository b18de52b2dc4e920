// Package store holds the application state and the reducers that change it.
//
// A State is a plain value. Reducers take a State and return a new one; they
// never modify the slices of the State they were given, so a snapshot handed
// to a reader stays valid after later writes. Store serialises reducer
// application and tells observers about each committed Change.
package store

import (
	"errors"
	"time"

	"checksync/model"

	"github.com/google/uuid"
)

const (
	// MaxActivities is how many activity entries are retained, newest first.
	MaxActivities = 50
	// MaxNotifications is how many transient notifications are retained.
	MaxNotifications = 10
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrChecklistNotFound = errors.New("checklist not found")
	ErrUserNotFound      = errors.New("user not found")
)

type State struct {
	Users         []model.User
	Checklists    []model.Checklist
	Tasks         []model.Task
	Comments      []model.Comment
	Activities    []model.Activity
	Notifications []model.Notification
}

// Env supplies time and identifiers to reducers.
type Env struct {
	Now   func() time.Time
	NewID func() string
}

func DefaultEnv() Env {
	return Env{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// Change is what a reducer did. Nil fields were not touched.
type Change struct {
	Checklist    *model.Checklist
	Task         *model.Task
	Comment      *model.Comment
	Activity     *model.Activity
	Notification *model.Notification

	// Ignored is set when the input was blank and nothing happened.
	Ignored bool
}

func (c Change) Empty() bool {
	return c.Checklist == nil && c.Task == nil && c.Comment == nil &&
		c.Activity == nil && c.Notification == nil
}

func (s State) User(id string) (model.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s State) Checklist(id string) (model.Checklist, bool) {
	for _, c := range s.Checklists {
		if c.ID == id {
			return c, true
		}
	}
	return model.Checklist{}, false
}

func (s State) Task(id string) (model.Task, bool) {
	_, t, ok := s.taskIndex(id)
	return t, ok
}

func (s State) taskIndex(id string) (int, model.Task, bool) {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i, t, true
		}
	}
	return -1, model.Task{}, false
}

func (s State) checklistIndex(id string) (int, bool) {
	for i, c := range s.Checklists {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}
