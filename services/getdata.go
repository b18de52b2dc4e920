package services

import (
	"checksync/model"
	"checksync/store"
)

func GetUserdata(st *store.Store, userID string) (model.User, error) {
	u, ok := st.Snapshot().User(userID)
	if !ok {
		return model.User{}, store.ErrUserNotFound
	}
	return u, nil
}

// GetTaskData returns a task together with its checklist.
func GetTaskData(st *store.Store, taskID string) (model.Task, model.Checklist, error) {
	snap := st.Snapshot()
	t, ok := snap.Task(taskID)
	if !ok {
		return model.Task{}, model.Checklist{}, store.ErrTaskNotFound
	}
	c, ok := snap.Checklist(t.ChecklistID)
	if !ok {
		return model.Task{}, model.Checklist{}, store.ErrChecklistNotFound
	}
	return t, c, nil
}

func GetChecklistData(st *store.Store, checklistID string) (model.Checklist, error) {
	c, ok := st.Snapshot().Checklist(checklistID)
	if !ok {
		return model.Checklist{}, store.ErrChecklistNotFound
	}
	return c, nil
}
