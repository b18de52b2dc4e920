package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"checksync/model"
	"checksync/seed"
	"checksync/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestMirror(t *testing.T) *Mirror {
	t.Helper()
	m := NewMirror(openTestDB(t), nil)
	require.NoError(t, m.Migrate())
	return m
}

func TestSeedAndLoad(t *testing.T) {
	ctx := context.Background()
	m := newTestMirror(t)

	empty, err := m.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	initial, err := seed.Default(now)
	require.NoError(t, err)
	require.NoError(t, m.Seed(ctx, initial))

	empty, err = m.Empty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Users, len(initial.Users))
	require.Len(t, got.Checklists, len(initial.Checklists))
	require.Len(t, got.Tasks, len(initial.Tasks))

	for i, task := range initial.Tasks {
		assert.Equal(t, task.ID, got.Tasks[i].ID)
		assert.ElementsMatch(t, task.AssignedTo, got.Tasks[i].AssignedTo)
	}
	for _, c := range initial.Checklists {
		var loaded model.Checklist
		for _, l := range got.Checklists {
			if l.ID == c.ID {
				loaded = l
			}
		}
		assert.Equal(t, c.SharedWith, loaded.SharedWith, c.ID)
		assert.Equal(t, c.RestrictViewToAssignedTasks, loaded.RestrictViewToAssignedTasks, c.ID)
	}
}

func TestObserveWritesThrough(t *testing.T) {
	ctx := context.Background()
	m := newTestMirror(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	initial, err := seed.Default(now)
	require.NoError(t, err)
	require.NoError(t, m.Seed(ctx, initial))

	n := 0
	env := store.Env{
		Now: func() time.Time { return now },
		NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		},
	}
	st := store.New(initial, env, m)
	actor := initial.Users[0]
	taskID := initial.Tasks[0].ID
	wasCompleted := initial.Tasks[0].IsCompleted

	_, err = st.ToggleTask(ctx, actor, taskID)
	require.NoError(t, err)
	_, err = st.AddComment(ctx, actor, taskID, "looks good")
	require.NoError(t, err)
	_, err = st.AddTask(ctx, actor, model.Task{ChecklistID: initial.Tasks[0].ChecklistID, Title: "New thing"})
	require.NoError(t, err)

	got, err := m.Load(ctx)
	require.NoError(t, err)

	var toggled model.Task
	for _, task := range got.Tasks {
		if task.ID == taskID {
			toggled = task
		}
	}
	assert.Equal(t, !wasCompleted, toggled.IsCompleted)

	require.Len(t, got.Tasks, len(initial.Tasks)+1)
	last := got.Tasks[len(got.Tasks)-1]
	assert.Equal(t, "New thing", last.Title)
	assert.Equal(t, []string{actor.ID}, last.AssignedTo)

	require.Len(t, got.Comments, 1)
	assert.Equal(t, "looks good", got.Comments[0].Text)

	require.Len(t, got.Activities, 3)
	types := []model.ActivityType{got.Activities[0].Type, got.Activities[1].Type, got.Activities[2].Type}
	assert.ElementsMatch(t, []model.ActivityType{
		toggleType(wasCompleted), model.ActivityCommented, model.ActivityAdded,
	}, types)
}

func TestLoadCapsActivities(t *testing.T) {
	ctx := context.Background()
	m := newTestMirror(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < store.MaxActivities+5; i++ {
		act := model.Activity{
			ID:          fmt.Sprintf("a%03d", i),
			Type:        model.ActivityCommented,
			UserID:      "u1",
			UserName:    "Alex",
			TargetName:  "task",
			ChecklistID: "c1",
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		}
		m.Observe(ctx, store.Change{Activity: &act})
	}

	got, err := m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Activities, store.MaxActivities)
	assert.Equal(t, fmt.Sprintf("a%03d", store.MaxActivities+4), got.Activities[0].ID)
}

func toggleType(wasCompleted bool) model.ActivityType {
	if wasCompleted {
		return model.ActivityUncompleted
	}
	return model.ActivityCompleted
}
