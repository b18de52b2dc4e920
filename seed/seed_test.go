package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"checksync/model"
	"checksync/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixture(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s, err := Default(now)
	require.NoError(t, err)

	assert.Len(t, s.Users, 3)
	require.Len(t, s.Checklists, 2)
	require.Len(t, s.Tasks, 3)

	c2, ok := s.Checklist("c2")
	require.True(t, ok)
	assert.True(t, c2.RestrictViewToAssignedTasks)
	assert.Equal(t, model.RoleEditor, c2.SharedRole("u1"))
	assert.Equal(t, now, c2.CreatedAt)

	t1, ok := s.Task("t1")
	require.True(t, ok)
	assert.True(t, t1.IsCompleted)
	assert.Equal(t, "u1", t1.CompletedBy)
	require.NotNil(t, t1.CompletedAt)
	assert.Equal(t, time.Date(2023, 11, 25, 14, 30, 0, 0, time.UTC), t1.CompletedAt.UTC())
	assert.Equal(t, model.PriorityHigh, t1.Priority)

	t3, _ := s.Task("t3")
	assert.Nil(t, t3.DueDate)

	// Alex is shared on onboarding but has nothing assigned there.
	assert.Len(t, store.VisibleTasks(c2, s.Tasks, "u1"), 0)
	assert.Len(t, store.TasksOf(s.Tasks, "c2"), 1)
}

func TestParseRejectsDanglingTask(t *testing.T) {
	_, err := Parse([]byte(`
checklists:
  - id: c1
    title: A
    ownerId: u1
tasks:
  - id: t1
    checklistId: c2
    title: B
`), time.Now())
	assert.ErrorContains(t, err, "unknown checklist")
}

func TestParseRejectsHalfCompletedTask(t *testing.T) {
	_, err := Parse([]byte(`
checklists:
  - id: c1
    title: A
    ownerId: u1
tasks:
  - id: t1
    checklistId: c1
    title: B
    completedBy: u1
`), time.Now())
	assert.ErrorContains(t, err, "set together")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - id: a
    name: Ann
checklists:
  - id: c
    title: Chores
    ownerId: a
tasks:
  - id: t
    checklistId: c
    title: Dishes
`), 0o600))

	s, err := Load(path, time.Now())
	require.NoError(t, err)
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, model.PriorityMedium, s.Tasks[0].Priority)
	assert.Equal(t, []string{}, s.Tasks[0].AssignedTo)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), time.Now())
	assert.Error(t, err)
}
