package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"checksync/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleTasks(t *testing.T) {
	s := testState()
	c1, _ := s.Checklist("c1")
	c2, _ := s.Checklist("c2")

	tests := []struct {
		name      string
		checklist model.Checklist
		userID    string
		want      []string
	}{
		{"unrestricted non-owner sees all", c1, "u3", []string{"t1", "t2"}},
		{"owner of restricted sees all", c2, "u2", []string{"t3"}},
		{"assignee of restricted sees own", c2, "u3", []string{"t3"}},
		{"non-assignee of restricted sees nothing", c2, "u1", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleTasks(tt.checklist, s.Tasks, tt.userID)
			ids := make([]string, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
				assert.Equal(t, tt.checklist.ID, task.ChecklistID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestVisibleTasksIsSubsetOfChecklistTasks(t *testing.T) {
	s := testState()
	for _, c := range s.Checklists {
		all := TasksOf(s.Tasks, c.ID)
		for _, restricted := range []bool{false, true} {
			c.RestrictViewToAssignedTasks = restricted
			for _, u := range s.Users {
				visible := VisibleTasks(c, s.Tasks, u.ID)
				assert.Subset(t, all, visible)
				if !restricted || u.ID == c.OwnerID {
					assert.Equal(t, all, visible)
				}
			}
		}
	}
}

func TestProgressOf(t *testing.T) {
	assert.Equal(t, Progress{}, ProgressOf(nil))
	assert.Equal(t, 0, ProgressOf(nil).Rounded())

	tasks := []model.Task{{IsCompleted: true}, {}, {}}
	p := ProgressOf(tasks)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, p.Completed)
	assert.InDelta(t, 33.333, p.Percent, 0.001)
	assert.Equal(t, 33, p.Rounded())

	tasks = append(tasks, model.Task{IsCompleted: true}, model.Task{IsCompleted: true})
	assert.Equal(t, 60.0, ProgressOf(tasks).Percent)
}

func TestCanInteractAndRole(t *testing.T) {
	c := model.Checklist{
		ID:         "c1",
		OwnerID:    "u1",
		SharedWith: []model.Share{{UserID: "u2", Role: model.RoleEditor}, {UserID: "u3", Role: model.RoleViewer}},
	}
	task := model.Task{ChecklistID: "c1", AssignedTo: []string{"u3"}}

	assert.True(t, CanInteract(c, task, "u1"))
	assert.False(t, CanInteract(c, task, "u2"))
	assert.True(t, CanInteract(c, task, "u3"))
	assert.False(t, CanInteract(c, task, ""))

	assert.Equal(t, model.RoleOwner, RoleOf(c, "u1"))
	assert.Equal(t, model.RoleEditor, RoleOf(c, "u2"))
	assert.Equal(t, model.RoleViewer, RoleOf(c, "u3"))
	assert.Equal(t, model.Role(""), RoleOf(c, "u4"))
}

func TestPendingRespectsVisibility(t *testing.T) {
	s := testState()
	s, _, err := ToggleTask(s, testEnv(), alex, "t1")
	require.NoError(t, err)

	groups := Pending(s.Checklists, s.Tasks, "u1")
	require.Len(t, groups, 1)
	assert.Equal(t, "c1", groups[0].Checklist.ID)
	require.Len(t, groups[0].Tasks, 1)
	assert.Equal(t, "t2", groups[0].Tasks[0].ID)

	groups = Pending(s.Checklists, s.Tasks, "u3")
	require.Len(t, groups, 2)
	assert.Equal(t, "c2", groups[1].Checklist.ID)
}

func TestDashboardStats(t *testing.T) {
	s := testState()
	s, _, _ = ToggleTask(s, testEnv(), jordan, "t3")

	stats := DashboardStats(s.Checklists, s.Tasks, "u1")
	assert.Equal(t, 2, stats.Checklists)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Completed)

	stats = DashboardStats(s.Checklists, s.Tasks, "u2")
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
}

func TestPartition(t *testing.T) {
	owned, shared := Partition(testState().Checklists, "u2")
	require.Len(t, owned, 1)
	assert.Equal(t, "c2", owned[0].ID)
	require.Len(t, shared, 1)
	assert.Equal(t, "c1", shared[0].ID)
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	tasks := []model.Task{
		{ID: "a", DueDate: &past},
		{ID: "b", DueDate: &past, IsCompleted: true},
		{ID: "c", DueDate: &future},
		{ID: "d"},
	}
	got := Overdue(tasks, now)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestStoreNotifiesObserversInOrder(t *testing.T) {
	var mu sync.Mutex
	var seen []model.ActivityType
	st := New(testState(), testEnv(), ObserverFunc(func(_ context.Context, ch Change) {
		mu.Lock()
		defer mu.Unlock()
		if ch.Activity != nil {
			seen = append(seen, ch.Activity.Type)
		}
	}))
	ctx := context.Background()

	_, err := st.ToggleTask(ctx, alex, "t1")
	require.NoError(t, err)
	_, err = st.AddComment(ctx, alex, "t1", "done")
	require.NoError(t, err)

	// ignored and failed changes are not observed
	ch, err := st.AddComment(ctx, alex, "t1", "")
	require.NoError(t, err)
	assert.True(t, ch.Ignored)
	_, err = st.ToggleTask(ctx, alex, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.Equal(t, []model.ActivityType{model.ActivityCompleted, model.ActivityCommented}, seen)
	assert.Len(t, st.Snapshot().Activities, 2)
}

func TestStoreSerialisesWriters(t *testing.T) {
	st := New(testState(), DefaultEnv())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.ToggleTask(ctx, alex, "t1")
		}()
	}
	wg.Wait()

	snap := st.Snapshot()
	task, _ := snap.Task("t1")
	assert.False(t, task.IsCompleted, "an even number of toggles leaves the task open")
	assert.Len(t, snap.Activities, 40)
}

func TestSnapshotNotBlockedBySlowObserver(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan model.ActivityType, 2)
	st := New(testState(), testEnv(), ObserverFunc(func(_ context.Context, ch Change) {
		entered <- ch.Activity.Type
		<-release
	}))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = st.ToggleTask(ctx, alex, "t1")
	}()
	require.Equal(t, model.ActivityCompleted, <-entered)
	go func() {
		defer wg.Done()
		_, _ = st.AddComment(ctx, alex, "t1", "second")
	}()

	// the second commit lands while the first is still being observed
	assert.Eventually(t, func() bool {
		return len(st.Snapshot().Comments) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, entered, "observers of the second commit wait for the first")

	close(release)
	wg.Wait()
	require.Len(t, entered, 1)
	assert.Equal(t, model.ActivityCommented, <-entered)
}
