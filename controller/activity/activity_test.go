package activity

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"checksync/controller/controllertest"
	"checksync/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	acts []model.Activity
	err  error
	got  string
}

func (f *stubFeed) List(_ context.Context, checklistID string, _ int) ([]model.Activity, error) {
	f.got = checklistID
	return f.acts, f.err
}

func TestGetActivities(t *testing.T) {
	st := controllertest.NewStore(t)
	r := controllertest.NewRouter()
	ActivityController(r, st, controllertest.Secret, nil)

	w := controllertest.Do(t, r, http.MethodGet, "/activities", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	users := st.Snapshot().Users
	ctx := context.Background()
	_, err := st.ToggleTask(ctx, users[0], "t2")
	require.NoError(t, err)
	_, err = st.ToggleTask(ctx, users[2], "t3")
	require.NoError(t, err)

	var acts []model.Activity
	w = controllertest.Do(t, r, http.MethodGet, "/activities", "u1", nil)
	controllertest.Decode(t, w, &acts)
	require.Len(t, acts, 2)
	assert.Equal(t, "c2", acts[0].ChecklistID, "newest first")

	w = controllertest.Do(t, r, http.MethodGet, "/activities?checklistId=c1", "u1", nil)
	controllertest.Decode(t, w, &acts)
	require.Len(t, acts, 1)
	assert.Equal(t, "Final smoke test", acts[0].TargetName)
}

func TestGetNotifications(t *testing.T) {
	st := controllertest.NewStore(t)
	r := controllertest.NewRouter()
	ActivityController(r, st, controllertest.Secret, nil)

	sarah := st.Snapshot().Users[1]
	_, err := st.Simulate(context.Background(), sarah, "t1")
	require.NoError(t, err)

	w := controllertest.Do(t, r, http.MethodGet, "/notifications", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ns []model.Notification
	controllertest.Decode(t, w, &ns)
	require.Len(t, ns, 1)
	assert.Equal(t, `Sarah Chen unmarked "Verify SSL certificates"`, ns[0].Text)
}

func TestGetFeed(t *testing.T) {
	st := controllertest.NewStore(t)

	r := controllertest.NewRouter()
	ActivityController(r, st, controllertest.Secret, nil)
	w := controllertest.Do(t, r, http.MethodGet, "/checklists/c1/feed", "u1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	feed := &stubFeed{acts: []model.Activity{{ID: "a1", ChecklistID: "c1"}}}
	r = controllertest.NewRouter()
	ActivityController(r, st, controllertest.Secret, feed)

	w = controllertest.Do(t, r, http.MethodGet, "/checklists/c1/feed", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", feed.got)
	var acts []model.Activity
	controllertest.Decode(t, w, &acts)
	require.Len(t, acts, 1)

	w = controllertest.Do(t, r, http.MethodGet, "/checklists/nope/feed", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	feed.err = errors.New("unavailable")
	w = controllertest.Do(t, r, http.MethodGet, "/checklists/c1/feed", "u1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
