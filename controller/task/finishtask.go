package task

import (
	"checksync/controller"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

// FinishTask toggles a task's completion.
func FinishTask(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	t, ok := interactable(c, st, user)
	if !ok {
		return
	}

	ch, err := st.ToggleTask(c.Request.Context(), user, t.ID)
	if err != nil {
		controller.Fail(c, err)
		return
	}
	controller.Mutated(c, false, ch)
}
