package task

import (
	"net/http"

	"checksync/controller"
	"checksync/middleware"
	"checksync/model"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func TaskController(router *gin.Engine, st *store.Store, secret []byte) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware(secret))
	{
		routes.PUT("/:id/toggle", func(c *gin.Context) {
			FinishTask(c, st)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateTask(c, st)
		})
		routes.POST("/:id/comments", func(c *gin.Context) {
			AddComment(c, st)
		})
	}

	checklists := router.Group("/checklists", middleware.AccessTokenMiddleware(secret))
	{
		checklists.POST("/:id/tasks", func(c *gin.Context) {
			CreateTask(c, st)
		})
		checklists.POST("/:id/tasks/bulk", func(c *gin.Context) {
			CreateTasks(c, st)
		})
	}
}

// unknownUser returns the first id that is not a known user.
func unknownUser(st *store.Store, ids []string) (string, bool) {
	snap := st.Snapshot()
	for _, id := range ids {
		if _, ok := snap.User(id); !ok {
			return id, true
		}
	}
	return "", false
}

func forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

// interactable loads a task and checks that user may toggle or comment on it.
func interactable(c *gin.Context, st *store.Store, user model.User) (model.Task, bool) {
	snap := st.Snapshot()
	t, ok := snap.Task(c.Param("id"))
	if !ok {
		controller.Fail(c, store.ErrTaskNotFound)
		return model.Task{}, false
	}
	checklist, ok := snap.Checklist(t.ChecklistID)
	if !ok {
		controller.Fail(c, store.ErrChecklistNotFound)
		return model.Task{}, false
	}
	if !store.CanInteract(checklist, t, user.ID) {
		forbidden(c, "Only the owner or an assignee can do this")
		return model.Task{}, false
	}
	return t, true
}
