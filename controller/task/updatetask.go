package task

import (
	"net/http"

	"checksync/controller"
	"checksync/dto"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

// UpdateTask edits a task. Only the checklist owner may do it.
func UpdateTask(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	t, checklist, err := services.GetTaskData(st, c.Param("id"))
	if err != nil {
		controller.Fail(c, err)
		return
	}
	if !store.IsOwner(checklist, user.ID) {
		forbidden(c, "Only the owner can edit this task")
		return
	}
	if req.AssignedTo != nil {
		if id, bad := unknownUser(st, *req.AssignedTo); bad {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user " + id})
			return
		}
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
	}
	if req.DueDate.Set {
		patch.DueDate = &store.DueDateChange{Value: req.DueDate.Ptr()}
	}

	ch, err := st.UpdateTask(c.Request.Context(), user, t.ID, patch)
	if err != nil {
		controller.Fail(c, err)
		return
	}
	controller.Mutated(c, false, ch)
}
