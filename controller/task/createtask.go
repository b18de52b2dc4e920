package task

import (
	"net/http"

	"checksync/controller"
	"checksync/dto"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func CreateTask(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if id, bad := unknownUser(st, req.AssignedTo); bad {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user " + id})
		return
	}

	ch, err := st.AddTask(c.Request.Context(), user, req.Task(c.Param("id")))
	if err != nil {
		controller.Fail(c, err)
		return
	}
	controller.Mutated(c, true, ch)
}

// CreateTasks adds several tasks at once, typically accepted suggestions.
// Blank titles are skipped.
func CreateTasks(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	var req dto.BulkTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	checklist, err := services.GetChecklistData(st, c.Param("id"))
	if err != nil {
		controller.Fail(c, err)
		return
	}
	for _, t := range req.Tasks {
		if id, bad := unknownUser(st, t.AssignedTo); bad {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user " + id})
			return
		}
	}

	results := make([]dto.MutationResponse, 0, len(req.Tasks))
	added := 0
	for _, t := range req.Tasks {
		ch, err := st.AddTask(c.Request.Context(), user, t.Task(checklist.ID))
		if err != nil {
			controller.Fail(c, err)
			return
		}
		if !ch.Ignored {
			added++
		}
		results = append(results, dto.FromChange(ch))
	}

	status := http.StatusOK
	if added > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"added": added, "results": results})
}
