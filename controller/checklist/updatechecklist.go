package checklist

import (
	"net/http"

	"checksync/controller"
	"checksync/dto"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

// UpdateChecklist changes checklist settings. Only the owner may do it.
func UpdateChecklist(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	var req dto.UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	checklist, err := services.GetChecklistData(st, c.Param("id"))
	if err != nil {
		controller.Fail(c, err)
		return
	}
	if !store.IsOwner(checklist, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can change this checklist"})
		return
	}

	patch := store.ChecklistPatch{
		Title:                       req.Title,
		Description:                 req.Description,
		Category:                    req.Category,
		RestrictViewToAssignedTasks: req.RestrictViewToAssignedTasks,
	}
	if req.SharedWith != nil {
		snap := st.Snapshot()
		for _, sh := range *req.SharedWith {
			if _, found := snap.User(sh.UserID); !found {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user " + sh.UserID})
				return
			}
		}
		shares := dto.Shares(*req.SharedWith)
		patch.SharedWith = &shares
	}

	ch, err := st.UpdateChecklist(c.Request.Context(), checklist.ID, patch)
	if err != nil {
		controller.Fail(c, err)
		return
	}
	controller.Mutated(c, false, ch)
}

