package checklist

import (
	"net/http"

	"checksync/controller"
	"checksync/dto"
	"checksync/model"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func CreateChecklist(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	var req dto.CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	for _, sh := range req.SharedWith {
		if _, found := st.Snapshot().User(sh.UserID); !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user " + sh.UserID})
			return
		}
	}

	ch, err := st.AddChecklist(c.Request.Context(), user, model.Checklist{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		SharedWith:  dto.Shares(req.SharedWith),
	})
	if err != nil {
		controller.Fail(c, err)
		return
	}
	controller.Mutated(c, true, ch)
}
