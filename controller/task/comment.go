package task

import (
	"net/http"

	"checksync/controller"
	"checksync/dto"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func AddComment(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	t, ok := interactable(c, st, user)
	if !ok {
		return
	}

	ch, err := st.AddComment(c.Request.Context(), user, t.ID, req.Text)
	if err != nil {
		controller.Fail(c, err)
		return
	}
	controller.Mutated(c, true, ch)
}
