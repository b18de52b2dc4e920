package checklist

import (
	"net/http"

	"checksync/dto"
	"checksync/services"

	"github.com/gin-gonic/gin"
)

// Suggest proposes tasks for a checklist topic. It answers 200 with an
// empty list whenever the model is unavailable.
func Suggest(c *gin.Context, suggester *services.Suggester) {
	var req dto.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggester.Suggest(c.Request.Context(), req.Title, req.Description)})
}
