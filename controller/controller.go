package controller

import (
	"errors"
	"net/http"

	"checksync/dto"
	"checksync/model"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func HealthController(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// CurrentUser resolves the token's userId to a known user. It writes a 401
// and returns false when the user no longer exists.
func CurrentUser(c *gin.Context, st *store.Store) (model.User, bool) {
	user, err := services.GetUserdata(st, c.MustGet("userId").(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return model.User{}, false
	}
	return user, true
}

// Fail writes the JSON error for err.
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, store.ErrChecklistNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Checklist not found"})
	case errors.Is(err, store.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Mutated answers a write: 201 when something was created, 200 otherwise.
func Mutated(c *gin.Context, created bool, ch store.Change) {
	status := http.StatusOK
	if created && !ch.Ignored {
		status = http.StatusCreated
	}
	c.JSON(status, dto.FromChange(ch))
}
