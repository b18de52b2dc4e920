package auth

import (
	"net/http"

	"checksync/config"
	"checksync/dto"
	"checksync/middleware"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func AuthController(router *gin.Engine, st *store.Store, cfg config.AuthConfig) {
	routes := router.Group("/auth")
	{
		routes.POST("/login", func(c *gin.Context) {
			Login(c, st, cfg)
		})
	}
}

// Login issues an access token for one of the known users. There are no
// credentials: picking a user is the whole sign-in.
func Login(c *gin.Context, st *store.Store, cfg config.AuthConfig) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := services.GetUserdata(st, req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token, err := middleware.CreateAccessToken([]byte(cfg.Secret), user.ID, cfg.TokenTTL.Duration())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, User: user})
}
