package auth

import (
	"net/http"
	"testing"
	"time"

	"checksync/config"
	"checksync/controller/controllertest"
	"checksync/dto"
	"checksync/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	st := controllertest.NewStore(t)
	r := controllertest.NewRouter()
	cfg := config.AuthConfig{Secret: string(controllertest.Secret), TokenTTL: config.Duration(time.Hour)}
	AuthController(r, st, cfg)

	w := controllertest.Do(t, r, http.MethodPost, "/auth/login", "", gin.H{"userId": "u2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	controllertest.Decode(t, w, &resp)
	assert.Equal(t, "u2", resp.User.ID)
	assert.Equal(t, "Sarah Chen", resp.User.Name)
	require.NotEmpty(t, resp.AccessToken)

	// the issued token passes the middleware
	r.GET("/whoami", middleware.AccessTokenMiddleware(controllertest.Secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("userId").(string))
	})
	req := controllertest.Do(t, r, http.MethodGet, "/whoami", "u2", nil)
	assert.Equal(t, "u2", req.Body.String())
}

func TestLoginRejects(t *testing.T) {
	st := controllertest.NewStore(t)
	r := controllertest.NewRouter()
	AuthController(r, st, config.AuthConfig{Secret: "s", TokenTTL: config.Duration(time.Hour)})

	w := controllertest.Do(t, r, http.MethodPost, "/auth/login", "", gin.H{"userId": "nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = controllertest.Do(t, r, http.MethodPost, "/auth/login", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = controllertest.Do(t, r, http.MethodPost, "/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
