package user

import (
	"net/http"

	"checksync/controller"
	"checksync/middleware"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func UserController(router *gin.Engine, st *store.Store, secret []byte) {
	router.GET("/users", func(c *gin.Context) {
		GetAllUser(c, st)
	})
	router.GET("/user/me", middleware.AccessTokenMiddleware(secret), func(c *gin.Context) {
		user, ok := controller.CurrentUser(c, st)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	})
}

func GetAllUser(c *gin.Context, st *store.Store) {
	c.JSON(http.StatusOK, st.Snapshot().Users)
}
