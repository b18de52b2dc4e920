package activity

import (
	"context"
	"net/http"

	"checksync/controller"
	"checksync/middleware"
	"checksync/model"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

// FeedReader lists a checklist's activity from the external live feed.
type FeedReader interface {
	List(ctx context.Context, checklistID string, limit int) ([]model.Activity, error)
}

// ActivityController serves the activity log and notification queue. feed
// may be nil when no live feed is configured.
func ActivityController(router *gin.Engine, st *store.Store, secret []byte, feed FeedReader) {
	routes := router.Group("", middleware.AccessTokenMiddleware(secret))
	{
		routes.GET("/activities", func(c *gin.Context) {
			GetActivities(c, st)
		})
		routes.GET("/notifications", func(c *gin.Context) {
			GetNotifications(c, st)
		})
		routes.GET("/checklists/:id/feed", func(c *gin.Context) {
			GetFeed(c, st, feed)
		})
	}
}

// GetActivities returns the log newest first, optionally for one checklist.
func GetActivities(c *gin.Context, st *store.Store) {
	acts := st.Snapshot().Activities
	if id := c.Query("checklistId"); id != "" {
		acts = store.ActivitiesOf(acts, id)
	}
	if acts == nil {
		acts = []model.Activity{}
	}
	c.JSON(http.StatusOK, acts)
}

func GetNotifications(c *gin.Context, st *store.Store) {
	ns := st.Snapshot().Notifications
	if ns == nil {
		ns = []model.Notification{}
	}
	c.JSON(http.StatusOK, ns)
}

func GetFeed(c *gin.Context, st *store.Store, feed FeedReader) {
	if feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed is not configured"})
		return
	}
	checklist, err := services.GetChecklistData(st, c.Param("id"))
	if err != nil {
		controller.Fail(c, err)
		return
	}
	acts, err := feed.List(c.Request.Context(), checklist.ID, store.MaxActivities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read feed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, acts)
}
