package dashboard

import (
	"net/http"

	"checksync/controller"
	"checksync/dto"
	"checksync/middleware"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func DashboardController(router *gin.Engine, st *store.Store, secret []byte) {
	routes := router.Group("", middleware.AccessTokenMiddleware(secret))
	{
		routes.GET("/dashboard", func(c *gin.Context) {
			GetDashboard(c, st)
		})
		routes.GET("/sidebar", func(c *gin.Context) {
			GetSidebar(c, st)
		})
		routes.GET("/pending", func(c *gin.Context) {
			GetPending(c, st)
		})
	}
}

// GetDashboard returns overall stats and one progress card per checklist,
// both counted over the tasks the caller can see.
func GetDashboard(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	snap := st.Snapshot()

	stats := store.DashboardStats(snap.Checklists, snap.Tasks, user.ID)
	cards := make([]dto.ChecklistCard, 0, len(snap.Checklists))
	for _, cl := range snap.Checklists {
		cards = append(cards, dto.NewCard(cl, store.VisibleTasks(cl, snap.Tasks, user.ID), user.ID))
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Stats:      stats,
		Percent:    stats.Rounded(),
		Checklists: cards,
	})
}

func GetSidebar(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	owned, shared := store.Partition(st.Snapshot().Checklists, user.ID)
	c.JSON(http.StatusOK, dto.SidebarResponse{Owned: owned, Shared: shared})
}

func GetPending(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	snap := st.Snapshot()

	groups := store.Pending(snap.Checklists, snap.Tasks, user.ID)
	out := make([]dto.PendingGroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.PendingGroupView{Checklist: g.Checklist, Tasks: g.Tasks})
	}
	c.JSON(http.StatusOK, out)
}
