package checklist

import (
	"net/http"
	"time"

	"checksync/controller"
	"checksync/dto"
	"checksync/middleware"
	"checksync/model"
	"checksync/services"
	"checksync/store"

	"github.com/gin-gonic/gin"
)

func ChecklistController(router *gin.Engine, st *store.Store, secret []byte, suggester *services.Suggester) {
	routes := router.Group("/checklists", middleware.AccessTokenMiddleware(secret))
	{
		routes.POST("", func(c *gin.Context) {
			CreateChecklist(c, st)
		})
		routes.POST("/suggestions", func(c *gin.Context) {
			Suggest(c, suggester)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetChecklist(c, st)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateChecklist(c, st)
		})
		routes.GET("/:id/export", func(c *gin.Context) {
			ExportChecklist(c, st)
		})
	}
}

func GetChecklist(c *gin.Context, st *store.Store) {
	user, ok := controller.CurrentUser(c, st)
	if !ok {
		return
	}
	snap := st.Snapshot()
	checklist, found := snap.Checklist(c.Param("id"))
	if !found {
		controller.Fail(c, store.ErrChecklistNotFound)
		return
	}
	c.JSON(http.StatusOK, Detail(snap, checklist, user.ID, st.Env().Now()))
}

// Detail is the checklist page as userID sees it: only visible tasks, each
// with its comments and whether userID may act on it.
func Detail(snap store.State, checklist model.Checklist, userID string, now time.Time) dto.ChecklistDetail {
	visible := store.VisibleTasks(checklist, snap.Tasks, userID)

	tasks := make([]dto.TaskView, 0, len(visible))
	for _, t := range visible {
		tasks = append(tasks, dto.TaskView{
			Task:        t,
			Comments:    store.CommentsOf(snap.Comments, t.ID),
			CanInteract: store.CanInteract(checklist, t, userID),
			IsOverdue:   t.IsOverdue(now),
		})
	}

	detail := dto.ChecklistDetail{
		ChecklistCard: dto.NewCard(checklist, visible, userID),
		Members:       members(snap, checklist),
		Tasks:         tasks,
		Activities:    store.ActivitiesOf(snap.Activities, checklist.ID),
	}
	if len(visible) == 0 {
		detail.EmptyMessage = emptyMessage(snap, checklist, userID)
	}
	return detail
}

const (
	MessageNotAssigned = "You are not assigned to any tasks here."
	MessageNoTasks     = "No tasks yet. Start collaborating now."
)

// emptyMessage tells a hidden list apart from one that has no tasks at all.
func emptyMessage(snap store.State, checklist model.Checklist, userID string) string {
	if checklist.RestrictViewToAssignedTasks && !store.IsOwner(checklist, userID) &&
		len(store.TasksOf(snap.Tasks, checklist.ID)) > 0 {
		return MessageNotAssigned
	}
	return MessageNoTasks
}

func members(snap store.State, checklist model.Checklist) []dto.MemberView {
	out := make([]dto.MemberView, 0, len(checklist.SharedWith)+1)
	if owner, ok := snap.User(checklist.OwnerID); ok {
		out = append(out, dto.MemberView{User: owner, Role: model.RoleOwner})
	}
	for _, sh := range checklist.SharedWith {
		if u, ok := snap.User(sh.UserID); ok {
			out = append(out, dto.MemberView{User: u, Role: sh.Role})
		}
	}
	return out
}
