package checklist

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"checksync/controller"
	"checksync/model"
	"checksync/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Tasks"

var exportHeaders = []string{
	"Title", "Description", "Priority", "Assigned To", "Due Date", "Completed", "Completed By", "Completed At", "Comments",
}

// ExportChecklist streams the tasks the caller can see as an XLSX workbook.
func ExportChecklist(c *gin.Context, st *store.Store) {
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

	file, err := Workbook(snap, checklist, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook: " + err.Error()})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="checklist-%s.xlsx"`, checklist.ID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

// Workbook lays out one row per visible task below a header row.
func Workbook(snap store.State, checklist model.Checklist, userID string) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		file.Close()
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(exportSheet, cell, h); err != nil {
			file.Close()
			return nil, err
		}
	}

	for r, t := range store.VisibleTasks(checklist, snap.Tasks, userID) {
		row := []interface{}{
			t.Title,
			t.Description,
			string(t.Priority),
			strings.Join(userNames(snap, t.AssignedTo), ", "),
			formatTime(t.DueDate),
			t.IsCompleted,
			userName(snap, t.CompletedBy),
			formatTime(t.CompletedAt),
			len(store.CommentsOf(snap.Comments, t.ID)),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := file.SetSheetRow(exportSheet, cell, &row); err != nil {
			file.Close()
			return nil, err
		}
	}
	return file, nil
}

func userName(snap store.State, id string) string {
	if id == "" {
		return ""
	}
	if u, ok := snap.User(id); ok {
		return u.Name
	}
	return id
}

func userNames(snap store.State, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, userName(snap, id))
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
