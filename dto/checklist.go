package dto

import "checksync/model"

type ShareRequest struct {
	UserID string     `json:"userId" binding:"required"`
	Role   model.Role `json:"role" binding:"omitempty,oneof=EDITOR VIEWER"`
}

type CreateChecklistRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	SharedWith  []ShareRequest `json:"sharedWith" binding:"omitempty,dive"`
}

// UpdateChecklistRequest is a partial update; omitted fields are unchanged.
type UpdateChecklistRequest struct {
	Title                       *string         `json:"title"`
	Description                 *string         `json:"description"`
	Category                    *string         `json:"category"`
	RestrictViewToAssignedTasks *bool           `json:"restrictViewToAssignedTasks"`
	SharedWith                  *[]ShareRequest `json:"sharedWith" binding:"omitempty,dive"`
}

type SuggestionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (r ShareRequest) Share() model.Share {
	return model.Share{UserID: r.UserID, Role: r.Role}
}

func Shares(reqs []ShareRequest) []model.Share {
	out := make([]model.Share, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Share())
	}
	return out
}
