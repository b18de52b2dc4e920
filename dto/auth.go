package dto

import "checksync/model"

type LoginRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type LoginResponse struct {
	AccessToken string     `json:"accessToken"`
	User        model.User `json:"user"`
}
