package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Description string `json:"description" form:"description" binding:"required"`
}

type UpdatePostRequest struct {
	Description string `json:"description" form:"description"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type PostAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}

type PostResponse struct {
	ID          uuid.UUID         `json:"id"`
	User        PostAuthor        `json:"user"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Likes       []uuid.UUID       `json:"likes"`
	Shares      int               `json:"shares"`
	Comments    []CommentResponse `json:"comments"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type SearchPostsFilter struct {
	Query string `form:"q" binding:"required"`
	Limit int64  `form:"limit"`
}
