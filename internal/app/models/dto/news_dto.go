package dto

import "github.com/yigit/alumnihub/internal/app/models"

// NewsResponse is a news item with its engagement counters
type NewsResponse struct {
	models.NewsItem
	LikesCount    int64  `json:"likesCount" example:"7"`
	CommentsCount int64  `json:"commentsCount" example:"3"`
	UserHasLiked  bool   `json:"userHasLiked" example:"false"`
	AuthorName    string `json:"authorName,omitempty" example:"Ada Lovelace"`
}

// CreateNewsRequest is the body of POST /news
type CreateNewsRequest struct {
	Title    string  `json:"title" binding:"required,max=255" example:"Alumni award winners"`
	Content  string  `json:"content" binding:"required"`
	Summary  string  `json:"summary" binding:"max=1000"`
	ImageURL *string `json:"imageUrl,omitempty" binding:"omitempty,max=2048"`
	Category string  `json:"category" binding:"max=128" example:"announcements"`
}

// LikeStateResponse is the result of a like toggle
type LikeStateResponse struct {
	NewsID     string `json:"newsId"`
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likesCount"`
}

// CommentResponse is a comment with its author's display name
type CommentResponse struct {
	models.NewsComment
	AuthorName string `json:"authorName,omitempty" example:"Ada Lovelace"`
}

// CreateCommentRequest is the body of POST /news/:id/comments.
// Blank content is rejected by the service.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"max=2000" example:"Congratulations!"`
}

// AddCommentResponse returns the new comment and the refreshed count
type AddCommentResponse struct {
	Comment       CommentResponse `json:"comment"`
	CommentsCount int64           `json:"commentsCount"`
}
