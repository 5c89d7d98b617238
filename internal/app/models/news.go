package models

import "time"

// NewsItem defines the news model based on the 'news' table
type NewsItem struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	Summary     string    `json:"summary" db:"summary"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	AuthorID    *string   `json:"authorId,omitempty" db:"author_id"`
	ViewCount   int64     `json:"viewCount" db:"view_count"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
}

// NewsLike is one member's like on a news item. Unique per (news, member).
type NewsLike struct {
	ID        string    `json:"id" db:"id"`
	NewsID    string    `json:"newsId" db:"news_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewsComment is an append-only comment on a news item
type NewsComment struct {
	ID        string    `json:"id" db:"id"`
	NewsID    string    `json:"newsId" db:"news_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
