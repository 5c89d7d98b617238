package dto

import "github.com/yigit/alumnihub/internal/app/models"

// LatestNewsItem is a dashboard news entry with the author resolved
type LatestNewsItem struct {
	models.NewsItem
	AuthorName string `json:"authorName,omitempty"`
}

// DashboardStats is the dashboard summary. Fields whose query failed are
// zero and named in Incomplete.
type DashboardStats struct {
	TotalMembers    int64            `json:"totalMembers" example:"250"`
	TotalEvents     int64            `json:"totalEvents" example:"18"`
	TotalNews       int64            `json:"totalNews" example:"40"`
	MyRegistrations int64            `json:"myRegistrations" example:"3"`
	UpcomingEvents  []models.Event   `json:"upcomingEvents"`
	LatestNews      []LatestNewsItem `json:"latestNews"`
	Incomplete      []string         `json:"incomplete,omitempty"`
}
