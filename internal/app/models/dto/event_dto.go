package dto

import (
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
)

// EventListRequest carries the event page filters
type EventListRequest struct {
	Q        string `form:"q" example:"meetup"`
	Category string `form:"category" example:"networking"`
}

// EventResponse is an event with its registration read-model attached
type EventResponse struct {
	models.Event
	RegistrationCount int64  `json:"registrationCount" example:"12"`
	SpotsLeft         int    `json:"spotsLeft" example:"38"`
	IsFull            bool   `json:"isFull" example:"false"`
	IsRegistered      bool   `json:"isRegistered" example:"true"`
	OrganizerName     string `json:"organizerName,omitempty" example:"Ada Lovelace"`
}

// EventListResponse is the event page: matching events plus the category facet
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Categories []string        `json:"categories"`
	Total      int             `json:"total"`
}

// CreateEventRequest is the body of POST /events
type CreateEventRequest struct {
	Title        string    `json:"title" binding:"required,max=255" example:"Spring Reunion"`
	Description  string    `json:"description" binding:"max=4000"`
	EventDate    time.Time `json:"eventDate" binding:"required" example:"2025-05-10T18:00:00Z"`
	Location     string    `json:"location" binding:"max=255" example:"Main Campus"`
	MaxAttendees int       `json:"maxAttendees" binding:"omitempty,min=1,max=100000" example:"50"`
	ImageURL     *string   `json:"imageUrl,omitempty" binding:"omitempty,max=2048"`
	Category     string    `json:"category" binding:"max=128" example:"networking"`
}

// RegistrationResponse reports the caller's registration state after register or cancel
type RegistrationResponse struct {
	EventID           string `json:"eventId"`
	IsRegistered      bool   `json:"isRegistered"`
	RegistrationCount int64  `json:"registrationCount"`
	SpotsLeft         int    `json:"spotsLeft"`
	IsFull            bool   `json:"isFull"`
}
