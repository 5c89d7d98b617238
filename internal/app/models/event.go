package models

import "time"

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusPast      EventStatus = "past"
	EventStatusCancelled EventStatus = "cancelled"
)

// RegistrationStatus is the state of a member's registration
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

// Event defines the event model based on the 'events' table
type Event struct {
	ID           string      `json:"id" db:"id"`
	Title        string      `json:"title" db:"title"`
	Description  string      `json:"description" db:"description"`
	EventDate    time.Time   `json:"eventDate" db:"event_date"`
	Location     string      `json:"location" db:"location"`
	MaxAttendees int         `json:"maxAttendees" db:"max_attendees"`
	ImageURL     *string     `json:"imageUrl,omitempty" db:"image_url"`
	Category     string      `json:"category" db:"category"`
	OrganizerID  *string     `json:"organizerId,omitempty" db:"organizer_id"`
	Status       EventStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

// IsOpen reports whether the event still accepts registrations.
// Past and cancelled are terminal.
func (e *Event) IsOpen() bool {
	return e.Status == EventStatusUpcoming
}

// Remaining returns the free spots given the current registration count, never below zero.
func (e *Event) Remaining(registered int64) int {
	left := int64(e.MaxAttendees) - registered
	if left < 0 {
		return 0
	}
	return int(left)
}

// IsFull reports whether registered has reached capacity. A non-positive capacity is unlimited.
func (e *Event) IsFull(registered int64) bool {
	return e.MaxAttendees > 0 && registered >= int64(e.MaxAttendees)
}

// EventRegistration defines a member's registration based on the 'event_registrations' table
type EventRegistration struct {
	ID        string             `json:"id" db:"id"`
	EventID   string             `json:"eventId" db:"event_id"`
	UserID    string             `json:"userId" db:"user_id"`
	Status    RegistrationStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
}
