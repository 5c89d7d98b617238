package models

import "time"

// Profile defines the member model based on the 'profiles' table
type Profile struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	FullName       string    `json:"fullName" db:"full_name"`
	GraduationYear *string   `json:"graduationYear,omitempty" db:"graduation_year"` // Free text, e.g. "2021"
	Major          *string   `json:"major,omitempty" db:"major"`
	Company        *string   `json:"company,omitempty" db:"company"`
	Position       *string   `json:"position,omitempty" db:"position"`
	Location       *string   `json:"location,omitempty" db:"location"`
	Industry       *string   `json:"industry,omitempty" db:"industry"`
	Bio            *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL      *string   `json:"avatarUrl,omitempty" db:"avatar_url"` // Opaque reference, never fetched
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Value returns the string behind p, or "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
