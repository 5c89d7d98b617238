package dto

import (
	"github.com/yigit/alumnihub/internal/app/directory"
	"github.com/yigit/alumnihub/internal/app/models"
)

// DirectoryRequest carries the directory search parameters
type DirectoryRequest struct {
	Q        string `form:"q" example:"engineer"`
	Year     string `form:"year" example:"2021"`
	Industry string `form:"industry" example:"Technology"`
	Location string `form:"location" example:"Istanbul"`
}

// DirectoryResponse is the directory view: facets over every member plus the matching members
type DirectoryResponse struct {
	Facets     directory.FacetSet `json:"facets"`
	Members    []models.Profile   `json:"members"`
	Total      int                `json:"total" example:"42"`
	Pagination *PaginationInfo    `json:"pagination,omitempty"`
}

// UpdateProfileRequest is a partial update of the caller's own profile.
// Nil fields are left untouched; an empty string clears the field.
type UpdateProfileRequest struct {
	FullName       *string `json:"fullName,omitempty" binding:"omitempty,notblank,max=255" example:"Ada Lovelace"`
	GraduationYear *string `json:"graduationYear,omitempty" binding:"omitempty,gradyear" example:"2021"`
	Major          *string `json:"major,omitempty" binding:"omitempty,max=255"`
	Company        *string `json:"company,omitempty" binding:"omitempty,max=255"`
	Position       *string `json:"position,omitempty" binding:"omitempty,max=255"`
	Location       *string `json:"location,omitempty" binding:"omitempty,max=255"`
	Industry       *string `json:"industry,omitempty" binding:"omitempty,max=255"`
	Bio            *string `json:"bio,omitempty" binding:"omitempty,max=4000"`
	AvatarURL      *string `json:"avatarUrl,omitempty" binding:"omitempty,max=2048"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=64"`
}
