package repositories

import (
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// ErrNotFound is returned (wrapped) when a lookup by id finds no row
var ErrNotFound = apperrors.ErrResourceNotFound

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository      *ProfileRepository
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	NewsRepository         *NewsRepository
	LikeRepository         *LikeRepository
	CommentRepository      *CommentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(s store.Client) *Repositories {
	return &Repositories{
		ProfileRepository:      NewProfileRepository(s),
		EventRepository:        NewEventRepository(s),
		RegistrationRepository: NewRegistrationRepository(s),
		NewsRepository:         NewNewsRepository(s),
		LikeRepository:         NewLikeRepository(s),
		CommentRepository:      NewCommentRepository(s),
	}
}

// uniqueIDs drops blanks and duplicates, keeping first-seen order
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
