package models

// Collection names as stored
const (
	CollectionProfiles      = "profiles"
	CollectionEvents        = "events"
	CollectionRegistrations = "event_registrations"
	CollectionNews          = "news"
	CollectionNewsLikes     = "news_likes"
	CollectionNewsComments  = "news_comments"
)
