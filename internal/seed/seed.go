package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/alumnihub/internal/app/models"
	appRepos "github.com/yigit/alumnihub/internal/app/repositories"
)

type demoMember struct {
	email, name, year, major, company, position, location, industry string
}

var demoMembers = []demoMember{
	{"ada@example.com", "Ada Lovelace", "2019", "Mathematics", "Analytical Engines", "Engineer", "London", "Technology"},
	{"grace@example.com", "Grace Hopper", "2021", "Computer Science", "Compiler Co", "Architect", "New York", "Technology"},
	{"alan@example.com", "Alan Turing", "2021", "Mathematics", "Bletchley Labs", "Researcher", "Manchester", "Research"},
	{"katherine@example.com", "Katherine Johnson", "2020", "Physics", "Orbital Systems", "Analyst", "Houston", "Aerospace"},
	{"edsger@example.com", "Edsger Dijkstra", "2018", "Physics", "Shortest Path BV", "Professor", "Amsterdam", "Education"},
	{"barbara@example.com", "Barbara Liskov", "2022", "Computer Science", "Substitution Inc", "Engineer", "Boston", "Technology"},
}

type demoEvent struct {
	title, description, location, category string
	inDays                                 int
	maxAttendees                           int
}

var demoEvents = []demoEvent{
	{"Spring Reunion", "Meet your classmates on the main lawn.", "Main Campus", "social", 7, 120},
	{"Career Panel: Tech", "Alumni share how they got into tech.", "Auditorium B", "career", 14, 80},
	{"Mentoring Breakfast", "Pair up with current students.", "Faculty Club", "mentoring", 21, 20},
	{"Founders Night", "Pitches from alumni-led startups.", "Innovation Hub", "networking", 30, 60},
	{"Winter Gala", "Last year's gala.", "Grand Hall", "social", -60, 200},
}

type demoNews struct {
	title, summary, content, category string
	hoursAgo                          int
}

var demoNewsItems = []demoNews{
	{"Alumni award winners announced", "Three graduates recognised.", "This year's alumni awards go to ...", "announcements", 2},
	{"New mentoring programme", "Sign up as a mentor.", "The mentoring programme pairs alumni with students ...", "programmes", 26},
	{"Library renovation complete", "The east wing reopens.", "After eighteen months the east wing ...", "campus", 72},
	{"Class of 2021 fundraiser", "Help fund two scholarships.", "The class of 2021 has pledged ...", "giving", 120},
}

// CreateDemoData fills an empty database with members, events, registrations, news and engagement.
// It does nothing when any member already exists.
func CreateDemoData(ctx context.Context, repos *appRepos.Repositories, now time.Time, lgr zerolog.Logger) error {
	existing, err := repos.ProfileRepository.Count(ctx)
	if err != nil {
		return fmt.Errorf("error checking for existing data: %w", err)
	}
	if existing > 0 {
		lgr.Info().Int64("members", existing).Msg("Database already populated, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo data (members, events, news)...")
	var finalErr error // collected so one failed row does not stop the rest

	var memberIDs []string
	for i, m := range demoMembers {
		created := now.Add(-time.Duration(len(demoMembers)-i) * 24 * time.Hour)
		p, err := repos.ProfileRepository.Create(ctx, &appModels.Profile{
			Email:          m.email,
			FullName:       m.name,
			GraduationYear: &m.year,
			Major:          &m.major,
			Company:        &m.company,
			Position:       &m.position,
			Location:       &m.location,
			Industry:       &m.industry,
			CreatedAt:      created,
			UpdatedAt:      created,
		})
		if err != nil {
			lgr.Error().Err(err).Str("email", m.email).Msg("Error creating demo member")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		memberIDs = append(memberIDs, p.ID)
	}
	if len(memberIDs) == 0 {
		return finalErr
	}

	for i, e := range demoEvents {
		status := appModels.EventStatusUpcoming
		if e.inDays < 0 {
			status = appModels.EventStatusPast
		}
		organizer := memberIDs[i%len(memberIDs)]
		event, err := repos.EventRepository.Create(ctx, &appModels.Event{
			Title:        e.title,
			Description:  e.description,
			EventDate:    now.Add(time.Duration(e.inDays) * 24 * time.Hour),
			Location:     e.location,
			MaxAttendees: e.maxAttendees,
			Category:     e.category,
			OrganizerID:  &organizer,
			Status:       status,
			CreatedAt:    now,
		})
		if err != nil {
			lgr.Error().Err(err).Str("title", e.title).Msg("Error creating demo event")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		// The first i+1 members attend event i
		for j := 0; j <= i && j < len(memberIDs); j++ {
			if _, err := repos.RegistrationRepository.Create(ctx, event.ID, memberIDs[j], now); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	for i, n := range demoNewsItems {
		author := memberIDs[i%len(memberIDs)]
		item, err := repos.NewsRepository.Create(ctx, &appModels.NewsItem{
			Title:       n.title,
			Summary:     n.summary,
			Content:     n.content,
			Category:    n.category,
			AuthorID:    &author,
			PublishedAt: now.Add(-time.Duration(n.hoursAgo) * time.Hour),
		})
		if err != nil {
			lgr.Error().Err(err).Str("title", n.title).Msg("Error creating demo news")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for j := i; j < len(memberIDs); j += 2 {
			if err := repos.LikeRepository.Create(ctx, item.ID, memberIDs[j], now); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
		if _, err := repos.CommentRepository.Create(ctx, &appModels.NewsComment{
			NewsID:    item.ID,
			UserID:    memberIDs[(i+1)%len(memberIDs)],
			Content:   "Great news!",
			CreatedAt: now,
		}); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr != nil {
		return finalErr
	}
	lgr.Info().
		Int("members", len(memberIDs)).
		Int("events", len(demoEvents)).
		Int("news", len(demoNewsItems)).
		Msg("Demo data created")
	return nil
}
