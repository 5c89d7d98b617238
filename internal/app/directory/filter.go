package directory

import (
	"strings"

	"github.com/yigit/alumnihub/internal/app/models"
	"golang.org/x/text/cases"
)

// Query is a member search. Empty fields match everything; supplied fields are AND-ed.
type Query struct {
	Text     string // substring of full name, company, position or major, case-insensitive
	Year     string // exact graduation year
	Industry string // exact industry
	Location string // exact location
}

// IsEmpty reports whether q has no predicates.
func (q Query) IsEmpty() bool {
	return q.Text == "" && q.Year == "" && q.Industry == "" && q.Location == ""
}

// Filter returns the profiles matching every supplied predicate of q, in input order.
// An empty query returns profiles unchanged.
func Filter(profiles []models.Profile, q Query) []models.Profile {
	if q.IsEmpty() {
		return profiles
	}

	m := newTextMatcher(q.Text)
	out := make([]models.Profile, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if q.Year != "" && models.Value(p.GraduationYear) != q.Year {
			continue
		}
		if q.Industry != "" && models.Value(p.Industry) != q.Industry {
			continue
		}
		if q.Location != "" && models.Value(p.Location) != q.Location {
			continue
		}
		if !m.matchAny(p.FullName, models.Value(p.Company), models.Value(p.Position), models.Value(p.Major)) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// EventQuery is the event page search
type EventQuery struct {
	Text     string // substring of title or description, case-insensitive
	Category string // exact category
}

// IsEmpty reports whether q has no predicates.
func (q EventQuery) IsEmpty() bool {
	return q.Text == "" && q.Category == ""
}

// FilterEvents returns the events matching q, in input order.
func FilterEvents(events []models.Event, q EventQuery) []models.Event {
	if q.IsEmpty() {
		return events
	}

	m := newTextMatcher(q.Text)
	out := make([]models.Event, 0, len(events))
	for i := range events {
		e := &events[i]
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		if !m.matchAny(e.Title, e.Description) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

// textMatcher does unicode case-folded substring matching. A Caser is
// stateful, so each matcher owns one.
type textMatcher struct {
	caser  cases.Caser
	needle string
}

func newTextMatcher(text string) *textMatcher {
	m := &textMatcher{caser: cases.Fold()}
	if text != "" {
		m.needle = m.caser.String(text)
	}
	return m
}

func (m *textMatcher) matchAny(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(m.caser.String(f), m.needle) {
			return true
		}
	}
	return false
}
