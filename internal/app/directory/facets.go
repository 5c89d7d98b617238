// Package directory derives facets from member and event collections and
// evaluates search filters over them. Everything here is pure.
package directory

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yigit/alumnihub/internal/app/models"
)

// FacetSet holds the distinct filter values present in a member collection
type FacetSet struct {
	GraduationYears []string `json:"graduationYears"` // most recent first
	Industries      []string `json:"industries"`
	Locations       []string `json:"locations"`
}

// ComputeFacets extracts each distinct non-empty graduation year, industry
// and location exactly once. Years sort descending, the rest ascending.
func ComputeFacets(profiles []models.Profile) FacetSet {
	years := newValueSet()
	industries := newValueSet()
	locations := newValueSet()

	for i := range profiles {
		p := &profiles[i]
		years.add(models.Value(p.GraduationYear))
		industries.add(models.Value(p.Industry))
		locations.add(models.Value(p.Location))
	}

	facets := FacetSet{
		GraduationYears: years.values,
		Industries:      industries.values,
		Locations:       locations.values,
	}
	sort.SliceStable(facets.GraduationYears, func(i, j int) bool {
		return compareYears(facets.GraduationYears[i], facets.GraduationYears[j]) > 0
	})
	sort.Strings(facets.Industries)
	sort.Strings(facets.Locations)
	return facets
}

// ComputeEventFacets returns the distinct non-empty event categories, ascending.
func ComputeEventFacets(events []models.Event) []string {
	categories := newValueSet()
	for i := range events {
		categories.add(events[i].Category)
	}
	sort.Strings(categories.values)
	return categories.values
}

// compareYears orders numeric years by value and falls back to string order
// for anything that is not a number.
func compareYears(a, b string) int {
	ai, aErr := strconv.Atoi(strings.TrimSpace(a))
	bi, bErr := strconv.Atoi(strings.TrimSpace(b))
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return strings.Compare(a, b)
		}
	}
	return strings.Compare(a, b)
}

// valueSet keeps first-seen order of distinct non-blank strings
type valueSet struct {
	seen   map[string]struct{}
	values []string
}

func newValueSet() *valueSet {
	return &valueSet{seen: make(map[string]struct{}), values: []string{}}
}

func (s *valueSet) add(v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}
