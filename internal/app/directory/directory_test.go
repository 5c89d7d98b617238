package directory

import (
	"reflect"
	"testing"

	"github.com/yigit/alumnihub/internal/app/models"
)

func str(s string) *string { return &s }

func profile(id, name string, year, industry, location, company, position, major *string) models.Profile {
	return models.Profile{
		ID:             id,
		FullName:       name,
		GraduationYear: year,
		Industry:       industry,
		Location:       location,
		Company:        company,
		Position:       position,
		Major:          major,
	}
}

func ids(profiles []models.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}

func sampleProfiles() []models.Profile {
	return []models.Profile{
		profile("p1", "Ayşe Yılmaz", str("2020"), str("Technology"), str("Istanbul"), str("Acme"), str("Engineer"), str("Computer Science")),
		profile("p2", "John Smith", str("2021"), str("Finance"), str("London"), str("Bank Co"), str("Analyst"), str("Economics")),
		profile("p3", "Élodie Martin", str("2021"), str("Technology"), str("Paris"), str("Acme"), str("Product Manager"), nil),
		profile("p4", "Kenji Sato", str("2022"), str(""), str("Tokyo"), nil, str("Engineer"), str("Physics")),
		profile("p5", "No Year", nil, str("Finance"), nil, nil, nil, nil),
	}
}

func TestComputeFacets(t *testing.T) {
	facets := ComputeFacets(sampleProfiles())

	if want := []string{"2022", "2021", "2020"}; !reflect.DeepEqual(facets.GraduationYears, want) {
		t.Errorf("years = %v, want %v", facets.GraduationYears, want)
	}
	if want := []string{"Finance", "Technology"}; !reflect.DeepEqual(facets.Industries, want) {
		t.Errorf("industries = %v, want %v", facets.Industries, want)
	}
	if want := []string{"Istanbul", "London", "Paris", "Tokyo"}; !reflect.DeepEqual(facets.Locations, want) {
		t.Errorf("locations = %v, want %v", facets.Locations, want)
	}
}

func TestComputeFacetsEmpty(t *testing.T) {
	facets := ComputeFacets(nil)
	if len(facets.GraduationYears) != 0 || len(facets.Industries) != 0 || len(facets.Locations) != 0 {
		t.Errorf("expected empty facets, got %+v", facets)
	}
	if facets.GraduationYears == nil {
		t.Error("facet slices should be non-nil so they encode as []")
	}
}

func TestComputeFacetsYearOrdering(t *testing.T) {
	profiles := []models.Profile{
		{ID: "a", GraduationYear: str("1999")},
		{ID: "b", GraduationYear: str("2005")},
		{ID: "c", GraduationYear: str("1999")},
		{ID: "d", GraduationYear: str("2010")},
	}
	got := ComputeFacets(profiles).GraduationYears
	if want := []string{"2010", "2005", "1999"}; !reflect.DeepEqual(got, want) {
		t.Errorf("years = %v, want %v", got, want)
	}
}

func TestFilterScenario(t *testing.T) {
	profiles := []models.Profile{
		{ID: "a", GraduationYear: str("2020")},
		{ID: "b", GraduationYear: str("2021")},
		{ID: "c", GraduationYear: str("2021")},
		{ID: "d", GraduationYear: str("2022")},
		{ID: "e"},
	}

	if got := ComputeFacets(profiles).GraduationYears; !reflect.DeepEqual(got, []string{"2022", "2021", "2020"}) {
		t.Fatalf("years = %v", got)
	}
	if got := ids(Filter(profiles, Query{Year: "2021"})); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("filter year 2021 = %v, want [b c]", got)
	}
}

func TestFilter(t *testing.T) {
	profiles := sampleProfiles()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "empty query is identity", query: Query{}, want: []string{"p1", "p2", "p3", "p4", "p5"}},
		{name: "text matches name case-insensitively", query: Query{Text: "JOHN"}, want: []string{"p2"}},
		{name: "text matches company", query: Query{Text: "acme"}, want: []string{"p1", "p3"}},
		{name: "text matches position", query: Query{Text: "engineer"}, want: []string{"p1", "p4"}},
		{name: "text matches major", query: Query{Text: "physics"}, want: []string{"p4"}},
		{name: "unicode folding", query: Query{Text: "élodie"}, want: []string{"p3"}},
		{name: "unicode folding upper", query: Query{Text: "ÉLODIE"}, want: []string{"p3"}},
		{name: "industry exact", query: Query{Industry: "Finance"}, want: []string{"p2", "p5"}},
		{name: "industry is not a substring match", query: Query{Industry: "Fin"}, want: []string{}},
		{name: "location exact", query: Query{Location: "Paris"}, want: []string{"p3"}},
		{name: "conjunction", query: Query{Text: "acme", Industry: "Technology", Year: "2021"}, want: []string{"p3"}},
		{name: "conjunction with no match", query: Query{Text: "john", Location: "Paris"}, want: []string{}},
		{name: "no match", query: Query{Text: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(profiles, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%+v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterMatchesEveryPredicate(t *testing.T) {
	profiles := sampleProfiles()
	query := Query{Text: "a", Industry: "Technology"}

	matched := make(map[string]bool)
	for _, p := range Filter(profiles, query) {
		matched[p.ID] = true
	}
	for _, p := range profiles {
		one := Filter([]models.Profile{p}, Query{Text: query.Text})
		two := Filter([]models.Profile{p}, Query{Industry: query.Industry})
		want := len(one) == 1 && len(two) == 1
		if matched[p.ID] != want {
			t.Errorf("profile %s: in result = %v, matches each predicate = %v", p.ID, matched[p.ID], want)
		}
	}
}

func TestEvents(t *testing.T) {
	events := []models.Event{
		{ID: "e1", Title: "Spring Reunion", Description: "Annual gathering", Category: "social"},
		{ID: "e2", Title: "Career Fair", Description: "Meet recruiters", Category: "career"},
		{ID: "e3", Title: "Tech Talk", Description: "Spring release of our platform", Category: "career"},
		{ID: "e4", Title: "Untagged", Category: ""},
	}

	if got, want := ComputeEventFacets(events), []string{"career", "social"}; !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}

	tests := []struct {
		name  string
		query EventQuery
		want  []string
	}{
		{name: "empty", query: EventQuery{}, want: []string{"e1", "e2", "e3", "e4"}},
		{name: "title or description", query: EventQuery{Text: "spring"}, want: []string{"e1", "e3"}},
		{name: "category", query: EventQuery{Category: "career"}, want: []string{"e2", "e3"}},
		{name: "both", query: EventQuery{Text: "spring", Category: "career"}, want: []string{"e3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range FilterEvents(events, tt.query) {
				got = append(got, e.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterEvents(%+v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
