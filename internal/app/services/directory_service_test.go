package services

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/testutil"
)

func seedDirectory(t *testing.T, s store.Client) {
	t.Helper()
	members := []struct {
		id, name, year, industry, location string
	}{
		{"a", "Ada Lovelace", "2020", "Technology", "London"},
		{"b", "Grace Hopper", "2021", "Technology", "New York"},
		{"c", "Alan Turing", "2021", "Research", "London"},
		{"d", "Katherine Johnson", "2019", "Aerospace", ""},
		{"e", "Edsger Dijkstra", "", "Research", "Amsterdam"},
	}
	for i, m := range members {
		extra := store.Record{
			"created_at": baseTime.Add(-time.Duration(i) * time.Hour),
			"company":    m.name + " Ltd",
		}
		if m.year != "" {
			extra["graduation_year"] = m.year
		}
		if m.industry != "" {
			extra["industry"] = m.industry
		}
		if m.location != "" {
			extra["location"] = m.location
		}
		testutil.InsertProfile(t, s, m.id, m.name, extra)
	}
}

func memberIDs(members []models.Profile) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func TestSearchFacetsCoverAllMembers(t *testing.T) {
	f := newFixture(t, nil, Options{})
	seedDirectory(t, f.base)

	resp, err := f.DirectoryService.Search(context.Background(), dto.DirectoryRequest{Year: "2021"}, helpers.Page{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got, want := memberIDs(resp.Members), []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("members = %v, want %v", got, want)
	}
	if resp.Total != 2 || resp.Pagination != nil {
		t.Errorf("total = %d pagination = %v", resp.Total, resp.Pagination)
	}
	if want := []string{"2021", "2020", "2019"}; !reflect.DeepEqual(resp.Facets.GraduationYears, want) {
		t.Errorf("years = %v, want %v", resp.Facets.GraduationYears, want)
	}
	if want := []string{"Aerospace", "Research", "Technology"}; !reflect.DeepEqual(resp.Facets.Industries, want) {
		t.Errorf("industries = %v, want %v", resp.Facets.Industries, want)
	}
	if want := []string{"Amsterdam", "London", "New York"}; !reflect.DeepEqual(resp.Facets.Locations, want) {
		t.Errorf("locations = %v, want %v", resp.Facets.Locations, want)
	}
}

func TestSearchFilters(t *testing.T) {
	f := newFixture(t, nil, Options{})
	seedDirectory(t, f.base)

	tests := []struct {
		name string
		req  dto.DirectoryRequest
		want []string
	}{
		{"empty query returns everyone newest first", dto.DirectoryRequest{}, []string{"a", "b", "c", "d", "e"}},
		{"text matches name case-insensitively", dto.DirectoryRequest{Q: "  HOPPER "}, []string{"b"}},
		{"text matches company", dto.DirectoryRequest{Q: "turing ltd"}, []string{"c"}},
		{"industry and location combine", dto.DirectoryRequest{Industry: "Research", Location: "London"}, []string{"c"}},
		{"no match", dto.DirectoryRequest{Location: "Paris"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.DirectoryService.Search(context.Background(), tt.req, helpers.Page{})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if got := memberIDs(resp.Members); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("members = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchPaginates(t *testing.T) {
	f := newFixture(t, nil, Options{})
	seedDirectory(t, f.base)

	resp, err := f.DirectoryService.Search(context.Background(), dto.DirectoryRequest{}, helpers.Page{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got, want := memberIDs(resp.Members), []string{"c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("page 2 = %v, want %v", got, want)
	}
	if resp.Total != 5 || resp.Pagination == nil || resp.Pagination.TotalPages != 3 {
		t.Errorf("total = %d pagination = %+v", resp.Total, resp.Pagination)
	}

	resp, err = f.DirectoryService.Search(context.Background(), dto.DirectoryRequest{}, helpers.Page{Number: 9, Size: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Members) != 0 {
		t.Errorf("page past the end = %v", memberIDs(resp.Members))
	}
}

func TestSearchMatchesFreeTextYear(t *testing.T) {
	f := newFixture(t, nil, Options{})
	seedDirectory(t, f.base)
	testutil.InsertProfile(t, f.base, "z", "Lin Hui", store.Record{"graduation_year": "2021届"})

	resp, err := f.DirectoryService.Search(context.Background(), dto.DirectoryRequest{Year: "2021届"}, helpers.Page{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := memberIDs(resp.Members); !reflect.DeepEqual(got, []string{"z"}) {
		t.Errorf("members = %v, want [z]", got)
	}
	if !slices.Contains(resp.Facets.GraduationYears, "2021届") {
		t.Errorf("facet years %v should offer the stored value", resp.Facets.GraduationYears)
	}

	resp, err = f.DirectoryService.Search(context.Background(), dto.DirectoryRequest{Year: "21"}, helpers.Page{})
	if err != nil || resp.Total != 0 {
		t.Errorf("unmatched year: total = %v err = %v", resp, err)
	}
}

func TestSearchRejectsOversizedFilter(t *testing.T) {
	f := newFixture(t, nil, Options{})
	long := strings.Repeat("x", maxFacetFilterLength+1)

	for _, req := range []dto.DirectoryRequest{{Year: long}, {Industry: long}, {Location: long}} {
		_, err := f.DirectoryService.Search(context.Background(), req, helpers.Page{})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%+v: err = %v, want validation failure", req, err)
		}
	}
	if n := f.store.callCount(); n != 0 {
		t.Errorf("store called %d times for invalid input", n)
	}
}

func TestUpdateOwnProfile(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedDirectory(t, f.base)

	updated, err := f.DirectoryService.UpdateOwnProfile(ctx, "a", &dto.UpdateProfileRequest{
		Company:  strPtr("  Analytical Engines "),
		Location: strPtr(""),
	})
	if err != nil {
		t.Fatalf("UpdateOwnProfile: %v", err)
	}
	if models.Value(updated.Company) != "Analytical Engines" {
		t.Errorf("company = %q", models.Value(updated.Company))
	}
	if updated.Location != nil {
		t.Errorf("location = %q, want cleared", *updated.Location)
	}
	if updated.FullName != "Ada Lovelace" || models.Value(updated.Industry) != "Technology" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(baseTime) {
		t.Errorf("updatedAt = %v, want clock time", updated.UpdatedAt)
	}

	resp, err := f.DirectoryService.Search(ctx, dto.DirectoryRequest{}, helpers.Page{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if want := []string{"Amsterdam", "London", "New York"}; !reflect.DeepEqual(resp.Facets.Locations, want) {
		t.Errorf("locations after clear = %v", resp.Facets.Locations)
	}
}

func TestUpdateOwnProfileRejections(t *testing.T) {
	f := newFixture(t, nil, Options{})
	seedDirectory(t, f.base)

	tests := []struct {
		name     string
		memberID string
		req      *dto.UpdateProfileRequest
		want     error
	}{
		{"empty patch", "a", &dto.UpdateProfileRequest{}, apperrors.ErrValidationFailed},
		{"blank name", "a", &dto.UpdateProfileRequest{FullName: strPtr("  ")}, apperrors.ErrValidationFailed},
		{"bad year", "a", &dto.UpdateProfileRequest{GraduationYear: strPtr("99")}, apperrors.ErrValidationFailed},
		{"unknown member", "zz", &dto.UpdateProfileRequest{Bio: strPtr("hi")}, apperrors.ErrResourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.DirectoryService.UpdateOwnProfile(context.Background(), tt.memberID, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetProfileNotFound(t *testing.T) {
	f := newFixture(t, nil, Options{})

	_, err := f.DirectoryService.GetProfile(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}
