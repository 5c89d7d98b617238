package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/testutil"
)

func TestInsertFillsIDAndReturnsRow(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rec, err := s.Insert(ctx, "profiles", store.Record{
		"email":      "ada@example.com",
		"full_name":  "Ada",
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if rec.String("id") == "" {
		t.Fatal("expected generated id")
	}
	if got := rec.String("full_name"); got != "Ada" {
		t.Errorf("full_name = %q, want Ada", got)
	}
	if got := rec.Time("created_at"); !got.Equal(now) {
		t.Errorf("created_at = %v, want %v", got, now)
	}
	if rec.StringPtr("company") != nil {
		t.Errorf("company should be NULL")
	}
}

func TestInsertConflict(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	testutil.InsertProfile(t, s, "m1", "Member One", nil)
	testutil.InsertEvent(t, s, "e1", "Meetup", time.Now().Add(time.Hour), nil)

	reg := store.Record{"event_id": "e1", "user_id": "m1", "status": "registered", "created_at": time.Now()}
	if _, err := s.Insert(ctx, "event_registrations", reg); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := s.Insert(ctx, "event_registrations", reg)
	if !store.IsConflict(err) {
		t.Fatalf("second insert err = %v, want conflict", err)
	}
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) || conflict.Collection != "event_registrations" {
		t.Errorf("expected ConflictError on event_registrations, got %#v", err)
	}
}

func TestSelectFiltersAndOrder(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.InsertEvent(t, s, "e1", "Late", base.Add(48*time.Hour), store.Record{"category": "tech"})
	testutil.InsertEvent(t, s, "e2", "Early", base.Add(24*time.Hour), store.Record{"category": "tech"})
	testutil.InsertEvent(t, s, "e3", "Other", base.Add(36*time.Hour), store.Record{"category": "social"})

	tests := []struct {
		name    string
		query   store.Query
		wantIDs []string
	}{
		{
			name:    "ascending date",
			query:   store.Query{Collection: "events", Order: []store.Order{store.Asc("event_date")}},
			wantIDs: []string{"e2", "e3", "e1"},
		},
		{
			name: "eq filter descending",
			query: store.Query{
				Collection: "events",
				Filters:    []store.Filter{store.Eq("category", "tech")},
				Order:      []store.Order{store.Desc("event_date")},
			},
			wantIDs: []string{"e1", "e2"},
		},
		{
			name: "time comparison with limit",
			query: store.Query{
				Collection: "events",
				Filters:    []store.Filter{store.Gte("event_date", base.Add(30*time.Hour))},
				Order:      []store.Order{store.Asc("event_date")},
				Limit:      1,
			},
			wantIDs: []string{"e3"},
		},
		{
			name:    "in filter",
			query:   store.Query{Collection: "events", Filters: []store.Filter{store.In("id", []string{"e1", "e3"})}, Order: []store.Order{store.Asc("id")}},
			wantIDs: []string{"e1", "e3"},
		},
		{
			name:    "empty in matches nothing",
			query:   store.Query{Collection: "events", Filters: []store.Filter{store.In("id", nil)}},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.Select(ctx, tt.query)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if len(rows) != len(tt.wantIDs) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.wantIDs))
			}
			for i, row := range rows {
				if row.String("id") != tt.wantIDs[i] {
					t.Errorf("row %d id = %s, want %s", i, row.String("id"), tt.wantIDs[i])
				}
			}
		})
	}
}

func TestCountAndGroupCount(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	testutil.InsertProfile(t, s, "m1", "One", nil)
	testutil.InsertProfile(t, s, "m2", "Two", nil)
	testutil.InsertNews(t, s, "n1", "First", time.Now(), nil)
	testutil.InsertNews(t, s, "n2", "Second", time.Now(), nil)

	for _, pair := range [][2]string{{"n1", "m1"}, {"n1", "m2"}, {"n2", "m1"}} {
		if _, err := s.Insert(ctx, "news_likes", store.Record{"news_id": pair[0], "user_id": pair[1], "created_at": time.Now()}); err != nil {
			t.Fatalf("insert like: %v", err)
		}
	}

	total, err := s.Count(ctx, "news_likes")
	if err != nil || total != 3 {
		t.Fatalf("Count = %d, %v; want 3", total, err)
	}

	byNews, err := s.GroupCount(ctx, "news_likes", "news_id", store.In("news_id", []string{"n1", "n2"}))
	if err != nil {
		t.Fatalf("GroupCount: %v", err)
	}
	if byNews["n1"] != 2 || byNews["n2"] != 1 {
		t.Errorf("GroupCount = %v, want n1=2 n2=1", byNews)
	}
}

func TestUpdateIncrementDelete(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	testutil.InsertNews(t, s, "n1", "First", time.Now(), nil)

	for i := 0; i < 3; i++ {
		if _, err := s.Increment(ctx, "news", "view_count", 1, store.Eq("id", "n1")); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}
	if _, err := s.Update(ctx, "news", store.Record{"title": "Renamed"}, store.Eq("id", "n1")); err != nil {
		t.Fatalf("Update: %v", err)
	}

	rows, err := s.Select(ctx, store.Query{Collection: "news", Filters: []store.Filter{store.Eq("id", "n1")}})
	if err != nil || len(rows) != 1 {
		t.Fatalf("Select: %v (%d rows)", err, len(rows))
	}
	if rows[0].Int64("view_count") != 3 {
		t.Errorf("view_count = %d, want 3", rows[0].Int64("view_count"))
	}
	if rows[0].String("title") != "Renamed" {
		t.Errorf("title = %q, want Renamed", rows[0].String("title"))
	}

	removed, err := s.Delete(ctx, "news", store.Eq("id", "n1"))
	if err != nil || removed != 1 {
		t.Fatalf("Delete = %d, %v; want 1", removed, err)
	}
	removed, err = s.Delete(ctx, "news", store.Eq("id", "n1"))
	if err != nil || removed != 0 {
		t.Fatalf("second Delete = %d, %v; want 0", removed, err)
	}
}

func TestGuards(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()

	if _, err := s.Delete(ctx, "news"); !errors.Is(err, store.ErrUnfiltered) {
		t.Errorf("unfiltered delete err = %v, want ErrUnfiltered", err)
	}
	if _, err := s.Update(ctx, "news", store.Record{}, store.Eq("id", "x")); !errors.Is(err, store.ErrEmptyPatch) {
		t.Errorf("empty update err = %v, want ErrEmptyPatch", err)
	}
	if _, err := s.Select(ctx, store.Query{Collection: "news; DROP TABLE news"}); !errors.Is(err, store.ErrInvalidIdentifier) {
		t.Errorf("bad collection err = %v, want ErrInvalidIdentifier", err)
	}
	if _, err := s.Count(ctx, "news", store.Eq("title = title OR 1", 1)); !errors.Is(err, store.ErrInvalidIdentifier) {
		t.Errorf("bad column err = %v, want ErrInvalidIdentifier", err)
	}
}
