// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/yigit/alumnihub/internal/app/migrations"
	"github.com/yigit/alumnihub/internal/db"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// NewStore returns a migrated in-memory SQLite store that is closed with the test.
func NewStore(t testing.TB) *store.SQLiteStore {
	t.Helper()
	ctx := context.Background()

	sqliteDB, err := db.NewSQLiteDB(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteDB.Close() })

	if err := migrations.MigrateSQLite(ctx, sqliteDB.DB); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return store.NewSQLite(sqliteDB.DB)
}

// InsertProfile adds a member with the given id and name and returns the id.
func InsertProfile(t testing.TB, s store.Client, id, fullName string, extra store.Record) string {
	t.Helper()
	now := time.Now().UTC()
	rec := store.Record{
		"id":         id,
		"email":      id + "@example.com",
		"full_name":  fullName,
		"created_at": now,
		"updated_at": now,
	}
	for k, v := range extra {
		rec[k] = v
	}
	if _, err := s.Insert(context.Background(), "profiles", rec); err != nil {
		t.Fatalf("insert profile %s: %v", id, err)
	}
	return id
}

// InsertEvent adds an upcoming event dated date.
func InsertEvent(t testing.TB, s store.Client, id, title string, date time.Time, extra store.Record) string {
	t.Helper()
	rec := store.Record{
		"id":            id,
		"title":         title,
		"event_date":    date,
		"max_attendees": 50,
		"status":        "upcoming",
		"created_at":    time.Now().UTC(),
	}
	for k, v := range extra {
		rec[k] = v
	}
	if _, err := s.Insert(context.Background(), "events", rec); err != nil {
		t.Fatalf("insert event %s: %v", id, err)
	}
	return id
}

// InsertNews adds a news item published at publishedAt.
func InsertNews(t testing.TB, s store.Client, id, title string, publishedAt time.Time, extra store.Record) string {
	t.Helper()
	rec := store.Record{
		"id":           id,
		"title":        title,
		"view_count":   0,
		"published_at": publishedAt,
	}
	for k, v := range extra {
		rec[k] = v
	}
	if _, err := s.Insert(context.Background(), "news", rec); err != nil {
		t.Fatalf("insert news %s: %v", id, err)
	}
	return id
}
