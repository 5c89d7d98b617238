package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/alumnihub/internal/app/directory"
	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/testutil"
)

func seedMembers(t *testing.T, s store.Client, ids ...string) {
	t.Helper()
	for _, id := range ids {
		testutil.InsertProfile(t, s, id, "Member "+id, nil)
	}
}

func findEvent(t *testing.T, resp *dto.EventListResponse, id string) dto.EventResponse {
	t.Helper()
	for _, e := range resp.Events {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("event %s not in listing", id)
	return dto.EventResponse{}
}

func TestRegisterUniqueness(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedMembers(t, f.base, "m1")
	testutil.InsertEvent(t, f.base, "e1", "Reunion", baseTime.Add(48*time.Hour), nil)

	first, err := f.EventService.Register(ctx, "e1", "m1")
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if first.RegistrationCount != 1 || !first.IsRegistered {
		t.Errorf("after first register got %+v", first)
	}

	_, err = f.EventService.Register(ctx, "e1", "m1")
	if !errors.Is(err, apperrors.ErrAlreadyRegistered) {
		t.Fatalf("second Register err = %v, want ErrAlreadyRegistered", err)
	}

	list, err := f.EventService.ListEventsWithCounts(ctx, "m1", directory.EventQuery{})
	if err != nil {
		t.Fatalf("ListEventsWithCounts: %v", err)
	}
	if got := findEvent(t, list, "e1").RegistrationCount; got != 1 {
		t.Errorf("registration count = %d, want 1", got)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedMembers(t, f.base, "m1")
	testutil.InsertEvent(t, f.base, "e1", "Reunion", baseTime.Add(48*time.Hour), nil)

	for i := 0; i < 2; i++ {
		resp, err := f.EventService.Cancel(ctx, "e1", "m1")
		if err != nil {
			t.Fatalf("Cancel #%d without registration: %v", i+1, err)
		}
		if resp.IsRegistered || resp.RegistrationCount != 0 {
			t.Errorf("Cancel #%d = %+v", i+1, resp)
		}
	}

	if _, err := f.EventService.Register(ctx, "e1", "m1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	resp, err := f.EventService.Cancel(ctx, "e1", "m1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if resp.RegistrationCount != 0 || resp.IsRegistered {
		t.Errorf("after cancel got %+v", resp)
	}

	// A cancelled member may register again.
	if _, err := f.EventService.Register(ctx, "e1", "m1"); err != nil {
		t.Errorf("re-register after cancel: %v", err)
	}

	if _, err := f.EventService.Cancel(ctx, "missing", "m1"); err != nil {
		t.Errorf("Cancel on unknown event: %v", err)
	}
}

func TestCapacityIsInformational(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedMembers(t, f.base, "m1", "m2", "m3")
	testutil.InsertEvent(t, f.base, "e1", "Small dinner", baseTime.Add(72*time.Hour), store.Record{"max_attendees": 2})

	for _, m := range []string{"m1", "m2"} {
		if _, err := f.EventService.Register(ctx, "e1", m); err != nil {
			t.Fatalf("Register %s: %v", m, err)
		}
	}
	list, err := f.EventService.ListEventsWithCounts(ctx, "m3", directory.EventQuery{})
	if err != nil {
		t.Fatalf("ListEventsWithCounts: %v", err)
	}
	e := findEvent(t, list, "e1")
	if e.RegistrationCount != 2 || !e.IsFull || e.SpotsLeft != 0 || e.IsRegistered {
		t.Errorf("full event = %+v", e)
	}

	third, err := f.EventService.Register(ctx, "e1", "m3")
	if err != nil {
		t.Fatalf("third Register should be accepted: %v", err)
	}
	if third.RegistrationCount != 3 || third.SpotsLeft != 0 || !third.IsFull {
		t.Errorf("after third register got %+v", third)
	}
}

func TestCapacityEnforced(t *testing.T) {
	f := newFixture(t, nil, Options{Registration: RegistrationPolicy{EnforceCapacity: true}})
	ctx := context.Background()
	seedMembers(t, f.base, "m1", "m2", "m3")
	testutil.InsertEvent(t, f.base, "e1", "Small dinner", baseTime.Add(72*time.Hour), store.Record{"max_attendees": 2})

	for _, m := range []string{"m1", "m2"} {
		if _, err := f.EventService.Register(ctx, "e1", m); err != nil {
			t.Fatalf("Register %s: %v", m, err)
		}
	}
	if _, err := f.EventService.Register(ctx, "e1", "m3"); !errors.Is(err, apperrors.ErrEventFull) {
		t.Errorf("third Register err = %v, want ErrEventFull", err)
	}
}

func TestRegisterAcceptsClosedEventsByDefault(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedMembers(t, f.base, "m1")
	testutil.InsertEvent(t, f.base, "cancelled", "Called off", baseTime.Add(24*time.Hour), store.Record{"status": "cancelled"})
	testutil.InsertEvent(t, f.base, "past", "Last year", baseTime.Add(-24*time.Hour), store.Record{"status": "past"})

	for _, id := range []string{"past", "cancelled"} {
		resp, err := f.EventService.Register(ctx, id, "m1")
		if err != nil {
			t.Fatalf("Register(%q): %v", id, err)
		}
		if !resp.IsRegistered || resp.RegistrationCount != 1 {
			t.Errorf("Register(%q) = %+v", id, resp)
		}
	}
}

func TestReregisterAfterCancelledStatus(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedMembers(t, f.base, "m1")
	testutil.InsertEvent(t, f.base, "e1", "Reunion", baseTime.Add(48*time.Hour), nil)

	if _, err := f.EventService.Register(ctx, "e1", "m1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Rows may be retired by flipping the status instead of deleting them.
	if _, err := f.base.Update(ctx, models.CollectionRegistrations,
		store.Record{"status": string(models.RegistrationStatusCancelled)},
		store.Eq("event_id", "e1"), store.Eq("user_id", "m1")); err != nil {
		t.Fatalf("flip status: %v", err)
	}

	ev, err := f.EventService.GetEvent(ctx, "e1", "m1")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if ev.RegistrationCount != 0 || ev.IsRegistered {
		t.Fatalf("cancelled row still counted: %+v", ev)
	}

	resp, err := f.EventService.Register(ctx, "e1", "m1")
	if err != nil {
		t.Fatalf("Register after cancelled status: %v", err)
	}
	if !resp.IsRegistered || resp.RegistrationCount != 1 {
		t.Errorf("reactivated registration = %+v", resp)
	}
	if _, err := f.EventService.Register(ctx, "e1", "m1"); !errors.Is(err, apperrors.ErrAlreadyRegistered) {
		t.Errorf("third Register err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegisterRejections(t *testing.T) {
	f := newFixture(t, nil, Options{Registration: RegistrationPolicy{RejectClosed: true}})
	ctx := context.Background()
	seedMembers(t, f.base, "m1")
	testutil.InsertEvent(t, f.base, "cancelled", "Called off", baseTime.Add(24*time.Hour), store.Record{"status": "cancelled"})
	testutil.InsertEvent(t, f.base, "past", "Last year", baseTime.Add(-24*time.Hour), store.Record{"status": "past"})

	tests := []struct {
		name    string
		eventID string
		want    error
	}{
		{"cancelled event", "cancelled", apperrors.ErrEventClosed},
		{"past event", "past", apperrors.ErrEventClosed},
		{"unknown event", "nope", apperrors.ErrResourceNotFound},
		{"blank id", " ", apperrors.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.EventService.Register(ctx, tt.eventID, "m1")
			if !errors.Is(err, tt.want) {
				t.Errorf("Register(%q) err = %v, want %v", tt.eventID, err, tt.want)
			}
		})
	}
}

func TestRegisterPropagatesStoreFailure(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	seedMembers(t, f.base, "m1")
	testutil.InsertEvent(t, f.base, "e1", "Reunion", baseTime.Add(48*time.Hour), nil)
	f.store.failOn("Insert", models.CollectionRegistrations)

	_, err := f.EventService.Register(ctx, "e1", "m1")
	if !errors.Is(err, errInjected) {
		t.Fatalf("err = %v, want wrapped store failure", err)
	}
	if errors.Is(err, apperrors.ErrAlreadyRegistered) {
		t.Error("store failure must not be reported as AlreadyRegistered")
	}
}

func TestListEventsWithCounts(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	testutil.InsertProfile(t, f.base, "org", "Grace Hopper", nil)
	seedMembers(t, f.base, "m1", "m2")
	testutil.InsertEvent(t, f.base, "late", "Gala Dinner", baseTime.Add(96*time.Hour), store.Record{"organizer_id": "org", "category": "social"})
	testutil.InsertEvent(t, f.base, "soon", "Career Fair", baseTime.Add(24*time.Hour), store.Record{"organizer_id": "org", "category": "career"})
	testutil.InsertEvent(t, f.base, "mid", "Tech Talk", baseTime.Add(48*time.Hour), store.Record{"category": "career"})

	for _, reg := range [][2]string{{"soon", "m1"}, {"soon", "m2"}, {"late", "m2"}} {
		if _, err := f.EventService.Register(ctx, reg[0], reg[1]); err != nil {
			t.Fatalf("Register %v: %v", reg, err)
		}
	}

	list, err := f.EventService.ListEventsWithCounts(ctx, "m1", directory.EventQuery{})
	if err != nil {
		t.Fatalf("ListEventsWithCounts: %v", err)
	}
	wantOrder := []string{"soon", "mid", "late"}
	for i, e := range list.Events {
		if e.ID != wantOrder[i] {
			t.Fatalf("order = %v at %d, want %v", e.ID, i, wantOrder)
		}
	}
	if len(list.Categories) != 2 || list.Categories[0] != "career" || list.Categories[1] != "social" {
		t.Errorf("categories = %v", list.Categories)
	}

	soon := findEvent(t, list, "soon")
	if soon.RegistrationCount != 2 || !soon.IsRegistered || soon.OrganizerName != "Grace Hopper" || soon.SpotsLeft != 48 {
		t.Errorf("soon = %+v", soon)
	}
	mid := findEvent(t, list, "mid")
	if mid.RegistrationCount != 0 || mid.IsRegistered || mid.OrganizerName != "" {
		t.Errorf("mid = %+v", mid)
	}
	if late := findEvent(t, list, "late"); late.RegistrationCount != 1 || late.IsRegistered {
		t.Errorf("late = %+v", late)
	}

	filtered, err := f.EventService.ListEventsWithCounts(ctx, "m1", directory.EventQuery{Category: "career", Text: "talk"})
	if err != nil {
		t.Fatalf("filtered ListEventsWithCounts: %v", err)
	}
	if filtered.Total != 1 || filtered.Events[0].ID != "mid" {
		t.Errorf("filtered = %+v", filtered.Events)
	}
	if len(filtered.Categories) != 2 {
		t.Errorf("categories should come from every event, got %v", filtered.Categories)
	}
}

func TestCreateEvent(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	testutil.InsertProfile(t, f.base, "org", "Grace Hopper", nil)

	created, err := f.EventService.CreateEvent(ctx, "org", &dto.CreateEventRequest{
		Title:     "  Spring Reunion ",
		EventDate: baseTime.Add(10 * 24 * time.Hour),
		Category:  "social",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.Title != "Spring Reunion" || created.MaxAttendees != 50 || created.Status != models.EventStatusUpcoming {
		t.Errorf("created = %+v", created.Event)
	}
	if created.OrganizerName != "Grace Hopper" || created.SpotsLeft != 50 {
		t.Errorf("created read model = %+v", created)
	}
	if !created.EventDate.Equal(baseTime.Add(10 * 24 * time.Hour)) {
		t.Errorf("event date = %v", created.EventDate)
	}

	if _, err := f.EventService.CreateEvent(ctx, "org", &dto.CreateEventRequest{Title: " "}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank title err = %v, want ErrValidationFailed", err)
	}

	got, err := f.EventService.GetEvent(ctx, created.ID, "org")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.ID != created.ID || got.IsRegistered {
		t.Errorf("GetEvent = %+v", got)
	}
}
