package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/testutil"
)

func TestEventStatusSweeper(t *testing.T) {
	s := testutil.NewStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testutil.InsertEvent(t, s, "elapsed", "Yesterday", now.Add(-24*time.Hour), nil)
	testutil.InsertEvent(t, s, "cancelled", "Called off", now.Add(-24*time.Hour), store.Record{"status": "cancelled"})
	testutil.InsertEvent(t, s, "future", "Tomorrow", now.Add(24*time.Hour), nil)

	repo := repositories.NewEventRepository(s)
	sweeper := NewEventStatusSweeper(repo, func() time.Time { return now }, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := sweeper.Run(context.Background()); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
	}

	want := map[string]models.EventStatus{
		"elapsed":   models.EventStatusPast,
		"cancelled": models.EventStatusCancelled,
		"future":    models.EventStatusUpcoming,
	}
	for id, status := range want {
		e, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID %s: %v", id, err)
		}
		if e.Status != status {
			t.Errorf("%s status = %s, want %s", id, e.Status, status)
		}
	}
}

type countingJob struct {
	runs chan struct{}
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	select {
	case j.runs <- struct{}{}:
	default:
	}
	return nil
}

func TestSchedulerRunsJobs(t *testing.T) {
	sched := NewScheduler(zerolog.Nop())
	job := &countingJob{runs: make(chan struct{}, 1)}
	if err := sched.Add("@every 1s", job); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sched.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sched.Stop(ctx); err != nil {
			t.Errorf("Stop: %v", err)
		}
	}()

	select {
	case <-job.runs:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	sched := NewScheduler(zerolog.Nop())
	if err := sched.Add("every now and then", &countingJob{}); err == nil {
		t.Error("expected an error for a malformed schedule")
	}
}
