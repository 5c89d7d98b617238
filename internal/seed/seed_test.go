package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	appRepos "github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/testutil"
)

func TestCreateDemoDataIsIdempotent(t *testing.T) {
	repos := appRepos.NewRepositories(testutil.NewStore(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if err := CreateDemoData(ctx, repos, now, zerolog.Nop()); err != nil {
			t.Fatalf("CreateDemoData #%d: %v", i+1, err)
		}
	}

	members, err := repos.ProfileRepository.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if members != int64(len(demoMembers)) {
		t.Errorf("members = %d, want %d", members, len(demoMembers))
	}

	upcoming, err := repos.EventRepository.Upcoming(ctx, now, 10)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(upcoming) != len(demoEvents)-1 {
		t.Errorf("upcoming = %d, want %d", len(upcoming), len(demoEvents)-1)
	}

	news, err := repos.NewsRepository.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(news) != len(demoNewsItems) {
		t.Errorf("news = %d, want %d", len(news), len(demoNewsItems))
	}
}
