package usecase

import (
	"fmt"
	"sync"
	"testing"

	"github.com/openfooty/league-browser/internal/domain/team"
)

func TestRosterCache_MergeOverwritesByID(t *testing.T) {
	cache := NewRosterCache()

	cache.Merge(team.Team{ID: "t1", LeagueID: "l1", Name: "Arsenal"})
	cache.Merge(team.Team{ID: "t1", LeagueID: "l1", Name: "Arsenal", Badge: []byte{1}, BadgeAttempted: true})

	got := cache.TeamsByLeague("l1")
	if len(got) != 1 {
		t.Fatalf("duplicate entry after merge: %d", len(got))
	}
	if !got[0].BadgeAttempted || len(got[0].Badge) != 1 {
		t.Fatalf("merge did not replace snapshot: %+v", got[0])
	}
}

func TestRosterCache_MergeSkipsEmptyID(t *testing.T) {
	cache := NewRosterCache()
	cache.Merge(team.Team{LeagueID: "l1", Name: "Nameless"})

	if got := cache.TeamsByLeague("l1"); len(got) != 0 {
		t.Fatalf("entry without id was cached: %d", len(got))
	}
}

func TestRosterCache_TeamsByLeagueSortsByNameThenID(t *testing.T) {
	cache := NewRosterCache()
	cache.Merge(
		team.Team{ID: "t3", LeagueID: "l1", Name: "Chelsea"},
		team.Team{ID: "t2", LeagueID: "l1", Name: "Arsenal"},
		team.Team{ID: "t1", LeagueID: "l1", Name: "Arsenal"},
		team.Team{ID: "t9", LeagueID: "l2", Name: "Sevilla"},
	)

	got := cache.TeamsByLeague("l1")
	if len(got) != 3 {
		t.Fatalf("unexpected count: %d", len(got))
	}
	if got[0].ID != "t1" || got[1].ID != "t2" || got[2].ID != "t3" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestRosterCache_HasRosterTracksMark(t *testing.T) {
	cache := NewRosterCache()

	if cache.HasRoster("l1") {
		t.Fatalf("unmarked league reported as fetched")
	}
	cache.MarkRoster("l1")
	if !cache.HasRoster("l1") {
		t.Fatalf("marked league not reported")
	}
	cache.Reset()
	if cache.HasRoster("l1") {
		t.Fatalf("reset kept fetch flag")
	}
}

func TestRosterCache_ConcurrentMerges(t *testing.T) {
	cache := NewRosterCache()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := fmt.Sprintf("t%d", i)
				cache.Merge(team.Team{ID: id, LeagueID: "l1", Name: id, BadgeAttempted: worker%2 == 0})
				cache.Team(id)
				cache.TeamsByLeague("l1")
			}
		}(worker)
	}
	wg.Wait()

	if got := len(cache.TeamsByLeague("l1")); got != 50 {
		t.Fatalf("unexpected team count after concurrent merges: %d", got)
	}
}
