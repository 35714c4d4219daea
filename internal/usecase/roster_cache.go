package usecase

import (
	"sort"
	"sync"

	"github.com/openfooty/league-browser/internal/domain/team"
)

// RosterCache accumulates every team seen during the session, keyed by
// team ID, plus the set of leagues whose roster fetch already completed.
// Entries are immutable snapshots: callers merge updated copies instead of
// mutating shared records, so concurrent merges from badge completions
// only ever touch the entries they name.
type RosterCache struct {
	mu      sync.RWMutex
	fetched map[string]struct{}
	teams   map[string]team.Team
}

func NewRosterCache() *RosterCache {
	return &RosterCache{
		fetched: make(map[string]struct{}),
		teams:   make(map[string]team.Team),
	}
}

// HasRoster reports whether a league's roster was fetched this session.
func (c *RosterCache) HasRoster(leagueID string) bool {
	if leagueID == "" {
		return false
	}

	c.mu.RLock()
	_, ok := c.fetched[leagueID]
	c.mu.RUnlock()
	return ok
}

// MarkRoster records that a league's roster fetch completed with data.
func (c *RosterCache) MarkRoster(leagueID string) {
	if leagueID == "" {
		return
	}

	c.mu.Lock()
	c.fetched[leagueID] = struct{}{}
	c.mu.Unlock()
}

// Merge inserts or replaces entries by team ID, preserving everything else.
func (c *RosterCache) Merge(items ...team.Team) {
	if len(items) == 0 {
		return
	}

	c.mu.Lock()
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		c.teams[item.ID] = item
	}
	c.mu.Unlock()
}

// Team returns the cached snapshot for a team ID.
func (c *RosterCache) Team(teamID string) (team.Team, bool) {
	c.mu.RLock()
	item, ok := c.teams[teamID]
	c.mu.RUnlock()
	return item, ok
}

// TeamsByLeague returns the cached subset for a league, ordered by display
// name ascending with absent names first, ID as tie-break.
func (c *RosterCache) TeamsByLeague(leagueID string) []team.Team {
	c.mu.RLock()
	out := make([]team.Team, 0, 16)
	for _, item := range c.teams {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortName() != out[j].SortName() {
			return out[i].SortName() < out[j].SortName()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Reset drops all cached rosters and fetch flags.
func (c *RosterCache) Reset() {
	c.mu.Lock()
	c.fetched = make(map[string]struct{})
	c.teams = make(map[string]team.Team)
	c.mu.Unlock()
}
