package usecase

import (
	"github.com/openfooty/league-browser/internal/domain/team"
)

// Read accessors for the view layer. All of them take the coordinator
// lock; none of them mutate state.

func (s *SearchService) Title() string {
	return s.translator.Translate("titleView")
}

func (s *SearchService) SearchPlaceholder() string {
	return s.translator.Translate("searchBarPlaceholder")
}

// NoDataText picks the empty-state label: "no teams" when a single league
// matched but its roster view is empty, "no leagues" otherwise.
func (s *SearchService) NoDataText() string {
	s.mu.Lock()
	singleMatch := len(s.filteredLeagues) == 1 && len(s.filteredTeams) == 0
	s.mu.Unlock()

	if singleMatch {
		return s.translator.Translate("noTeamsFound")
	}
	return s.translator.Translate("noLeaguesFound")
}

func (s *SearchService) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSearching
}

func (s *SearchService) LeagueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filteredLeagues)
}

// LeagueNameAt returns the display name of the filtered league at index,
// preferring the alternate name.
func (s *SearchService) LeagueNameAt(index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.filteredLeagues) {
		return ""
	}
	return s.filteredLeagues[index].DisplayName()
}

// SearchTextFor is the text the view puts into the search input when the
// user picks a league row.
func (s *SearchService) SearchTextFor(index int) string {
	return s.LeagueNameAt(index)
}

func (s *SearchService) TeamCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filteredTeams)
}

// TeamAt returns a snapshot of the projected team at index.
func (s *SearchService) TeamAt(index int) (team.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.filteredTeams) {
		return team.Team{}, false
	}
	return s.filteredTeams[index], true
}
