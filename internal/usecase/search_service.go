package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/openfooty/league-browser/internal/domain/league"
	"github.com/openfooty/league-browser/internal/domain/team"
	"github.com/openfooty/league-browser/internal/i18n"
	"github.com/openfooty/league-browser/internal/platform/logging"
)

const defaultBadgeWorkers = 8

type SearchServiceConfig struct {
	// SportTag is the catalog filter applied on initialize; leagues with a
	// different sport are dropped.
	SportTag string
	// BadgeWorkers caps concurrent badge downloads.
	BadgeWorkers int
}

// SearchService owns the league catalog, the active filter, the current
// result projection and the roster cache, and drives roster and badge
// loading. All shared state is guarded by mu; view notifications are
// emitted outside the lock.
type SearchService struct {
	repo       CatalogRepository
	images     ImageFetcher
	translator i18n.Translator
	logger     *logging.Logger
	sportTag   string
	pool       *ants.Pool

	mu              sync.Mutex
	view            View
	leagues         []league.League
	filteredLeagues []league.League
	cache           *RosterCache
	filteredTeams   []team.Team
	isSearching     bool
	lastMatchID     string
	// generation tags the current team projection; badge completions from
	// a superseded projection update the cache but never patch the slice.
	generation uint64
}

func NewSearchService(
	repo CatalogRepository,
	images ImageFetcher,
	translator i18n.Translator,
	logger *logging.Logger,
	cfg SearchServiceConfig,
) (*SearchService, error) {
	if repo == nil || images == nil {
		return nil, fmt.Errorf("%w: repository and image fetcher are required", ErrDependencyUnavailable)
	}
	if translator == nil {
		translator = i18n.NewStaticTranslator("en")
	}
	if logger == nil {
		logger = logging.Default()
	}

	sportTag := strings.TrimSpace(cfg.SportTag)
	if sportTag == "" {
		sportTag = "Soccer"
	}
	workers := cfg.BadgeWorkers
	if workers <= 0 {
		workers = defaultBadgeWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create badge worker pool: %w", err)
	}

	return &SearchService{
		repo:       repo,
		images:     images,
		translator: translator,
		logger:     logger,
		sportTag:   sportTag,
		pool:       pool,
		cache:      NewRosterCache(),
	}, nil
}

// Close releases the badge worker pool. In-flight downloads finish.
func (s *SearchService) Close() {
	s.pool.Release()
}

// AttachView connects a notification sink. Passing nil detaches.
func (s *SearchService) AttachView(view View) {
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
}

// DetachView disconnects the sink; later notifications become no-ops.
func (s *SearchService) DetachView() {
	s.AttachView(nil)
}

// Initialize downloads the league catalog and retains the configured
// sport. Failures surface as a blocking error; state stays unchanged.
func (s *SearchService) Initialize(ctx context.Context) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.Initialize")
	defer span.End()

	items, err := s.repo.FetchLeagues(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog fetch failed", "error", err)
		s.notifyError(fmt.Errorf("%w: %v", ErrCatalogFetch, err))
		return
	}

	kept := make([]league.League, 0, len(items))
	for _, item := range items {
		if item.Sport == s.sportTag {
			kept = append(kept, item)
		}
	}
	s.logger.InfoContext(ctx, "catalog loaded", "total", len(items), "kept", len(kept), "sport", s.sportTag)

	s.mu.Lock()
	s.leagues = kept
	view := s.view
	s.mu.Unlock()

	if view != nil {
		view.OnCatalogReady()
	}
}

// Refresh replaces the catalog wholesale: roster cache and fetch flags are
// reset, projections cleared, and the catalog downloaded again.
func (s *SearchService) Refresh(ctx context.Context) {
	s.mu.Lock()
	removed := projectionIndices(s.filteredTeams)
	s.filteredTeams = nil
	s.generation++
	s.filteredLeagues = nil
	s.isSearching = false
	s.lastMatchID = ""
	s.cache.Reset()
	view := s.view
	s.mu.Unlock()

	if view != nil && len(removed) > 0 {
		view.OnItemsRemoved(removed)
	}
	s.Initialize(ctx)
}

// SetFilter recomputes the league projection for the given input and, on a
// fresh single match, loads that league's roster.
func (s *SearchService) SetFilter(ctx context.Context, text string) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.SetFilter")
	defer span.End()

	normalized := strings.ToLower(strings.TrimSpace(text))

	s.mu.Lock()
	if normalized == "" {
		removed := projectionIndices(s.filteredTeams)
		s.filteredTeams = nil
		s.generation++
		s.filteredLeagues = nil
		s.isSearching = false
		s.lastMatchID = ""
		view := s.view
		s.mu.Unlock()

		if view != nil {
			if len(removed) > 0 {
				view.OnItemsRemoved(removed)
			}
			view.OnSearchResultChanged(SearchResult{})
		}
		return
	}

	s.isSearching = true
	previousMatch := s.lastMatchID

	matched := make([]league.League, 0, len(s.leagues))
	for _, item := range s.leagues {
		if item.Matches(normalized) {
			matched = append(matched, item)
		}
	}
	s.filteredLeagues = matched

	if len(matched) == 1 {
		single := matched[0]
		s.lastMatchID = single.ID
		s.mu.Unlock()

		// Same single match as before: the user is still typing inside
		// the match, do not reissue the roster load.
		if single.ID == previousMatch {
			return
		}
		s.loadRoster(ctx, single)
		return
	}

	s.lastMatchID = ""
	removed := projectionIndices(s.filteredTeams)
	s.filteredTeams = nil
	s.generation++
	result := SearchResult{
		ErrorVisible:      len(matched) == 0,
		LeagueListVisible: len(matched) > 0,
	}
	view := s.view
	s.mu.Unlock()

	if view != nil {
		if len(removed) > 0 {
			view.OnItemsRemoved(removed)
		}
		view.OnSearchResultChanged(result)
	}
}

// SelectLeague pins the projection to the league at index, as when the
// view picks a row instead of the filter narrowing to one match.
func (s *SearchService) SelectLeague(ctx context.Context, index int) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.SelectLeague")
	defer span.End()

	s.mu.Lock()
	if index < 0 || index >= len(s.filteredLeagues) {
		s.mu.Unlock()
		return
	}
	selected := s.filteredLeagues[index]
	s.filteredLeagues = []league.League{selected}
	s.isSearching = true
	s.lastMatchID = selected.ID
	s.mu.Unlock()

	s.loadRoster(ctx, selected)
}

func (s *SearchService) loadRoster(ctx context.Context, l league.League) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.loadRoster")
	defer span.End()

	// Clear the old projection before new data replaces it so the view can
	// animate removal deterministically.
	s.mu.Lock()
	removed := projectionIndices(s.filteredTeams)
	s.filteredTeams = nil
	s.generation++
	cached := s.cache.HasRoster(l.ID)
	view := s.view
	s.mu.Unlock()

	if view != nil && len(removed) > 0 {
		view.OnItemsRemoved(removed)
	}

	if cached {
		teams := s.cache.TeamsByLeague(l.ID)
		s.mu.Lock()
		s.filteredTeams = teams
		s.generation++
		view = s.view
		s.mu.Unlock()

		s.logger.DebugContext(ctx, "roster served from cache", "league_id", l.ID, "teams", len(teams))
		if view != nil {
			view.OnSearchResultChanged(SearchResult{TeamGridVisible: true})
		}
		return
	}

	roster, err := s.repo.FetchRoster(ctx, l)
	if err != nil {
		s.logger.ErrorContext(ctx, "roster fetch failed", "league_id", l.ID, "error", err)
		s.notifyError(fmt.Errorf("%w: league=%s: %v", ErrRosterFetch, l.ID, err))
		return
	}

	if len(roster) == 0 {
		// Empty rosters are a soft condition and are deliberately not
		// cached: the next exact match fetches again.
		s.mu.Lock()
		view = s.view
		s.mu.Unlock()
		if view != nil {
			view.OnSearchResultChanged(SearchResult{ErrorVisible: true})
		}
		return
	}

	team.SortByName(roster)

	s.mu.Lock()
	s.filteredTeams = roster
	s.generation++
	generation := s.generation
	s.cache.Merge(roster...)
	s.cache.MarkRoster(l.ID)
	view = s.view
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "roster loaded", "league_id", l.ID, "teams", len(roster))
	if view != nil {
		view.OnInputDismissRequested()
		view.OnSearchResultChanged(SearchResult{TeamGridVisible: true})
	}

	s.loadImages(ctx, generation)
}

type badgeJob struct {
	index  int
	teamID string
	url    string
}

func (s *SearchService) loadImages(ctx context.Context, generation uint64) {
	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		return
	}

	jobs := make([]badgeJob, 0, len(s.filteredTeams))
	for i := range s.filteredTeams {
		item := &s.filteredTeams[i]
		if item.BadgeURL == "" || item.BadgeAttempted {
			continue
		}
		// Flip the attempted flag before the download is in flight so a
		// concurrent re-render shows a loading state, not "no image".
		item.BadgeAttempted = true
		s.cache.Merge(*item)
		jobs = append(jobs, badgeJob{index: i, teamID: item.ID, url: item.BadgeURL})
	}
	s.mu.Unlock()

	for _, job := range jobs {
		job := job
		if err := s.pool.Submit(func() { s.fetchBadge(ctx, generation, job) }); err != nil {
			// Pool exhausted or released: fetch inline rather than drop
			// the team's one update notification.
			s.fetchBadge(ctx, generation, job)
		}
	}
}

func (s *SearchService) fetchBadge(ctx context.Context, generation uint64, job badgeJob) {
	data, err := s.images.FetchImage(ctx, job.url)
	if err != nil {
		s.logger.WarnContext(ctx, "badge download failed", "team_id", job.teamID, "error", err)
	}

	s.mu.Lock()
	if cached, ok := s.cache.Team(job.teamID); ok {
		cached.BadgeAttempted = true
		if err == nil {
			cached.Badge = data
		}
		s.cache.Merge(cached)
	}

	// Patch the projection only when it still shows the roster this fetch
	// was issued for, and the index still names the same team.
	notify := false
	if s.generation == generation &&
		job.index < len(s.filteredTeams) &&
		s.filteredTeams[job.index].ID == job.teamID {
		if err == nil {
			s.filteredTeams[job.index].Badge = data
		}
		notify = true
	}
	view := s.view
	s.mu.Unlock()

	// Failures still notify: the view renders the name placeholder.
	if notify && view != nil {
		view.OnItemUpdated(job.index)
	}
}

func (s *SearchService) notifyError(err error) {
	s.mu.Lock()
	view := s.view
	s.mu.Unlock()
	if view == nil {
		return
	}
	view.OnError(err, s.translator.Translate("errorTitle"), s.translator.Translate("errorAction"))
}

func projectionIndices(items []team.Team) []int {
	if len(items) == 0 {
		return nil
	}
	out := make([]int, len(items))
	for i := range items {
		out[i] = i
	}
	return out
}
