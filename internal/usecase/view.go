package usecase

import (
	"context"

	"github.com/openfooty/league-browser/internal/domain/league"
	"github.com/openfooty/league-browser/internal/domain/team"
)

// CatalogRepository resolves the league catalog and per-league rosters.
type CatalogRepository interface {
	FetchLeagues(ctx context.Context) ([]league.League, error)
	FetchRoster(ctx context.Context, l league.League) ([]team.Team, error)
}

// ImageFetcher downloads raw image bytes.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// SearchResult carries the visibility flags the view derives its layout from.
type SearchResult struct {
	ErrorVisible      bool
	LeagueListVisible bool
	TeamGridVisible   bool
}

// View is the notification sink of the search coordinator. Calls are
// one-way and fire-and-forget; a detached view simply stops receiving them.
type View interface {
	OnCatalogReady()
	OnSearchResultChanged(result SearchResult)
	OnItemUpdated(index int)
	OnItemsRemoved(indices []int)
	OnInputDismissRequested()
	OnError(err error, title, actionLabel string)
}

// DetailsView is the notification sink of the team details screen.
type DetailsView interface {
	OnLoaded(t *team.Team, noDataVisible bool)
	OnBannerLoaded(data []byte)
	StartSpinner()
	StopSpinner()
}
