package usecase

import (
	"context"

	"github.com/openfooty/league-browser/internal/domain/team"
	"github.com/openfooty/league-browser/internal/i18n"
	"github.com/openfooty/league-browser/internal/platform/logging"
)

// DetailsService drives the team details screen: static fields plus a
// lazily downloaded banner image.
type DetailsService struct {
	view       DetailsView
	team       *team.Team
	images     ImageFetcher
	translator i18n.Translator
	logger     *logging.Logger
}

func NewDetailsService(
	view DetailsView,
	t *team.Team,
	images ImageFetcher,
	translator i18n.Translator,
	logger *logging.Logger,
) *DetailsService {
	if translator == nil {
		translator = i18n.NewStaticTranslator("en")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DetailsService{
		view:       view,
		team:       t,
		images:     images,
		translator: translator,
		logger:     logger,
	}
}

func (s *DetailsService) TitleText() string {
	if s.team == nil {
		return ""
	}
	return s.team.Name
}

// LeagueTitle prefers the secondary league name variant.
func (s *DetailsService) LeagueTitle() string {
	if s.team == nil {
		return ""
	}
	if s.team.LeagueName2 != "" {
		return s.team.LeagueName2
	}
	return s.team.LeagueName
}

// Description returns the English text for English users, otherwise the
// localized text with English as fallback.
func (s *DetailsService) Description() string {
	if s.team == nil {
		return ""
	}
	if s.translator.LanguageCode() == "en" {
		return s.team.DescriptionEN
	}
	if s.team.DescriptionFR != "" {
		return s.team.DescriptionFR
	}
	return s.team.DescriptionEN
}

func (s *DetailsService) NoDataText() string {
	return s.translator.Translate("teamNotLoaded")
}

// Load notifies the view with the team data and downloads the banner when
// a URL is present. Banner failures only stop the spinner.
func (s *DetailsService) Load(ctx context.Context) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DetailsService.Load")
	defer span.End()

	if s.view == nil {
		return
	}

	s.view.StartSpinner()
	s.view.OnLoaded(s.team, s.team == nil)

	if s.team == nil {
		s.view.StopSpinner()
		return
	}
	if s.team.BannerURL == "" || s.images == nil {
		s.view.StopSpinner()
		return
	}

	data, err := s.images.FetchImage(ctx, s.team.BannerURL)
	s.view.StopSpinner()
	if err != nil {
		s.logger.WarnContext(ctx, "banner download failed", "team_id", s.team.ID, "error", err)
		return
	}
	s.view.OnBannerLoaded(data)
}
