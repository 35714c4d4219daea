package sportsdb

import (
	"strings"

	"github.com/openfooty/league-browser/internal/domain/league"
	"github.com/openfooty/league-browser/internal/domain/team"
)

// Wire shapes of TheSportsDB v1 JSON API. Both endpoints wrap their list
// in a single-field envelope and use null for absent strings.

type leaguesEnvelope struct {
	Leagues []leaguePayload `json:"leagues"`
}

type leaguePayload struct {
	ID        string `json:"idLeague"`
	Name      string `json:"strLeague"`
	Sport     string `json:"strSport"`
	Alternate string `json:"strLeagueAlternate"`
}

type teamsEnvelope struct {
	Teams []teamPayload `json:"teams"`
}

type teamPayload struct {
	ID            string `json:"idTeam"`
	LeagueID      string `json:"idLeague"`
	Name          string `json:"strTeam"`
	Alternate     string `json:"strAlternate"`
	LeagueName    string `json:"strLeague"`
	LeagueName2   string `json:"strLeague2"`
	DescriptionEN string `json:"strDescriptionEN"`
	DescriptionFR string `json:"strDescriptionFR"`
	Country       string `json:"strCountry"`
	BadgeURL      string `json:"strTeamLogo"`
	BannerURL     string `json:"strTeamBanner"`
}

func mapLeaguePayload(item leaguePayload) league.League {
	return league.League{
		ID:      strings.TrimSpace(item.ID),
		Name:    strings.TrimSpace(item.Name),
		AltName: strings.TrimSpace(item.Alternate),
		Sport:   strings.TrimSpace(item.Sport),
	}
}

func mapTeamPayload(item teamPayload) team.Team {
	return team.Team{
		ID:            strings.TrimSpace(item.ID),
		LeagueID:      strings.TrimSpace(item.LeagueID),
		Name:          strings.TrimSpace(item.Name),
		AltName:       strings.TrimSpace(item.Alternate),
		LeagueName:    strings.TrimSpace(item.LeagueName),
		LeagueName2:   strings.TrimSpace(item.LeagueName2),
		DescriptionEN: item.DescriptionEN,
		DescriptionFR: item.DescriptionFR,
		Country:       strings.TrimSpace(item.Country),
		BadgeURL:      strings.TrimSpace(item.BadgeURL),
		BannerURL:     strings.TrimSpace(item.BannerURL),
	}
}
