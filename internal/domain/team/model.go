package team

import (
	"fmt"
	"sort"
)

// Team is one club of a league roster. Badge and BadgeAttempted are
// session state owned by the coordinator: BadgeAttempted flips before the
// badge download is issued, Badge is set at most once per session.
type Team struct {
	ID            string
	LeagueID      string
	Name          string
	AltName       string
	LeagueName    string
	LeagueName2   string
	DescriptionEN string
	DescriptionFR string
	Country       string
	BadgeURL      string
	BannerURL     string

	Badge          []byte
	BadgeAttempted bool
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}

	return nil
}

// SortName is the display-order key. Absent names sort first.
func (t Team) SortName() string {
	return t.Name
}

// SortByName orders teams by display name ascending, stable.
func SortByName(items []Team) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortName() != items[j].SortName() {
			return items[i].SortName() < items[j].SortName()
		}
		return items[i].ID < items[j].ID
	})
}
