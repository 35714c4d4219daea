package usecase

import "github.com/openfooty/league-browser/internal/domain/team"

// CellState tells the view how to render one team of the grid.
type CellState int

const (
	// CellLoading: badge download not attempted yet, show a spinner.
	CellLoading CellState = iota
	// CellPlaceholder: attempted but no badge arrived, show the name.
	CellPlaceholder
	// CellBadge: badge bytes available.
	CellBadge
)

func BadgeCellState(t team.Team) CellState {
	if !t.BadgeAttempted {
		return CellLoading
	}
	if len(t.Badge) == 0 {
		return CellPlaceholder
	}
	return CellBadge
}

// PlaceholderText is the label shown instead of a missing badge.
func PlaceholderText(t team.Team) string {
	if BadgeCellState(t) != CellPlaceholder {
		return ""
	}
	return t.Name
}
