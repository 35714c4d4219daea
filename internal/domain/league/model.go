package league

import (
	"fmt"
	"strings"
)

// League is one entry of the sports catalog.
type League struct {
	ID      string
	Name    string
	AltName string
	Sport   string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" && l.AltName == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// DisplayName prefers the alternate name over the primary one.
func (l League) DisplayName() string {
	if l.AltName != "" {
		return l.AltName
	}
	return l.Name
}

// Matches reports whether either league name contains the normalized
// needle. Matching is a locale-naive lowercase substring check; a league
// with neither name present never matches.
func (l League) Matches(needle string) bool {
	if needle == "" {
		return false
	}
	if l.Name == "" && l.AltName == "" {
		return false
	}
	return containsFold(l.Name, needle) || containsFold(l.AltName, needle)
}

func containsFold(haystack, needle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
