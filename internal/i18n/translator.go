package i18n

import "strings"

// Translator resolves display strings. The coordinator never branches on
// translations; they only feed labels handed to the view.
type Translator interface {
	Translate(key string) string
	LanguageCode() string
}

// StaticTranslator serves translations from an in-process table.
type StaticTranslator struct {
	language string
	table    map[string]string
}

var tables = map[string]map[string]string{
	"en": {
		"titleView":            "Welcome to MyFootball",
		"searchBarPlaceholder": "Search your league",
		"noLeaguesFound":       "No leagues found",
		"noTeamsFound":         "No teams found",
		"teamNotLoaded":        "Team could not be loaded",
		"errorTitle":           "Error",
		"errorAction":          "Ok",
	},
	"fr": {
		"titleView":            "Bienvenue sur MyFootball",
		"searchBarPlaceholder": "Recherchez votre ligue",
		"noLeaguesFound":       "Aucune ligue trouvée",
		"noTeamsFound":         "Aucune équipe trouvée",
		"teamNotLoaded":        "L'équipe n'a pas pu être chargée",
		"errorTitle":           "Erreur",
		"errorAction":          "Ok",
	},
}

// NewStaticTranslator builds a translator for the given language code,
// falling back to English for unknown codes.
func NewStaticTranslator(language string) *StaticTranslator {
	language = strings.ToLower(strings.TrimSpace(language))
	table, ok := tables[language]
	if !ok {
		language = "en"
		table = tables[language]
	}

	return &StaticTranslator{
		language: language,
		table:    table,
	}
}

func (t *StaticTranslator) Translate(key string) string {
	if value, ok := t.table[key]; ok {
		return value
	}
	if value, ok := tables["en"][key]; ok {
		return value
	}
	return key
}

func (t *StaticTranslator) LanguageCode() string {
	return t.language
}
