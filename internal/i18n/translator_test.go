package i18n

import "testing"

func TestStaticTranslator_KnownLanguages(t *testing.T) {
	english := NewStaticTranslator("en")
	if got := english.Translate("noTeamsFound"); got != "No teams found" {
		t.Fatalf("unexpected english label: %q", got)
	}

	french := NewStaticTranslator("FR")
	if got := french.LanguageCode(); got != "fr" {
		t.Fatalf("language code not normalized: %q", got)
	}
	if got := french.Translate("noTeamsFound"); got != "Aucune équipe trouvée" {
		t.Fatalf("unexpected french label: %q", got)
	}
}

func TestStaticTranslator_FallsBackToEnglish(t *testing.T) {
	unknown := NewStaticTranslator("de")
	if got := unknown.LanguageCode(); got != "en" {
		t.Fatalf("unexpected fallback language: %q", got)
	}
	if got := unknown.Translate("errorTitle"); got != "Error" {
		t.Fatalf("unexpected fallback label: %q", got)
	}
	if got := unknown.Translate("missingKey"); got != "missingKey" {
		t.Fatalf("unknown key not echoed: %q", got)
	}
}
