package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfooty/league-browser/internal/usecase"
)

func TestNotifier_ForwardsCoordinatorCallbacks(t *testing.T) {
	var got []tea.Msg
	notifier := NewNotifier()
	notifier.Bind(func(msg tea.Msg) { got = append(got, msg) })

	notifier.OnCatalogReady()
	notifier.OnSearchResultChanged(usecase.SearchResult{TeamGridVisible: true})
	notifier.OnItemUpdated(3)
	notifier.OnItemsRemoved([]int{0, 1})
	notifier.OnInputDismissRequested()
	notifier.OnError(errors.New("boom"), "Error", "Ok")

	if len(got) != 6 {
		t.Fatalf("unexpected message count: %d", len(got))
	}
	if _, ok := got[0].(catalogReadyMsg); !ok {
		t.Fatalf("unexpected first message: %T", got[0])
	}
	result, ok := got[1].(searchResultMsg)
	if !ok || !result.result.TeamGridVisible {
		t.Fatalf("unexpected result message: %#v", got[1])
	}
	if update, ok := got[2].(itemUpdatedMsg); !ok || update.index != 3 {
		t.Fatalf("unexpected update message: %#v", got[2])
	}
	if errMsg, ok := got[5].(searchErrorMsg); !ok || errMsg.title != "Error" {
		t.Fatalf("unexpected error message: %#v", got[5])
	}
}

func TestNotifier_DropsWhenUnbound(t *testing.T) {
	notifier := NewNotifier()
	notifier.OnCatalogReady()
	notifier.OnItemUpdated(0)
}

func TestMoveCursor(t *testing.T) {
	cases := []struct {
		cursor int
		count  int
		key    string
		want   int
	}{
		{0, 6, "right", 1},
		{0, 6, "down", 3},
		{5, 6, "right", 5},
		{0, 6, "left", 0},
		{1, 6, "up", 1},
		{4, 6, "up", 1},
		{0, 0, "down", 0},
	}
	for _, tc := range cases {
		if got := moveCursor(tc.cursor, tc.count, tc.key); got != tc.want {
			t.Fatalf("moveCursor(%d,%d,%s)=%d want=%d", tc.cursor, tc.count, tc.key, got, tc.want)
		}
	}
}
