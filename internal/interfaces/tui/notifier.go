package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfooty/league-browser/internal/domain/team"
	"github.com/openfooty/league-browser/internal/usecase"
)

type catalogReadyMsg struct{}

type searchResultMsg struct {
	result usecase.SearchResult
}

type itemUpdatedMsg struct {
	index int
}

type itemsRemovedMsg struct {
	indices []int
}

type inputDismissMsg struct{}

type searchErrorMsg struct {
	err    error
	title  string
	action string
}

type detailsLoadedMsg struct {
	team          *team.Team
	noDataVisible bool
}

type bannerLoadedMsg struct {
	data []byte
}

type detailsSpinnerMsg struct {
	running bool
}

// Notifier forwards coordinator callbacks into the bubbletea event loop.
// It is created before the program exists and bound to program.Send once
// the program is running; callbacks before Bind are dropped.
type Notifier struct {
	mu   sync.RWMutex
	dest func(tea.Msg)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Bind(send func(tea.Msg)) {
	n.mu.Lock()
	n.dest = send
	n.mu.Unlock()
}

func (n *Notifier) send(msg tea.Msg) {
	n.mu.RLock()
	dest := n.dest
	n.mu.RUnlock()
	if dest != nil {
		dest(msg)
	}
}

func (n *Notifier) OnCatalogReady() {
	n.send(catalogReadyMsg{})
}

func (n *Notifier) OnSearchResultChanged(result usecase.SearchResult) {
	n.send(searchResultMsg{result: result})
}

func (n *Notifier) OnItemUpdated(index int) {
	n.send(itemUpdatedMsg{index: index})
}

func (n *Notifier) OnItemsRemoved(indices []int) {
	n.send(itemsRemovedMsg{indices: indices})
}

func (n *Notifier) OnInputDismissRequested() {
	n.send(inputDismissMsg{})
}

func (n *Notifier) OnError(err error, title, actionLabel string) {
	n.send(searchErrorMsg{err: err, title: title, action: actionLabel})
}

func (n *Notifier) OnLoaded(t *team.Team, noDataVisible bool) {
	n.send(detailsLoadedMsg{team: t, noDataVisible: noDataVisible})
}

func (n *Notifier) OnBannerLoaded(data []byte) {
	n.send(bannerLoadedMsg{data: data})
}

func (n *Notifier) StartSpinner() {
	n.send(detailsSpinnerMsg{running: true})
}

func (n *Notifier) StopSpinner() {
	n.send(detailsSpinnerMsg{running: false})
}
