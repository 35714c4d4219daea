package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openfooty/league-browser/internal/domain/team"
	"github.com/openfooty/league-browser/internal/i18n"
	"github.com/openfooty/league-browser/internal/platform/logging"
	"github.com/openfooty/league-browser/internal/usecase"
)

type appState int

const (
	stateLoading appState = iota
	stateBrowse
	stateDetails
)

const (
	gridColumns    = 3
	requestTimeout = 30 * time.Second
)

type leagueItem struct {
	name string
	hint string
}

func (item leagueItem) Title() string       { return item.name }
func (item leagueItem) Description() string { return item.hint }
func (item leagueItem) FilterValue() string { return item.name }

// Model renders the league search screen and the team details screen,
// driven entirely by coordinator notifications.
type Model struct {
	service    *usecase.SearchService
	images     usecase.ImageFetcher
	translator i18n.Translator
	logger     *logging.Logger
	notifier   *Notifier

	state       appState
	searchInput textinput.Model
	leagueList  list.Model
	result      usecase.SearchResult
	teamCursor  int
	lastFilter  string

	detailsService *usecase.DetailsService
	detailsTeam    *team.Team
	detailsNoData  bool
	bannerBytes    int
	spinner        spinner.Model
	spinnerOn      bool

	errorTitle  string
	errorText   string
	errorAction string

	width  int
	height int
}

// Dependencies wires the model to the coordinator and its collaborators.
type Dependencies struct {
	Service    *usecase.SearchService
	Images     usecase.ImageFetcher
	Translator i18n.Translator
	Logger     *logging.Logger
	Notifier   *Notifier
}

func NewModel(deps Dependencies) Model {
	input := textinput.New()
	input.Placeholder = deps.Service.SearchPlaceholder()
	input.Prompt = "> "
	input.Focus()

	leagueList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	leagueList.SetShowTitle(false)
	leagueList.SetFilteringEnabled(false)
	leagueList.SetShowStatusBar(false)

	spinnerModel := spinner.New()
	spinnerModel.Spinner = spinner.Dot

	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	translator := deps.Translator
	if translator == nil {
		translator = i18n.NewStaticTranslator("en")
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewNotifier()
	}

	return Model{
		service:     deps.Service,
		images:      deps.Images,
		translator:  translator,
		logger:      logger,
		notifier:    notifier,
		state:       stateLoading,
		searchInput: input,
		leagueList:  leagueList,
		spinner:     spinnerModel,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(initializeCmd(m.service), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.leagueList.SetSize(msg.Width-4, listHeight(msg.Height))
		return m, nil

	case catalogReadyMsg:
		m.state = stateBrowse
		m.errorText = ""
		return m, nil

	case searchResultMsg:
		m.result = msg.result
		if !msg.result.ErrorVisible {
			m.errorText = ""
		}
		if msg.result.LeagueListVisible {
			m.leagueList.SetItems(m.leagueItems())
			m.leagueList.Select(0)
		}
		m.teamCursor = 0
		return m, nil

	case itemUpdatedMsg:
		// Badge arrived for a visible cell; re-render picks it up.
		return m, nil

	case itemsRemovedMsg:
		m.teamCursor = 0
		return m, nil

	case inputDismissMsg:
		m.searchInput.Blur()
		return m, nil

	case searchErrorMsg:
		if m.state == stateLoading {
			m.state = stateBrowse
		}
		m.errorTitle = msg.title
		m.errorText = msg.err.Error()
		m.errorAction = msg.action
		return m, nil

	case detailsLoadedMsg:
		m.detailsTeam = msg.team
		m.detailsNoData = msg.noDataVisible
		return m, nil

	case bannerLoadedMsg:
		m.bannerBytes = len(msg.data)
		return m, nil

	case detailsSpinnerMsg:
		m.spinnerOn = msg.running
		if msg.running {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.spinnerOn {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.handleEscape()
	}

	switch m.state {
	case stateBrowse:
		return m.updateBrowseKey(msg)
	case stateDetails:
		if msg.String() == "q" {
			return m.closeDetails()
		}
	}

	return m, nil
}

func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	if m.state == stateDetails {
		return m.closeDetails()
	}
	if m.searchInput.Value() != "" {
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.lastFilter = ""
		return m, filterCmd(m.service, "")
	}
	return m, tea.Quit
}

func (m Model) updateBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.result.LeagueListVisible {
			index := m.leagueList.Index()
			return m, selectLeagueCmd(m.service, index)
		}
		if m.result.TeamGridVisible {
			return m.openDetails()
		}
		return m, nil
	case "up", "down", "left", "right":
		if m.result.TeamGridVisible {
			m.teamCursor = moveCursor(m.teamCursor, m.service.TeamCount(), msg.String())
			return m, nil
		}
		if m.result.LeagueListVisible {
			var cmd tea.Cmd
			m.leagueList, cmd = m.leagueList.Update(msg)
			return m, cmd
		}
		return m, nil
	case "ctrl+r":
		return m, refreshCmd(m.service)
	}

	if !m.searchInput.Focused() {
		m.searchInput.Focus()
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	value := m.searchInput.Value()
	if value == m.lastFilter {
		return m, cmd
	}
	m.lastFilter = value
	return m, tea.Batch(cmd, filterCmd(m.service, value))
}

func (m Model) openDetails() (tea.Model, tea.Cmd) {
	selected, ok := m.service.TeamAt(m.teamCursor)
	if !ok {
		return m, nil
	}
	m.state = stateDetails
	m.detailsTeam = nil
	m.detailsNoData = false
	m.bannerBytes = 0
	m.detailsService = usecase.NewDetailsService(m.notifier, &selected, m.images, m.translator, m.logger)
	return m, loadDetailsCmd(m.detailsService)
}

func loadDetailsCmd(service *usecase.DetailsService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		service.Load(ctx)
		return nil
	}
}

func (m Model) closeDetails() (tea.Model, tea.Cmd) {
	m.state = stateBrowse
	m.detailsService = nil
	m.detailsTeam = nil
	m.bannerBytes = 0
	m.spinnerOn = false
	m.searchInput.Focus()
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return panelStyle.Render(titleStyle.Render(m.service.Title()) + "\n\nLoading leagues...")
	case stateDetails:
		return m.detailsView()
	default:
		return m.browseView()
	}
}

func (m Model) browseView() string {
	sections := []string{
		titleStyle.Render(m.service.Title()),
		m.searchInput.View(),
	}

	switch {
	case m.errorText != "":
		sections = append(sections,
			warningStyle.Render(m.errorTitle),
			secondaryStyle.Render(m.errorText),
			secondaryStyle.Render("["+m.errorAction+"]"),
		)
	case m.result.ErrorVisible:
		sections = append(sections, warningStyle.Render(m.service.NoDataText()))
	case m.result.LeagueListVisible:
		sections = append(sections, m.leagueList.View())
	case m.result.TeamGridVisible:
		sections = append(sections, m.teamGrid())
	default:
		sections = append(sections, secondaryStyle.Render(m.searchHint()))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) searchHint() string {
	if m.service.IsSearching() {
		return ""
	}
	return m.translator.Translate("searchBarPlaceholder")
}

func (m Model) leagueItems() []list.Item {
	count := m.service.LeagueCount()
	items := make([]list.Item, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, leagueItem{
			name: m.service.LeagueNameAt(i),
			hint: m.service.SearchTextFor(i),
		})
	}
	return items
}

func (m Model) teamGrid() string {
	count := m.service.TeamCount()
	if count == 0 {
		return ""
	}

	rows := make([]string, 0, (count+gridColumns-1)/gridColumns)
	row := make([]string, 0, gridColumns)
	for i := 0; i < count; i++ {
		t, ok := m.service.TeamAt(i)
		if !ok {
			continue
		}
		row = append(row, m.teamCell(i, t))
		if len(row) == gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) teamCell(index int, t team.Team) string {
	var body string
	switch usecase.BadgeCellState(t) {
	case usecase.CellBadge:
		body = fmt.Sprintf("%s\n%s", t.Name, secondaryStyle.Render("badge ready"))
	case usecase.CellPlaceholder:
		body = usecase.PlaceholderText(t)
	default:
		body = fmt.Sprintf("%s\n%s", t.Name, secondaryStyle.Render("loading..."))
	}

	style := cellStyle
	if index == m.teamCursor {
		style = cellFocusedStyle
	}
	return style.Render(body)
}

func (m Model) detailsView() string {
	if m.detailsTeam == nil {
		if m.detailsNoData {
			svc := m.detailsService
			text := ""
			if svc != nil {
				text = svc.NoDataText()
			}
			return panelStyle.Render(warningStyle.Render(text))
		}
		return panelStyle.Render(m.spinner.View() + " Loading team...")
	}

	svc := m.detailsService
	sections := []string{
		titleStyle.Render(svc.TitleText()),
		secondaryStyle.Render(svc.LeagueTitle()),
	}
	if m.spinnerOn {
		sections = append(sections, m.spinner.View()+" Loading banner...")
	} else if m.bannerBytes > 0 {
		sections = append(sections, secondaryStyle.Render(fmt.Sprintf("banner loaded (%d bytes)", m.bannerBytes)))
	}
	if desc := svc.Description(); desc != "" {
		sections = append(sections, wrapText(desc, m.width-4))
	}
	sections = append(sections, secondaryStyle.Render("esc to go back"))

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func initializeCmd(service *usecase.SearchService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		service.Initialize(ctx)
		return nil
	}
}

func refreshCmd(service *usecase.SearchService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		service.Refresh(ctx)
		return nil
	}
}

func filterCmd(service *usecase.SearchService, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		service.SetFilter(ctx, text)
		return nil
	}
}

func selectLeagueCmd(service *usecase.SearchService, index int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		service.SelectLeague(ctx, index)
		return nil
	}
}

func moveCursor(cursor, count int, key string) int {
	if count == 0 {
		return 0
	}
	next := cursor
	switch key {
	case "left":
		next--
	case "right":
		next++
	case "up":
		next -= gridColumns
	case "down":
		next += gridColumns
	}
	if next < 0 || next >= count {
		return cursor
	}
	return next
}

func listHeight(height int) int {
	if height <= 10 {
		return height
	}
	return height - 8
}

func wrapText(text string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(text)
	var builder strings.Builder
	lineLen := 0
	for _, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			builder.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			builder.WriteString(" ")
			lineLen++
		}
		builder.WriteString(word)
		lineLen += len(word)
	}
	return builder.String()
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	secondaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle       = lipgloss.NewStyle().Padding(1, 2)
	cellStyle        = lipgloss.NewStyle().Width(26).Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	cellFocusedStyle = lipgloss.NewStyle().Width(26).Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("205"))
)
