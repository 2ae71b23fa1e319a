package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/gauge/internal/cache"
	"github.com/five82/gauge/internal/prefs"
	"github.com/five82/gauge/internal/query"
	"github.com/five82/gauge/internal/reardiff"
	"github.com/five82/gauge/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *reardiff.Client
	Cache     *cache.Store
	Store     *state.Store
	Log       zerolog.Logger
	ThemeName string
	PageSize  int
	PrefsPath string
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea. One pane per view
// carries that view's controller state; modal state (search, status picker,
// confirm prompt) lives here because only one can be active at a time.
type Model struct {
	ctx    context.Context
	client *reardiff.Client
	cache  *cache.Store
	store  *state.Store
	log    zerolog.Logger

	theme     Theme
	prefsPath string
	pageSize  int
	pollTick  time.Duration

	width  int
	height int
	ready  bool

	currentView View
	panes       map[View]*pane

	snapshot state.Snapshot

	showHelp    bool
	searchMode  bool
	searchInput textinput.Model

	picker  *statusPicker
	confirm *confirmPrompt
	detail  *detailView
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = 15 * time.Second
	}
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = 25
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "title or tt id"
	input.CharLimit = 128

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		cache:       opts.Cache,
		store:       opts.Store,
		log:         opts.Log,
		theme:       GetTheme(opts.ThemeName),
		prefsPath:   prefsPath,
		pageSize:    pageSize,
		pollTick:    pollTick,
		currentView: ViewTraining,
		panes:       newPanes(pageSize),
		searchInput: input,
	}
}

// Run blocks until the context is cancelled or the user quits.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	if _, err := program.Run(); err != nil {
		if opts.Context != nil && opts.Context.Err() != nil {
			return nil // external shutdown, not a failure
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.panes[ViewTraining].phase = phaseLoading
	return tea.Batch(
		tickCmd(m.pollTick),
		m.fetchCmd(ViewTraining),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.relayout()
		return m, nil

	case tickMsg:
		m.snapshot = m.store.Snapshot()
		return m, tickCmd(m.pollTick)

	case listLoadedMsg:
		return m.handleListLoaded(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderHeader()}
	if m.searchMode {
		sections = append(sections, m.renderSearchBar())
	}
	switch {
	case m.detail != nil:
		sections = append(sections, m.renderDetail())
	case m.confirm != nil:
		sections = append(sections, m.renderConfirm())
	case m.picker != nil:
		sections = append(sections, m.renderPicker())
	default:
		sections = append(sections, m.renderBody())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) handleListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	p := m.panes[msg.view]
	if msg.err != nil {
		p.fail(msg.err)
		m.log.Warn().Str("view", msg.view.Title()).Err(msg.err).Msg("listing fetch failed")
		return m, nil
	}
	p.applyResponse(msg.resp, msg.rows, m.tableWidth(), m.tableHeight(), m.theme)
	return m, nil
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	p := m.panes[msg.view]
	if msg.err != nil {
		// Keep whatever was on screen; the cache stays intact so the
		// stale-but-consistent data survives the failed write.
		p.phase = phaseDisplaying
		p.notice = warnText(msg.desc, msg.err)
		m.log.Warn().Str("action", msg.desc).Err(msg.err).Msg("mutation failed")
		return m, nil
	}

	for _, prefix := range msg.invalidate {
		m.cache.InvalidatePrefix(prefix)
	}
	m.log.Info().Str("action", msg.desc).Msg("mutation applied")
	p.notice = msg.desc + " ✓"
	p.phase = phaseLoading
	return m, m.fetchCmd(msg.view)
}

// warnText renders a mutation failure for the notice line, with enough
// detail to act on but short enough for one row.
func warnText(desc string, err error) string {
	var apiErr *reardiff.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s failed: status %d %s", desc, apiErr.Status, truncate(apiErr.Body, 80))
	}
	var invalid *reardiff.InvalidIDError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("%s blocked: %v", desc, invalid)
	}
	return fmt.Sprintf("%s failed: %s", desc, truncate(err.Error(), 100))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.detail != nil {
		return m.handleDetailKey(msg)
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.picker != nil {
		return m.handlePickerKey(msg)
	}
	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.relayout()
		return m, nil

	case "1":
		return m.switchView(ViewTraining)
	case "2":
		return m.switchView(ViewPredictions)
	case "3":
		return m.switchView(ViewMedia)
	case "4":
		return m.switchView(ViewMigrations)
	case "tab":
		return m.switchView((m.currentView + 1) % viewCount)

	case "enter":
		return m.openDetail()

	case "R":
		// Force refresh: drop every cached variant of this listing.
		p := m.panes[m.currentView]
		m.cache.InvalidatePrefix(endpointPrefix(m.currentView))
		p.notice = ""
		p.phase = phaseLoading
		return m, m.fetchCmd(m.currentView)

	case "[":
		p := m.panes[m.currentView]
		if p.prevPage() {
			return m.reload()
		}
		return m, nil
	case "]":
		p := m.panes[m.currentView]
		if p.nextPage() {
			return m.reload()
		}
		return m, nil

	case "+":
		p := m.panes[m.currentView]
		if m.currentView == ViewMigrations {
			return m, nil
		}
		m.pageSize = query.NextPageSize(p.params.Normalized().PageSize)
		p.params.PageSize = m.pageSize
		p.params.Page = 1
		m.savePrefs()
		return m.reload()

	case "s":
		p := m.panes[m.currentView]
		if p.params.Normalized().SortOrder == "desc" {
			p.params.SortOrder = "asc"
		} else {
			p.params.SortOrder = "desc"
		}
		p.params.Page = 1
		return m.reload()
	}

	switch m.currentView {
	case ViewTraining:
		return m.handleTrainingKey(msg)
	case ViewPredictions:
		return m.handlePredictionsKey(msg)
	case ViewMedia:
		return m.handleMediaKey(msg)
	case ViewMigrations:
		return m.handleMigrationsKey(msg)
	}
	return m, nil
}

// handleTableKey forwards navigation keys to the pane's table.
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[m.currentView]
	if !p.hasTable {
		return m, nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return m, cmd
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	p := m.panes[v]
	if p.phase == phaseIdle {
		p.phase = phaseLoading
		return m, m.fetchCmd(v)
	}
	return m, nil
}

// reload re-enters the loading phase with the pane's current parameters.
func (m Model) reload() (tea.Model, tea.Cmd) {
	p := m.panes[m.currentView]
	p.notice = ""
	p.phase = phaseLoading
	return m, m.fetchCmd(m.currentView)
}

func (m *Model) relayout() {
	for _, p := range m.panes {
		if p.hasTable {
			p.applyResponse(p.resp, p.rows, m.tableWidth(), m.tableHeight(), m.theme)
		}
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.pageSize})
}

func (m Model) tableWidth() int {
	if m.width <= 0 {
		return 120
	}
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) tableHeight() int {
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

func endpointPrefix(v View) string {
	switch v {
	case ViewTraining:
		return reardiff.EndpointTraining
	case ViewPredictions:
		return reardiff.EndpointPrediction
	case ViewMedia:
		return reardiff.EndpointMedia
	case ViewMigrations:
		return reardiff.EndpointFlyway
	default:
		return ""
	}
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	label := "search title (tt id auto-detected): "
	return styles.Prompt.Width(m.width).Render(label + m.searchInput.View())
}

func (m Model) renderBody() string {
	p := m.panes[m.currentView]
	styles := m.theme.Styles()

	var lines []string
	switch p.phase {
	case phaseIdle, phaseLoading:
		if !p.hasTable {
			return styles.MutedText.Padding(1, 2).Render("Loading " + m.currentView.Title() + "…")
		}
		lines = append(lines, styles.MutedText.Padding(0, 1).Render("Refreshing…"))
	case phaseError:
		lines = append(lines, styles.ErrorBanner.Width(m.width).Render(readErrorText(p.err)))
	case phaseSubmitting:
		lines = append(lines, styles.WarningText.Padding(0, 1).Render("Submitting…"))
	}

	if p.notice != "" {
		lines = append(lines, styles.Notice.Width(m.width).Render(truncate(p.notice, m.width-2)))
	}

	if p.hasTable {
		if len(p.rows) == 0 {
			lines = append(lines, styles.MutedText.Padding(1, 2).Render(emptyText(p)))
		} else {
			lines = append(lines, p.table.View())
		}
	}
	if len(lines) == 0 {
		return styles.MutedText.Padding(1, 2).Render("Loading…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// readErrorText renders a read failure with retry guidance. The session
// keeps running; the operator retries with R once the API is back.
func readErrorText(err error) string {
	var apiErr *reardiff.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("API error %d: %s — press R to retry", apiErr.Status, truncate(apiErr.Body, 80))
	}
	var connErr *reardiff.ConnectivityError
	if errors.As(err, &connErr) {
		return fmt.Sprintf("%s — press R to retry", classifyConnectionError(connErr))
	}
	return truncate(err.Error(), 120) + " — press R to retry"
}

func emptyText(p *pane) string {
	if p.view == ViewTraining && p.reviewedFilter == "unreviewed" && p.searchTerm == "" {
		return "Backlog cleared"
	}
	return "No records"
}

func (m Model) renderFooter() string {
	p := m.panes[m.currentView]
	styles := m.theme.Styles()

	hints := viewHints(m.currentView)
	status := p.statusLine()

	left := styles.Footer.Render(status)
	right := styles.Footer.Render(hints)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	filler := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Render(strings.Repeat(" ", gap))
	return left + filler + right
}

func viewHints(v View) string {
	switch v {
	case ViewTraining:
		return "w/n label · r reviewed · a anomalous · / search · f filter · []/+ page · h help"
	case ViewPredictions:
		return "w/n relabel · f cm filter · s sort · [] page · h help"
	case ViewMedia:
		return "e status · D delete · P promote · F finish · / search · []/+ page · h help"
	case ViewMigrations:
		return "s sort by version · R refresh · h help"
	default:
		return "h help"
	}
}
