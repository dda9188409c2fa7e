package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/scan"
	"github.com/mkurosawa/aidesk/internal/search"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeList
)

type searchResultMsg struct {
	query   string
	results []search.Result
	err     error
}

type debounceTickMsg struct {
	query string
}

type deleteDoneMsg struct {
	sessionKey string
	err        error
}

type model struct {
	db          *index.DB
	searchOpts  search.Options
	mode        tuiMode
	query       string
	results     []search.Result
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // which session/message the preview pane currently shows
	width       int
	height      int
	ready       bool
	quitting    bool
	confirming  bool // delete confirmation pending for the cursor row
	status      string
	openResult  *search.Result
}

func newFilterInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.SetValue(value)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256
	return ti
}

// Run starts the TUI in search mode and blocks until it exits. If the user
// selects a result, the resume command is copied to the clipboard.
func Run(db *index.DB, query string, opts search.Options) error {
	m := model{
		db:          db,
		searchOpts:  opts,
		query:       query,
		filterInput: newFilterInput("Search...", query),
		preview:     viewport.New(0, 0),
	}
	return run(m)
}

// RunList starts the TUI in list mode, showing all sessions sorted by
// update time.
func RunList(db *index.DB, opts search.Options) error {
	m := model{
		db:          db,
		searchOpts:  opts,
		mode:        modeList,
		filterInput: newFilterInput("Filter...", ""),
		preview:     viewport.New(0, 0),
	}
	return run(m)
}

func run(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.openResult != nil {
		return copyResumeCommand(fm.db, fm.openResult.SessionKey)
	}
	return nil
}

// copyResumeCommand builds the assistant-specific resume command for a
// session and puts it on the clipboard.
func copyResumeCommand(db *index.DB, sessionKey string) error {
	session, err := db.GetSessionByKey(sessionKey)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionKey)
	}

	var resumeCmd string
	switch session.Source {
	case "claude":
		resumeCmd = fmt.Sprintf("claude --resume %s", session.ResumeID)
	case "codex":
		resumeCmd = fmt.Sprintf("codex resume %s", session.ResumeID)
	default:
		resumeCmd = session.ResumeID
	}

	if err := clipboard.WriteAll(resumeCmd); err != nil {
		fmt.Printf("%s\n", resumeCmd)
		return nil
	}

	fmt.Printf("Copied to clipboard: %s\n", resumeCmd)
	return nil
}

// Init kicks off the first load.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.mode == modeList {
		cmds = append(cmds, m.doListAll(""))
	} else if m.query != "" {
		cmds = append(cmds, m.doSearch(m.query))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		if len(m.results) > 0 && m.cursor < len(m.results) {
			cmds = append(cmds, loadPreviewCmd(m.db, m.results[m.cursor], m.query, m.previewWidth()))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.results) > 0 && m.cursor < len(m.results) {
				r := m.results[m.cursor]
				m.openResult = &r
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Delete):
			if len(m.results) > 0 && m.cursor < len(m.results) {
				m.confirming = true
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// everything else edits the query
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newQuery := m.filterInput.Value()
		if newQuery != m.query {
			m.query = newQuery
			m.status = ""
			cmds = append(cmds, m.scheduleDebouncedSearch(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.results) == 0 || m.confirming {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			pH := m.panelHeight()
			visibleItems := pH / linesPerItem
			maxOffset := len(m.results) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.results) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// a tick for an older query is a no-op
		if msg.query == m.query {
			if m.mode == modeList {
				cmds = append(cmds, m.doListAll(msg.query))
			} else {
				cmds = append(cmds, m.doSearch(msg.query))
			}
		}
		return m, tea.Batch(cmds...)

	case searchResultMsg:
		if msg.query != m.query {
			return m, nil
		}
		if msg.err != nil {
			m.results = nil
			m.cursor = 0
			m.listOffset = 0
			m.preview.SetContent("Error: " + msg.err.Error())
			m.previewKey = ""
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		m.listOffset = 0
		if len(m.results) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		} else {
			m.preview.SetContent("")
			m.previewKey = ""
		}
		return m, tea.Batch(cmds...)

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Deleted " + msg.sessionKey
		// drop the row locally and refresh the preview
		for i, r := range m.results {
			if r.SessionKey == msg.sessionKey {
				m.results = append(m.results[:i], m.results[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.results) && m.cursor > 0 {
			m.cursor--
		}
		m.previewKey = ""
		if len(m.results) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		} else {
			m.preview.SetContent("")
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		key := previewCacheKey(msg.sessionKey, msg.msgID)
		if key == m.previewKey {
			return m, nil
		}
		// the cursor may have moved while the render was in flight
		if len(m.results) > 0 && m.cursor < len(m.results) {
			r := m.results[m.cursor]
			if key != previewCacheKey(r.SessionKey, r.MsgID) {
				return m, nil
			}
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.preview.SetYOffset(msg.hitLine)
			} else {
				m.preview.GotoTop()
			}
		}
		m.previewKey = key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// updateConfirm handles keys while a delete confirmation is pending.
func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		if len(m.results) > 0 && m.cursor < len(m.results) {
			return m, m.doDelete(m.results[m.cursor].SessionKey)
		}
		return m, nil
	default:
		m.confirming = false
		m.status = "Delete cancelled"
		return m, nil
	}
}

func (m model) doDelete(sessionKey string) tea.Cmd {
	db := m.db
	return func() tea.Msg {
		session, err := db.GetSessionByKey(sessionKey)
		if err != nil {
			return deleteDoneMsg{sessionKey: sessionKey, err: err}
		}
		if session == nil {
			return deleteDoneMsg{sessionKey: sessionKey, err: fmt.Errorf("session not found")}
		}
		if err := scan.Delete(session.FilePath); err != nil {
			return deleteDoneMsg{sessionKey: sessionKey, err: err}
		}
		return deleteDoneMsg{sessionKey: sessionKey, err: db.DeleteSession(sessionKey)}
	}
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listContent := m.renderList(listW, panelH)
	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(listContent)

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	status := m.statusBar()

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, status)
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// list gets 40% of the terminal, borders eat 4 cells
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row + status bar + panel borders
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m *model) adjustListScroll(panelH int) {
	visibleItems := panelH / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest resolves a mouse position to a panel and, inside the list, the
// item under the pointer.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // below the input row and the top border
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // content spans columns 1..lw between the borders

	if x >= 1 && x <= lw {
		itemIndex := m.listOffset + (relY / linesPerItem)
		return regionList, itemIndex
	}

	if x > listBoxRight+1 {
		return regionPreview, -1
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	if m.confirming && m.cursor < len(m.results) {
		return styleConfirm.Render(fmt.Sprintf("Delete %s and its file? (y/N)", m.results[m.cursor].SessionKey))
	}
	if m.status != "" {
		return styleStatusBar.Render(m.status)
	}
	count := len(m.results)
	var parts []string
	parts = append(parts, fmt.Sprintf("%d results", count))
	parts = append(parts, "click/up/dn navigate")
	parts = append(parts, "scroll/C-u/C-d preview")
	parts = append(parts, "Enter copy resume cmd")
	parts = append(parts, "C-x delete")
	parts = append(parts, "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) doSearch(query string) tea.Cmd {
	db := m.db
	opts := m.searchOpts
	opts.Query = query
	return func() tea.Msg {
		if query == "" {
			return searchResultMsg{query: query}
		}
		results, err := search.Search(db, opts)
		return searchResultMsg{query: query, results: results, err: err}
	}
}

func (m model) doListAll(filter string) tea.Cmd {
	db := m.db
	opts := m.searchOpts
	opts.Query = filter
	return func() tea.Msg {
		if filter == "" {
			results, err := search.ListAll(db, opts)
			return searchResultMsg{query: filter, results: results, err: err}
		}
		// With input, fall through to full-text search across all content
		results, err := search.Search(db, opts)
		return searchResultMsg{query: filter, results: results, err: err}
	}
}

func (m model) scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return nil
	}
	r := m.results[m.cursor]
	key := previewCacheKey(r.SessionKey, r.MsgID)
	if key == m.previewKey {
		return nil
	}
	return loadPreviewCmd(m.db, r, m.query, m.previewWidth())
}

func previewCacheKey(sessionKey string, msgID int) string {
	return fmt.Sprintf("%s:%d", sessionKey, msgID)
}
