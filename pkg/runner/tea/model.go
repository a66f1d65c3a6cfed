package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/diary/pkg/runner/tea/internal/theme"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/viewmodel"
)

type mode int

const (
	modeLogin mode = iota
	modeList
	modeSearch
	modeCompose
	modeDetail
	modeEdit
	modeConfirmDelete
)

func (m mode) String() string {
	switch m {
	case modeLogin:
		return "login"
	case modeList:
		return "list"
	case modeSearch:
		return "search"
	case modeCompose:
		return "new"
	case modeDetail:
		return "view"
	case modeEdit:
		return "edit"
	case modeConfirmDelete:
		return "delete"
	}
	return ""
}

const (
	detailDateLayout = "January 02, 2006 15:04"
	dayLayout        = "Monday, January 2, 2006"
	defaultWidth     = 80
)

// Model contains UI state
type Model struct {
	ctx     context.Context
	session *session.Session
	journal *journal.Journal
	editor  *editor.Editor
	log     *zap.Logger
	keys    KeyMap
	theme   theme.Theme

	mode     mode
	fullHelp bool
	// busy is set while a sign-in, sign-out or create is in flight.
	busy bool

	sortBy viewmodel.Sort
	query  string
	groups []viewmodel.Group
	// entries is the display order, flattened across groups.
	entries []*entry.Entry
	cursor  int

	email      textinput.Model
	password   textinput.Model
	loginFocus int

	search textinput.Model

	title     textinput.Model
	body      textarea.Model
	formFocus int

	note notify.Notification
	bar  bottombar.Model

	storeEvents <-chan store.Event

	termWidth  int
	termHeight int
}

// Option configures a Model.
type Option func(*Model)

func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithStoreEvents reloads the journal whenever ch reports a change made by
// another process.
func WithStoreEvents(ch <-chan store.Event) Option {
	return func(m *Model) {
		m.storeEvents = ch
	}
}

// New creates a UI model over a started session. It opens on the login form
// unless a user is already signed in.
func New(s *session.Session, opts ...Option) Model {
	th := theme.Default()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 256

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := textinput.New()
	search.Placeholder = "search titles and content"
	search.Prompt = "/"

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 256

	body := textarea.New()
	body.Placeholder = "What happened today?"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetHeight(8)

	m := Model{
		ctx:      context.Background(),
		session:  s,
		journal:  s.Journal(),
		editor:   editor.New(s.Journal()),
		log:      zap.NewNop(),
		keys:     DefaultKeyMap,
		theme:    th,
		sortBy:   viewmodel.SortNewest,
		email:    email,
		password: password,
		search:   search,
		title:    title,
		body:     body,
		bar:      bottombar.New(th.Footer),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if s.User() != nil {
		m.mode = modeList
	} else {
		m.mode = modeLogin
		m.email.Focus()
	}
	m.refresh()
	m.syncNote()
	m.updateFooter()
	return m
}

// Init starts listening for journal, notification and store changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listenJournal(m.journal.Events()),
		listenNotes(m.journal.Notifications().Changes()),
	}
	if m.storeEvents != nil {
		cmds = append(cmds, listenStore(m.storeEvents))
	}
	if m.mode == modeLogin {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		return m, nil

	case journalEventMsg:
		m.onJournalChange(msg.ChangeMsg)
		return m, listenJournal(m.journal.Events())

	case noteMsg:
		m.syncNote()
		return m, listenNotes(m.journal.Notifications().Changes())

	case storeEventMsg:
		m.log.Debug("store changed", zap.String("id", msg.ID))
		return m, tea.Batch(listenStore(m.storeEvents), reloadCmd(m.ctx, m.journal))

	case reloadedMsg:
		if msg.err != nil {
			m.bar.SetStatus("Reload failed")
		}
		return m, nil

	case signedInMsg:
		m.busy = false
		m.syncNote()
		if msg.err != nil {
			m.log.Debug("sign in", zap.Error(msg.err))
			m.password.Reset()
			m.focusLogin(1)
			m.updateFooter()
			return m, nil
		}
		m.email.Blur()
		m.password.Reset()
		m.password.Blur()
		m.mode = modeList
		m.cursor = 0
		m.refresh()
		m.updateFooter()
		return m, nil

	case signedOutMsg:
		m.busy = false
		if msg.err != nil {
			m.bar.SetStatus("Log out failed: " + msg.err.Error())
			return m, nil
		}
		m.editor.Close()
		m.resetForm()
		m.query = ""
		m.search.Reset()
		m.mode = modeLogin
		m.focusLogin(0)
		m.refresh()
		m.updateFooter()
		return m, textinput.Blink

	case createdMsg:
		m.busy = false
		m.syncNote()
		if msg.err != nil {
			// Keep the form so nothing typed is lost.
			m.updateFooter()
			return m, nil
		}
		m.resetForm()
		m.mode = modeList
		m.refresh()
		if msg.entry != nil {
			m.selectID(msg.entry.ID)
		}
		m.updateFooter()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if key.Matches(msg, m.keys.Dismiss) {
			m.journal.Notifications().Dismiss()
			m.note = notify.Notification{}
			return m, nil
		}
		switch m.mode {
		case modeLogin:
			cmd = m.handleLogin(msg)
		case modeList:
			cmd = m.handleList(msg)
		case modeSearch:
			cmd = m.handleSearch(msg)
		case modeCompose, modeEdit:
			cmd = m.handleForm(msg)
		case modeDetail:
			cmd = m.handleDetail(msg)
		case modeConfirmDelete:
			cmd = m.handleConfirm(msg)
		}
		m.updateFooter()
		return m, cmd
	}

	// Cursor blinks and the like go to whichever input has focus.
	return m, m.updateFocused(msg)
}

func (m *Model) handleLogin(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return tea.Quit
	case key.Matches(msg, m.keys.Next), msg.Type == tea.KeyDown:
		m.focusLogin(m.loginFocus + 1)
		return nil
	case key.Matches(msg, m.keys.Prev), msg.Type == tea.KeyUp:
		m.focusLogin(m.loginFocus - 1)
		return nil
	case key.Matches(msg, m.keys.Submit):
		if m.loginFocus == 0 {
			m.focusLogin(1)
			return nil
		}
		email := strings.TrimSpace(m.email.Value())
		if email == "" {
			m.focusLogin(0)
			m.bar.SetStatus("Enter your email")
			return nil
		}
		m.busy = true
		m.bar.SetStatus("Signing in…")
		return signInCmd(m.ctx, m.session, email, m.password.Value())
	}
	return m.updateFocused(msg)
}

func (m *Model) focusLogin(i int) {
	m.loginFocus = (i + 2) % 2
	if m.loginFocus == 0 {
		m.password.Blur()
		m.email.Focus()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

func (m *Model) handleList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
	case key.Matches(msg, m.keys.Open):
		if e := m.selected(); e != nil {
			if err := m.editor.Open(e); err == nil {
				m.mode = modeDetail
			}
		}
	case key.Matches(msg, m.keys.Compose):
		m.mode = modeCompose
		return m.focusForm(0)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m.search.Focus()
	case key.Matches(msg, m.keys.Sort):
		m.sortBy = nextSort(m.sortBy)
		m.refresh()
		m.bar.SetStatus(sortLabel(m.sortBy))
	case key.Matches(msg, m.keys.Reload):
		return reloadCmd(m.ctx, m.journal)
	case key.Matches(msg, m.keys.SignOut):
		m.busy = true
		return signOutCmd(m.ctx, m.session)
	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.query = ""
			m.search.Reset()
			m.refresh()
		}
	}
	return nil
}

func (m *Model) handleSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.search.Blur()
		m.mode = modeList
		return nil
	case key.Matches(msg, m.keys.Back):
		m.search.Reset()
		m.search.Blur()
		m.query = ""
		m.mode = modeList
		m.refresh()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

// handleForm drives both the compose form and the edit form.
func (m *Model) handleForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.mode == modeEdit {
			_ = m.editor.Cancel()
			m.mode = modeDetail
		} else {
			m.mode = modeList
		}
		m.resetForm()
		return nil
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		return m.focusForm(1 - m.formFocus)
	case key.Matches(msg, m.keys.Save):
		if m.mode == modeCompose {
			m.busy = true
			return createCmd(m.ctx, m.journal, m.title.Value(), m.body.Value())
		}
		m.saveEdit()
		return nil
	}
	return m.updateFocused(msg)
}

// saveEdit commits the edit form through the editor. On failure the editor
// stays in Editing and the form keeps its text.
func (m *Model) saveEdit() {
	_ = m.editor.SetTitle(m.title.Value())
	_ = m.editor.SetContent(m.body.Value())
	err := m.editor.Save(m.ctx)
	m.syncNote()
	if err != nil {
		m.log.Debug("save entry", zap.Error(err))
		return
	}
	m.resetForm()
	m.mode = modeDetail
	m.refresh()
}

func (m *Model) handleDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.editor.Close()
		m.mode = modeList
	case key.Matches(msg, m.keys.Edit):
		if err := m.editor.EnterEdit(); err != nil {
			return nil
		}
		d := m.editor.Draft()
		m.title.SetValue(d.Title)
		m.body.SetValue(d.Content)
		m.mode = modeEdit
		return m.focusForm(0)
	case key.Matches(msg, m.keys.Delete):
		m.mode = modeConfirmDelete
	}
	return nil
}

func (m *Model) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		err := m.editor.Delete(m.ctx)
		m.syncNote()
		if err != nil {
			m.log.Debug("delete entry", zap.Error(err))
			m.mode = modeDetail
			return nil
		}
		m.mode = modeList
		m.refresh()
	default:
		m.mode = modeDetail
	}
	return nil
}

func (m *Model) focusForm(i int) tea.Cmd {
	m.formFocus = i
	if i == 0 {
		m.body.Blur()
		return m.title.Focus()
	}
	m.title.Blur()
	return m.body.Focus()
}

func (m *Model) resetForm() {
	m.title.Reset()
	m.title.Blur()
	m.body.Reset()
	m.body.Blur()
	m.formFocus = 0
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeLogin:
		if m.loginFocus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeCompose, modeEdit:
		if m.formFocus == 0 {
			m.title, cmd = m.title.Update(msg)
		} else {
			m.body, cmd = m.body.Update(msg)
		}
	}
	return cmd
}

// onJournalChange recomputes the view and keeps the open entry in step with
// the cache.
func (m *Model) onJournalChange(ev journal.ChangeMsg) {
	m.refresh()
	if m.mode != modeDetail && m.mode != modeConfirmDelete {
		return
	}
	open := m.editor.Entry()
	if open == nil {
		return
	}
	latest, ok := m.journal.Get(open.ID)
	if !ok {
		m.editor.Close()
		m.mode = modeList
		m.bar.SetStatus("The entry was removed")
		return
	}
	if ev.Action == journal.ChangeUpdate || ev.Action == journal.ChangeReload {
		_ = m.editor.Open(latest)
	}
}

// refresh recomputes groups from the journal, keeping the selection on the
// same entry when it is still listed.
func (m *Model) refresh() {
	var keep string
	if e := m.selected(); e != nil {
		keep = e.ID
	}
	if m.sortBy.Grouped() {
		m.groups = m.journal.View(viewmodel.WithOrder(m.sortBy.Order()), viewmodel.WithQuery(m.query))
		m.entries = viewmodel.Flatten(m.groups)
	} else {
		m.groups = nil
		m.entries = viewmodel.SortByTitle(m.journal.Entries(), viewmodel.WithQuery(m.query))
	}
	if keep == "" || !m.selectID(keep) {
		m.clampCursor()
	}
}

func (m *Model) selectID(id string) bool {
	for i, e := range m.entries {
		if e.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() *entry.Entry {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return m.entries[m.cursor]
}

func (m *Model) syncNote() {
	m.note, _ = m.journal.Notifications().Current()
}

func (m *Model) updateFooter() {
	m.bar.SetMode(m.mode.String())
	switch m.mode {
	case modeLogin:
		m.bar.SetHelp(m.keys.loginHelp()...)
	case modeList:
		m.bar.SetHelp(m.keys.listHelp(m.fullHelp)...)
	case modeSearch:
		m.bar.SetHelp(m.keys.searchHelp()...)
	case modeCompose, modeEdit:
		m.bar.SetHelp(m.keys.formHelp()...)
	case modeDetail:
		m.bar.SetHelp(m.keys.detailHelp()...)
	case modeConfirmDelete:
		m.bar.SetHelp(m.keys.confirmHelp()...)
	}
}

// applySizes recalculates widget sizes based on current terminal size.
func (m *Model) applySizes() {
	w := m.width()
	m.email.Width = w - 12
	m.password.Width = w - 12
	m.search.Width = w - 4
	m.title.Width = w - 4
	m.body.SetWidth(w)
	h := m.termHeight - 12
	if h < 3 {
		h = 3
	}
	m.body.SetHeight(h)
}

func (m Model) width() int {
	if m.termWidth > 0 {
		return m.termWidth
	}
	return defaultWidth
}

// listHeight is the number of list lines that fit, zero when unknown.
func (m Model) listHeight() int {
	if m.termHeight == 0 {
		return 0
	}
	h := m.termHeight - 7
	if h < 3 {
		h = 3
	}
	return h
}

func nextSort(s viewmodel.Sort) viewmodel.Sort {
	switch s {
	case viewmodel.SortNewest:
		return viewmodel.SortOldest
	case viewmodel.SortOldest:
		return viewmodel.SortTitle
	}
	return viewmodel.SortNewest
}

func sortLabel(s viewmodel.Sort) string {
	switch s {
	case viewmodel.SortOldest:
		return "Sort by Date (oldest first)"
	case viewmodel.SortTitle:
		return "Sort by Title"
	}
	return "Sort by Date (newest first)"
}

// View renders the header, the body for the current mode, the notification
// bar and the footer.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeLogin:
		body = m.loginView()
	case modeList, modeSearch:
		body = m.listView()
	case modeCompose:
		body = m.formView("Daily Diary")
	case modeEdit:
		body = m.formView("Edit entry")
	case modeDetail:
		body = m.detailView()
	case modeConfirmDelete:
		body = m.detailView() + "\n\n" + m.theme.Detail.Confirm.Render("Delete this entry? (y/n)")
	}

	parts := []string{m.headerView(), body}
	if n := m.noticeView(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, m.bar.View(m.width()))
	return strings.Join(parts, "\n\n")
}

func (m Model) headerView() string {
	h := m.theme.Header.Title.Render("Diary")
	if u := m.session.User(); u != nil {
		h += "  " + m.theme.Header.Meta.Render(u.Email)
	}
	if m.mode == modeList || m.mode == modeSearch {
		h += "  " + m.theme.Header.Meta.Render(fmt.Sprintf("%d entries · %s", len(m.entries), sortLabel(m.sortBy)))
	}
	return h
}

func (m Model) loginView() string {
	label := func(text string, focused bool) string {
		if focused {
			return m.theme.Form.Focused.Render(text)
		}
		return m.theme.Form.Label.Render(text)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Form.Heading.Render("Sign in"),
		"",
		label("Email    ", m.loginFocus == 0)+" "+m.email.View(),
		label("Password ", m.loginFocus == 1)+" "+m.password.View(),
	)
}

func (m Model) listView() string {
	var b strings.Builder
	if m.mode == modeSearch {
		b.WriteString(m.search.View() + "\n\n")
	} else if m.query != "" {
		b.WriteString(m.theme.List.Search.Render(fmt.Sprintf("Filter: %q (esc to clear)", m.query)) + "\n\n")
	}

	if len(m.entries) == 0 {
		if m.query != "" {
			b.WriteString(m.theme.List.Empty.Render("No entries match."))
		} else {
			b.WriteString(m.theme.List.Empty.Render("No entries yet. Press n to write one."))
		}
		return b.String()
	}

	var (
		lines []string
		focus int
		idx   int
	)
	add := func(e *entry.Entry, stamp string) {
		if idx == m.cursor {
			focus = len(lines)
		}
		lines = append(lines, m.entryLine(e, stamp, idx == m.cursor))
		idx++
	}
	if m.sortBy.Grouped() {
		for _, g := range m.groups {
			lines = append(lines, m.theme.List.Day.Render(dayHeading(g))+m.theme.List.Count.Render(fmt.Sprintf(" · %d", len(g.Entries))))
			for _, e := range g.Entries {
				add(e, e.Created.Local().Format("15:04"))
			}
		}
	} else {
		for _, e := range m.entries {
			add(e, e.Created.Display())
		}
	}
	b.WriteString(strings.Join(window(lines, focus, m.listHeight()), "\n"))
	return b.String()
}

func (m Model) entryLine(e *entry.Entry, stamp string, selected bool) string {
	marker := "  "
	title := m.theme.List.Entry.Render(e.Title)
	if selected {
		marker = "› "
		title = m.theme.List.Selected.Render(e.Title)
	}
	if stamp != "" {
		stamp = m.theme.List.Time.Render(stamp) + "  "
	}
	return marker + stamp + title
}

func dayHeading(g viewmodel.Group) string {
	if !g.Date.IsZero() {
		return g.Date.Format(dayLayout)
	}
	if g.Day != "" {
		return g.Day
	}
	return "Undated"
}

// window returns at most height lines around focus.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

func (m Model) detailView() string {
	e := m.editor.Entry()
	if e == nil {
		return ""
	}
	w := m.width()
	lines := []string{
		m.theme.Detail.Title.Render(e.Title),
	}
	if !e.Created.IsZero() {
		lines = append(lines, m.theme.Detail.Date.Render(e.Created.Local().Format(detailDateLayout)))
	}
	lines = append(lines, "", m.theme.Detail.Body.Render(wordwrap.String(e.Content, w)))
	if e.Feedback != "" {
		lines = append(lines, "",
			m.theme.Detail.Label.Render("Feedback"),
			m.theme.Detail.Feedback.Render(wordwrap.String(e.Feedback, w-2)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formView(heading string) string {
	label := func(text string, focused bool) string {
		if focused {
			return m.theme.Form.Focused.Render(text)
		}
		return m.theme.Form.Label.Render(text)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Form.Heading.Render(heading),
		"",
		label("Title", m.formFocus == 0),
		m.title.View(),
		"",
		label("Content", m.formFocus == 1),
		m.body.View(),
	)
}

func (m Model) noticeView() string {
	if m.note.IsZero() {
		return ""
	}
	style := m.theme.Notice.Success
	if m.note.Status == notify.StatusError {
		style = m.theme.Notice.Error
	}
	return style.Render(m.note.Message) + "  " + m.theme.Notice.Hint.Render("(ctrl+x to dismiss)")
}
