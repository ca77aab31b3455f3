package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arcane/internal/engine"
	"arcane/internal/storage"
	"arcane/internal/ui"
)

const boardMessages = 8

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Add      key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete: key.NewBinding(key.WithKeys("c", " "), key.WithHelp("c/space", "complete")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add quest")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+c")),
	}
}

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	sess engine.Session
	keys keyMap

	width  int
	height int

	status   *engine.Status
	quests   []storage.Quest
	messages []storage.SystemMessage

	selected int
	adding   bool
	input    textinput.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status   *engine.Status
	quests   []storage.Quest
	messages []storage.SystemMessage
	err      error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type deletedMsg struct {
	title string
	err   error
}

type addedMsg struct {
	quest *storage.Quest
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service, sess engine.Session) boardModel {
	ti := textinput.New()
	ti.Placeholder = "New quest title"
	ti.CharLimit = 200
	ti.Width = 40

	return boardModel{
		ctx:     ctx,
		svc:     svc,
		sess:    sess,
		keys:    defaultKeys(),
		input:   ti,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx, m.sess)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.Quests(m.ctx, m.sess)
		if err != nil {
			return loadedMsg{err: err}
		}
		msgs, err := m.svc.Messages(m.ctx, m.sess)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{status: st, quests: quests, messages: msgs}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, m.sess, id)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) deleteCmd(q storage.Quest) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{title: q.Title, err: m.svc.DeleteQuest(m.ctx, m.sess, q.ID)}
	}
}

func (m boardModel) addCmd(title string) tea.Cmd {
	return func() tea.Msg {
		q, err := m.svc.AddQuest(m.ctx, m.sess, engine.NewQuest{Title: title})
		return addedMsg{quest: q, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.quests = msg.quests
		m.messages = msg.messages
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completeLog(msg.res)
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = "Deleted " + msg.title + "."
		return m, m.loadCmd()
	case addedMsg:
		if msg.err != nil {
			m.lastLog = "Add failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Assigned %s (+%d XP, %s).", msg.quest.Title, msg.quest.XP, msg.quest.Priority)
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m boardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		m.lastLog = "Cancelled."
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		title := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		if title == "" {
			m.lastLog = "Title is required."
			return m, nil
		}
		m.lastLog = "Assigning…"
		return m, m.addCmd(title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visibleQuests())-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Complete):
		q, ok := m.current()
		if !ok {
			return m, nil
		}
		if q.Completed {
			m.lastLog = "Already completed."
			return m, nil
		}
		m.lastLog = "Completing " + q.Title + "…"
		return m, m.completeCmd(q.ID)
	case key.Matches(msg, m.keys.Delete):
		q, ok := m.current()
		if !ok {
			return m, nil
		}
		m.lastLog = "Deleting " + q.Title + "…"
		return m, m.deleteCmd(q)
	}
	return m, nil
}

func completeLog(res *engine.CompleteResult) string {
	var b strings.Builder
	switch {
	case res.Blocked:
		b.WriteString("Completed, but XP gain is locked.")
	case res.Reduced:
		fmt.Fprintf(&b, "Completed: +%d XP (reduced).", res.XPAwarded)
	default:
		fmt.Fprintf(&b, "Completed: +%d XP.", res.XPAwarded)
	}
	if res.LevelUp {
		fmt.Fprintf(&b, " Level %d → %d!", res.LevelBefore, res.LevelAfter)
	}
	if res.Stabilized {
		b.WriteString(" System stabilized.")
	}
	return b.String()
}

// visibleQuests is what the board lists: everything still open plus today's
// finished quests, earliest due first.
func (m boardModel) visibleQuests() []storage.Quest {
	today := m.svc.Today()
	var out []storage.Quest
	for _, q := range m.quests {
		if !q.Completed || q.DueDate == today {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func (m boardModel) current() (storage.Quest, bool) {
	qs := m.visibleQuests()
	if m.selected < 0 || m.selected >= len(qs) {
		return storage.Quest{}, false
	}
	return qs[m.selected], true
}

func (m *boardModel) clampSelection() {
	n := len(m.visibleQuests())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	leftW := 52
	if m.width > 0 {
		leftW = max(30, m.width*3/5)
	}
	main := ui.Panel.Width(leftW).Render(m.renderQuests())
	side := ui.Panel.Render(m.renderMessages())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)

	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return ui.Title.Render("Arcane: loading…")
	}
	st := m.status
	line := fmt.Sprintf("%s  %s  %s  %s  %s",
		ui.Title.Render(st.User.Username),
		ui.LabelValue("Level", st.Level),
		ui.LabelValue("Rank", ui.RankText(st.Rank.Name, rankPosition(st.Rank.Name), len(engine.Ranks))),
		ui.LabelValue("XP", st.User.XP),
		ui.ProgressBar(int(st.Progress.Percentage), 20),
	)
	var badges []string
	if st.User.XPLocked {
		badges = append(badges, ui.BadgeLocked)
	}
	if st.User.XPReduced {
		badges = append(badges, ui.BadgeReduced)
	}
	if st.User.Streak > 0 {
		badges = append(badges, ui.Gold.Render(fmt.Sprintf("%s %d", ui.IconFlame, st.User.Streak)))
	}
	badges = append(badges, ui.Muted.Render(fmt.Sprintf("today %d/%d", st.TodayCompleted, st.TodayTotal)))
	return line + "\n" + strings.Join(badges, "  ")
}

func (m boardModel) renderQuests() string {
	out := []string{ui.PanelTitle.Render("Quests")}
	if m.loading && m.status == nil {
		return strings.Join(append(out, "Loading…"), "\n")
	}
	qs := m.visibleQuests()
	if len(qs) == 0 {
		out = append(out, ui.Muted.Render("(no open quests; press a to add one)"))
	}
	today := m.svc.Today()
	for i, q := range qs {
		line := fmt.Sprintf("%s %s %s %s",
			ui.QuestIcon(q.Completed, q.Recurring),
			q.Title,
			ui.Muted.Render(fmt.Sprintf("+%d", q.XP)),
			dueLabel(q, today),
		)
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		out = append(out, line)
	}
	if m.adding {
		out = append(out, "", m.input.View())
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderMessages() string {
	out := []string{ui.PanelTitle.Render("System")}
	if len(m.messages) == 0 {
		out = append(out, ui.Muted.Render("(quiet)"))
	}
	for i, msg := range m.messages {
		if i == boardMessages {
			break
		}
		out = append(out, ui.MessageText(msg.Type, msg.Message))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	var help []string
	for _, b := range []key.Binding{m.keys.Up, m.keys.Down, m.keys.Complete, m.keys.Delete, m.keys.Add, m.keys.Refresh, m.keys.Quit} {
		h := b.Help()
		help = append(help, ui.Key.Render(h.Key)+" "+h.Desc)
	}
	return ui.Muted.Render(m.lastLog) + "\n" + strings.Join(help, "  ")
}

func dueLabel(q storage.Quest, today civil.Date) string {
	switch d := engine.DaysBetween(today, q.DueDate); {
	case d == 0:
		return ui.H2.Render("today")
	case d < 0:
		return ui.Bad.Render(fmt.Sprintf("overdue %dd", -d))
	case d == 1:
		return ui.Muted.Render("tomorrow")
	default:
		return ui.Muted.Render(q.DueDate.String())
	}
}

func rankPosition(name string) int {
	for i, r := range engine.Ranks {
		if r.Name == name {
			return i
		}
	}
	return 0
}
