package tui

import (
	"fmt"
	"strconv"
	"strings"

	"mylittlepric-cli/internal/api"
	"mylittlepric-cli/internal/chat"
	"mylittlepric-cli/internal/config"
	"mylittlepric-cli/internal/history"
	"mylittlepric-cli/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// ─── App mode ───────────────────────────────────────────────────────────────

type appMode int

const (
	modeIdle appMode = iota
	modeBusy         // a request is in flight (sync wait or streaming)
)

// ─── Slash command registry ─────────────────────────────────────────────────

type slashCmd struct {
	name string
	desc string
}

var slashCommands = []slashCmd{
	{"/clear", "Clear the screen"},
	{"/config", "Show current configuration"},
	{"/help", "Show all commands"},
	{"/history", "List stored conversations"},
	{"/new", "Start a fresh conversation"},
	{"/pick", "Pick a numbered option"},
	{"/quit", "Exit"},
	{"/set", "Set server, country, language or currency"},
}

// ─── Model ──────────────────────────────────────────────────────────────────

type model struct {
	width  int
	height int

	// Bubble Tea components
	input   textinput.Model
	spinner spinner.Model

	// App state
	mode      appMode
	cfg       *config.Config
	client    api.AssistantAPI
	store     *history.Store
	sessionID string
	version   string
	profile   string

	// Conversation state, owned by the reducer. The TUI only reads it.
	conv chat.State

	md         *glamour.TermRenderer
	lastStatus string // latest stream activity, shown on the spinner line

	// UI state
	ready        bool
	cmdMenuIdx   int
	cmdMenuOpen  bool
	lastInputVal string
	storeWarned  bool

	// Input recall
	recall      []string
	recallIdx   int
	recallSaved string
}

func initialModel(version, profile string) model {
	ti := textinput.New()
	ti.Placeholder = "Ask about a product, or type /help..."
	ti.Focus()
	ti.CharLimit = 2048
	ti.Prompt = "❯ "
	ti.PromptStyle = promptSymbol
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(colorPink)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPink)

	cfg, _ := config.Load(profile)

	var client api.AssistantAPI
	if cfg != nil && cfg.Server != "" {
		_ = cfg.EnsureBrowserID()
		client = api.NewClient(cfg)
	}

	var store *history.Store
	if path, err := config.HistoryPath(); err == nil {
		store, _ = history.Open(path)
	}

	return model{
		input:     ti,
		spinner:   sp,
		version:   version,
		profile:   profile,
		cfg:       cfg,
		client:    client,
		store:     store,
		sessionID: session.New(),
		mode:      modeIdle,
		recallIdx: -1,
	}
}

// ─── Init ───────────────────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// ─── Update ─────────────────────────────────────────────────────────────────

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.width - 6
		m.md = newMarkdownRenderer(m.width)

		if !m.ready {
			m.ready = true
			cmds = append(cmds, tea.Println(renderWelcome(m.version, serverStr(m.cfg), m.width)))
		}

	case tea.KeyMsg:
		if handled, nm, cmd := m.handleKey(msg); handled {
			return nm, cmd
		}

	// ── Dispatch results ──────────────────────────────────────────────
	case replyMsg:
		activeStreamCh = nil
		activeStreamDone = nil
		m.mode = modeIdle
		var notice *chat.Notice
		m.conv, notice = chat.Reduce(m.conv, chat.ReplyReceived{Reply: msg.reply})
		var prints []tea.Cmd
		if last, ok := m.conv.LastMessage(); ok && last.Sender == chat.SenderAgent {
			m.persist(last)
			prints = append(prints, tea.Println(renderAgentMessage(m.md, last)), tea.Println(""))
		}
		prints = append(prints, noticePrints(notice)...)
		return m, tea.Sequence(prints...)

	case streamStartedMsg:
		m.conv, _ = chat.Reduce(m.conv, chat.StreamStarted{})
		if activeStreamCh != nil {
			cmds = append(cmds, waitForStream(activeStreamCh))
		}
		return m, tea.Batch(cmds...)

	case streamEventMsg:
		m.conv, _ = chat.Reduce(m.conv, chat.EventReceived{Event: msg.event})
		m.lastStatus = statusFor(msg.event)
		if line := renderEvent(msg.event); line != "" {
			cmds = append(cmds, tea.Println(line))
		}
		if activeStreamCh != nil {
			cmds = append(cmds, waitForStream(activeStreamCh))
		}
		return m, tea.Batch(cmds...)

	case streamDoneMsg:
		activeStreamCh = nil
		activeStreamDone = nil
		m.mode = modeIdle
		m.lastStatus = ""
		before := len(m.conv.Messages)
		m.conv, _ = chat.Reduce(m.conv, chat.StreamEnded{})
		var prints []tea.Cmd
		if len(m.conv.Messages) > before {
			last, _ := m.conv.LastMessage()
			m.persist(last)
			prints = append(prints, tea.Println(renderAgentMessage(m.md, last)))
		}
		prints = append(prints, tea.Println(""))
		return m, tea.Sequence(prints...)

	case streamErrMsg:
		activeStreamCh = nil
		activeStreamDone = nil
		m.mode = modeIdle
		m.lastStatus = ""
		var notice *chat.Notice
		m.conv, notice = chat.Reduce(m.conv, chat.Failed{Err: msg.err})
		return m, tea.Sequence(noticePrints(notice)...)
	}

	// Update sub-components
	var cmd tea.Cmd

	if m.mode != modeBusy {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	// Track input changes to open/close the command menu.
	newVal := m.input.Value()
	if newVal != m.lastInputVal {
		m.lastInputVal = newVal
		if m.recallIdx != -1 && (m.recallIdx >= len(m.recall) || m.recall[m.recallIdx] != newVal) {
			m.recallIdx = -1
			m.recallSaved = ""
		}
		m.cmdMenuOpen = strings.HasPrefix(newVal, "/")
		m.cmdMenuIdx = 0
	}

	return m, tea.Batch(cmds...)
}

// handleKey covers the keys with app-level meaning; everything else falls
// through to the textinput.
func (m model) handleKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch msg.Type {

	case tea.KeyCtrlC:
		if m.mode == modeBusy {
			nm, cmd := m.cancelRequest()
			return true, nm, cmd
		}
		return true, m, tea.Quit

	case tea.KeyEsc:
		if m.mode == modeBusy {
			nm, cmd := m.cancelRequest()
			return true, nm, cmd
		}
		if m.cmdMenuOpen {
			m.cmdMenuOpen = false
			m.cmdMenuIdx = 0
			return true, m, nil
		}

	case tea.KeyUp:
		if m.mode != modeIdle {
			break
		}
		if m.cmdMenuOpen {
			if matches := matchCommands(m.input.Value()); len(matches) > 0 {
				m.cmdMenuIdx = (m.cmdMenuIdx + len(matches) - 1) % len(matches)
			}
			return true, m, nil
		}
		if len(m.recall) > 0 {
			if m.recallIdx == -1 {
				m.recallSaved = m.input.Value()
				m.recallIdx = len(m.recall) - 1
			} else if m.recallIdx > 0 {
				m.recallIdx--
			}
			m.input.SetValue(m.recall[m.recallIdx])
			m.input.CursorEnd()
			return true, m, nil
		}

	case tea.KeyDown:
		if m.mode != modeIdle {
			break
		}
		if m.cmdMenuOpen {
			if matches := matchCommands(m.input.Value()); len(matches) > 0 {
				m.cmdMenuIdx = (m.cmdMenuIdx + 1) % len(matches)
			}
			return true, m, nil
		}
		if m.recallIdx != -1 {
			m.recallIdx++
			if m.recallIdx >= len(m.recall) {
				m.recallIdx = -1
				m.input.SetValue(m.recallSaved)
				m.recallSaved = ""
			} else {
				m.input.SetValue(m.recall[m.recallIdx])
			}
			m.input.CursorEnd()
			return true, m, nil
		}

	case tea.KeyTab:
		if m.mode == modeIdle && m.cmdMenuOpen {
			if matches := matchCommands(m.input.Value()); len(matches) > 0 {
				idx := m.cmdMenuIdx
				if idx < 0 || idx >= len(matches) {
					idx = 0
				}
				m.input.SetValue(matches[idx].name + " ")
				m.input.CursorEnd()
				m.cmdMenuOpen = false
				m.cmdMenuIdx = 0
			}
			return true, m, nil
		}

	case tea.KeyEnter:
		if m.mode == modeIdle && m.cmdMenuOpen && m.cmdMenuIdx >= 0 {
			if matches := matchCommands(m.input.Value()); m.cmdMenuIdx < len(matches) {
				m.input.SetValue(matches[m.cmdMenuIdx].name + " ")
				m.input.CursorEnd()
				m.cmdMenuOpen = false
				m.cmdMenuIdx = 0
				return true, m, nil
			}
		}

		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return true, m, nil
		}
		if len(m.recall) == 0 || m.recall[len(m.recall)-1] != value {
			m.recall = append(m.recall, value)
			if len(m.recall) > 1000 {
				m.recall = m.recall[len(m.recall)-1000:]
			}
		}
		m.recallIdx = -1
		m.recallSaved = ""

		m.input.SetValue("")
		m.cmdMenuOpen = false
		m.cmdMenuIdx = 0

		nm, cmd := m.dispatchInput(value)
		return true, nm, cmd
	}

	return false, m, nil
}

// cancelRequest stops reading the active stream and releases the dispatch
// goroutine so the response body gets closed. The reducer treats it like
// any other request failure: flags reset, history preserved.
func (m model) cancelRequest() (tea.Model, tea.Cmd) {
	if activeStreamDone != nil {
		close(activeStreamDone)
		activeStreamDone = nil
	}
	activeStreamCh = nil
	m.mode = modeIdle
	m.lastStatus = ""
	m.conv, _ = chat.Reduce(m.conv, chat.Failed{Err: fmt.Errorf("cancelled")})
	return m, tea.Println(warnMsgStyle.Render("  ! Cancelled."))
}

// ─── Submitting ─────────────────────────────────────────────────────────────

// submit runs the reducer's submit transition and dispatches the request.
// asOption marks a button pick, which enters through SelectOption.
func (m model) submit(text string, asOption bool) (tea.Model, tea.Cmd) {
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ No server configured. Run /set server <url>"))
	}

	var action chat.Action = chat.Submit{Text: text}
	if asOption {
		action = chat.SelectOption{Label: text}
	}

	before := len(m.conv.Messages)
	m.conv, _ = chat.Reduce(m.conv, action)
	if len(m.conv.Messages) == before {
		return m, nil // whitespace-only: nothing was appended, nothing is sent
	}

	last, _ := m.conv.LastMessage()
	m.persist(last)
	m.mode = modeBusy
	m.lastStatus = ""

	return m, tea.Sequence(
		tea.Println(renderUserMessage(last.Content)),
		dispatchMessage(m.client, m.sessionID, last.Content),
	)
}

// pickOption resolves a 1-based index against the latest interactive message.
func (m model) pickOption(n int) (tea.Model, tea.Cmd) {
	last, ok := m.conv.LastMessage()
	if !ok || last.Sender != chat.SenderAgent || len(last.Buttons) == 0 {
		return m, tea.Println(warnMsgStyle.Render("  ! Nothing to pick right now."))
	}
	if n < 1 || n > len(last.Buttons) {
		return m, tea.Println(warnMsgStyle.Render(fmt.Sprintf("  ! Pick a number between 1 and %d.", len(last.Buttons))))
	}
	return m.submit(last.Buttons[n-1], true)
}

func (m *model) persist(msg chat.Message) {
	if m.store == nil {
		return
	}
	if err := m.store.Append(m.sessionID, msg); err != nil && !m.storeWarned {
		m.storeWarned = true
	}
}

// statusFor summarizes a stream event for the spinner line.
func statusFor(ev api.StreamEvent) string {
	switch ev.Kind {
	case api.KindIntent:
		return "Understanding your request..."
	case api.KindCategory, api.KindSubcategory:
		return "Narrowing the category..."
	case api.KindProductInfo:
		return "Searching the catalog..."
	case api.KindRecommendedProducts:
		return "Picking recommendations..."
	default:
		return "Thinking..."
	}
}

func noticePrints(notice *chat.Notice) []tea.Cmd {
	if notice == nil {
		return nil
	}
	style := warnMsgStyle
	if notice.Severity == chat.SeverityError {
		style = errorMsgStyle
	}
	return []tea.Cmd{tea.Println(style.Render(fmt.Sprintf("  ✗ %s: %s", notice.Title, notice.Description)))}
}

// ─── View ───────────────────────────────────────────────────────────────────
//
// Inline mode: View() only shows the input prompt + hints.
// All output is printed above via tea.Println.

func (m model) View() string {
	if !m.ready {
		return ""
	}

	var s strings.Builder

	if m.mode == modeBusy {
		status := "Thinking..."
		if m.lastStatus != "" {
			status = m.lastStatus
		}
		s.WriteString(m.spinner.View() + " " + statusStyle.Render(status))
	} else {
		s.WriteString(m.input.View())
	}
	s.WriteString("\n")

	sepWidth := min(m.width, 80)
	if sepWidth < 20 {
		sepWidth = 20
	}
	s.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	s.WriteString("\n")

	s.WriteString(m.renderHints())

	return s.String()
}

// ─── Hint bar ───────────────────────────────────────────────────────────────

func (m model) renderHints() string {
	if m.mode == modeBusy {
		return hintBarStyle.Render("  Esc cancel")
	}

	if m.cmdMenuOpen {
		if matches := matchCommands(m.input.Value()); len(matches) > 0 {
			return m.renderCommandMenu(matches)
		}
	}

	if m.conv.InputLocked {
		if last, ok := m.conv.LastMessage(); ok && len(last.Buttons) > 0 {
			return hintBarStyle.Render(fmt.Sprintf("  pick 1-%d   ? for help", len(last.Buttons)))
		}
	}

	return hintBarStyle.Render("  ? for help")
}

func (m model) renderCommandMenu(matches []slashCmd) string {
	maxLen := 0
	for _, c := range matches {
		if len(c.name) > maxLen {
			maxLen = len(c.name)
		}
	}

	var lines []string
	for i, c := range matches {
		padded := c.name + strings.Repeat(" ", maxLen-len(c.name))
		if i == m.cmdMenuIdx {
			lines = append(lines, "  "+cmdSelectedNameStyle.Render(padded)+"  "+cmdSelectedDescStyle.Render(c.desc))
		} else {
			lines = append(lines, "  "+cmdNameStyle.Render(padded)+"  "+cmdDescStyle.Render(c.desc))
		}
	}
	lines = append(lines, hintBarStyle.Render("  ↑↓ navigate  Tab/Enter select"))

	return strings.Join(lines, "\n")
}

// matchCommands returns all slash commands matching a prefix.
func matchCommands(prefix string) []slashCmd {
	prefix = strings.ToLower(prefix)
	if prefix == "/" {
		return slashCommands
	}
	var matches []slashCmd
	for _, c := range slashCommands {
		if strings.HasPrefix(c.name, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func serverStr(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Server
}

func parseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
