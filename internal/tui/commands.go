package tui

import (
	"fmt"
	"strings"

	"mylittlepric-cli/internal/api"
	"mylittlepric-cli/internal/chat"
	"mylittlepric-cli/internal/config"
	"mylittlepric-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Input dispatcher ───────────────────────────────────────────────────────

func (m model) dispatchInput(input string) (tea.Model, tea.Cmd) {
	if input == "?" {
		return m.cmdHelp()
	}
	if strings.HasPrefix(input, "/") {
		return m.dispatchCommand(input)
	}

	// While an interactive message is pending, free text is refused; a bare
	// number picks the matching option.
	if m.conv.InputLocked {
		if n, ok := parseIndex(input); ok {
			return m.pickOption(n)
		}
		return m, tea.Println(warnMsgStyle.Render("  ! Pick one of the numbered options first (or /new to start over)."))
	}

	return m.submit(input, false)
}

func (m model) dispatchCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help", "/h":
		return m.cmdHelp()
	case "/new", "/refresh":
		return m.cmdNew()
	case "/pick":
		return m.cmdPick(args)
	case "/history":
		return m.cmdHistory()
	case "/config":
		return m.cmdConfig()
	case "/set":
		return m.cmdSet(args)
	case "/clear":
		return m, tea.ClearScreen
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	default:
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Unknown command: %s — type /help", cmd)))
	}
}

// ─── /new ───────────────────────────────────────────────────────────────────

// cmdNew refreshes the session: both logs and all flags drop immediately and
// a new token is drawn. Anything still in flight is neither cancelled nor
// fenced; if its response arrives later it folds into the fresh state.
func (m model) cmdNew() (tea.Model, tea.Cmd) {
	m.sessionID = session.New()
	m.conv, _ = chat.Reduce(m.conv, chat.Cleared{})
	m.mode = modeIdle
	m.lastStatus = ""
	return m, tea.Println(successMsgStyle.Render("  ✓ New conversation started"))
}

// ─── /pick ──────────────────────────────────────────────────────────────────

func (m model) cmdPick(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 {
		return m, tea.Println(warnMsgStyle.Render("  ! Usage: /pick <number>"))
	}
	n, ok := parseIndex(args[0])
	if !ok {
		return m, tea.Println(warnMsgStyle.Render("  ! Usage: /pick <number>"))
	}
	return m.pickOption(n)
}

// ─── /history ───────────────────────────────────────────────────────────────

func (m model) cmdHistory() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, tea.Println(warnMsgStyle.Render("  ! History store unavailable."))
	}
	sessions, err := m.store.Sessions(10)
	if err != nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ " + err.Error()))
	}
	if len(sessions) == 0 {
		return m, tea.Println(dimStyle.Render("  No stored conversations yet."))
	}

	prints := []tea.Cmd{tea.Println(""), tea.Println(dimStyle.Render("  Recent conversations:"))}
	for _, s := range sessions {
		first := s.FirstQuery
		if len(first) > 48 {
			first = first[:45] + "..."
		}
		if first == "" {
			first = "(empty)"
		}
		prints = append(prints, tea.Println(fmt.Sprintf("  %s  %s",
			dimStyle.Render(s.LastActive.Local().Format("Jan 02 15:04")),
			first,
		)))
	}
	prints = append(prints, tea.Println(""))
	return m, tea.Sequence(prints...)
}

// ─── /config ────────────────────────────────────────────────────────────────

func (m model) cmdConfig() (tea.Model, tea.Cmd) {
	if m.cfg == nil {
		return m, tea.Println(warnMsgStyle.Render("  ! No configuration loaded."))
	}
	server := m.cfg.Server
	if server == "" {
		server = "(not set)"
	}
	return m, tea.Sequence(
		tea.Println(""),
		tea.Println(dimStyle.Render("  Profile:  ")+config.ProfileName(m.profile)),
		tea.Println(dimStyle.Render("  Server:   ")+server),
		tea.Println(dimStyle.Render("  Country:  ")+m.cfg.Country),
		tea.Println(dimStyle.Render("  Language: ")+m.cfg.Language),
		tea.Println(dimStyle.Render("  Currency: ")+m.cfg.Currency),
		tea.Println(dimStyle.Render("  Session:  ")+m.sessionID),
		tea.Println(""),
	)
}

// ─── /set ───────────────────────────────────────────────────────────────────

func (m model) cmdSet(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 2 {
		return m, tea.Println(warnMsgStyle.Render("  ! Usage: /set server|country|language|currency <value>"))
	}
	if m.cfg == nil {
		m.cfg = &config.Config{Profile: m.profile}
	}

	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "server":
		m.cfg.Server = value
	case "country":
		m.cfg.Country = strings.ToUpper(value)
	case "language":
		m.cfg.Language = strings.ToLower(value)
	case "currency":
		m.cfg.Currency = strings.ToUpper(value)
	default:
		return m, tea.Println(warnMsgStyle.Render(fmt.Sprintf("  ! Unknown setting: %s", key)))
	}

	if err := m.cfg.Save(); err != nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ " + err.Error()))
	}
	if m.cfg.Server != "" {
		_ = m.cfg.EnsureBrowserID()
		m.client = api.NewClient(m.cfg)
	}
	return m, tea.Println(successMsgStyle.Render(fmt.Sprintf("  ✓ %s set to %s", key, value)))
}

// ─── /help ──────────────────────────────────────────────────────────────────

func (m model) cmdHelp() (tea.Model, tea.Cmd) {
	prints := []tea.Cmd{
		tea.Println(""),
		tea.Println(dimStyle.Render("  Type a question to chat with the shopping assistant.")),
		tea.Println(dimStyle.Render("  When it offers numbered options, answer with the number.")),
		tea.Println(""),
	}
	for _, c := range slashCommands {
		padded := c.name + strings.Repeat(" ", 10-len(c.name))
		prints = append(prints, tea.Println("  "+cmdNameStyle.Render(padded)+" "+cmdDescStyle.Render(c.desc)))
	}
	prints = append(prints, tea.Println(""))
	return m, tea.Sequence(prints...)
}
