package tui

import "github.com/charmbracelet/lipgloss"

// ─── Colors ─────────────────────────────────────────────────────────────────

var (
	colorPink    = lipgloss.Color("212") // brand accent
	colorGreen   = lipgloss.Color("78")
	colorYellow  = lipgloss.Color("220")
	colorRed     = lipgloss.Color("196")
	colorBlue    = lipgloss.Color("111")
	colorCyan    = lipgloss.Color("87")
	colorGray    = lipgloss.Color("242")
	colorDimGray = lipgloss.Color("238")
	colorWhite   = lipgloss.Color("255")
)

// ─── Welcome ────────────────────────────────────────────────────────────────

var logoTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorWhite)

var versionStyle = lipgloss.NewStyle().
	Foreground(colorGray)

var welcomeHintStyle = lipgloss.NewStyle().
	Foreground(colorGray).
	Italic(true)

var welcomeInfoLabel = lipgloss.NewStyle().
	Foreground(colorGray)

var logoTagStyle = lipgloss.NewStyle().
	Foreground(colorPink)

// ─── Input / Prompt ─────────────────────────────────────────────────────────

var promptSymbol = lipgloss.NewStyle().
	Foreground(colorPink).
	Bold(true)

// ─── Hint Bar ───────────────────────────────────────────────────────────────

var hintBarStyle = lipgloss.NewStyle().
	Foreground(colorGray)

var separatorStyle = lipgloss.NewStyle().
	Foreground(colorDimGray)

// ─── Command menu ───────────────────────────────────────────────────────────

var cmdNameStyle = lipgloss.NewStyle().
	Foreground(colorWhite)

var cmdDescStyle = lipgloss.NewStyle().
	Foreground(colorGray)

var cmdSelectedNameStyle = lipgloss.NewStyle().
	Foreground(colorPink).
	Bold(true)

var cmdSelectedDescStyle = lipgloss.NewStyle().
	Foreground(colorWhite)

// ─── Conversation ───────────────────────────────────────────────────────────

var userMsgStyle = lipgloss.NewStyle().
	Foreground(colorWhite).
	Bold(true)

var agentLabelStyle = lipgloss.NewStyle().
	Foreground(colorPink).
	Bold(true)

var statusStyle = lipgloss.NewStyle().
	Foreground(colorYellow)

var eventIntentStyle = lipgloss.NewStyle().
	Foreground(colorYellow)

var eventCategoryStyle = lipgloss.NewStyle().
	Foreground(colorBlue)

var eventSearchStyle = lipgloss.NewStyle().
	Foreground(colorCyan)

var productNameStyle = lipgloss.NewStyle().
	Foreground(colorWhite).
	Bold(true)

var productPriceStyle = lipgloss.NewStyle().
	Foreground(colorGreen).
	Bold(true)

var productMetaStyle = lipgloss.NewStyle().
	Foreground(colorGray)

var buttonStyle = lipgloss.NewStyle().
	Foreground(colorPink)

var buttonIndexStyle = lipgloss.NewStyle().
	Foreground(colorWhite).
	Bold(true)

// ─── Messages / Notices ─────────────────────────────────────────────────────

var successMsgStyle = lipgloss.NewStyle().
	Foreground(colorGreen)

var errorMsgStyle = lipgloss.NewStyle().
	Foreground(colorRed)

var warnMsgStyle = lipgloss.NewStyle().
	Foreground(colorYellow)

var dimStyle = lipgloss.NewStyle().
	Foreground(colorGray)
