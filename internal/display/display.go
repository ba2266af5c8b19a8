// Package display holds plain terminal output helpers for non-TUI mode.
package display

import (
	"fmt"
	"os"
	"strings"
)

const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
	Gray   = "\033[90m"
)

func Header(text string) {
	fmt.Printf("\n%s%s%s\n", Bold+Cyan, text, Reset)
	fmt.Println(strings.Repeat("─", min(len(text)+4, 80)))
}

func Success(text string) {
	fmt.Printf("%s✓%s %s\n", Green, Reset, text)
}

func Error(text string) {
	fmt.Fprintf(os.Stderr, "%s✗%s %s\n", Red, Reset, text)
}

func Warn(text string) {
	fmt.Printf("%s!%s %s\n", Yellow, Reset, text)
}

func Info(label, value string) {
	fmt.Printf("  %s%-12s%s %s\n", Dim, label, Reset, value)
}

// EventLabel gives each stream event tag a colored prefix for one-shot mode.
func EventLabel(kind string) string {
	labels := map[string]string{
		"query":                Gray + "❯ you" + Reset,
		"intent":               Yellow + "⟳ intent" + Reset,
		"category":             Blue + "▤ category" + Reset,
		"subcategory":          Blue + "▤ preference" + Reset,
		"product_info":         Cyan + "🔎 search" + Reset,
		"recommended_products": Green + "📦 products" + Reset,
		"error":                Red + "✗ error" + Reset,
	}
	if label, ok := labels[kind]; ok {
		return label
	}
	return Gray + kind + Reset
}
