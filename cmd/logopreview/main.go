package main

import (
	"fmt"
)

// ANSI color helpers
const (
	pink  = "\033[38;2;255;121;198m"
	gray  = "\033[38;5;242m"
	white = "\033[1;37m"
	green = "\033[38;5;78m"
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"
)

func main() {
	info1 := white + "MyLittlePric CLI " + gray + "v0.1.0" + reset
	info2 := gray + "localhost:8080 · US/en/USD" + reset

	fmt.Println()
	fmt.Println(bold + "═══ Pick a logo ═══" + reset)

	// ── Option A: Price tag ──
	fmt.Println()
	fmt.Println(dim + "Option A — Price tag" + reset)
	fmt.Println()
	fmt.Printf("   %s▄▄▄▄▄▄▄▄▄▄▄%s\n", pink, reset)
	fmt.Printf("  %s▐%s %s$%s %s◉%s %s▄▄▄▄▄▀%s   %s\n", pink, reset, green, reset, white, reset, pink, reset, info1)
	fmt.Printf("   %s▀▀▀▀▀▀▀▀▀%s        %s\n", pink, reset, info2)

	// ── Option B: Shopping bag ──
	fmt.Println()
	fmt.Println(dim + "Option B — Shopping bag" + reset)
	fmt.Println()
	fmt.Printf("    %s▄▀▀▄%s\n", gray, reset)
	fmt.Printf("   %s▐▛▀▀▀▀▜▌%s   %s\n", pink, reset, info1)
	fmt.Printf("   %s▐▙▄▄▄▄▟▌%s   %s\n", pink, reset, info2)

	// ── Option C: Minimal ──
	fmt.Println()
	fmt.Println(dim + "Option C — Minimal" + reset)
	fmt.Println()
	fmt.Printf("   %s❯%s %smlp%s        %s\n", pink, reset, white, reset, info1)
	fmt.Printf("               %s\n", info2)

	fmt.Println()
}
