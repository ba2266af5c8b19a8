package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mylittlepric-cli/internal/api"
	"mylittlepric-cli/internal/chat"
	"mylittlepric-cli/internal/config"
	"mylittlepric-cli/internal/display"
	"mylittlepric-cli/internal/history"
	"mylittlepric-cli/internal/session"
	"mylittlepric-cli/internal/tui"
)

const version = "0.1.0"

var activeProfile string

func main() {
	args := parseGlobalFlags(os.Args[1:])

	// No args → launch interactive mode (default)
	if len(args) == 0 {
		if err := tui.Run(version, activeProfile); err != nil {
			display.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	if args[0] == "-i" || args[0] == "--interactive" || args[0] == "interactive" {
		if err := tui.Run(version, activeProfile); err != nil {
			display.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	var err error

	switch args[0] {
	case "ask":
		err = cmdAsk(args[1:])
	case "set":
		err = cmdSet(args[1:])
	case "config":
		err = cmdConfig()
	case "history":
		err = cmdHistory()
	case "profiles":
		err = cmdProfiles()
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("mlp %s\n", version)
	default:
		display.Error(fmt.Sprintf("Unknown command: %s", args[0]))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		display.Error(err.Error())
		os.Exit(1)
	}
}

// parseGlobalFlags strips --profile from anywhere in the arg list.
func parseGlobalFlags(args []string) []string {
	var rest []string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--profile" || args[i] == "-P":
			if i+1 < len(args) {
				activeProfile = args[i+1]
				i++
			}
		case strings.HasPrefix(args[i], "--profile="):
			activeProfile = strings.TrimPrefix(args[i], "--profile=")
		default:
			rest = append(rest, args[i])
		}
	}
	return rest
}

// ─── ask ────────────────────────────────────────────────────────────────────

// cmdAsk sends one question outside the TUI and prints whatever comes back,
// synchronous reply or event stream.
func cmdAsk(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mlp ask \"<question>\"")
	}
	question := strings.Join(args, " ")

	cfg, err := config.Load(activeProfile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_ = cfg.EnsureBrowserID()

	client := api.NewClient(cfg)
	sessionID := session.New()

	var store *history.Store
	if path, err := config.HistoryPath(); err == nil {
		store, _ = history.Open(path)
	}
	if store != nil {
		defer store.Close()
	}
	record := func(st chat.State) {
		if store == nil {
			return
		}
		if last, ok := st.LastMessage(); ok {
			_ = store.Append(sessionID, last)
		}
	}

	state, _ := chat.Reduce(chat.State{}, chat.Submit{Text: question})
	record(state)

	reply, stream, err := client.SendMessage(sessionID, question)
	if err != nil {
		return err
	}

	if reply != nil {
		state, _ = chat.Reduce(state, chat.ReplyReceived{Reply: reply})
		record(state)
		last, _ := state.LastMessage()
		printAnswer(last)
		return nil
	}

	defer stream.Close()
	state, _ = chat.Reduce(state, chat.StreamStarted{})

	for {
		ev, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		state, _ = chat.Reduce(state, chat.EventReceived{Event: ev})
		printEvent(ev)
	}

	before := len(state.Messages)
	state, _ = chat.Reduce(state, chat.StreamEnded{})
	if len(state.Messages) > before {
		record(state)
		last, _ := state.LastMessage()
		fmt.Println()
		printAnswer(last)
	}
	return nil
}

func printAnswer(msg chat.Message) {
	fmt.Println(msg.Content)
	for i, label := range msg.Buttons {
		fmt.Printf("  %s%d.%s %s\n", display.Bold, i+1, display.Reset, label)
	}
	printProducts(msg.Products)
	if msg.Kind == chat.KindInteractive {
		fmt.Println(display.Dim + "(interactive reply — rerun ask with the option text)" + display.Reset)
	}
}

func printProducts(products []api.Product) {
	for _, p := range products {
		fmt.Printf("  %s%s%s", display.Bold, p.Name, display.Reset)
		if p.Price != "" {
			fmt.Printf("  %s%s%s", display.Green, p.Price, display.Reset)
		}
		fmt.Println()
		if p.DetailURL != "" {
			fmt.Printf("    %s%s%s\n", display.Gray, p.DetailURL, display.Reset)
		}
	}
}

func printEvent(ev api.StreamEvent) {
	if ev.Kind == api.KindQuery {
		return
	}
	text := ""
	if s, ok := ev.Text(); ok {
		text = s
	} else {
		switch data := ev.Data.(type) {
		case api.ProductSummary:
			text = fmt.Sprintf("%d products", data.Count)
		case api.Recommendation:
			fmt.Printf("%s\n", display.EventLabel(ev.Kind))
			printProducts(data.Products)
			return
		default:
			text = fmt.Sprintf("%v", ev.Data)
		}
	}
	fmt.Printf("%s %s\n", display.EventLabel(ev.Kind), text)
}

// ─── set / config / history / profiles ──────────────────────────────────────

func cmdSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: mlp set server|country|language|currency <value>")
	}
	cfg, err := config.Load(activeProfile)
	if err != nil {
		return err
	}

	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "server":
		cfg.Server = value
	case "country":
		cfg.Country = strings.ToUpper(value)
	case "language":
		cfg.Language = strings.ToLower(value)
	case "currency":
		cfg.Currency = strings.ToUpper(value)
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := cfg.Save(); err != nil {
		return err
	}
	display.Success(fmt.Sprintf("%s set to %s", key, value))
	return nil
}

func cmdConfig() error {
	cfg, err := config.Load(activeProfile)
	if err != nil {
		return err
	}
	display.Header("Configuration")
	display.Info("Profile", config.ProfileName(activeProfile))
	server := cfg.Server
	if server == "" {
		server = "(not set)"
	}
	display.Info("Server", server)
	display.Info("Country", cfg.Country)
	display.Info("Language", cfg.Language)
	display.Info("Currency", cfg.Currency)
	return nil
}

func cmdHistory() error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions(20)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		display.Warn("No stored conversations yet.")
		return nil
	}
	display.Header("Recent conversations")
	for _, s := range sessions {
		fmt.Printf("  %s%s%s  %-48s %s(%d messages)%s\n",
			display.Dim, s.LastActive.Local().Format("Jan 02 15:04"), display.Reset,
			s.FirstQuery, display.Gray, s.Messages, display.Reset)
	}
	return nil
}

func cmdProfiles() error {
	profiles, err := config.ListProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		display.Warn("No profiles found.")
		return nil
	}
	display.Header("Profiles")
	for _, p := range profiles {
		marker := " "
		if p == config.ProfileName(activeProfile) {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, p)
	}
	return nil
}

func printUsage() {
	fmt.Println(`
mlp — MyLittlePric shopping assistant

Usage:
  mlp                       Interactive chat (default)
  mlp ask "<question>"      One-shot question
  mlp set <key> <value>     Set server, country, language or currency
  mlp config                Show current configuration
  mlp history               List stored conversations
  mlp profiles              List config profiles
  mlp version               Print version

Flags:
  --profile <name>          Use an alternate config profile`)
}
