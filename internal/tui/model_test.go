package tui

import (
	"testing"

	"mylittlepric-cli/internal/api"
	"mylittlepric-cli/internal/chat"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMatchCommands(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"/", nil}, // all commands
		{"/h", []string{"/help", "/history"}},
		{"/new", []string{"/new"}},
		{"/NEW", []string{"/new"}},
		{"/zzz", nil},
	}

	for _, tt := range tests {
		got := matchCommands(tt.prefix)
		if tt.prefix == "/" {
			if len(got) != len(slashCommands) {
				t.Errorf("matchCommands(%q) returned %d commands, want all %d", tt.prefix, len(got), len(slashCommands))
			}
			continue
		}
		var names []string
		for _, c := range got {
			names = append(names, c.name)
		}
		if len(names) != len(tt.want) {
			t.Errorf("matchCommands(%q) = %v, want %v", tt.prefix, names, tt.want)
			continue
		}
		for i := range names {
			if names[i] != tt.want[i] {
				t.Errorf("matchCommands(%q)[%d] = %q, want %q", tt.prefix, i, names[i], tt.want[i])
			}
		}
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		ok   bool
	}{
		{"1", 1, true},
		{" 3 ", 3, true},
		{"-2", -2, true},
		{"one", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseIndex(tt.in)
		if n != tt.n || ok != tt.ok {
			t.Errorf("parseIndex(%q) = (%d, %v), want (%d, %v)", tt.in, n, ok, tt.n, tt.ok)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{api.KindIntent, "Understanding your request..."},
		{api.KindCategory, "Narrowing the category..."},
		{api.KindSubcategory, "Narrowing the category..."},
		{api.KindProductInfo, "Searching the catalog..."},
		{api.KindRecommendedProducts, "Picking recommendations..."},
		{"anything else", "Thinking..."},
	}
	for _, tt := range tests {
		if got := statusFor(api.StreamEvent{Kind: tt.kind}); got != tt.want {
			t.Errorf("statusFor(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCmdNewResetsConversation(t *testing.T) {
	m := model{sessionID: "111"}
	m.conv, _ = chat.Reduce(m.conv, chat.Submit{Text: "hi"})
	m.mode = modeBusy

	nm, _ := m.cmdNew()
	got := nm.(model)

	if got.sessionID == "111" {
		t.Error("session id not rotated")
	}
	if len(got.conv.Messages) != 0 || got.conv.Loading {
		t.Errorf("conversation not cleared: %+v", got.conv)
	}
	if got.mode != modeIdle {
		t.Error("mode not reset to idle")
	}
}

func TestSubmitWithoutClientWarns(t *testing.T) {
	m := model{}
	nm, cmd := m.submit("hi", false)
	got := nm.(model)

	if len(got.conv.Messages) != 0 {
		t.Error("message appended with no client configured")
	}
	if cmd == nil {
		t.Error("expected a warning print")
	}
}

func TestDispatchInputLockedRefusesFreeText(t *testing.T) {
	m := model{client: stubAPI{}}
	m.conv, _ = chat.Reduce(m.conv, chat.Submit{Text: "q"})
	m.conv, _ = chat.Reduce(m.conv, chat.ReplyReceived{Reply: &api.ChatReply{
		Response: "pick one",
		Type:     "interactive",
		Buttons:  []string{"Gold", "Silver"},
	}})
	if !m.conv.InputLocked {
		t.Fatal("precondition: locked")
	}

	nm, _ := m.dispatchInput("free text here")
	got := nm.(model)
	if n := len(got.conv.Messages); n != 2 {
		t.Errorf("free text accepted while locked: %d messages", n)
	}

	nm, _ = m.dispatchInput("2")
	got = nm.(model)
	last, _ := got.conv.LastMessage()
	if last.Content != "Silver" || last.Sender != chat.SenderUser {
		t.Errorf("numeric pick resolved to %+v, want Silver", last)
	}
}

func TestPickOptionOutOfRange(t *testing.T) {
	m := model{client: stubAPI{}}
	m.conv, _ = chat.Reduce(m.conv, chat.Submit{Text: "q"})
	m.conv, _ = chat.Reduce(m.conv, chat.ReplyReceived{Reply: &api.ChatReply{
		Response: "pick one",
		Type:     "interactive",
		Buttons:  []string{"Gold"},
	}})

	nm, _ := m.pickOption(5)
	got := nm.(model)
	if n := len(got.conv.Messages); n != 2 {
		t.Errorf("out-of-range pick submitted something: %d messages", n)
	}
}

func TestCancelKeysWhileBusy(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		activeStreamCh = make(chan tea.Msg, 32)
		activeStreamDone = make(chan struct{})
		done := activeStreamDone

		m := model{mode: modeBusy}
		m.conv, _ = chat.Reduce(m.conv, chat.Submit{Text: "hi"})

		handled, nm, cmd := m.handleKey(tea.KeyMsg{Type: key})
		if !handled {
			t.Fatalf("%v while busy not handled", key)
		}
		got := nm.(model)
		if got.mode != modeIdle {
			t.Errorf("%v: mode not reset to idle", key)
		}
		if got.conv.Loading {
			t.Errorf("%v: loading flag survived cancel", key)
		}
		if len(got.conv.Messages) != 1 {
			t.Errorf("%v: cancel retracted the user message", key)
		}
		if cmd == nil {
			t.Errorf("%v: expected a cancel notice print", key)
		}

		select {
		case <-done:
		default:
			t.Errorf("%v: cancel did not release the dispatch goroutine", key)
		}
		if activeStreamCh != nil || activeStreamDone != nil {
			t.Errorf("%v: stream channel state not cleared", key)
		}
	}
}

// stubAPI satisfies the client interface without any network.
type stubAPI struct{}

func (stubAPI) SendMessage(sessionID, message string) (*api.ChatReply, *api.EventStream, error) {
	return &api.ChatReply{Response: "ok"}, nil, nil
}
