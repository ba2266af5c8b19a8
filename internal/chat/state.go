// Package chat holds the conversation state machine. All mutation goes
// through Reduce; every other layer either feeds it actions or reads the
// state it returns.
package chat

import (
	"time"

	"mylittlepric-cli/internal/api"
)

// ─── Messages ───────────────────────────────────────────────────────────────

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

type MessageKind string

const (
	KindText                MessageKind = "text"
	KindInteractive         MessageKind = "interactive"
	KindInteractiveProducts MessageKind = "interactive_products"
)

// Message is one entry in the conversation log. The log is append-only:
// a message is never mutated after creation, and insertion order is
// display order.
type Message struct {
	ID            int
	Content       string
	Sender        Sender
	Time          time.Time
	Kind          MessageKind
	Buttons       []string
	Products      []api.Product
	TotalProducts int
}

// ─── Notices ────────────────────────────────────────────────────────────────

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notice is a user-facing notification produced by a transition. Display
// and dismissal timing belong to the notifier, not to this package.
type Notice struct {
	Title       string
	Description string
	Severity    Severity
}

// ─── State ──────────────────────────────────────────────────────────────────

// State aggregates the message log, the stream-event log, and the request
// lifecycle flags. It is a value: Reduce returns a new State and never
// touches the one it was given, so earlier snapshots stay valid.
type State struct {
	Messages []Message
	Events   []api.StreamEvent

	// Loading is true from dispatch until a terminal reply, stream end, or
	// failure. Streaming is true only while a byte stream is being consumed.
	Loading   bool
	Streaming bool

	// InputLocked is recomputed from scratch on every agent message: true
	// exactly when the latest one requires a button choice over free text.
	InputLocked bool

	pendingFinal string // follow_up payload awaiting stream end
	lastQuery    string // text of the in-flight user message
	nextID       int
}

// InputDisabled reports whether free-text entry should be refused right now.
func (s State) InputDisabled() bool {
	return s.Loading || s.InputLocked
}

// LastMessage returns the newest log entry, or false for an empty log.
func (s State) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// appended copies before growing so states sharing history never alias.
func appended[T any](xs []T, x T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, x)
}
