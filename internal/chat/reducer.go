package chat

import (
	"strings"
	"time"

	"mylittlepric-cli/internal/api"
)

// fallbackReply stands in when the backend answers without response text.
const fallbackReply = "Sorry, I didn't catch that. Could you rephrase?"

// ─── Actions ────────────────────────────────────────────────────────────────

type Action interface{ isAction() }

// Submit is the user sending free text.
type Submit struct{ Text string }

// SelectOption is the user picking a button label. It runs the same
// transition as Submit; the immediate unlock happens because Submit always
// clears the lock, and the lock is re-asserted only if the new response is
// itself interactive.
type SelectOption struct{ Label string }

// ReplyReceived is a synchronous JSON answer.
type ReplyReceived struct{ Reply *api.ChatReply }

// StreamStarted fires when the response turns out to be a stream.
type StreamStarted struct{}

// EventReceived is one classified stream record.
type EventReceived struct{ Event api.StreamEvent }

// StreamEnded fires when the stream is exhausted.
type StreamEnded struct{}

// Failed is a transport or parse failure at any stage.
type Failed struct{ Err error }

// Cleared is a session refresh: both logs and all flags are dropped,
// regardless of any request still in flight.
type Cleared struct{}

func (Submit) isAction()        {}
func (SelectOption) isAction()  {}
func (ReplyReceived) isAction() {}
func (StreamStarted) isAction() {}
func (EventReceived) isAction() {}
func (StreamEnded) isAction()   {}
func (Failed) isAction()        {}
func (Cleared) isAction()       {}

// ─── Reducer ────────────────────────────────────────────────────────────────

// Reduce folds one action into the conversation state and returns the next
// state plus an optional user-facing notice. It never retracts an appended
// message: a failed request leaves the history as-is.
func Reduce(s State, a Action) (State, *Notice) {
	switch a := a.(type) {

	case Submit:
		return reduceSubmit(s, a.Text)

	case SelectOption:
		return reduceSubmit(s, a.Label)

	case ReplyReceived:
		return reduceReply(s, a.Reply)

	case StreamStarted:
		s.Events = appended(s.Events, api.StreamEvent{
			Kind: api.KindQuery,
			Data: s.lastQuery,
			Time: time.Now(),
		})
		s.Streaming = true
		// Loading stays true until the stream ends.
		return s, nil

	case EventReceived:
		return reduceEvent(s, a.Event)

	case StreamEnded:
		if s.pendingFinal != "" {
			s = appendAgentMessage(s, Message{
				Content: s.pendingFinal,
				Kind:    KindText,
			})
		}
		s.Loading = false
		s.Streaming = false
		s.pendingFinal = ""
		s.lastQuery = ""
		return s, nil

	case Failed:
		s.Loading = false
		s.Streaming = false
		s.pendingFinal = ""
		s.lastQuery = ""
		return s, &Notice{
			Title:       "Request failed",
			Description: a.Err.Error(),
			Severity:    SeverityError,
		}

	case Cleared:
		return State{}, nil
	}

	return s, nil
}

func reduceSubmit(s State, text string) (State, *Notice) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s, nil
	}

	s.nextID++
	s.Messages = appended(s.Messages, Message{
		ID:      s.nextID,
		Content: text,
		Sender:  SenderUser,
		Time:    time.Now(),
		Kind:    KindText,
	})
	s.Loading = true
	s.InputLocked = false
	s.pendingFinal = ""
	s.lastQuery = text
	return s, nil
}

func reduceReply(s State, reply *api.ChatReply) (State, *Notice) {
	msg := Message{
		Content:       reply.Response,
		Kind:          replyKind(reply.Type),
		Buttons:       reply.Buttons,
		Products:      reply.Products,
		TotalProducts: reply.TotalProducts,
	}
	if msg.Content == "" {
		msg.Content = fallbackReply
	}

	s = appendAgentMessage(s, msg)
	s.Loading = false
	s.lastQuery = ""
	return s, nil
}

func reduceEvent(s State, ev api.StreamEvent) (State, *Notice) {
	switch ev.Kind {
	case api.KindFollowUp:
		// Captured as the pending final answer, never logged as an event.
		if text, ok := ev.Text(); ok {
			s.pendingFinal = text
		}
		return s, nil
	case api.KindFinalResponse:
		// Recognized terminal marker. Suppressed from the log like
		// follow_up; its payload is not used as the final text.
		return s, nil
	default:
		// Includes error and unrecognized tags: preserved for generic
		// display, and a mid-stream error never aborts framing.
		s.Events = appended(s.Events, ev)
		return s, nil
	}
}

// appendAgentMessage assigns the next id, appends, and recomputes the input
// lock from this message alone.
func appendAgentMessage(s State, msg Message) State {
	s.nextID++
	msg.ID = s.nextID
	msg.Sender = SenderAgent
	if msg.Time.IsZero() {
		msg.Time = time.Now()
	}
	s.Messages = appended(s.Messages, msg)
	s.InputLocked = msg.Kind == KindInteractive
	return s
}

// replyKind maps the wire type tag onto a message kind, defaulting to text.
func replyKind(t string) MessageKind {
	switch t {
	case "interactive":
		return KindInteractive
	case "interactive_prod", "interactive_products":
		return KindInteractiveProducts
	default:
		return KindText
	}
}
