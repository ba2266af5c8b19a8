package tui

import (
	"io"

	"mylittlepric-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Messages sent from the dispatch goroutine to Bubble Tea ────────────────

type replyMsg struct {
	reply *api.ChatReply
}

type streamStartedMsg struct{}

type streamEventMsg struct {
	event api.StreamEvent
}

type streamDoneMsg struct{}

type streamErrMsg struct {
	err error
}

// ─── Dispatch command ───────────────────────────────────────────────────────
//
// dispatchMessage posts the message in a goroutine and forwards whatever the
// dispatcher produced, one synchronous reply or a sequence of classified
// events, through a channel. Each waitForStream call reads one message; the
// model's Update re-issues waitForStream after every chunk.
//
// The channel survives a session refresh: a response from a stale session
// folds into the current state when it arrives. An explicit cancel closes
// the done channel instead, so the goroutine stops forwarding and the
// response body is closed rather than left behind a full buffer.

var (
	activeStreamCh   chan tea.Msg
	activeStreamDone chan struct{}
)

func dispatchMessage(client api.AssistantAPI, sessionID, text string) tea.Cmd {
	ch := make(chan tea.Msg, 32)
	done := make(chan struct{})
	activeStreamCh = ch
	activeStreamDone = done

	go func() {
		defer close(ch)

		reply, stream, err := client.SendMessage(sessionID, text)
		if err != nil {
			send(ch, done, streamErrMsg{err: err})
			return
		}
		if reply != nil {
			send(ch, done, replyMsg{reply: reply})
			return
		}

		defer stream.Close()
		if !send(ch, done, streamStartedMsg{}) {
			return
		}
		for {
			ev, err := stream.Next()
			if err == io.EOF {
				send(ch, done, streamDoneMsg{})
				return
			}
			if err != nil {
				send(ch, done, streamErrMsg{err: err})
				return
			}
			if !send(ch, done, streamEventMsg{event: ev}) {
				return
			}
		}
	}()

	return waitForStream(ch)
}

// send forwards one message unless the request has been cancelled. It never
// blocks past a cancel: once done is closed the message is dropped.
func send(ch chan<- tea.Msg, done <-chan struct{}, msg tea.Msg) bool {
	select {
	case ch <- msg:
		return true
	case <-done:
		return false
	}
}

// waitForStream reads the next message from the channel.
func waitForStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamDoneMsg{}
		}
		return msg
	}
}
