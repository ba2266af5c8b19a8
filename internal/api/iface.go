package api

// AssistantAPI is the client surface the TUI depends on.
// *Client satisfies it; tests swap in fakes.
type AssistantAPI interface {
	SendMessage(sessionID, message string) (*ChatReply, *EventStream, error)
}
