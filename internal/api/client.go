package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mylittlepric-cli/internal/config"
)

const chatPath = "/api/chat"

type Client struct {
	baseURL    string
	httpClient *http.Client

	country   string
	language  string
	currency  string
	browserID string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Server, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
		country:   cfg.Country,
		language:  cfg.Language,
		currency:  cfg.Currency,
		browserID: cfg.BrowserID,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// ─── Chat request / reply ───────────────────────────────────────────────────

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Country   string `json:"country,omitempty"`
	Language  string `json:"language,omitempty"`
	Currency  string `json:"currency,omitempty"`
	BrowserID string `json:"browser_id,omitempty"`
}

// ChatReply is a synchronous (non-streaming) answer, already normalized:
// buttons and options are merged into one ordered label list and products
// are in the single client-side shape.
type ChatReply struct {
	Response      string
	Type          string
	Buttons       []string
	Products      []Product
	TotalProducts int
}

type chatReplyWire struct {
	Response string       `json:"response"`
	Type     string       `json:"type"`
	Buttons  []string     `json:"buttons"`
	Options  []string     `json:"options"`
	Products []productRaw `json:"products"`
	Metadata struct {
		TotalProducts int `json:"total_products"`
	} `json:"metadata"`
}

func decodeReply(body []byte) (*ChatReply, error) {
	var wire chatReplyWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	reply := &ChatReply{
		Response:      wire.Response,
		Type:          wire.Type,
		Buttons:       append(wire.Buttons, wire.Options...),
		TotalProducts: wire.Metadata.TotalProducts,
	}
	for _, p := range wire.Products {
		reply.Products = append(reply.Products, p.normalize())
	}
	if reply.TotalProducts == 0 {
		reply.TotalProducts = len(reply.Products)
	}
	return reply, nil
}

// ─── Dispatch ───────────────────────────────────────────────────────────────

// SendMessage posts one user message. When the server answers with a single
// JSON document the reply is returned and the stream is nil. Any other
// content type is treated as a newline-delimited event stream; the caller
// must drain it with Next and Close it.
//
// A non-2xx status or transport failure is a hard error for this request.
// No retries: the user resubmits manually.
func (c *Client) SendMessage(sessionID, message string) (*ChatReply, *EventStream, error) {
	body, err := json.Marshal(chatRequest{
		SessionID: sessionID,
		Message:   message,
		Country:   c.country,
		Language:  c.language,
		Currency:  c.currency,
		BrowserID: c.browserID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(errBody)))
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("reading response: %w", err)
		}
		reply, err := decodeReply(raw)
		if err != nil {
			return nil, nil, err
		}
		return reply, nil, nil
	}

	return nil, newEventStream(resp.Body), nil
}

// ─── Event stream ───────────────────────────────────────────────────────────

// EventStream pulls classified events off a streaming response body.
// Records that fail to parse as JSON are dropped without stopping the
// stream; blank lines are skipped.
type EventStream struct {
	body    io.ReadCloser
	framer  LineFramer
	readBuf []byte
	queued  []string
	done    bool
	readErr error
}

func newEventStream(body io.ReadCloser) *EventStream {
	return &EventStream{
		body:    body,
		readBuf: make([]byte, 4096),
	}
}

// Next returns the next classified event. It returns io.EOF after the final
// record, or the transport error that cut the stream short once every record
// received before the failure has been delivered.
func (s *EventStream) Next() (StreamEvent, error) {
	for {
		for len(s.queued) > 0 {
			rec := s.queued[0]
			s.queued = s.queued[1:]
			if strings.TrimSpace(rec) == "" {
				continue
			}
			ev, err := Classify(rec)
			if err != nil {
				continue // malformed line: drop it, keep framing
			}
			return ev, nil
		}

		if s.done {
			if s.readErr != nil {
				return StreamEvent{}, s.readErr
			}
			return StreamEvent{}, io.EOF
		}

		n, err := s.body.Read(s.readBuf)
		if n > 0 {
			s.queued = append(s.queued, s.framer.Push(string(s.readBuf[:n]))...)
		}
		if err != nil {
			s.done = true
			if rec, ok := s.framer.Flush(); ok {
				s.queued = append(s.queued, rec)
			}
			if err != io.EOF {
				s.readErr = fmt.Errorf("reading stream: %w", err)
			}
		}
	}
}

func (s *EventStream) Close() error {
	return s.body.Close()
}
