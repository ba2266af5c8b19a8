package api

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// ─── Event kinds ────────────────────────────────────────────────────────────

// Recognized stream record tags. Anything the backend sends outside this set
// is kept verbatim under its own tag; records with no usable {type, data}
// envelope are classified as KindUnknown.
const (
	KindQuery               = "query" // synthetic: the user's own message, never sent by the backend
	KindIntent              = "intent"
	KindCategory            = "category"
	KindSubcategory         = "subcategory"
	KindProductInfo         = "product_info"
	KindRecommendedProducts = "recommended_products"
	KindFollowUp            = "follow_up"
	KindFinalResponse       = "final_response"
	KindError               = "error"
	KindUnknown             = "unknown"
)

// StreamEvent is one classified record from a streaming response.
type StreamEvent struct {
	Kind string
	Data any
	Time time.Time
}

// Text returns the event payload when it is a plain string.
func (ev StreamEvent) Text() (string, bool) {
	s, ok := ev.Data.(string)
	return s, ok
}

// ─── Classifier ─────────────────────────────────────────────────────────────

// Classify parses one framed record and maps it to a typed StreamEvent.
//
// A record that is not valid JSON is a local decoding failure: the error is
// returned and the caller drops the record without stopping the stream. A
// record that is valid JSON but lacks a {type, data} envelope is passed
// through whole as KindUnknown.
func Classify(record string) (StreamEvent, error) {
	var raw any
	if err := json.Unmarshal([]byte(record), &raw); err != nil {
		return StreamEvent{}, fmt.Errorf("decoding stream record: %w", err)
	}

	ev := StreamEvent{Kind: KindUnknown, Data: raw, Time: time.Now()}

	obj, ok := raw.(map[string]any)
	if !ok {
		return ev, nil
	}
	tag, ok := obj["type"].(string)
	if !ok || tag == "" {
		return ev, nil
	}

	ev.Kind = tag
	data := obj["data"]

	switch tag {
	case KindProductInfo:
		if text, ok := data.(string); ok {
			ev.Data = parseProductSummary(text)
		} else {
			ev.Data = data
		}
	case KindRecommendedProducts:
		ev.Data = normalizeRecommendation(data)
	default:
		ev.Data = data
	}
	return ev, nil
}

// ─── product_info enrichment ────────────────────────────────────────────────

// ProductSummary is the best-effort reading of a product_info prose blob.
// Count and Items come from a pattern match over semi-structured text, not
// structured parsing; when nothing matches, the classifier keeps the raw
// string instead of a summary.
type ProductSummary struct {
	Text  string
	Count int
	Items []SummaryItem
}

// SummaryItem is one "name ($price)" entry from a numbered list.
type SummaryItem struct {
	Name  string
	Price string
}

var (
	summaryCountRe = regexp.MustCompile(`(?i)\b(\d+)\s+(?:matching\s+)?(?:products?|results?|items?)\b`)
	summaryEntryRe = regexp.MustCompile(`(?m)\d+\.\s+(.+?)\s+\(\$([0-9][0-9.,]*)\)`)
)

// parseProductSummary extracts a count and "name ($price)" entries from the
// summary text. Extraction is lossy: a miss returns the raw string unchanged
// rather than an error.
func parseProductSummary(text string) any {
	summary := ProductSummary{Text: text}

	if m := summaryCountRe.FindStringSubmatch(text); m != nil {
		n := 0
		_, _ = fmt.Sscanf(m[1], "%d", &n)
		summary.Count = n
	}
	for _, m := range summaryEntryRe.FindAllStringSubmatch(text, -1) {
		summary.Items = append(summary.Items, SummaryItem{Name: m[1], Price: m[2]})
	}

	if summary.Count == 0 && len(summary.Items) == 0 {
		return text
	}
	return summary
}
