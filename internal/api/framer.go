package api

import "strings"

// LineFramer turns an arbitrarily chunked text stream into complete
// newline-delimited records. Chunk boundaries carry no meaning: a record may
// arrive split across any number of chunks, and one chunk may complete many
// records. One framer per response body; it is not restartable.
type LineFramer struct {
	pending string
}

// Push appends a chunk and returns every record it completes, in order.
// The piece after the last newline is held back until a later Push or Flush
// finishes it. A trailing \r is stripped so CRLF streams frame the same as LF.
func (f *LineFramer) Push(chunk string) []string {
	if chunk == "" {
		return nil
	}
	parts := strings.Split(f.pending+chunk, "\n")
	f.pending = parts[len(parts)-1]
	records := parts[:len(parts)-1]
	for i, rec := range records {
		records[i] = strings.TrimSuffix(rec, "\r")
	}
	return records
}

// Flush returns the buffered partial record once the input has ended.
// The second result is false when nothing was pending.
func (f *LineFramer) Flush() (string, bool) {
	rec := strings.TrimSuffix(f.pending, "\r")
	f.pending = ""
	if rec == "" {
		return "", false
	}
	return rec, true
}
