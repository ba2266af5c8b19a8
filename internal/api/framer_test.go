package api

import (
	"reflect"
	"testing"
)

func TestLineFramerSingleChunk(t *testing.T) {
	var f LineFramer
	got := f.Push("one\ntwo\nthree\n")
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Push() = %v, want %v", got, want)
	}
	if rec, ok := f.Flush(); ok {
		t.Errorf("Flush() = %q, want nothing pending", rec)
	}
}

func TestLineFramerRecordAcrossChunks(t *testing.T) {
	var f LineFramer
	if got := f.Push(`{"ty`); len(got) != 0 {
		t.Fatalf("Push(partial) = %v, want no records", got)
	}
	got := f.Push(`pe":"intent","data":"x"}` + "\n")
	want := []string{`{"type":"intent","data":"x"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Push(rest) = %v, want %v", got, want)
	}
}

// Framing must not depend on where the chunk boundaries fall.
func TestLineFramerChunkingInvariance(t *testing.T) {
	payload := "alpha\nbeta\n\ngamma delta\nepsilon"
	want := frameAll(t, []string{payload})

	for size := 1; size <= len(payload); size++ {
		var chunks []string
		for i := 0; i < len(payload); i += size {
			end := min(i+size, len(payload))
			chunks = append(chunks, payload[i:end])
		}
		got := frameAll(t, chunks)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk size %d: records = %v, want %v", size, got, want)
		}
	}
}

func frameAll(t *testing.T, chunks []string) []string {
	t.Helper()
	var f LineFramer
	var out []string
	for _, c := range chunks {
		out = append(out, f.Push(c)...)
	}
	if rec, ok := f.Flush(); ok {
		out = append(out, rec)
	}
	return out
}

func TestLineFramerFlush(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pending string
		ok      bool
	}{
		{"trailing partial", "a\nbcd", "bcd", true},
		{"clean end", "a\n", "", false},
		{"empty input", "", "", false},
		{"partial only", "xyz", "xyz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f LineFramer
			f.Push(tt.input)
			rec, ok := f.Flush()
			if ok != tt.ok || rec != tt.pending {
				t.Errorf("Flush() = (%q, %v), want (%q, %v)", rec, ok, tt.pending, tt.ok)
			}
		})
	}
}

func TestLineFramerCRLF(t *testing.T) {
	var f LineFramer
	got := f.Push("one\r\ntwo\r\n")
	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Push() = %v, want %v", got, want)
	}
}

func TestLineFramerNotRestartable(t *testing.T) {
	var f LineFramer
	f.Push("leftover")
	f.Flush()
	// After Flush the buffer is gone for good.
	if got := f.Push("\n"); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("Push after Flush = %v, want one empty record", got)
	}
}
