package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

type fakeNotifier struct {
	maxLen  int
	sent    []string
	failOn  int // 1-based segment index to fail on; 0 = never
	failErr error
}

func (f *fakeNotifier) Send(ctx context.Context, text string) error {
	if f.failOn > 0 && len(f.sent)+1 == f.failOn {
		return f.failErr
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) MaxMessageLen() int { return f.maxLen }

func TestSplitRoundTrip(t *testing.T) {
	cases := []struct {
		text     string
		maxLen   int
		segments int
	}{
		{"", 10, 0},
		{"short", 10, 1},
		{strings.Repeat("a", 10), 10, 1},
		{strings.Repeat("a", 11), 10, 2},
		{strings.Repeat("a", 25), 10, 3},
		{strings.Repeat("a", 4097), 4096, 2},
	}

	for _, c := range cases {
		segs := Split(c.text, c.maxLen)
		if len(segs) != c.segments {
			t.Errorf("Split(len=%d, max=%d) produced %d segments, want %d",
				len(c.text), c.maxLen, len(segs), c.segments)
		}
		for i, s := range segs {
			if len(s) == 0 {
				t.Errorf("segment %d is empty", i)
			}
			if len(s) > c.maxLen {
				t.Errorf("segment %d has %d bytes, cap is %d", i, len(s), c.maxLen)
			}
		}
		if got := strings.Join(segs, ""); got != c.text {
			t.Errorf("concatenation identity broken for len=%d", len(c.text))
		}
	}
}

func TestSplitNeverBisectsRunes(t *testing.T) {
	cases := []struct {
		text   string
		maxLen int
	}{
		{"abc💰def", 4},
		{"💰 TOTAL PORTFOLIO: $1,200\n🚀 AAA ⚠️ BBB 🩸", 7},
		{strings.Repeat("📈", 10), 5},
	}

	for _, c := range cases {
		segs := Split(c.text, c.maxLen)
		for i, s := range segs {
			if !utf8.ValidString(s) {
				t.Errorf("Split(%q, %d) segment %d is invalid UTF-8: %q", c.text, c.maxLen, i, s)
			}
			if len(s) > c.maxLen {
				t.Errorf("segment %d has %d bytes, cap is %d", i, len(s), c.maxLen)
			}
		}
		if got := strings.Join(segs, ""); got != c.text {
			t.Errorf("concatenation identity broken for %q", c.text)
		}

		// The transports JSON-encode each segment; a bisected rune would
		// come out the other side as replacement characters.
		var rebuilt strings.Builder
		for _, s := range segs {
			encoded, err := json.Marshal(s)
			if err != nil {
				t.Fatalf("marshal segment: %v", err)
			}
			var decoded string
			if err := json.Unmarshal(encoded, &decoded); err != nil {
				t.Fatalf("unmarshal segment: %v", err)
			}
			rebuilt.WriteString(decoded)
		}
		if rebuilt.String() != c.text {
			t.Errorf("segments do not survive JSON transport for %q: got %q", c.text, rebuilt.String())
		}
	}
}

func TestSplitExactWidths(t *testing.T) {
	segs := Split(strings.Repeat("x", 25), 10)
	if len(segs) != 3 || len(segs[0]) != 10 || len(segs[1]) != 10 || len(segs[2]) != 5 {
		t.Fatalf("want segments of 10,10,5 bytes, got %v", segLens(segs))
	}
}

func segLens(segs []string) []int {
	lens := make([]int, len(segs))
	for i, s := range segs {
		lens[i] = len(s)
	}
	return lens
}

func TestDispatchSingleSegment(t *testing.T) {
	n := &fakeNotifier{maxLen: 100}
	d := NewDispatcher(n, zerolog.Nop())

	delivered, err := d.Dispatch(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if delivered != 1 || len(n.sent) != 1 || n.sent[0] != "hello" {
		t.Fatalf("delivered=%d sent=%v", delivered, n.sent)
	}
}

func TestDispatchEmptyIsNoOp(t *testing.T) {
	n := &fakeNotifier{maxLen: 100}
	d := NewDispatcher(n, zerolog.Nop())

	delivered, err := d.Dispatch(context.Background(), "")
	if err != nil {
		t.Fatalf("empty input must not be an error: %v", err)
	}
	if delivered != 0 || len(n.sent) != 0 {
		t.Fatalf("no-op expected, delivered=%d sent=%v", delivered, n.sent)
	}
}

func TestDispatchInOrder(t *testing.T) {
	n := &fakeNotifier{maxLen: 10}
	d := NewDispatcher(n, zerolog.Nop())

	text := "0123456789abcdefghijKLMNO"
	delivered, err := d.Dispatch(context.Background(), text)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if delivered != 3 {
		t.Fatalf("delivered = %d, want 3", delivered)
	}
	if strings.Join(n.sent, "") != text {
		t.Fatalf("segments out of order or mangled: %v", n.sent)
	}
}

func TestDispatchHaltsOnFirstFailure(t *testing.T) {
	n := &fakeNotifier{maxLen: 10, failOn: 2, failErr: errors.New("transport down")}
	d := NewDispatcher(n, zerolog.Nop())

	delivered, err := d.Dispatch(context.Background(), strings.Repeat("z", 25))
	if err == nil {
		t.Fatal("expected delivery error")
	}

	var derr *DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DeliveryError, got %T", err)
	}
	if derr.Segment != 2 || derr.Total != 3 || derr.Delivered != 1 {
		t.Fatalf("DeliveryError = %+v", derr)
	}
	if delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}
	// Segment 3 must never have been attempted.
	if len(n.sent) != 1 {
		t.Errorf("sent = %v; dispatcher must stop at the failed segment", n.sent)
	}
	if !errors.Is(err, n.failErr) {
		t.Error("DeliveryError must wrap the transport error")
	}
}
