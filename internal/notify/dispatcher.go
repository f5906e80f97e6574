package notify

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Split cuts text into contiguous segments of at most maxLen bytes.
// Concatenating the segments reproduces the input exactly, and a cut
// never lands inside a UTF-8 sequence: the report is full of multibyte
// runes, and a bisected one would reach the transport as invalid UTF-8
// and get mangled by JSON encoding. A cut may still land mid-word, which
// the transports tolerate. Empty input yields no segments. A non-positive
// maxLen is treated as no limit.
func Split(text string, maxLen int) []string {
	if len(text) == 0 {
		return nil
	}
	if maxLen <= 0 || len(text) <= maxLen {
		return []string{text}
	}

	segments := make([]string, 0, (len(text)+maxLen-1)/maxLen)
	for len(text) > maxLen {
		cut := maxLen
		// Back up to the start of the rune straddling the boundary; a
		// UTF-8 sequence is at most 4 bytes, so this moves at most 3.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			// maxLen is smaller than a single rune; a byte cut is the
			// only option left.
			cut = maxLen
		}
		segments = append(segments, text[:cut])
		text = text[cut:]
	}
	return append(segments, text)
}

// DeliveryError reports which segment failed and how many made it out.
// The dispatcher is fail-fast: nothing after the failed segment is
// attempted, since out-of-order partial reports confuse the reader.
type DeliveryError struct {
	Segment   int // 1-based index of the failed segment
	Total     int
	Delivered int
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed at segment %d/%d (%d delivered): %v",
		e.Segment, e.Total, e.Delivered, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Dispatcher splits a payload against the notifier's length cap and
// delivers the segments in order.
type Dispatcher struct {
	notifier Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(notifier Notifier, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, log: log}
}

// Dispatch delivers the text, chunked to the transport's cap. It returns
// the number of segments delivered; on failure the error is a
// *DeliveryError and no later segment has been attempted. Failures are
// not retried within a run.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) (int, error) {
	segments := Split(text, d.notifier.MaxMessageLen())
	if len(segments) == 0 {
		return 0, nil
	}

	for i, segment := range segments {
		if err := d.notifier.Send(ctx, segment); err != nil {
			d.log.Error().Int("segment", i+1).Int("total", len(segments)).Err(err).
				Msg("delivery halted")
			return i, &DeliveryError{
				Segment:   i + 1,
				Total:     len(segments),
				Delivered: i,
				Err:       err,
			}
		}
		d.log.Debug().Int("segment", i+1).Int("total", len(segments)).
			Int("bytes", len(segment)).Msg("segment delivered")
	}
	return len(segments), nil
}
