package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/p-reiter/usagewatch/internal/services/poller"
)

// Text is the streaming presenter: each cycle prints a timestamped block to
// the writer, suitable for logs and terminals without an alternate screen.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

// NewText creates a streaming presenter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Present writes one cycle. It is safe to call from the polling goroutine.
func (t *Text) Present(result poller.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "[%s] window %s\n", Timestamp(result.At), result.Window.RangeUTC())

	if result.Err != nil {
		fmt.Fprintf(t.w, "poll failed: %v\n\n", result.Err)
		return
	}

	fmt.Fprint(t.w, PlainTable(result.Summary))

	for _, alert := range result.Alerts {
		fmt.Fprintf(t.w, "!! %s\n", alert.Message)
	}

	fmt.Fprintln(t.w)
}
