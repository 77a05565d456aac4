// Package audio rings the terminal bell.
package audio

import (
	"io"
	"os"
	"sync"
	"time"
)

// MinInterval keeps a burst of errors from ringing more than once.
const MinInterval = 250 * time.Millisecond

type Bell struct {
	mu   sync.Mutex
	w    io.Writer
	last time.Time
	now  func() time.Time
}

// NewBell writes to w, or to stdout when w is nil.
func NewBell(w io.Writer) *Bell {
	if w == nil {
		w = os.Stdout
	}
	return &Bell{w: w, now: time.Now}
}

// Ring writes an ASCII BEL unless the bell rang within MinInterval. It
// reports whether it rang.
func (b *Bell) Ring() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.now()
	if !b.last.IsZero() && t.Sub(b.last) < MinInterval {
		return false
	}
	b.last = t
	// best-effort, ignore errors
	_, _ = b.w.Write([]byte("\a"))
	return true
}
