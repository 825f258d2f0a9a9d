package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger receives every frame that crosses the socket. Direction is
// "rx" or "tx".
type RawLogger interface {
	Log(direction string, data []byte)
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewRaw returns a RawLogger that hex dumps frames to w. A nil writer yields
// a logger that discards everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w}
}

func (l *rawLogger) Log(direction string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s %d bytes\n", time.Now().Format("15:04:05.000000"), direction, len(data))
	if len(data) > 0 {
		_, _ = io.WriteString(l.w, hex.Dump(data))
	}
}

type nopRaw struct{}

func (nopRaw) Log(string, []byte) {}
