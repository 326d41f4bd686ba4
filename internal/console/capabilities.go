package console

import (
	"bufio"
	"io"
	"sync"

	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 80

// inputGate implements the interpreter's LineReader capability. Pausing does
// not stop the underlying read goroutine; it holds delivery of already-read
// lines so they cannot interleave with narration being printed.
type inputGate struct {
	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
	closed bool

	// underlying is closed with the gate to unblock a pending read.
	underlying io.Closer
}

func newInputGate(underlying io.Closer) *inputGate {
	g := &inputGate{underlying: underlying}
	g.cond = sync.NewCond(&g.mu)
	return g
}

func (g *inputGate) Pause() {
	g.mu.Lock()
	g.paused = true
	g.mu.Unlock()
}

func (g *inputGate) Resume() {
	g.mu.Lock()
	g.paused = false
	g.mu.Unlock()
	g.cond.Broadcast()
}

func (g *inputGate) Close() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.cond.Broadcast()

	if g.underlying != nil {
		return g.underlying.Close()
	}
	return nil
}

// await blocks while the gate is paused. It returns false once the gate has
// been closed.
func (g *inputGate) await() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for g.paused && !g.closed {
		g.cond.Wait()
	}
	return !g.closed
}

// sink implements the interpreter's OutputSink capability: buffered,
// word-wrapped line output.
type sink struct {
	mu      sync.Mutex
	w       *bufio.Writer
	width   int
	stopped bool
}

func newSink(w io.Writer, width int) *sink {
	if width <= 0 {
		width = defaultWidth
	}
	return &sink{w: bufio.NewWriter(w), width: width}
}

func (s *sink) Print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.w.WriteString(wordwrap.String(text, s.width))
	s.w.WriteByte('\n')
}

func (s *sink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.w.Flush()
}

func (s *sink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.w.Flush()
	s.stopped = true
}

// ansiScreen clears the terminal with the standard escape sequence.
type ansiScreen struct {
	sink *sink
}

func (c *ansiScreen) Clear() {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	if c.sink.stopped {
		return
	}
	c.sink.w.WriteString("\033[2J\033[H")
	c.sink.w.Flush()
}
