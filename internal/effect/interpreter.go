package effect

import (
	"context"
	"fmt"
	"time"
)

// LineReader controls the host's input stream.
type LineReader interface {
	Pause()
	Resume()
	Close() error
}

// OutputSink receives printable text.
type OutputSink interface {
	Print(text string)
	Flush()
	Stop()
}

// Screen clears the host terminal.
type Screen interface {
	Clear()
}

// Process terminates the hosting session or process.
type Process interface {
	Exit(code int)
}

// Capabilities bundles the host-provided runtime surface the interpreter acts
// against.
type Capabilities struct {
	Reader LineReader
	Sink   OutputSink
	Screen Screen
	Proc   Process
}

// Interpreter maps effect descriptors to concrete actions against the host
// capabilities.
type Interpreter struct {
	caps     Capabilities
	farewell string
}

func NewInterpreter(caps Capabilities) *Interpreter {
	return &Interpreter{
		caps:     caps,
		farewell: "Goodbye!",
	}
}

// Interpret performs a single effect. Sequence delays honor ctx cancellation;
// every other action is synchronous.
func (i *Interpreter) Interpret(ctx context.Context, e Effect) error {
	switch e.Kind {
	case KindPrint:
		i.caps.Sink.Print(e.Text)

	case KindPrintSequence:
		for _, beat := range e.Beats {
			if beat.DelayMs > 0 {
				if err := sleep(ctx, time.Duration(beat.DelayMs)*time.Millisecond); err != nil {
					return err
				}
			}
			if beat.Text != "" {
				i.caps.Sink.Print(beat.Text)
			}
		}
		i.caps.Sink.Print("")

	case KindPauseInput:
		i.caps.Reader.Pause()

	case KindResumeInput:
		i.caps.Reader.Resume()

	case KindFlushOutput:
		i.caps.Sink.Flush()

	case KindClearScreen:
		i.caps.Screen.Clear()

	case KindExitProcess:
		// Order matters: the farewell must reach the sink and the sink
		// must flush before the reader closes, or the message is lost.
		i.caps.Sink.Print(i.farewell)
		i.caps.Sink.Flush()
		i.caps.Sink.Stop()
		if err := i.caps.Reader.Close(); err != nil {
			return fmt.Errorf("closing line reader: %w", err)
		}
		i.caps.Proc.Exit(0)

	default:
		return fmt.Errorf("unknown effect kind %d", e.Kind)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
