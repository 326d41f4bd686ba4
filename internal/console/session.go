package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-console/internal/coordinator"
	"github.com/pixil98/go-console/internal/dispatch"
	"github.com/pixil98/go-console/internal/effect"
	"github.com/pixil98/go-console/internal/engine"
	"github.com/pixil98/go-console/internal/parse"
	"github.com/pixil98/go-console/internal/queue"
)

// Factory builds console sessions over shared collaborators. Each session
// gets its own coordinator, scratch buffers and session state, so sessions
// never share mutable data.
type Factory struct {
	Capacity   int
	Engine     engine.Executor
	NewContext func() engine.Context
	World      dispatch.World
	Renderer   dispatch.Renderer
	Events     dispatch.Publisher
}

// Session is one interactive console bound to a line-oriented transport. It
// implements service.Worker: Start reads lines until the transport closes,
// the context cancels, or an exit command fires.
type Session struct {
	rw   io.ReadWriter
	gate *inputGate
	sink *sink

	coord  *coordinator.Coordinator
	pipe   *parse.Pipeline
	state  *dispatch.SessionState
	deps   *dispatch.Deps
	interp *effect.Interpreter
	out    effect.Buffer

	done     chan struct{}
	doneOnce sync.Once
}

// SessionOpt customizes a session.
type SessionOpt func(*Session)

// WithProcess overrides the session's Process capability. The default ends
// only the session; the root stdio console passes an os.Exit-backed process
// here.
func WithProcess(p effect.Process) SessionOpt {
	return func(s *Session) {
		s.interp = effect.NewInterpreter(effect.Capabilities{
			Reader: s.gate,
			Sink:   s.sink,
			Screen: &ansiScreen{sink: s.sink},
			Proc:   p,
		})
	}
}

// NewSession builds a session over rw.
func (f *Factory) NewSession(rw io.ReadWriter, opts ...SessionOpt) *Session {
	closer, _ := rw.(io.Closer)

	s := &Session{
		rw:    rw,
		gate:  newInputGate(closer),
		sink:  newSink(rw, defaultWidth),
		pipe:  parse.NewPipeline(parse.DefaultStages()...),
		state: dispatch.NewSessionState(f.NewContext()),
		done:  make(chan struct{}),
	}

	s.coord = coordinator.New(f.Capacity, s.process)
	s.deps = &dispatch.Deps{
		World:    f.World,
		Engine:   f.Engine,
		Renderer: f.Renderer,
		Events:   f.Events,
		Queue:    s.coord,
	}

	// Default process: end this session only.
	WithProcess(&sessionProcess{session: s})(s)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// sessionProcess implements the Process capability for non-root sessions: an
// exit command tears down the session, not the host process.
type sessionProcess struct {
	session *Session
}

func (p *sessionProcess) Exit(int) {
	p.session.finish()
}

func (s *Session) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Start runs the session's read loop until the transport closes, ctx is
// canceled, or an exit effect fires.
func (s *Session) Start(ctx context.Context) error {
	defer s.finish()

	s.sink.Print("Connected. Type 'help' to get started.")
	s.sink.Flush()

	// Close the gate when the session tears down, whichever path gets there
	// first. Without this a cancellation that lands mid-narration parks the
	// drain before ResumeInput is interpreted and the delivery loop below
	// would block in gate.await forever.
	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.gate.Close()
	}()

	// Read lines into a channel so the select below stays responsive to
	// cancellation and exit.
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.rw)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-s.done:
				return
			}
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	for {
		select {
		case <-ctx.Done():
			// Shutdown: stop between items, never mid-item.
			s.coord.Stop()
			s.coord.Wait()
			return ctx.Err()

		case <-s.done:
			// Exit effect fired; the processor already stopped the
			// coordinator.
			s.coord.Wait()
			return nil

		case line, ok := <-inputChan:
			if !ok {
				// Transport closed. Let the queued backlog finish
				// before shutting the coordinator down.
				s.coord.Wait()
				s.coord.Stop()
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			// Narration in progress holds delivery here, never the
			// processing of already-queued items. A closed gate means
			// the session is tearing down.
			if !s.gate.await() {
				s.coord.Stop()
				s.coord.Wait()
				return ctx.Err()
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			trace := uuid.New().String()
			if isExitLine(line) {
				s.coord.EnqueuePriority(ctx, line, trace)
			} else {
				s.coord.Enqueue(ctx, line, trace)
			}
		}
	}
}

// process is the coordinator's per-item processor: pipeline, dispatch, then
// effect interpretation, strictly in that order.
func (s *Session) process(ctx context.Context, in queue.QueuedInput) error {
	cmd := s.pipe.Run(in.Text, nil, in.Trace)

	if err := dispatch.Dispatch(ctx, s.state, cmd, &s.out, s.deps); err != nil {
		return err
	}

	for _, e := range s.out.Effects() {
		if err := s.interp.Interpret(ctx, e); err != nil {
			return err
		}
	}
	s.sink.Flush()

	if !s.state.Running {
		s.coord.Stop()
	}
	return nil
}

// isExitLine classifies input that must jump the backlog: a user trying to
// leave should not wait behind queued game commands.
func isExitLine(line string) bool {
	i := strings.IndexAny(line, " \t")
	verb := line
	if i >= 0 {
		verb = line[:i]
	}
	switch strings.ToLower(verb) {
	case "exit", "quit", "q":
		return true
	}
	return false
}
