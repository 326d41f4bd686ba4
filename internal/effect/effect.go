package effect

// Kind discriminates the effect union.
type Kind int

const (
	KindPrint Kind = iota
	KindPrintSequence
	KindPauseInput
	KindResumeInput
	KindFlushOutput
	KindClearScreen
	KindExitProcess
)

func (k Kind) String() string {
	switch k {
	case KindPrint:
		return "print"
	case KindPrintSequence:
		return "print-sequence"
	case KindPauseInput:
		return "pause-input"
	case KindResumeInput:
		return "resume-input"
	case KindFlushOutput:
		return "flush-output"
	case KindClearScreen:
		return "clear-screen"
	case KindExitProcess:
		return "exit-process"
	default:
		return "unknown"
	}
}

// Beat is one step of a timed narration sequence.
type Beat struct {
	Text    string
	DelayMs int
}

// Effect describes one observable action for the host to perform. Text is set
// for KindPrint, Beats for KindPrintSequence; the control kinds carry no
// payload.
type Effect struct {
	Kind  Kind
	Text  string
	Beats []Beat
}

// Buffer is a reusable effect list. One dispatch writes one batch; Reset
// truncates without releasing the backing array so steady-state dispatches
// allocate nothing.
type Buffer struct {
	effects []Effect
}

// Reset truncates the buffer for the next dispatch.
func (b *Buffer) Reset() {
	for i := range b.effects {
		b.effects[i] = Effect{}
	}
	b.effects = b.effects[:0]
}

// Print appends a single-line print effect.
func (b *Buffer) Print(text string) {
	b.effects = append(b.effects, Effect{Kind: KindPrint, Text: text})
}

// Sequence appends a timed narration effect.
func (b *Buffer) Sequence(beats []Beat) {
	b.effects = append(b.effects, Effect{Kind: KindPrintSequence, Beats: beats})
}

// Control appends a payload-free control effect.
func (b *Buffer) Control(kind Kind) {
	b.effects = append(b.effects, Effect{Kind: kind})
}

// Effects returns the current batch. The slice is only valid until the next
// Reset.
func (b *Buffer) Effects() []Effect {
	return b.effects
}

// Len returns the number of effects in the current batch.
func (b *Buffer) Len() int {
	return len(b.effects)
}
