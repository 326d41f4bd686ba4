package narrative

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-console/internal/effect"
	"github.com/pixil98/go-console/internal/engine"
	"github.com/pixil98/go-console/internal/storage"
	"github.com/pixil98/go-errors"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// BeatSpec is one step of a timed narration, as stored on disk.
type BeatSpec struct {
	Template string `json:"template"`
	DelayMs  int    `json:"delay_ms,omitempty"`
}

// Spec is the narrative asset for one event type (the asset id is the event
// type). Exactly one of Template or Beats must be set: Template renders a
// single line, Beats a delayed sequence.
type Spec struct {
	Template string     `json:"template,omitempty"`
	Beats    []BeatSpec `json:"beats,omitempty"`
}

func (s *Spec) Validate() error {
	el := errors.NewErrorList()

	if s.Template == "" && len(s.Beats) == 0 {
		el.Add(fmt.Errorf("either template or beats is required"))
	}
	if s.Template != "" && len(s.Beats) > 0 {
		el.Add(fmt.Errorf("template and beats are mutually exclusive"))
	}
	for i, b := range s.Beats {
		if b.Template == "" {
			el.Add(fmt.Errorf("beat %d: template is required", i))
		}
		if b.DelayMs < 0 {
			el.Add(fmt.Errorf("beat %d: delay_ms must not be negative", i))
		}
	}

	return el.Err()
}

// Output is a rendered narration: either a single line or a beat sequence.
type Output struct {
	Text  string
	Beats []effect.Beat
}

// eventData is what templates render against.
type eventData struct {
	Type    string
	Session string
	Data    map[string]string
}

// Renderer turns engine events into printable narration using per-event-type
// templates. An event type without a template renders nothing.
type Renderer struct {
	specs storage.Storer[*Spec]
}

func NewRenderer(specs storage.Storer[*Spec]) *Renderer {
	return &Renderer{specs: specs}
}

// Render expands the template registered for ev's type. The second return is
// false when no narration exists for the event type or the template fails to
// expand; a broken template downgrades to a log warning rather than breaking
// the command that declared the event.
func (r *Renderer) Render(ev engine.Event) (Output, bool) {
	spec := r.specs.Get(ev.Type)
	if spec == nil {
		return Output{}, false
	}

	data := &eventData{Type: ev.Type, Session: ev.Session, Data: ev.Data}

	if spec.Template != "" {
		text, err := expand(spec.Template, data)
		if err != nil {
			slog.Warn("narrative template failed", "event", ev.Type, "error", err)
			return Output{}, false
		}
		return Output{Text: text}, true
	}

	beats := make([]effect.Beat, 0, len(spec.Beats))
	for i, b := range spec.Beats {
		text, err := expand(b.Template, data)
		if err != nil {
			slog.Warn("narrative beat template failed", "event", ev.Type, "beat", i, "error", err)
			return Output{}, false
		}
		beats = append(beats, effect.Beat{Text: text, DelayMs: b.DelayMs})
	}
	return Output{Beats: beats}, true
}

func expand(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
