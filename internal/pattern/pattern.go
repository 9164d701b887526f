// Package pattern holds the core event/pattern data model shared by the
// melodic and percussion compilers and by the combinator library: Event,
// its three Action variants (Note, Ctrl, Rest), and Pattern itself, along
// with the canonical JSON envelope the external plugin expects.
package pattern

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/crispy-lang/crispy/internal/duration"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Action is the tagged payload an Event carries: a Note, a Ctrl, or Rest.
type Action interface {
	isAction()
	MarshalJSON() ([]byte, error)
}

// Note is a MIDI-style note-on event. NoteNum is 0..127, Velocity is
// 0.0..1.0, and Dur is the note's own sounding length (note-on to
// note-off), independent of the Event's slot duration.
type Note struct {
	NoteNum  int
	Velocity float64
	Dur      duration.Duration
}

func (Note) isAction() {}

// Transpose shifts NoteNum by amount semitones, wrapping modulo 128.
func (n Note) Transpose(amount int) Note {
	n.NoteNum = ((n.NoteNum+amount)%128 + 128) % 128
	return n
}

// WithDur returns a copy of n with its internal Dur replaced.
func (n Note) WithDur(d duration.Duration) Note {
	n.Dur = d
	return n
}

func (n Note) MarshalJSON() ([]byte, error) {
	durJSON, err := json.Marshal(n.Dur)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, `{"NoteEvent":{"note_num":%d,"velocity":%s,"dur":%s}}`,
		n.NoteNum, formatFloat(n.Velocity), durJSON), nil
}

// Ctrl is a MIDI-style control-change event. It carries no internal
// duration; only the containing Event's slot duration applies.
type Ctrl struct {
	CC    int
	Value float64
}

func (Ctrl) isAction() {}

func (c Ctrl) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, `{"CtrlEvent":{"cc":%d,"value":%s}}`, c.CC, formatFloat(c.Value)), nil
}

// Rest is a silent slot; it still consumes timeline.
type Rest struct{}

func (Rest) isAction() {}

func (Rest) MarshalJSON() ([]byte, error) {
	return []byte(`"Rest"`), nil
}

func formatFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// Event pairs an Action with the slot duration it occupies on the
// timeline — how long before the next event begins.
type Event struct {
	Action Action
	Dur    duration.Duration
}

// IsNote, IsCtrl, IsRest report the dynamic type of Action.
func (e Event) IsNote() bool { _, ok := e.Action.(Note); return ok }
func (e Event) IsCtrl() bool { _, ok := e.Action.(Ctrl); return ok }
func (e Event) IsRest() bool { _, ok := e.Action.(Rest); return ok }

// AsNote returns the inner Note and whether Action was a Note.
func (e Event) AsNote() (Note, bool) {
	n, ok := e.Action.(Note)
	return n, ok
}

// WithDur returns a copy of e with its slot Dur replaced.
func (e Event) WithDur(d duration.Duration) Event {
	e.Dur = d
	return e
}

func (e Event) MarshalJSON() ([]byte, error) {
	actionJSON, err := e.Action.MarshalJSON()
	if err != nil {
		return nil, err
	}
	durJSON, err := json.Marshal(e.Dur)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"action":`)
	buf.Write(actionJSON)
	buf.WriteString(`,"dur":`)
	buf.Write(durJSON)
	buf.WriteString(`}`)
	return buf.Bytes(), nil
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action json.RawMessage `json:"action"`
		Dur    duration.Duration `json:"dur"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	action, err := unmarshalAction(raw.Action)
	if err != nil {
		return err
	}
	e.Action = action
	e.Dur = raw.Dur
	return nil
}

func unmarshalAction(data []byte) (Action, error) {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "Rest" {
			return Rest{}, nil
		}
		return nil, fmt.Errorf("pattern: unknown action string %q", asString)
	}
	var tagged struct {
		NoteEvent *struct {
			NoteNum  int               `json:"note_num"`
			Velocity float64           `json:"velocity"`
			Dur      duration.Duration `json:"dur"`
		} `json:"NoteEvent"`
		CtrlEvent *struct {
			CC    int     `json:"cc"`
			Value float64 `json:"value"`
		} `json:"CtrlEvent"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, err
	}
	switch {
	case tagged.NoteEvent != nil:
		return Note{NoteNum: tagged.NoteEvent.NoteNum, Velocity: tagged.NoteEvent.Velocity, Dur: tagged.NoteEvent.Dur}, nil
	case tagged.CtrlEvent != nil:
		return Ctrl{CC: tagged.CtrlEvent.CC, Value: tagged.CtrlEvent.Value}, nil
	default:
		return nil, errors.New("pattern: action has neither NoteEvent nor CtrlEvent")
	}
}

// Filter transforms a Pattern into a new Pattern. Combinators in
// internal/combinator are Filters.
type Filter func(Pattern) Pattern

// Pattern is an immutable ordered sequence of Events together with the
// declared length they must sum to, plus a name and a dispatch channel.
type Pattern struct {
	Name       string
	Events     []Event
	LengthBars duration.Duration
	Channel    int
}

// New builds a Pattern with Channel defaulted to 1.
func New(name string, events []Event, length duration.Duration) Pattern {
	return Pattern{Name: name, Events: events, LengthBars: length, Channel: 1}
}

// Pipe applies each filter left to right: p.Pipe(f, g) == g(f(p)).
func (p Pattern) Pipe(filters ...Filter) Pattern {
	for _, f := range filters {
		p = f(p)
	}
	return p
}

// Concat appends other's events and adds lengths; the name is kept from p.
func (p Pattern) Concat(other Pattern) Pattern {
	events := make([]Event, 0, len(p.Events)+len(other.Events))
	events = append(events, p.Events...)
	events = append(events, other.Events...)
	return Pattern{
		Name:       p.Name,
		Events:     events,
		LengthBars: p.LengthBars.Add(other.LengthBars),
		Channel:    p.Channel,
	}
}

// Repeat concatenates n copies of p. n must be > 0.
func (p Pattern) Repeat(n int) Pattern {
	if n <= 0 {
		panic("pattern: repeat count must be positive")
	}
	result := p
	for i := 1; i < n; i++ {
		result = result.Concat(p)
	}
	return result
}

// SumDurations returns the sum of every event's slot duration.
func SumDurations(events []Event) duration.Duration {
	total := duration.Zero
	for _, ev := range events {
		total = total.Add(ev.Dur)
	}
	return total
}

// Envelope is the wire shape the external plugin expects: events plus a
// dispatch channel, with no name or length_bars (spec.md §6).
type Envelope struct {
	Events  []Event `json:"events"`
	Channel int     `json:"channel"`
}

// Envelope builds the dispatch envelope for p, defaulting Channel to 1.
func (p Pattern) Envelope() Envelope {
	ch := p.Channel
	if ch == 0 {
		ch = 1
	}
	return Envelope{Events: p.Events, Channel: ch}
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	eventsJSON, err := json.Marshal(p.Events)
	if err != nil {
		return nil, err
	}
	lengthJSON, err := json.Marshal(p.LengthBars)
	if err != nil {
		return nil, err
	}
	nameJSON, err := json.Marshal(p.Name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	buf.Write(nameJSON)
	buf.WriteString(`,"events":`)
	buf.Write(eventsJSON)
	buf.WriteString(`,"length_bars":`)
	buf.Write(lengthJSON)
	buf.WriteString(`}`)
	return buf.Bytes(), nil
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string            `json:"name"`
		Events     []Event           `json:"events"`
		LengthBars duration.Duration `json:"length_bars"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Name = raw.Name
	p.Events = raw.Events
	p.LengthBars = raw.LengthBars
	if p.Channel == 0 {
		p.Channel = 1
	}
	return nil
}
