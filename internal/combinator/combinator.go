// Package combinator holds the pure pattern-to-pattern transforms that
// compose through pattern.Pattern.Pipe: reversal, rotation, transposition,
// clipping, concatenation, repetition, resizing, renaming, and the
// per-event/per-note mapping primitives everything else is built from.
package combinator

import (
	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/pattern"
	"github.com/crispy-lang/crispy/internal/scales"
)

// Rev reverses event order; the length and name are unchanged.
func Rev(p pattern.Pattern) pattern.Pattern {
	events := make([]pattern.Event, len(p.Events))
	for i, ev := range p.Events {
		events[len(events)-1-i] = ev
	}
	p.Events = events
	return p
}

// Tran transposes every Note event by amount semitones; Rest and Ctrl
// events pass through untouched.
func Tran(amount int) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		events := make([]pattern.Event, len(p.Events))
		for i, ev := range p.Events {
			if n, ok := ev.AsNote(); ok {
				events[i] = pattern.Event{Action: n.Transpose(amount), Dur: ev.Dur}
			} else {
				events[i] = ev
			}
		}
		p.Events = events
		return p
	}
}

// Rot rotates events right by n (deque.rotate semantics): the last n
// events move to the front for n > 0, the first |n| move to the back
// for n < 0.
func Rot(n int) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		length := len(p.Events)
		if length == 0 {
			return p
		}
		shift := ((n % length) + length) % length
		events := make([]pattern.Event, 0, length)
		events = append(events, p.Events[length-shift:]...)
		events = append(events, p.Events[:length-shift]...)
		p.Events = events
		return p
	}
}

// rightClip truncates events to sum to exactly length, measured from
// the left. The event straddling the boundary is kept but its slot
// duration becomes the overshoot amount — how far the running total
// passed length — not the remaining budget up to the boundary.
func rightClip(length duration.Duration, events []pattern.Event) []pattern.Event {
	runningTotal := duration.Zero
	for idx, ev := range events {
		runningTotal = runningTotal.Add(ev.Dur)
		if runningTotal.Equal(length) {
			return events[:idx+1]
		}
		if runningTotal.Greater(length) {
			remainder := runningTotal.Sub(length)
			out := make([]pattern.Event, 0, idx+1)
			out = append(out, events[:idx]...)
			out = append(out, pattern.Event{Action: events[idx].Action, Dur: remainder})
			return out
		}
	}
	return events
}

// RClip removes a trailing slice of length clipLength from the pattern.
func RClip(clipLength duration.Duration) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		if !clipLength.Less(p.LengthBars) {
			panic("combinator: rclip length must be less than the pattern's length")
		}
		newLength := p.LengthBars.Sub(clipLength)
		p.Events = rightClip(newLength, p.Events)
		p.LengthBars = newLength
		return p
	}
}

// LClip removes a leading slice of length clipLength from the pattern,
// via rightClip on the reversed event order.
func LClip(clipLength duration.Duration) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		if !clipLength.Less(p.LengthBars) {
			panic("combinator: lclip length must be less than the pattern's length")
		}
		newLength := p.LengthBars.Sub(clipLength)
		reversed := Rev(p)
		clipped := rightClip(newLength, reversed.Events)
		out := make([]pattern.Event, len(clipped))
		for i, ev := range clipped {
			out[len(out)-1-i] = ev
		}
		p.Events = out
		p.LengthBars = newLength
		return p
	}
}

// LAdd prepends other's events ahead of the piped pattern's, keeping
// the piped pattern's own name (Concat keeps the receiver's name, and
// the receiver here must stay p, not other).
func LAdd(other pattern.Pattern) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		events := make([]pattern.Event, 0, len(other.Events)+len(p.Events))
		events = append(events, other.Events...)
		events = append(events, p.Events...)
		return pattern.Pattern{
			Name:       p.Name,
			Events:     events,
			LengthBars: other.LengthBars.Add(p.LengthBars),
			Channel:    p.Channel,
		}
	}
}

// RAdd appends other's events after the piped pattern's.
func RAdd(other pattern.Pattern) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern { return p.Concat(other) }
}

// Resize rescales both LengthBars and every event's slot duration by
// scalar, leaving each Note's own internal Dur untouched.
func Resize(scalar duration.Duration) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		events := make([]pattern.Event, len(p.Events))
		for i, ev := range p.Events {
			events[i] = ev.WithDur(ev.Dur.Mul(scalar))
		}
		p.Events = events
		p.LengthBars = p.LengthBars.Mul(scalar)
		return p
	}
}

// Name renames the pattern, leaving events and length untouched.
func Name(newName string) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		p.Name = newName
		return p
	}
}

// Channel sets the MIDI dispatch channel, carried only in the
// serialization envelope. n must be 1..16.
func Channel(n int) pattern.Filter {
	if n < 1 || n > 16 {
		panic("combinator: channel must be 1..16")
	}
	return func(p pattern.Pattern) pattern.Pattern {
		p.Channel = n
		return p
	}
}

// REvery concatenates n-1 unmodified copies of the pattern followed by
// one copy run through filt.
func REvery(n int, filt pattern.Filter) pattern.Filter {
	if n <= 1 {
		panic("combinator: revery count must be greater than 1")
	}
	return func(p pattern.Pattern) pattern.Pattern {
		return p.Repeat(n - 1).Concat(filt(p))
	}
}

// LEvery concatenates one filt-transformed copy of the pattern followed
// by n-1 unmodified copies.
func LEvery(n int, filt pattern.Filter) pattern.Filter {
	if n <= 1 {
		panic("combinator: levery count must be greater than 1")
	}
	return func(p pattern.Pattern) pattern.Pattern {
		return filt(p).Concat(p.Repeat(n - 1))
	}
}

// EventFilter maps one Event to another; Each applies it uniformly,
// including to the Event's own slot duration.
type EventFilter func(pattern.Event) pattern.Event

// NoteFilter maps one Note to another; EachNote applies it only to
// Note-carrying events, leaving Rest, Ctrl, and slot durations alone.
type NoteFilter func(pattern.Note) pattern.Note

// Each maps f over every event and recomputes LengthBars as the sum of
// the resulting slot durations, so the pattern's total length follows
// whatever slot durations f returns.
func Each(f EventFilter) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		events := make([]pattern.Event, len(p.Events))
		for i, ev := range p.Events {
			events[i] = f(ev)
		}
		p.Events = events
		p.LengthBars = pattern.SumDurations(events)
		return p
	}
}

// EachNote maps f over the Note payload of every Note event, leaving
// Rest and Ctrl events, every event's slot duration, and the pattern's
// LengthBars untouched — unlike Each, EachNote never changes the total
// length.
func EachNote(f NoteFilter) pattern.Filter {
	return func(p pattern.Pattern) pattern.Pattern {
		events := make([]pattern.Event, len(p.Events))
		for i, ev := range p.Events {
			if n, ok := ev.AsNote(); ok {
				events[i] = pattern.Event{Action: f(n), Dur: ev.Dur}
			} else {
				events[i] = ev
			}
		}
		p.Events = events
		return p
	}
}

// Quantize snaps every Note's note number onto the nearest pitch class
// of scale rooted at root.
func Quantize(scale scales.Scale, root int) pattern.Filter {
	return EachNote(func(n pattern.Note) pattern.Note {
		n.NoteNum = scale.Nearest(root, n.NoteNum)
		return n
	})
}

// Velocity maps every Note's velocity through f, clamping to [0, 1].
func Velocity(f func(float64) float64) pattern.Filter {
	return EachNote(func(n pattern.Note) pattern.Note {
		v := f(n.Velocity)
		switch {
		case v < 0:
			v = 0
		case v > 1:
			v = 1
		}
		n.Velocity = v
		return n
	})
}
