// Package percussion compiles the linear drum notation — one lane per
// line, "NOTE = tokens" — into one pattern.Pattern per lane.
package percussion

import (
	"fmt"
	"strings"

	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/notenames"
	"github.com/crispy-lang/crispy/internal/pattern"
)

const usage = "NOTE = [Xx_.]"

// Compile parses definition, one lane per non-blank line, and returns
// one Pattern per lane in source order. Errors report the 1-based
// position of the line among non-blank lines only.
func Compile(definition string) ([]pattern.Pattern, error) {
	var patterns []pattern.Pattern
	lineNum := 0
	for _, line := range strings.Split(definition, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineNum++
		p, err := compileLine(line, lineNum)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func compileLine(line string, lineNum int) (pattern.Pattern, error) {
	laneName, tokens, ok := strings.Cut(line, "=")
	if !ok {
		return pattern.Pattern{}, fmt.Errorf("%w: line %d: %q missing '='", ErrUnsupportedNotation, lineNum, line)
	}
	laneName = strings.TrimSpace(laneName)
	tokens = strings.TrimSpace(tokens)

	noteNum, ok := notenames.ToNumber(laneName)
	if !ok {
		return pattern.Pattern{}, fmt.Errorf("%w: line %d: unknown lane note %q", ErrUnsupportedNotation, lineNum, laneName)
	}

	if tokens == "" {
		return pattern.New(laneName, nil, duration.Zero), nil
	}

	events, err := scanEvents(tokens, noteNum, lineNum)
	if err != nil {
		return pattern.Pattern{}, err
	}
	return pattern.New(laneName, events, pattern.SumDurations(events)), nil
}

// scanEvents walks tokens character by character: "." is a rest, "X"
// and "x" are accented and unaccented hits, and "+" ties onto the
// previous event by extending its slot duration instead of emitting
// a new one.
func scanEvents(tokens string, noteNum int, lineNum int) ([]pattern.Event, error) {
	var events []pattern.Event
	for _, r := range tokens {
		if r == ' ' || r == '\t' {
			continue
		}
		switch r {
		case '.':
			events = append(events, pattern.Event{Action: pattern.Rest{}, Dur: duration.Sixteenth})
		case 'X':
			events = append(events, pattern.Event{
				Action: pattern.Note{NoteNum: noteNum, Velocity: 0.9, Dur: duration.Half},
				Dur:    duration.Sixteenth,
			})
		case 'x':
			events = append(events, pattern.Event{
				Action: pattern.Note{NoteNum: noteNum, Velocity: 0.4, Dur: duration.Half},
				Dur:    duration.Sixteenth,
			})
		case '+':
			if len(events) == 0 {
				return nil, fmt.Errorf("%w: line %d: no event to tie", ErrUnsupportedNotation, lineNum)
			}
			last := events[len(events)-1]
			events[len(events)-1] = last.WithDur(last.Dur.Add(duration.Sixteenth))
		default:
			return nil, fmt.Errorf("%w: line %d: %c (line format is %s)", ErrUnsupportedNotation, lineNum, r, usage)
		}
	}
	return events, nil
}
