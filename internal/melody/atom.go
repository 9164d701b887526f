package melody

import (
	"fmt"

	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/pattern"
)

const (
	defaultNote    = 60
	defaultOctave  = 3
	defaultVelocityToken = 'o'
)

var pitchClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

func isVelocityToken(b byte) bool { return b >= 'a' && b <= 'z' }

// velocityFor maps a lowercase velocity token to its 0..1 value, the
// same (ord(token)-96)/26 curve the original velocity-letter alphabet
// uses: 'a' is the quietest (0.04), 'z' the loudest (1.0).
func velocityFor(b byte) float64 {
	v := float64(int(b)-96) / 26.0
	return roundTo2(v)
}

func roundTo2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

var defaultVelocity = velocityFor(defaultVelocityToken)

func noteNum(pitchClass, octave int) int {
	return pitchClass + (octave+2)*12
}

// parseAtom compiles one mini-notation atom ("C", "C'1w", ".", "x",
// ...) into the single Event it represents, at slot duration dur.
func parseAtom(raw string, dur duration.Duration) ([]pattern.Event, error) {
	s := raw
	if s == "" {
		return nil, nil
	}
	if s == "." {
		return []pattern.Event{{Action: pattern.Rest{}, Dur: dur}}, nil
	}
	if pc, ok := pitchClasses[s[0]]; ok {
		return parseNote(s, pc, dur)
	}
	if isVelocityToken(s[0]) {
		return []pattern.Event{{
			Action: pattern.Note{NoteNum: defaultNote, Velocity: velocityFor(s[0]), Dur: duration.Half},
			Dur:    dur,
		}}, nil
	}
	return nil, fmt.Errorf("%w: unrecognized atom %q", ErrInvalidSyntax, raw)
}

// parseNote consumes the pitch letter's optional sharp quote, optional
// single-digit octave, and optional velocity token, in that order, and
// requires the atom be fully consumed by the time it's done.
func parseNote(s string, pitchClass int, dur duration.Duration) ([]pattern.Event, error) {
	pos := 1
	if pos < len(s) && s[pos] == '\'' {
		pitchClass++
		pos++
	}
	octave := defaultOctave
	if pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		octave = int(s[pos] - '0')
		pos++
	}
	velocity := defaultVelocity
	if pos < len(s) && isVelocityToken(s[pos]) {
		velocity = velocityFor(s[pos])
		pos++
	}
	if pos != len(s) {
		return nil, fmt.Errorf("%w: malformed note atom %q", ErrInvalidSyntax, s)
	}
	return []pattern.Event{{
		Action: pattern.Note{NoteNum: noteNum(pitchClass, octave), Velocity: velocity, Dur: duration.Half},
		Dur:    dur,
	}}, nil
}
