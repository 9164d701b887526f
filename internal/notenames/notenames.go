// Package notenames converts between MIDI note numbers and the lowercase
// "name#octave" lane names the percussion notation and the CLI's
// silence --notes subcommand use (e.g. "c1", "d#2").
//
// Adapted from the teacher's internal/music.MidiToNoteName, which only
// went number-to-name; this also builds the reverse table the percussion
// compiler needs to resolve a lane's NOTE column.
package notenames

import (
	"fmt"
	"strings"
)

var letterNames = []string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

// ToName converts a MIDI note number (0..127) to its lane name, e.g.
// 36 -> "c1", 61 -> "c#3". The octave numbering matches the melodic
// mini-notation's own pc+(octave+2)*12 convention (internal/melody),
// not general MIDI's scientific pitch notation, so a percussion lane
// name and a melodic note atom agree on what "octave 1" means.
func ToName(midiNote int) (string, error) {
	if midiNote < 0 || midiNote > 127 {
		return "", fmt.Errorf("notenames: midi note %d out of range 0..127", midiNote)
	}
	octave := (midiNote / 12) - 2
	return fmt.Sprintf("%s%d", letterNames[midiNote%12], octave), nil
}

var nameToNumber map[string]int

func init() {
	nameToNumber = make(map[string]int, 128)
	for midiNote := 0; midiNote <= 127; midiNote++ {
		name, err := ToName(midiNote)
		if err != nil {
			continue
		}
		nameToNumber[name] = midiNote
	}
}

// ToNumber resolves a lane name (case-insensitive) to its MIDI note number.
func ToNumber(name string) (int, bool) {
	num, ok := nameToNumber[strings.ToLower(strings.TrimSpace(name))]
	return num, ok
}

// Names returns every known lane name, ordered by ascending MIDI note
// number; used by `crispy silence --notes` to enumerate everything that
// could conceivably be playing.
func Names() []string {
	names := make([]string, 0, len(nameToNumber))
	for midiNote := 0; midiNote <= 127; midiNote++ {
		name, err := ToName(midiNote)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names
}
