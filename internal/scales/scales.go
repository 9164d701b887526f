// Package scales holds the named pitch-class-set scale table and the
// tonic-relative indexing the melodic combinator layer uses to quantize
// notes onto a scale degree, adapted from the teacher's
// internal/modulation.Scales data table and quantizeToScale algorithm.
package scales

import "sort"

// Scale is a pitch-class set: semitone offsets from the tonic, always
// including 0 and sorted ascending.
type Scale struct {
	Name         string
	PitchClasses []int
}

// At returns the tonic-relative MIDI note for the i'th scale degree,
// wrapping the index across octaves as i grows past len(PitchClasses).
func (s Scale) At(tonic, i int) int {
	n := len(s.PitchClasses)
	octave := i / n
	degree := i % n
	if degree < 0 {
		degree += n
		octave--
	}
	return tonic + octave*12 + s.PitchClasses[degree]
}

// Cycle maps each index in indices through At, the Go equivalent of the
// original's `scale | cycle([...])` combinator usage.
func (s Scale) Cycle(tonic int, indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = s.At(tonic, idx)
	}
	return out
}

// Nearest returns the closest note to midiNote that lies on the scale
// rooted at tonic, rounding down on an exact tie.
func (s Scale) Nearest(tonic, midiNote int) int {
	best := s.At(tonic, 0)
	bestDist := abs(midiNote - best)
	octave := (midiNote - tonic) / 12
	for _, o := range []int{octave - 1, octave, octave + 1} {
		for _, pc := range s.PitchClasses {
			candidate := tonic + o*12 + pc
			dist := abs(midiNote - candidate)
			if dist < bestDist || (dist == bestDist && candidate < best) {
				best, bestDist = candidate, dist
			}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// All is the full named scale table, keyed case-sensitively by the
// original class names; Lookup resolves names against it.
var All = map[string]Scale{
	"Acoustic":         {"Acoustic", []int{0, 2, 4, 6, 7, 9, 10}},
	"Altered":          {"Altered", []int{0, 1, 3, 4, 6, 8, 10}},
	"Augmented":        {"Augmented", []int{0, 3, 4, 7, 8, 11}},
	"Bebop":            {"Bebop", []int{0, 2, 4, 5, 7, 9, 10, 11}},
	"Blues":            {"Blues", []int{0, 3, 5, 6, 7, 10}},
	"Chromatic":        {"Chromatic", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	"Dorian":           {"Dorian", []int{0, 2, 3, 5, 7, 9, 10}},
	"DoubleHarm":       {"DoubleHarm", []int{0, 1, 4, 5, 7, 8, 11}},
	"Enigmatic":        {"Enigmatic", []int{0, 1, 4, 6, 8, 10, 11}},
	"Flamenco":         {"Flamenco", []int{0, 1, 4, 5, 7, 8, 11}},
	"Gypsy":            {"Gypsy", []int{0, 2, 3, 6, 7, 8, 10}},
	"HalfDiminished":   {"HalfDiminished", []int{0, 2, 3, 5, 6, 8, 10}},
	"Hirajoshi":        {"Hirajoshi", []int{0, 4, 6, 7, 11}},
	"In":               {"In", []int{0, 1, 5, 7, 8}},
	"Insen":            {"Insen", []int{0, 1, 5, 7, 10}},
	"Iwato":            {"Iwato", []int{0, 1, 5, 6, 10}},
	"Locrian":          {"Locrian", []int{0, 1, 3, 5, 6, 8, 10}},
	"LocrianSharp6":    {"LocrianSharp6", []int{0, 1, 3, 5, 6, 9, 10}},
	"Lydian":           {"Lydian", []int{0, 2, 4, 6, 7, 9, 11}},
	"LydianAugmented":  {"LydianAugmented", []int{0, 2, 4, 6, 8, 9, 11}},
	"LydianDiminished": {"LydianDiminished", []int{0, 2, 3, 6, 7, 9, 11}},
	"Maj":              {"Maj", []int{0, 2, 4, 5, 7, 9, 11}},
	"MajHarm":          {"MajHarm", []int{0, 2, 4, 5, 7, 8, 11}},
	"MajHungarian":     {"MajHungarian", []int{0, 3, 4, 6, 7, 9, 10}},
	"MajLocrian":       {"MajLocrian", []int{0, 2, 4, 5, 6, 8, 10}},
	"MajNeapolitan":    {"MajNeapolitan", []int{0, 1, 3, 5, 7, 9, 11}},
	"MajPent":          {"MajPent", []int{0, 2, 4, 7, 9}},
	"MinHarm":          {"MinHarm", []int{0, 2, 3, 5, 7, 8, 11}},
	"MinHungarian":     {"MinHungarian", []int{0, 2, 3, 6, 7, 8, 11}},
	"MinMelodic":       {"MinMelodic", []int{0, 2, 3, 5, 7, 9, 11}},
	"MinNat":           {"MinNat", []int{0, 2, 3, 5, 7, 8, 10}},
	"MinNeapolitan":    {"MinNeapolitan", []int{0, 1, 3, 5, 7, 8, 11}},
	"MinPent":          {"MinPent", []int{0, 3, 5, 7, 10}},
	"Mixolydian":       {"Mixolydian", []int{0, 2, 4, 5, 7, 9, 10}},
	"Octatonic":        {"Octatonic", []int{0, 2, 3, 5, 6, 8, 9, 11}},
	"Persian":          {"Persian", []int{0, 1, 4, 5, 6, 8, 11}},
	"Phrygian":         {"Phrygian", []int{0, 1, 3, 5, 7, 8, 10}},
	"PhrygianDominant": {"PhrygianDominant", []int{0, 1, 4, 5, 7, 8, 10}},
	"Prometheus":       {"Prometheus", []int{0, 2, 4, 6, 9, 10}},
	"Tritone":          {"Tritone", []int{0, 1, 4, 6, 7, 10}},
	"TritoneSemi2":     {"TritoneSemi2", []int{0, 1, 2, 6, 7, 8}},
	"UkrainianDorian":  {"UkrainianDorian", []int{0, 2, 3, 6, 7, 9, 10}},
	"WholeTone":        {"WholeTone", []int{0, 2, 4, 6, 8, 10}},
	"Yo":               {"Yo", []int{0, 2, 5, 7, 9}},
}

// Lookup resolves a scale by name, matching exactly as declared in All.
func Lookup(name string) (Scale, bool) {
	s, ok := All[name]
	return s, ok
}

// Names returns every known scale name, sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(All))
	for name := range All {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
