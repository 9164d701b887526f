// Package melody compiles the melodic mini-notation — bracketed groups
// of pitch/velocity atoms, rests, ties, alternations, and repeat sugar
// — into a pattern.Pattern of timed Note and Rest events.
package melody

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/pattern"
)

// Compile parses definition (a "[...]" mini-notation string) and
// emits a Pattern spanning length, with a randomly generated name.
func Compile(definition string, length duration.Duration) (pattern.Pattern, error) {
	tree, err := getGroups(definition)
	if err != nil {
		return pattern.Pattern{}, err
	}
	events, err := transform(tree, length)
	if err != nil {
		return pattern.Pattern{}, err
	}
	return pattern.New(randomName(), events, length), nil
}

// transform walks groupsTree depth-first, dividing length evenly among
// its direct children. A "_" atom is the tie operator: it extends the
// previous emitted event's slot duration by this child's share instead
// of emitting a new event.
func transform(groupsTree *node, length duration.Duration) ([]pattern.Event, error) {
	if len(groupsTree.children) == 0 {
		return nil, nil
	}
	eachDur := length.DivInt(int64(len(groupsTree.children)))
	var events []pattern.Event
	for _, child := range groupsTree.children {
		if child.kind != atomNode {
			inner, err := transform(child, eachDur)
			if err != nil {
				return nil, err
			}
			events = append(events, inner...)
			continue
		}
		if child.atom == "_" {
			if len(events) == 0 {
				return nil, fmt.Errorf("%w: tie has nothing to extend", ErrInvalidSyntax)
			}
			last := events[len(events)-1]
			events[len(events)-1] = last.WithDur(last.Dur.Add(eachDur))
			continue
		}
		parsed, err := parseAtom(child.atom, eachDur)
		if err != nil {
			return nil, err
		}
		events = append(events, parsed...)
	}
	return events, nil
}

var nameRand = rand.New(rand.NewSource(time.Now().UnixNano()))

var nameAdjectives = []string{
	"restless", "hollow", "quiet", "feral", "brittle", "luminous",
	"sunken", "drifting", "tangled", "molten", "spare", "oblique",
}

var nameNouns = []string{
	"loop", "drone", "echo", "thicket", "current", "lattice",
	"hinge", "ember", "tide", "kernel", "spindle", "arc",
}

// randomName mints an "adjective-noun" pattern name the way pat() does
// when the caller doesn't pipe the result through combinator.Name.
func randomName() string {
	adj := nameAdjectives[nameRand.Intn(len(nameAdjectives))]
	noun := nameNouns[nameRand.Intn(len(nameNouns))]
	return adj + "-" + noun
}
