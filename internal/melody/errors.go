package melody

import "errors"

// ErrInvalidSyntax is returned for any mini-notation definition that
// does not parse: unbalanced brackets, an anchorless alternation, a
// malformed atom, or sugar with a non-numeric or too-small repeat count.
var ErrInvalidSyntax = errors.New("melody: invalid syntax")
