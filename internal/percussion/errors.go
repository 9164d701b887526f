package percussion

import "errors"

// ErrUnsupportedNotation is returned for a lane line that isn't
// "NOTE = tokens", names an unknown NOTE, or uses a token outside
// [Xx.+] (spaces and tabs aside).
var ErrUnsupportedNotation = errors.New("percussion: unsupported notation")
