package wall

import (
	"fmt"

	"github.com/matzehuels/bricklayer/pkg/errors"
)

// Kind is a single-character brick kind code.
type Kind byte

// Brick kinds known to every bond.
const (
	Full    Kind = 'f'
	Half    Kind = 'h'
	Quarter Kind = 'q'
	Closer  Kind = 'd'
)

// Kinds lists every brick kind in configuration order.
var Kinds = []Kind{Full, Half, Quarter, Closer}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Full, Half, Quarter, Closer:
		return true
	}
	return false
}

// String returns the one-letter code used in configuration and text files.
func (k Kind) String() string {
	return string(rune(k))
}

// Name returns the long name of the kind, for messages and legends.
func (k Kind) Name() string {
	switch k {
	case Full:
		return "full"
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	case Closer:
		return "closer"
	}
	return fmt.Sprintf("unknown(%q)", byte(k))
}

// ParseKind converts a one-letter code into a Kind.
func ParseKind(s string) (Kind, error) {
	if len(s) != 1 || !Kind(s[0]).Valid() {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "unknown brick kind %q (want f, h, q or d)", s)
	}
	return Kind(s[0]), nil
}
