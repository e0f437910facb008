package bond

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Registered bond names.
const (
	NameStretcher    = "stretcher"
	NameEnglishCross = "english cross"
	NameFlemish      = "flemish"
	NameWild         = "wild"
)

// Options tunes pattern generation. Regular bonds ignore it.
type Options struct {
	// Seed seeds the random source of the wild bond.
	Seed uint64

	// Chooser overrides the random source. When nil a PCG source seeded with
	// Seed is used.
	Chooser Chooser
}

// Generator produces a pattern for a wall.
type Generator interface {
	// Name returns the bond name as written in wall configurations.
	Name() string

	// Generate returns a pattern whose courses span s.Width exactly and whose
	// courses stack to s.Height exactly.
	Generate(s wall.Spec, opts Options) (wall.Pattern, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Generator{}
)

func init() {
	Register(Stretcher{})
	Register(EnglishCross{})
	Register(Flemish{})
	Register(Wild{})
}

// Register makes g available under g.Name(), replacing any generator with
// the same name.
func Register(g Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalizeName(g.Name())] = g
}

// Get returns the generator registered for name. Names are matched case
// insensitively with surrounding whitespace ignored.
func Get(name string) (Generator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	g, ok := registry[normalizeName(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedBond,
			"bond %q unsupported (known: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return g, nil
}

// Names returns the registered bond names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for _, g := range registry {
		names = append(names, g.Name())
	}
	slices.Sort(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Generate validates s and runs the generator named by s.Bond.
func Generate(s wall.Spec, opts Options) (wall.Pattern, error) {
	g, err := Get(s.Bond)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return g.Generate(s, opts)
}

// courseCount returns the number of courses that stack to s.Height.
func courseCount(s wall.Spec) (int, error) {
	ch := s.CourseHeight()
	n := int(s.Height/ch + wall.Epsilon)
	if n == 0 || !wall.Eq(s.Height, ch*float64(n)) {
		return 0, errors.New(errors.ErrCodeTilingInfeasible,
			"wall height %v can't be represented as a whole number of courses of height %v", s.Height, ch)
	}
	return n, nil
}

// alternate stacks n courses, even and odd templates in turn.
func alternate(n int, even, odd wall.Course) wall.Pattern {
	p := make(wall.Pattern, n)
	for i := range p {
		if i%2 == 0 {
			p[i] = slices.Clone(even)
		} else {
			p[i] = slices.Clone(odd)
		}
	}
	return p
}
