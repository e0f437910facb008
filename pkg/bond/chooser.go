package bond

import "math/rand/v2"

// Chooser picks one of n surviving candidates. Implementations must return a
// value in [0, n).
type Chooser interface {
	Choose(n int) int
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(n int) int

func (f ChooserFunc) Choose(n int) int { return f(n) }

type randChooser struct {
	rng *rand.Rand
}

// NewRandChooser returns a uniform chooser backed by a PCG source. The same
// seed always yields the same sequence of choices.
func NewRandChooser(seed uint64) Chooser {
	return randChooser{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (c randChooser) Choose(n int) int { return c.rng.IntN(n) }
