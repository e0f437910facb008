package cache

import (
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Keyer derives cache keys from the inputs of each stage.
type Keyer interface {
	// PatternKey identifies the pattern generated for spec with seed.
	PatternKey(spec wall.Spec, seed uint64) string

	// InstructionsKey identifies the instructions planned for the pattern
	// with hash patternHash. The envelope and dimensions of spec are part of
	// the key; the bond is not.
	InstructionsKey(spec wall.Spec, patternHash string) string
}

// DefaultKeyer hashes the full wall configuration into every key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// specKey lists the fields of a spec that shape the generated output.
type specKey struct {
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	HeadJoint float64               `json:"head_joint"`
	BedJoint  float64               `json:"bed_joint"`
	Bricks    map[string][2]float64 `json:"bricks"`
}

func newSpecKey(s wall.Spec) specKey {
	k := specKey{
		Width:     s.Width,
		Height:    s.Height,
		HeadJoint: s.HeadJoint,
		BedJoint:  s.BedJoint,
		Bricks:    make(map[string][2]float64, len(s.Bricks)),
	}
	for kind, d := range s.Bricks {
		k.Bricks[kind.String()] = [2]float64{d.Length, d.Height}
	}
	return k
}

// PatternKey implements Keyer.
func (DefaultKeyer) PatternKey(spec wall.Spec, seed uint64) string {
	return hashKey("pattern", newSpecKey(spec), spec.Bond, seed)
}

// InstructionsKey implements Keyer.
func (DefaultKeyer) InstructionsKey(spec wall.Spec, patternHash string) string {
	return hashKey("steps", newSpecKey(spec), spec.Envelope.Length, spec.Envelope.Height, patternHash)
}

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// consumers can share one backend without sharing entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PatternKey implements Keyer.
func (k *ScopedKeyer) PatternKey(spec wall.Spec, seed uint64) string {
	return k.prefix + k.inner.PatternKey(spec, seed)
}

// InstructionsKey implements Keyer.
func (k *ScopedKeyer) InstructionsKey(spec wall.Spec, patternHash string) string {
	return k.prefix + k.inner.InstructionsKey(spec, patternHash)
}
