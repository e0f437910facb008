package bond

import "github.com/matzehuels/bricklayer/pkg/wall"

// Flemish alternates full and half bricks within every course, the odd
// courses starting on a half so that each half sits centred on a full below.
//
//	even: q f h ... f h [h]
//	odd:  h h f ... h f [q]
type Flemish struct{}

func (Flemish) Name() string { return NameFlemish }

func (Flemish) Generate(s wall.Spec, _ Options) (wall.Pattern, error) {
	f, h, q, hj := s.Length(wall.Full), s.Length(wall.Half), s.Length(wall.Quarter), s.HeadJoint
	minWidth := q + f + h + h + 3*hj
	even := template{
		bond: NameFlemish, parity: "even",
		lead:     []wall.Kind{wall.Quarter},
		unit:     []wall.Kind{wall.Full, wall.Half},
		closing:  []wall.Kind{wall.Half},
		minWidth: minWidth,
	}
	odd := template{
		bond: NameFlemish, parity: "odd",
		lead:     []wall.Kind{wall.Half},
		unit:     []wall.Kind{wall.Half, wall.Full},
		closing:  []wall.Kind{wall.Quarter},
		minWidth: minWidth,
	}
	return generateRegular(s, even, odd)
}
