package bond

import "github.com/matzehuels/bricklayer/pkg/wall"

// EnglishCross alternates stretcher courses of full bricks with header
// courses of half bricks framed by quarter bricks.
//
//	even: f f ... f
//	odd:  q h ... h [q]
type EnglishCross struct{}

func (EnglishCross) Name() string { return NameEnglishCross }

func (EnglishCross) Generate(s wall.Spec, _ Options) (wall.Pattern, error) {
	f, h, q, hj := s.Length(wall.Full), s.Length(wall.Half), s.Length(wall.Quarter), s.HeadJoint
	even := template{
		bond: NameEnglishCross, parity: "even",
		lead:     []wall.Kind{wall.Full},
		unit:     []wall.Kind{wall.Full},
		minWidth: f,
	}
	odd := template{
		bond: NameEnglishCross, parity: "odd",
		lead:     []wall.Kind{wall.Quarter},
		unit:     []wall.Kind{wall.Half},
		closing:  []wall.Kind{wall.Quarter},
		minWidth: q + hj + h + hj + q,
	}
	return generateRegular(s, even, odd)
}
