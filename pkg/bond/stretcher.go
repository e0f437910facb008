package bond

import "github.com/matzehuels/bricklayer/pkg/wall"

// Stretcher lays full bricks with every other course shifted by half a brick.
//
//	even: f f ... f [h]
//	odd:  h f ... f [h]
type Stretcher struct{}

func (Stretcher) Name() string { return NameStretcher }

func (Stretcher) Generate(s wall.Spec, _ Options) (wall.Pattern, error) {
	even := template{
		bond: NameStretcher, parity: "even",
		lead:     []wall.Kind{wall.Full},
		unit:     []wall.Kind{wall.Full},
		closing:  []wall.Kind{wall.Half},
		minWidth: s.Length(wall.Full),
	}
	odd := template{
		bond: NameStretcher, parity: "odd",
		lead:     []wall.Kind{wall.Half},
		unit:     []wall.Kind{wall.Full},
		closing:  []wall.Kind{wall.Half},
		minWidth: s.Length(wall.Half),
	}
	return generateRegular(s, even, odd)
}
