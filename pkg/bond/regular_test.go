package bond

import (
	"testing"

	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

func TestRegularBonds(t *testing.T) {
	tests := []struct {
		name  string
		bond  string
		width float64
		even  wall.Course
		odd   wall.Course
	}{
		{
			name:  "stretcher",
			bond:  NameStretcher,
			width: 650,
			even:  wall.Course{f, f, f},
			odd:   wall.Course{h, f, f, h},
		},
		{
			name:  "stretcher closing half on even course",
			bond:  NameStretcher,
			width: 540,
			even:  wall.Course{f, f, h},
			odd:   wall.Course{h, f, f},
		},
		{
			name:  "english cross",
			bond:  NameEnglishCross,
			width: 650,
			even:  wall.Course{f, f, f},
			odd:   wall.Course{q, h, h, h, h, h, q},
		},
		{
			name:  "flemish",
			bond:  NameFlemish,
			width: 815,
			even:  wall.Course{q, f, h, f, h, h},
			odd:   wall.Course{h, h, f, h, f, q},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpec(tt.bond, tt.width, 250)
			p, err := Generate(s, Options{})
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if len(p) != 4 {
				t.Fatalf("got %d courses, want 4", len(p))
			}
			for i, c := range p {
				want := tt.even
				if i%2 == 1 {
					want = tt.odd
				}
				if !equalCourse(c, want) {
					t.Errorf("course %d = %v, want %v", i, c, want)
				}
			}
			assertInvariants(t, s, p)
		})
	}
}

func TestRegularBondsInfeasible(t *testing.T) {
	tests := []struct {
		name   string
		bond   string
		width  float64
		height float64
	}{
		{"stretcher width 651", NameStretcher, 651, 125},
		{"stretcher narrower than a full brick", NameStretcher, 200, 125},
		{"stretcher height", NameStretcher, 650, 130},
		{"english cross even remainder", NameEnglishCross, 700, 125},
		{"english cross too narrow", NameEnglishCross, 150, 125},
		{"flemish remainder", NameFlemish, 820, 125},
		{"flemish too narrow", NameFlemish, 300, 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(testSpec(tt.bond, tt.width, tt.height), Options{})
			if !errors.Is(err, errors.ErrCodeTilingInfeasible) {
				t.Errorf("Generate() error = %v, want TILING_INFEASIBLE", err)
			}
		})
	}
}

func TestStretcherBothCoursesInfeasible(t *testing.T) {
	s := testSpec(NameStretcher, 651, 125)
	even := template{
		bond: NameStretcher, parity: "even",
		lead: []wall.Kind{f}, unit: []wall.Kind{f}, closing: []wall.Kind{h},
	}
	odd := template{
		bond: NameStretcher, parity: "odd",
		lead: []wall.Kind{h}, unit: []wall.Kind{f}, closing: []wall.Kind{h},
	}
	if _, err := even.build(s); !errors.Is(err, errors.ErrCodeTilingInfeasible) {
		t.Errorf("even course error = %v, want TILING_INFEASIBLE", err)
	}
	if _, err := odd.build(s); !errors.Is(err, errors.ErrCodeTilingInfeasible) {
		t.Errorf("odd course error = %v, want TILING_INFEASIBLE", err)
	}
}

func TestRegularBondsDecimalDimensions(t *testing.T) {
	// Millimetre walls configured in metres must not trip on rounding.
	s := testSpec(NameStretcher, 0.65, 0.125)
	s.HeadJoint, s.BedJoint = 0.01, 0.0125
	s.Envelope = wall.Dimensions{Length: 0.8, Height: 1.3}
	s.Bricks = map[wall.Kind]wall.Dimensions{
		f: {Length: 0.21, Height: 0.05},
		h: {Length: 0.1, Height: 0.05},
		q: {Length: 0.045, Height: 0.05},
		d: {Length: 0.045, Height: 0.05},
	}
	p, err := Generate(s, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertInvariants(t, s, p)
}
