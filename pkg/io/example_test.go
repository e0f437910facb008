package io_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/bricklayer/pkg/bond"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

func exampleSpec(width, height float64) wall.Spec {
	return wall.Spec{
		Width:     width,
		Height:    height,
		HeadJoint: 10,
		BedJoint:  12.5,
		Envelope:  wall.Dimensions{Length: 800, Height: 1300},
		Bricks: map[wall.Kind]wall.Dimensions{
			wall.Full:    {Length: 210, Height: 50},
			wall.Half:    {Length: 100, Height: 50},
			wall.Quarter: {Length: 45, Height: 50},
			wall.Closer:  {Length: 45, Height: 50},
		},
		Bond: bond.NameStretcher,
	}
}

func ExampleWritePattern() {
	s := exampleSpec(650, 250)
	p, err := bond.Generate(s, bond.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Top course first, as the wall is seen from the front.
	_ = bio.WritePattern(os.Stdout, p, bio.TopFirst)
	// Output:
	// h f f h
	// f f f
	// h f f h
	// f f f
}

func ExampleWriteInstructions() {
	s := exampleSpec(430, 125)
	p := wall.Pattern{{wall.Full, wall.Full}, {wall.Full, wall.Full}}

	in, err := plan.Build(s, p)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	_ = bio.WriteInstructions(os.Stdout, in)
	// Output:
	// move 0 0
	// lay 0 0
	// lay 1 0
	// lay 0 1
	// lay 1 1
}

func ExampleReadInstructions() {
	in, err := bio.ReadInstructions(strings.NewReader("move 0 0\nlay 0 0\nlay 1 0\nmove 220 62.5\nlay 1 1\n"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for i, st := range in {
		fmt.Printf("stride %d at (%g, %g): %v\n", i+1, st.Envelope.X, st.Envelope.Y, st.Steps)
	}
	// Output:
	// stride 1 at (0, 0): [{0 0} {1 0}]
	// stride 2 at (220, 62.5): [{1 1}]
}
