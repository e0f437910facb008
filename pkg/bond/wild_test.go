package bond

import (
	"testing"

	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// wildSpec is 21 full-plus-joint units plus one closer wide.
func wildSpec(height float64) wall.Spec {
	return testSpec(NameWild, 2355, height)
}

func TestWildFirstChoice(t *testing.T) {
	s := wildSpec(250)
	first := ChooserFunc(func(int) int { return 0 })
	p, err := Generate(s, Options{Chooser: first})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	even := wall.Course{f, f, f, f, f, f, f, f, f, f, h, d}
	odd := wall.Course{d, f, f, f, f, f, f, f, f, f, f, h}
	for i, c := range p {
		want := even
		if i%2 == 1 {
			want = odd
		}
		if !equalCourse(c, want) {
			t.Errorf("course %d = %v, want %v", i, c, want)
		}
	}
	assertInvariants(t, s, p)
}

func TestWildSeeded(t *testing.T) {
	s := wildSpec(2000)
	for _, seed := range []uint64{1, 2, 3, 42, 1234} {
		p, err := Generate(s, Options{Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: Generate() error: %v", seed, err)
		}
		assertInvariants(t, s, p)

		if n, at := LongestTeeth(s, p); n > MaxTeeth {
			t.Errorf("seed %d: fallen teeth chain of %d at %v", seed, n, at)
		}
		for i, c := range p {
			for j := 1; j < len(c); j++ {
				if c[j] == h && c[j-1] == h && j != len(c)-1 {
					t.Errorf("seed %d: adjacent halves in course %d at %d", seed, i, j)
				}
			}
			if i%2 == 1 && c[0] != d {
				t.Errorf("seed %d: odd course %d starts with %v", seed, i, c[0])
			}
		}
	}
}

func TestWildReproducible(t *testing.T) {
	s := wildSpec(500)
	a, err := Generate(s, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(s, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("same seed produced different patterns")
	}
}

func TestWildInfeasibleWidth(t *testing.T) {
	// 2350 leaves a remainder no closing combination matches.
	_, err := Generate(testSpec(NameWild, 2350, 125), Options{Seed: 1})
	if !errors.Is(err, errors.ErrCodeTilingInfeasible) {
		t.Fatalf("Generate() error = %v, want TILING_INFEASIBLE", err)
	}
}

func TestWildInfeasibleHeight(t *testing.T) {
	_, err := Generate(wildSpec(130), Options{Seed: 1})
	if !errors.Is(err, errors.ErrCodeTilingInfeasible) {
		t.Fatalf("Generate() error = %v, want TILING_INFEASIBLE", err)
	}
}

func TestWildSeedExhausted(t *testing.T) {
	// Seed 7 runs out of restarts on a tall wall: closing bricks are held to
	// the teeth limit too, so some seeds cannot finish.
	_, err := Generate(wildSpec(2000), Options{Seed: 7})
	if !errors.Is(err, errors.ErrCodeGenerationExhausted) {
		t.Fatalf("Generate() error = %v, want GENERATION_EXHAUSTED", err)
	}
}

func TestRollback(t *testing.T) {
	s := wildSpec(250)
	b := newBuilder(s, 4, ChooserFunc(func(int) int { return 0 }))

	mk := func(n int, lead wall.Kind) []placed {
		buf := []placed{b.place(nil, lead)}
		for len(buf) < n {
			buf = append(buf, b.place(buf, f))
		}
		return buf
	}

	tests := []struct {
		name   string
		course int
		n      int
		want   int
	}{
		{"even long course drops window", 0, 9, 5},
		{"even short course clears", 0, 5, 0},
		{"even six bricks drops window", 0, 6, 2},
		{"odd short course keeps closer", 1, 5, 1},
		{"odd long course drops window", 1, 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.course = tt.course
			lead := f
			if tt.course%2 == 1 {
				lead = d
			}
			got := b.rollback(mk(tt.n, lead))
			if len(got) != tt.want {
				t.Errorf("rollback(%d bricks) left %d, want %d", tt.n, len(got), tt.want)
			}
			if tt.course%2 == 1 && len(got) > 0 && got[0].kind != d {
				t.Errorf("odd course lost its opening closer")
			}
		})
	}
}

func TestCourseZeroExhausted(t *testing.T) {
	b := newBuilder(wildSpec(250), 4, ChooserFunc(func(int) int { return 0 }))
	calls := 0
	b.candidates = func(*builder, []placed) []placed {
		calls++
		return nil
	}

	_, err := b.run()
	if !errors.Is(err, errors.ErrCodeGenerationExhausted) {
		t.Fatalf("run() error = %v, want GENERATION_EXHAUSTED", err)
	}
	if calls != MaxCourseRetries {
		t.Errorf("candidates called %d times, want %d", calls, MaxCourseRetries)
	}
	if b.restarts != 1 {
		t.Errorf("restarts = %d, want 1", b.restarts)
	}
}

func TestCascadingRestarts(t *testing.T) {
	b := newBuilder(wildSpec(250), 4, ChooserFunc(func(int) int { return 0 }))
	course1 := 0
	b.candidates = func(b *builder, buf []placed) []placed {
		if b.course == 1 {
			course1++
			return nil
		}
		return b.defaultCandidates(buf)
	}

	_, err := b.run()
	if !errors.Is(err, errors.ErrCodeGenerationExhausted) {
		t.Fatalf("run() error = %v, want GENERATION_EXHAUSTED", err)
	}
	if b.restarts != MaxRestarts {
		t.Errorf("restarts = %d, want %d", b.restarts, MaxRestarts)
	}
	if course1 != MaxRestarts*MaxCourseRetries {
		t.Errorf("course 1 attempted %d times, want %d", course1, MaxRestarts*MaxCourseRetries)
	}
	if b.course != 0 {
		t.Errorf("gave up at course %d, want 0 after rewinding", b.course)
	}
}

func TestRecoversAfterDeadEnds(t *testing.T) {
	b := newBuilder(wildSpec(250), 4, ChooserFunc(func(int) int { return 0 }))
	dead := 3
	b.candidates = func(b *builder, buf []placed) []placed {
		if b.course == 2 && len(buf) == 6 && dead > 0 {
			dead--
			return nil
		}
		return b.defaultCandidates(buf)
	}

	p, err := b.run()
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if b.restarts != 0 {
		t.Errorf("restarts = %d, want 0", b.restarts)
	}
	assertInvariants(t, b.spec, p)
}

func TestCandidates(t *testing.T) {
	s := wildSpec(250)
	b := newBuilder(s, 4, ChooserFunc(func(int) int { return 0 }))

	// Course 0 starts with a half: h [0,100], f [110,320], ...
	row := []placed{b.place(nil, h)}
	for len(row) < 5 {
		row = append(row, b.place(row, f))
	}
	b.courses[0] = row
	b.course = 1

	t.Run("half may not rest on half", func(t *testing.T) {
		got := b.defaultCandidates(b.start())
		if len(got) != 1 || got[0].kind != f {
			t.Fatalf("candidates = %v, want only a full brick", kinds(got))
		}
	})

	t.Run("half may not follow half", func(t *testing.T) {
		buf := b.start()
		buf = append(buf, b.place(buf, f))
		buf = append(buf, b.place(buf, h))
		got := b.defaultCandidates(buf)
		for _, x := range got {
			if x.kind == h {
				t.Fatalf("candidates = %v, half offered after half", kinds(got))
			}
		}
	})

	t.Run("long chain rejects full", func(t *testing.T) {
		b.courses[0] = []placed{{kind: f, left: 0, right: 210, teeth: Teeth{Left: MaxTeeth, Right: 1}}}
		got := b.defaultCandidates(b.start())
		if len(got) != 1 || got[0].kind != h {
			t.Fatalf("candidates = %v, want only a half brick", kinds(got))
		}
		if got[0].teeth.Right != 2 {
			t.Errorf("half teeth = %+v, want right chain 2", got[0].teeth)
		}
	})
}

func kinds(xs []placed) []wall.Kind {
	out := make([]wall.Kind, len(xs))
	for i, x := range xs {
		out[i] = x.kind
	}
	return out
}
