package bond

import (
	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Backtracking budget of the wild bond.
const (
	// RollbackWindow is the number of trailing bricks dropped when no
	// candidate fits.
	RollbackWindow = 4

	// SmallCourse is the course length at or below which a rollback clears
	// the whole course instead.
	SmallCourse = 5

	// MaxCourseRetries is the number of rollbacks after which a course is
	// abandoned and the previous course rebuilt.
	MaxCourseRetries = 10

	// MaxRestarts is the number of abandoned courses after which generation
	// gives up.
	MaxRestarts = 100
)

// Wild lays full and half bricks in random order, bounded by the fallen teeth
// rule, two halves never side by side and halves never stacked.
//
// Even courses close with "h d" or "d"; odd courses open with a closer and
// close with "f" or "h".
type Wild struct{}

func (Wild) Name() string { return NameWild }

func (Wild) Generate(s wall.Spec, opts Options) (wall.Pattern, error) {
	n, err := courseCount(s)
	if err != nil {
		return nil, err
	}
	c := opts.Chooser
	if c == nil {
		c = NewRandChooser(opts.Seed)
	}
	return newBuilder(s, n, c).run()
}

// builder is the state machine behind Wild: the current course index, the
// restart counter and the finished courses. The per-course retry counter
// and course buffer live in buildCourse.
type builder struct {
	spec     wall.Spec
	choose   Chooser
	courses  [][]placed
	course   int
	restarts int

	// candidates is replaceable so tests can force dead ends.
	candidates func(b *builder, buf []placed) []placed
}

func newBuilder(s wall.Spec, n int, c Chooser) *builder {
	return &builder{
		spec:       s,
		choose:     c,
		courses:    make([][]placed, n),
		candidates: (*builder).defaultCandidates,
	}
}

func (b *builder) run() (wall.Pattern, error) {
	for b.course < len(b.courses) {
		if b.restarts >= MaxRestarts {
			return nil, errors.New(errors.ErrCodeGenerationExhausted,
				"retried full courses %d times, now at course %d, giving up", b.restarts, b.course)
		}
		buf, ok, err := b.buildCourse()
		if err != nil {
			return nil, err
		}
		if ok {
			b.courses[b.course] = buf
			b.course++
			continue
		}

		b.restarts++
		b.courses[b.course] = nil
		if b.course == 0 {
			return nil, errors.New(errors.ErrCodeGenerationExhausted,
				"failed to generate course 0 of wild bond within %d retries", MaxCourseRetries)
		}
		b.course--
		b.courses[b.course] = nil
	}
	return b.pattern(), nil
}

func (b *builder) odd() bool { return b.course%2 == 1 }

// allowance is the width kept free for the fixed closing bricks.
func (b *builder) allowance() float64 {
	s := b.spec
	if b.odd() {
		return s.HeadJoint + s.Length(wall.Full)
	}
	return s.HeadJoint + s.Length(wall.Closer) + s.HeadJoint + s.Length(wall.Half)
}

// buildCourse fills the current course. It returns ok=false when the course
// ran out of retries and must be abandoned.
func (b *builder) buildCourse() (buf []placed, ok bool, err error) {
	buf = b.start()
	retries := 0
	fail := func() bool {
		buf = b.rollback(buf)
		retries++
		return retries >= MaxCourseRetries
	}

	for {
		for b.spec.Width-builtLength(buf)-b.allowance() > wall.Epsilon {
			opts := b.candidates(b, buf)
			if len(opts) == 0 {
				if fail() {
					return nil, false, nil
				}
				continue
			}
			buf = append(buf, opts[b.choose.Choose(len(opts))])
		}

		closed, err := b.close(buf)
		if err != nil {
			return nil, false, err
		}
		if closed != nil {
			return closed, true, nil
		}
		if fail() {
			return nil, false, nil
		}
	}
}

// start returns the fixed opening of the current course.
func (b *builder) start() []placed {
	if b.odd() {
		return []placed{b.place(nil, wall.Closer)}
	}
	return nil
}

// rollback drops the last RollbackWindow bricks, or the whole course when it
// is short. The opening closer of an odd course is kept.
func (b *builder) rollback(buf []placed) []placed {
	keep := 0
	if b.odd() && len(buf) > 0 {
		keep = 1
	}
	if len(buf) <= SmallCourse {
		return buf[:keep]
	}
	return buf[:len(buf)-RollbackWindow]
}

// close appends the fixed closing bricks. It returns nil without error when
// the closing bricks would break a placement rule, and an error when the
// remaining width matches no closing combination.
func (b *builder) close(buf []placed) ([]placed, error) {
	s := b.spec
	hj, f, h, d := s.HeadJoint, s.Length(wall.Full), s.Length(wall.Half), s.Length(wall.Closer)
	r := s.Width - builtLength(buf)

	var out []placed
	switch {
	case b.odd() && wall.Eq(r, hj+f):
		out = b.appendKinds(buf, wall.Full)
	case b.odd() && wall.Eq(r, hj+h):
		out = b.appendKinds(buf, wall.Half)
	case !b.odd() && wall.Eq(r, hj+h+hj+d):
		if n := len(buf); n > 0 && buf[n-1].kind == wall.Half {
			// Two halves may not touch; merge the trailing half and the
			// closing half into one full brick where the sizes allow it.
			if !wall.Eq(f, h+hj+h) {
				return nil, nil
			}
			out = b.appendKinds(buf[:n-1], wall.Full, wall.Closer)
		} else {
			out = b.appendKinds(buf, wall.Half, wall.Closer)
		}
	case !b.odd() && wall.Eq(r, hj+d):
		out = b.appendKinds(buf, wall.Closer)
	default:
		return nil, errors.New(errors.ErrCodeTilingInfeasible,
			"can't finish remaining %v width of course %d of wild bond", r, b.course)
	}

	for _, x := range out {
		if x.teeth.Exceeds() {
			return nil, nil
		}
	}
	return out, nil
}

func (b *builder) appendKinds(buf []placed, kinds ...wall.Kind) []placed {
	out := make([]placed, len(buf), len(buf)+len(kinds))
	copy(out, buf)
	for _, k := range kinds {
		out = append(out, b.place(out, k))
	}
	return out
}

// place positions a brick of kind k after buf and scores it against the
// course below.
func (b *builder) place(buf []placed, k wall.Kind) placed {
	x := placed{kind: k}
	if n := len(buf); n > 0 {
		prev := buf[n-1]
		x.left = prev.left + (b.spec.Length(prev.kind) + b.spec.HeadJoint)
	}
	x.right = x.left + b.spec.Length(k)
	x.teeth = scoreTeeth(b.spec, b.below(), x)
	return x
}

func (b *builder) below() []placed {
	if b.course == 0 {
		return nil
	}
	return b.courses[b.course-1]
}

// defaultCandidates returns the bricks that may follow buf, full first.
func (b *builder) defaultCandidates(buf []placed) []placed {
	var out []placed
	if x := b.place(buf, wall.Full); !x.teeth.Exceeds() {
		out = append(out, x)
	}
	if n := len(buf); n > 0 && buf[n-1].kind == wall.Half {
		return out
	}
	if x := b.place(buf, wall.Half); !x.teeth.Exceeds() && !b.onHalf(x) {
		out = append(out, x)
	}
	return out
}

// onHalf reports whether x would rest on a half brick.
func (b *builder) onHalf(x placed) bool {
	for _, u := range b.below() {
		if u.kind == wall.Half && u.left <= x.right && u.right >= x.left {
			return true
		}
	}
	return false
}

func (b *builder) pattern() wall.Pattern {
	p := make(wall.Pattern, len(b.courses))
	for i, row := range b.courses {
		c := make(wall.Course, len(row))
		for j, x := range row {
			c[j] = x.kind
		}
		p[i] = c
	}
	return p
}

func builtLength(buf []placed) float64 {
	if len(buf) == 0 {
		return 0
	}
	return buf[len(buf)-1].right
}
