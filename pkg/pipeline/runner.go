package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bricklayer/pkg/bond"
	"github.com/matzehuels/bricklayer/pkg/cache"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/observability"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ExecuteFile loads the wall configuration at opts.ConfigPath and runs the
// full pipeline on it.
func (r *Runner) ExecuteFile(ctx context.Context, opts Options) (*Result, error) {
	spec, err := wall.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, spec, opts)
}

// Execute runs the complete pattern → instructions pipeline with caching.
func (r *Runner) Execute(ctx context.Context, spec wall.Spec, opts Options) (*Result, error) {
	logger := opts.logger(r.Logger)
	result := &Result{ID: uuid.New(), Spec: spec}

	// Stage 1: Pattern
	start := time.Now()
	p, seed, hit, err := r.PatternWithCacheInfo(ctx, spec, opts)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	result.Pattern = p
	result.Seed = seed
	result.PatternHash = HashPattern(p)
	result.Stats.PatternTime = time.Since(start)
	result.Stats.Courses = len(p)
	result.Stats.Bricks = p.Count()
	result.Stats.LongestTeeth, _ = bond.LongestTeeth(spec, p)
	result.CacheInfo.PatternHit = hit
	result.CacheInfo.PatternLoaded = opts.PatternFile != ""

	logger.Info("built pattern",
		"run", result.ID,
		"bond", spec.Bond,
		"courses", result.Stats.Courses,
		"bricks", result.Stats.Bricks,
		"cached", hit,
		"duration", result.Stats.PatternTime)

	// Stage 2: Instructions
	start = time.Now()
	in, hit, err := r.InstructionsWithCacheInfo(ctx, spec, p, opts)
	if err != nil {
		return nil, fmt.Errorf("instructions: %w", err)
	}
	result.Instructions = in
	result.Stats.PlanTime = time.Since(start)
	result.Stats.Strides = len(in)
	result.CacheInfo.InstructionsHit = hit
	result.CacheInfo.InstructionsLoaded = opts.StepsFile != ""

	logger.Info("planned strides",
		"run", result.ID,
		"strides", result.Stats.Strides,
		"cached", hit,
		"duration", result.Stats.PlanTime)

	return result, nil
}

// PatternWithCacheInfo loads or generates the pattern for spec. It returns
// the seed used for a wild bond and whether the cache was hit.
func (r *Runner) PatternWithCacheInfo(ctx context.Context, spec wall.Spec, opts Options) (wall.Pattern, uint64, bool, error) {
	logger := opts.logger(r.Logger)

	if opts.PatternFile != "" {
		p, err := bio.ImportPattern(opts.PatternFile, opts.Order)
		if err != nil {
			return nil, 0, false, err
		}
		if err := wall.CheckPattern(spec, p); err != nil {
			return nil, 0, false, fmt.Errorf("%s: %w", opts.PatternFile, err)
		}
		logger.Debug("loaded pattern", "file", opts.PatternFile)
		return p, 0, false, nil
	}

	seed := uint64(0)
	if isWild(spec) {
		seed = opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
	}
	cacheable := opts.Deterministic(spec)
	cacheKey := r.Keyer.PatternKey(spec, seed)

	// Try cache first (unless refresh requested)
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			p, err := bio.ReadPattern(bytes.NewReader(data), bio.BottomFirst)
			if err == nil && wall.CheckPattern(spec, p) == nil {
				observability.Cache().OnCacheHit(ctx, "pattern")
				return p, seed, true, nil
			}
			logger.Warn("discarding unreadable cached pattern", "key", cacheKey)
		} else if err != nil {
			logger.Warn("pattern cache read failed", "err", err)
		}
	}

	if cacheable {
		observability.Cache().OnCacheMiss(ctx, "pattern")
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnPatternStart(ctx, spec.Bond)
	start := time.Now()
	p, err := bond.Generate(spec, bond.Options{Seed: seed})
	hooks.OnPatternComplete(ctx, spec.Bond, p.Count(), time.Since(start), err)
	if err != nil {
		return nil, 0, false, err
	}
	logger.Debug("generated pattern", "bond", spec.Bond, "seed", seed)

	if cacheable {
		var buf bytes.Buffer
		if err := bio.WritePattern(&buf, p, bio.BottomFirst); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLPattern); err != nil {
				logger.Warn("pattern cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "pattern", buf.Len())
			}
		}
	}
	return p, seed, false, nil
}

// Pattern is a convenience wrapper that calls PatternWithCacheInfo and
// discards the seed and cache hit info.
func (r *Runner) Pattern(ctx context.Context, spec wall.Spec, opts Options) (wall.Pattern, error) {
	p, _, _, err := r.PatternWithCacheInfo(ctx, spec, opts)
	return p, err
}

// InstructionsWithCacheInfo loads or plans the instructions for p and
// reports whether the cache was hit. Planning is deterministic, so its
// result is always cached.
func (r *Runner) InstructionsWithCacheInfo(ctx context.Context, spec wall.Spec, p wall.Pattern, opts Options) (plan.Instructions, bool, error) {
	logger := opts.logger(r.Logger)

	if opts.StepsFile != "" {
		in, err := bio.ImportInstructions(opts.StepsFile)
		if err != nil {
			return nil, false, err
		}
		if err := plan.Verify(spec, p, in); err != nil {
			return nil, false, fmt.Errorf("%s: %w", opts.StepsFile, err)
		}
		logger.Debug("loaded instructions", "file", opts.StepsFile)
		return in, false, nil
	}

	cacheKey := r.Keyer.InstructionsKey(spec, HashPattern(p))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			in, err := bio.ReadInstructions(bytes.NewReader(data))
			if err == nil && plan.Verify(spec, p, in) == nil {
				observability.Cache().OnCacheHit(ctx, "steps")
				return in, true, nil
			}
			logger.Warn("discarding unreadable cached instructions", "key", cacheKey)
		} else if err != nil {
			logger.Warn("instructions cache read failed", "err", err)
		}
	}

	observability.Cache().OnCacheMiss(ctx, "steps")

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnPlanStart(ctx, p.Count())
	start := time.Now()
	in, err := plan.Build(spec, p)
	hooks.OnPlanComplete(ctx, len(in), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := bio.WriteInstructions(&buf, in); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLInstructions); err != nil {
			logger.Warn("instructions cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "steps", buf.Len())
		}
	}
	return in, false, nil
}

// Instructions is a convenience wrapper that calls InstructionsWithCacheInfo
// and discards the cache hit info.
func (r *Runner) Instructions(ctx context.Context, spec wall.Spec, p wall.Pattern, opts Options) (plan.Instructions, error) {
	in, _, err := r.InstructionsWithCacheInfo(ctx, spec, p, opts)
	return in, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// HashPattern returns the content hash of p in its bottom-first text form.
func HashPattern(p wall.Pattern) string {
	var buf bytes.Buffer
	_ = bio.WritePattern(&buf, p, bio.BottomFirst)
	return cache.Hash(buf.Bytes())
}
