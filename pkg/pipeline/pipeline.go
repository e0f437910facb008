// Package pipeline runs the bricklayer stages with caching.
//
// The pipeline has two stages:
//
//  1. Pattern: generate the bond pattern, or load it from a file
//  2. Instructions: plan the laying order, or load it from a file
//
// Each stage consults the cache before doing work and stores its result
// afterwards. The CLI and the HTTP server share this package so that both
// behave the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, spec, pipeline.Options{Seed: 7})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Instructions), "strides")
//
// Run individual stages:
//
//	p, err := runner.Pattern(ctx, spec, opts)
//	in, err := runner.Instructions(ctx, spec, p, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bricklayer/pkg/bond"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Options configures one pipeline run.
type Options struct {
	// ConfigPath is the wall configuration file read by [Runner.ExecuteFile].
	ConfigPath string

	// PatternFile, when set, is loaded instead of generating a pattern.
	PatternFile string

	// StepsFile, when set, is loaded instead of planning instructions.
	StepsFile string

	// Order is the course order of PatternFile.
	Order bio.Order

	// Seed seeds the wild bond. Zero picks a fresh seed for every run, and such
	// runs bypass the cache. Regular bonds ignore it.
	Seed uint64

	// Refresh skips cache reads but still stores new results.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// Deterministic reports whether a run for spec always yields the same
// pattern, which is the condition for caching it.
func (o Options) Deterministic(spec wall.Spec) bool {
	return !isWild(spec) || o.Seed != 0
}

func isWild(spec wall.Spec) bool {
	g, err := bond.Get(spec.Bond)
	return err == nil && g.Name() == bond.NameWild
}

func (o Options) logger(fallback *log.Logger) *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if fallback != nil {
		return fallback
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID uuid.UUID

	Spec         wall.Spec
	Pattern      wall.Pattern
	Instructions plan.Instructions

	// Seed is the seed the pattern was generated with. It is zero for
	// regular bonds and for loaded patterns.
	Seed uint64

	// PatternHash is the content hash of the pattern text.
	PatternHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Courses      int
	Bricks       int
	Strides      int
	LongestTeeth int
	PatternTime  time.Duration
	PlanTime     time.Duration
}

// CacheInfo reports where each stage's result came from.
type CacheInfo struct {
	PatternHit         bool // pattern came from cache
	InstructionsHit    bool // instructions came from cache
	PatternLoaded      bool // pattern came from PatternFile
	InstructionsLoaded bool // instructions came from StepsFile
}
