// Package judgment runs batched natural-language checks over an itinerary and
// applies only the corrections a provider reports with enough confidence.
// Every job degrades to a no-op on provider failure.
package judgment

import (
	"cmp"
	"context"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/ports"
)

const (
	JobSemanticDuplicates = "semantic-duplicates"
	JobMealSuitability    = "meal-suitability"
	JobDurations          = "durations"
	JobCategories         = "categories"
)

type Config struct {
	Concurrency            int
	CallTimeout            time.Duration
	MinDuplicateConfidence float64
	MaxDuplicatePairs      int
	MaxItemsPerCall        int
	// Skip disables jobs by name.
	Skip []string
}

func DefaultConfig() Config {
	return Config{
		Concurrency:            2,
		CallTimeout:            10 * time.Second,
		MinDuplicateConfidence: 0.7,
		MaxDuplicatePairs:      40,
		MaxItemsPerCall:        60,
	}
}

type Result struct {
	Itinerary domain.Itinerary
	Changes   []domain.ChangeRecord
	Calls     int
}

// edit is one correction computed against the snapshot. Removals are applied
// after every field edit so slot references stay valid.
type edit struct {
	ref    domain.SlotRef
	remove bool
	apply  func(*domain.Slot)
	change domain.ChangeRecord
}

// request is one batched provider call and the parser for its answer.
type request struct {
	completion ports.CompletionRequest
	parse      func(raw string) []edit
}

type job struct {
	name  string
	build func(it *domain.Itinerary, cfg Config) *request
}

type Orchestrator struct {
	provider ports.JudgmentProvider
	cfg      Config
	log      *logger.Logger
	jobs     []job
}

func NewOrchestrator(provider ports.JudgmentProvider, cfg Config, log *logger.Logger) *Orchestrator {
	def := DefaultConfig()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	if cfg.MinDuplicateConfidence <= 0 {
		cfg.MinDuplicateConfidence = def.MinDuplicateConfidence
	}
	if cfg.MaxDuplicatePairs <= 0 {
		cfg.MaxDuplicatePairs = def.MaxDuplicatePairs
	}
	if cfg.MaxItemsPerCall <= 0 {
		cfg.MaxItemsPerCall = def.MaxItemsPerCall
	}
	if log == nil {
		log = logger.Nop()
	}

	all := []job{
		{name: JobSemanticDuplicates, build: buildDuplicateRequest},
		{name: JobMealSuitability, build: buildMealRequest},
		{name: JobDurations, build: buildDurationRequest},
		{name: JobCategories, build: buildCategoryRequest},
	}
	jobs := make([]job, 0, len(all))
	for _, j := range all {
		if !slices.Contains(cfg.Skip, j.name) {
			jobs = append(jobs, j)
		}
	}

	return &Orchestrator{provider: provider, cfg: cfg, log: log.With("component", "judgment"), jobs: jobs}
}

// Remediate runs every job against one snapshot of it. With no provider
// available it returns it unchanged with zero changes and zero calls. The only
// error is the caller's context being done, in which case the result is discarded.
func (o *Orchestrator) Remediate(ctx context.Context, it domain.Itinerary) (Result, error) {
	snapshot := it.Clone()
	unchanged := Result{Itinerary: snapshot, Changes: []domain.ChangeRecord{}}

	if o.provider == nil || !o.provider.IsAvailable(ctx) {
		o.log.Debug("no judgment provider available; skipping fuzzy remediation")
		return unchanged, nil
	}

	requests := make([]*request, len(o.jobs))
	for i, j := range o.jobs {
		requests[i] = j.build(&snapshot, o.cfg)
	}

	var calls atomic.Int32
	results := make([][]edit, len(o.jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)
	for i, req := range requests {
		if req == nil {
			continue
		}
		name := o.jobs[i].name
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.cfg.CallTimeout)
			defer cancel()

			calls.Add(1)
			raw, err := o.provider.Complete(callCtx, req.completion)
			if err != nil {
				o.log.Warn("judgment job degraded", "job", name, "provider", o.provider.Name(), "err", err)
				return nil
			}
			results[i] = req.parse(raw)
			o.log.Debug("judgment job done", "job", name, "edits", len(results[i]))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		unchanged.Calls = int(calls.Load())
		return unchanged, err
	}

	out, changes := applyEdits(snapshot, results)
	return Result{Itinerary: out, Changes: changes, Calls: int(calls.Load())}, nil
}

func applyEdits(snapshot domain.Itinerary, results [][]edit) (domain.Itinerary, []domain.ChangeRecord) {
	out := snapshot.Clone()
	changes := make([]domain.ChangeRecord, 0)

	var removals []edit
	removed := make(map[domain.SlotRef]bool)
	for _, edits := range results {
		for _, e := range edits {
			if e.remove && !removed[e.ref] {
				removed[e.ref] = true
				removals = append(removals, e)
			}
		}
	}

	for _, edits := range results {
		for _, e := range edits {
			if e.remove || removed[e.ref] || e.apply == nil {
				continue
			}
			s := out.Slot(e.ref)
			if s == nil {
				continue
			}
			e.apply(s)
			changes = append(changes, e.change)
		}
	}

	slices.SortFunc(removals, func(a, b edit) int {
		if c := cmp.Compare(a.ref.DayIndex, b.ref.DayIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.ref.SlotIndex, b.ref.SlotIndex)
	})
	for _, e := range removals {
		changes = append(changes, e.change)
	}
	for i := len(removals) - 1; i >= 0; i-- {
		ref := removals[i].ref
		if out.Slot(ref) == nil {
			continue
		}
		day := &out.Days[ref.DayIndex]
		day.Slots = slices.Delete(day.Slots, ref.SlotIndex, ref.SlotIndex+1)
	}
	return out, changes
}

// Remediate is a convenience wrapper over a one-off orchestrator.
func Remediate(ctx context.Context, it domain.Itinerary, provider ports.JudgmentProvider, cfg Config, log *logger.Logger) (Result, error) {
	return NewOrchestrator(provider, cfg, log).Remediate(ctx, it)
}
