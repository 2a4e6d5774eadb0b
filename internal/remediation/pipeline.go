// Package remediation repairs structural defects of a generated itinerary with an
// ordered list of deterministic passes. Every pass clones its input, never fails,
// and records each repair or flag as a ChangeRecord.
package remediation

import (
	"slices"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/geo"
	"itinerary-remediation-service/internal/platform/logger"
)

const (
	PassInferArrivalPlaces  = "infer-arrival-places"
	PassRemoveImpossible    = "remove-impossible-slots"
	PassRemoveDuplicates    = "remove-cross-day-duplicates"
	PassFixBehaviors        = "fix-behaviors"
	PassFlagMealCommutes    = "flag-meal-long-commutes"
	PassFlagEmptySlots      = "flag-empty-slots"
	PassRecalculateCommutes = "recalculate-invalid-commutes"
	PassRecalculateSlotIDs  = "recalculate-slot-ids"
)

// MaxCommuteCeilingMinutes is the longest commute ever trusted as-is. A configured
// ceiling can only tighten it.
const MaxCommuteCeilingMinutes = 240

// PassFunc transforms an itinerary and reports what it changed.
type PassFunc func(domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord)

type Pass struct {
	Name  string
	Apply PassFunc
}

type Options struct {
	MealCommuteThresholdMinutes int
	CommuteCeilingMinutes       int
	Gazetteer                   *geo.Gazetteer
	// Skip disables passes by name. The slot id pass always runs.
	Skip   []string
	Logger *logger.Logger
}

func DefaultOptions() Options {
	return Options{
		MealCommuteThresholdMinutes: 30,
		CommuteCeilingMinutes:       MaxCommuteCeilingMinutes,
		Gazetteer:                   geo.DefaultGazetteer(),
	}
}

// Pipeline runs passes in a fixed order. It holds no state between runs.
type Pipeline struct {
	passes []Pass
	log    *logger.Logger
}

// NewPipeline builds the default pass order. Slot ids are renumbered last because
// every earlier pass may add or remove slots.
func NewPipeline(flights *domain.FlightConstraints, opts Options) *Pipeline {
	defaults := DefaultOptions()
	if opts.MealCommuteThresholdMinutes <= 0 {
		opts.MealCommuteThresholdMinutes = defaults.MealCommuteThresholdMinutes
	}
	if opts.CommuteCeilingMinutes <= 0 || opts.CommuteCeilingMinutes > MaxCommuteCeilingMinutes {
		opts.CommuteCeilingMinutes = MaxCommuteCeilingMinutes
	}
	if opts.Gazetteer == nil {
		opts.Gazetteer = defaults.Gazetteer
	}

	all := []Pass{
		{Name: PassInferArrivalPlaces, Apply: InferArrivalPlaces(opts.Gazetteer)},
		{Name: PassRemoveImpossible, Apply: RemoveImpossibleSlots(flights)},
		{Name: PassRemoveDuplicates, Apply: RemoveCrossDayDuplicates},
		{Name: PassFixBehaviors, Apply: FixBehaviors},
		{Name: PassFlagMealCommutes, Apply: FlagMealLongCommutes(opts.MealCommuteThresholdMinutes)},
		{Name: PassFlagEmptySlots, Apply: FlagEmptySlots},
		{Name: PassRecalculateCommutes, Apply: RecalculateInvalidCommutes(opts.CommuteCeilingMinutes)},
		{Name: PassRecalculateSlotIDs, Apply: RecalculateSlotIDs},
	}

	passes := make([]Pass, 0, len(all))
	for _, p := range all {
		if p.Name != PassRecalculateSlotIDs && slices.Contains(opts.Skip, p.Name) {
			continue
		}
		passes = append(passes, p)
	}
	return &Pipeline{passes: passes, log: opts.Logger}
}

// Passes returns the names of the passes in execution order.
func (p *Pipeline) Passes() []string {
	names := make([]string, 0, len(p.passes))
	for _, pass := range p.passes {
		names = append(names, pass.Name)
	}
	return names
}

// Run applies every pass in order. The input itinerary is never modified.
func (p *Pipeline) Run(it domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
	out := it.Clone()
	changes := make([]domain.ChangeRecord, 0)
	for _, pass := range p.passes {
		var ch []domain.ChangeRecord
		out, ch = pass.Apply(out)
		changes = append(changes, ch...)
		if p.log != nil && len(ch) > 0 {
			p.log.Debug("remediation pass applied", "pass", pass.Name, "changes", len(ch))
		}
	}
	return out, changes
}

// Remediate runs the default pipeline once.
func Remediate(it domain.Itinerary, flights *domain.FlightConstraints, opts Options) (domain.Itinerary, []domain.ChangeRecord) {
	return NewPipeline(flights, opts).Run(it)
}
