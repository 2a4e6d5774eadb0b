// Package constraints validates an itinerary against seven independent layers
// (temporal, travel, clustering, dependencies, pacing, fragility, cross-day).
// The engine never mutates its input; it only reports.
package constraints

import (
	"slices"

	"itinerary-remediation-service/internal/domain"
)

// Config tunes validation thresholds. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// StrictMode makes warnings fail feasibility in addition to errors.
	StrictMode bool

	MinBufferMinutes            int
	MaxDailyWalkingMeters       int
	MaxConsecutiveWalks         int
	MaxDailyActivityMinutes     int
	CityTransitionBufferMinutes int
}

func DefaultConfig() Config {
	return Config{
		MinBufferMinutes:            15,
		MaxDailyWalkingMeters:       15000,
		MaxConsecutiveWalks:         4,
		MaxDailyActivityMinutes:     600,
		CityTransitionBufferMinutes: 30,
	}
}

// Analysis is the result of a validation run.
type Analysis struct {
	Feasible       bool                         `json:"feasible"`
	Violations     []domain.ConstraintViolation `json:"violations"`
	AffectedLayers []domain.ConstraintLayer     `json:"affectedLayers"`
}

type layer func(it *domain.Itinerary, cfg Config) []domain.ConstraintViolation

// Engine is a stateless validator. It holds only its configuration and is safe
// for concurrent use.
type Engine struct {
	cfg    Config
	layers []layer
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		layers: []layer{
			checkTemporal,
			checkTravel,
			checkClustering,
			checkDependencies,
			checkPacing,
			checkFragility,
			checkCrossDay,
		},
	}
}

// Validate runs every layer over it and derives the feasibility verdict.
func (e *Engine) Validate(it domain.Itinerary) Analysis {
	violations := make([]domain.ConstraintViolation, 0)
	for _, check := range e.layers {
		violations = append(violations, check(&it, e.cfg)...)
	}

	affected := make([]domain.ConstraintLayer, 0)
	for _, v := range violations {
		if !slices.Contains(affected, v.Layer) {
			affected = append(affected, v.Layer)
		}
	}

	return Analysis{
		Feasible:       isFeasible(violations, e.cfg.StrictMode),
		Violations:     violations,
		AffectedLayers: affected,
	}
}

// Validate is a convenience wrapper for a one-off engine.
func Validate(it domain.Itinerary, cfg Config) Analysis {
	return NewEngine(cfg).Validate(it)
}

func isFeasible(violations []domain.ConstraintViolation, strict bool) bool {
	for _, v := range violations {
		if v.Severity == domain.SeverityError {
			return false
		}
		if strict && v.Severity == domain.SeverityWarning {
			return false
		}
	}
	return true
}

// Summary counts violations per severity.
func (a Analysis) Summary() map[domain.Severity]int {
	out := map[domain.Severity]int{
		domain.SeverityInfo:    0,
		domain.SeverityWarning: 0,
		domain.SeverityError:   0,
	}
	for _, v := range a.Violations {
		out[v.Severity]++
	}
	return out
}

// ViolationsForSlot returns the violations that name slotID.
func (a Analysis) ViolationsForSlot(slotID string) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for _, v := range a.Violations {
		if v.AffectedSlotID == slotID {
			out = append(out, v)
		}
	}
	return out
}

// ViolationsByLayer groups violations by layer.
func (a Analysis) ViolationsByLayer() map[domain.ConstraintLayer][]domain.ConstraintViolation {
	out := make(map[domain.ConstraintLayer][]domain.ConstraintViolation)
	for _, v := range a.Violations {
		out[v.Layer] = append(out[v.Layer], v)
	}
	return out
}
