// Package config assembles engine settings from built-in defaults, an optional
// YAML file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"itinerary-remediation-service/internal/constraints"
	"itinerary-remediation-service/internal/geo"
	"itinerary-remediation-service/internal/judgment"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/remediation"
)

type Validation struct {
	Strict                      bool    `yaml:"strict"`
	MinBufferMinutes            int     `yaml:"min_buffer_minutes"`
	MaxDailyWalkingKm           float64 `yaml:"max_daily_walking_km"`
	MaxConsecutiveWalks         int     `yaml:"max_consecutive_walks"`
	MaxDailyActivityMinutes     int     `yaml:"max_daily_activity_minutes"`
	CityTransitionBufferMinutes int     `yaml:"city_transition_buffer_minutes"`
}

type Remediation struct {
	MealCommuteThresholdMinutes int      `yaml:"meal_commute_threshold_minutes"`
	CommuteCeilingMinutes       int      `yaml:"commute_ceiling_minutes"`
	Skip                        []string `yaml:"skip"`
}

type Judgment struct {
	Concurrency            int      `yaml:"concurrency"`
	TimeoutSeconds         int      `yaml:"timeout_seconds"`
	MinDuplicateConfidence float64  `yaml:"min_duplicate_confidence"`
	MaxDuplicatePairs      int      `yaml:"max_duplicate_pairs"`
	MaxItemsPerCall        int      `yaml:"max_items_per_call"`
	Skip                   []string `yaml:"skip"`
}

// Engine is the full tunable surface of the validation and remediation engines.
type Engine struct {
	Validation  Validation  `yaml:"validation"`
	Remediation Remediation `yaml:"remediation"`
	Judgment    Judgment    `yaml:"judgment"`
	// Gazetteer entries extend the built-in city and station list.
	Gazetteer []geo.Location `yaml:"gazetteer"`
}

func Defaults() Engine {
	v := constraints.DefaultConfig()
	r := remediation.DefaultOptions()
	j := judgment.DefaultConfig()
	return Engine{
		Validation: Validation{
			MinBufferMinutes:            v.MinBufferMinutes,
			MaxDailyWalkingKm:           float64(v.MaxDailyWalkingMeters) / 1000,
			MaxConsecutiveWalks:         v.MaxConsecutiveWalks,
			MaxDailyActivityMinutes:     v.MaxDailyActivityMinutes,
			CityTransitionBufferMinutes: v.CityTransitionBufferMinutes,
		},
		Remediation: Remediation{
			MealCommuteThresholdMinutes: r.MealCommuteThresholdMinutes,
			CommuteCeilingMinutes:       r.CommuteCeilingMinutes,
		},
		Judgment: Judgment{
			Concurrency:            j.Concurrency,
			TimeoutSeconds:         int(j.CallTimeout / time.Second),
			MinDuplicateConfidence: j.MinDuplicateConfidence,
			MaxDuplicatePairs:      j.MaxDuplicatePairs,
			MaxItemsPerCall:        j.MaxItemsPerCall,
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An empty
// path skips the file.
func Load(path string) (Engine, error) {
	cfg := Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Engine{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Engine{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Engine{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Engine) applyEnv() {
	c.Validation.Strict = Bool("VALIDATION_STRICT", c.Validation.Strict)
	c.Validation.MinBufferMinutes = Int("MIN_BUFFER_MINUTES", c.Validation.MinBufferMinutes)
	c.Validation.MaxDailyWalkingKm = Float("MAX_DAILY_WALKING_KM", c.Validation.MaxDailyWalkingKm)
	c.Remediation.MealCommuteThresholdMinutes = Int("MEAL_COMMUTE_THRESHOLD_MINUTES", c.Remediation.MealCommuteThresholdMinutes)
	c.Remediation.CommuteCeilingMinutes = Int("COMMUTE_CEILING_MINUTES", c.Remediation.CommuteCeilingMinutes)
	c.Judgment.Concurrency = Int("JUDGMENT_CONCURRENCY", c.Judgment.Concurrency)
	c.Judgment.TimeoutSeconds = Int("JUDGMENT_TIMEOUT_SECONDS", c.Judgment.TimeoutSeconds)
}

// Validate rejects values the engines cannot run with.
func (c Engine) Validate() error {
	var errs []error
	if c.Validation.MinBufferMinutes < 0 {
		errs = append(errs, errors.New("validation.min_buffer_minutes must not be negative"))
	}
	if c.Validation.MaxDailyWalkingKm <= 0 {
		errs = append(errs, errors.New("validation.max_daily_walking_km must be positive"))
	}
	if c.Remediation.MealCommuteThresholdMinutes <= 0 {
		errs = append(errs, errors.New("remediation.meal_commute_threshold_minutes must be positive"))
	}
	if m := c.Remediation.CommuteCeilingMinutes; m <= 0 || m > remediation.MaxCommuteCeilingMinutes {
		errs = append(errs, fmt.Errorf("remediation.commute_ceiling_minutes must be within 1..%d", remediation.MaxCommuteCeilingMinutes))
	}
	if c.Judgment.Concurrency <= 0 {
		errs = append(errs, errors.New("judgment.concurrency must be positive"))
	}
	if c.Judgment.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("judgment.timeout_seconds must be positive"))
	}
	if conf := c.Judgment.MinDuplicateConfidence; conf < 0 || conf > 1 {
		errs = append(errs, errors.New("judgment.min_duplicate_confidence must be within [0,1]"))
	}
	for i, loc := range c.Gazetteer {
		if loc.Name == "" || !loc.Coordinates.Valid() {
			errs = append(errs, fmt.Errorf("gazetteer[%d] needs a name and valid coordinates", i))
		}
	}
	return errors.Join(errs...)
}

func (c Engine) ConstraintsConfig() constraints.Config {
	out := constraints.DefaultConfig()
	out.StrictMode = c.Validation.Strict
	out.MinBufferMinutes = c.Validation.MinBufferMinutes
	out.MaxDailyWalkingMeters = int(c.Validation.MaxDailyWalkingKm * 1000)
	if c.Validation.MaxConsecutiveWalks > 0 {
		out.MaxConsecutiveWalks = c.Validation.MaxConsecutiveWalks
	}
	if c.Validation.MaxDailyActivityMinutes > 0 {
		out.MaxDailyActivityMinutes = c.Validation.MaxDailyActivityMinutes
	}
	if c.Validation.CityTransitionBufferMinutes > 0 {
		out.CityTransitionBufferMinutes = c.Validation.CityTransitionBufferMinutes
	}
	return out
}

func (c Engine) RemediationOptions(log *logger.Logger) remediation.Options {
	g := geo.DefaultGazetteer()
	if len(c.Gazetteer) > 0 {
		g = g.With(c.Gazetteer...)
	}
	return remediation.Options{
		MealCommuteThresholdMinutes: c.Remediation.MealCommuteThresholdMinutes,
		CommuteCeilingMinutes:       c.Remediation.CommuteCeilingMinutes,
		Gazetteer:                   g,
		Skip:                        c.Remediation.Skip,
		Logger:                      log,
	}
}

func (c Engine) JudgmentConfig() judgment.Config {
	return judgment.Config{
		Concurrency:            c.Judgment.Concurrency,
		CallTimeout:            time.Duration(c.Judgment.TimeoutSeconds) * time.Second,
		MinDuplicateConfidence: c.Judgment.MinDuplicateConfidence,
		MaxDuplicatePairs:      c.Judgment.MaxDuplicatePairs,
		MaxItemsPerCall:        c.Judgment.MaxItemsPerCall,
		Skip:                   c.Judgment.Skip,
	}
}
