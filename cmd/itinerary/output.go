package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"itinerary-remediation-service/internal/constraints"
	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/services"
	"itinerary-remediation-service/internal/timeutil"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type report struct {
	Feasible       bool                         `json:"feasible"`
	Summary        map[domain.Severity]int      `json:"summary"`
	Violations     []domain.ConstraintViolation `json:"violations"`
	AffectedLayers []domain.ConstraintLayer     `json:"affectedLayers"`
}

func newReport(a constraints.Analysis) report {
	return report{
		Feasible:       a.Feasible,
		Summary:        a.Summary(),
		Violations:     a.Violations,
		AffectedLayers: a.AffectedLayers,
	}
}

// repairFlags are shared by remediate and full.
type repairFlags struct {
	arrival            string
	departure          string
	resolveCommutes    bool
	resolveCoordinates bool
	save               bool
}

func (f *repairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.arrival, "arrival", "", "Arrival flight time on day one (HH:MM)")
	cmd.Flags().StringVar(&f.departure, "departure", "", "Departure flight time on the last day (HH:MM)")
	cmd.Flags().BoolVar(&f.resolveCommutes, "resolve-commutes", false, "Fill missing commutes from the routing provider first")
	cmd.Flags().BoolVar(&f.resolveCoordinates, "resolve-coordinates", false, "Geocode places without coordinates first (needs ORS_API_KEY)")
	cmd.Flags().BoolVar(&f.save, "save", false, "Store the result and its change log (needs DATABASE_URL)")
}

func (f *repairFlags) flights() (*domain.FlightConstraints, error) {
	if f.arrival == "" && f.departure == "" {
		return nil, nil
	}
	for _, t := range []string{f.arrival, f.departure} {
		if t == "" {
			continue
		}
		if _, err := timeutil.ParseHHMM(t); err != nil {
			return nil, fmt.Errorf("flight time %q: %w", t, err)
		}
	}
	return &domain.FlightConstraints{ArrivalFlightTime: f.arrival, DepartureFlightTime: f.departure}, nil
}

// prepare loads the itinerary and runs the optional pre-engine resolution steps.
func (f *repairFlags) prepare(ctx context.Context, a *app) (domain.Itinerary, error) {
	if f.save && a.repo == nil {
		return domain.Itinerary{}, errors.New("--save needs DATABASE_URL")
	}

	it, err := a.loadItinerary(ctx)
	if err != nil {
		return domain.Itinerary{}, err
	}
	if !f.resolveCommutes && !f.resolveCoordinates {
		return it, nil
	}

	router, geocoder, err := a.routing()
	if err != nil {
		return domain.Itinerary{}, err
	}
	if f.resolveCoordinates {
		if geocoder == nil {
			return domain.Itinerary{}, errors.New("--resolve-coordinates needs ORS_API_KEY")
		}
		if it, _, err = services.ResolveCoordinates(ctx, it, geocoder, a.log); err != nil {
			return domain.Itinerary{}, err
		}
	}
	if f.resolveCommutes {
		if it, _, err = services.ResolveCommutes(ctx, it, router, a.log); err != nil {
			return domain.Itinerary{}, err
		}
	}
	return it, nil
}

func (f *repairFlags) store(ctx context.Context, a *app, it domain.Itinerary, changes []domain.ChangeRecord) (string, error) {
	if !f.save {
		return "", nil
	}
	return services.StoreRemediation(ctx, a.repo, it, changes)
}
