package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"itinerary-remediation-service/internal/constraints"
	"itinerary-remediation-service/internal/domain"
)

type inspectOutput struct {
	SlotID     string                       `json:"slotId"`
	DayNumber  int                          `json:"dayNumber"`
	Option     *domain.ActivityOption       `json:"option,omitempty"`
	Move       constraints.MoveCheck        `json:"move"`
	Violations []domain.ConstraintViolation `json:"violations"`
}

func newInspectCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <slot-id|option-id|name>",
		Short: "Show one slot, whether it can move, and its violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			it, err := a.loadItinerary(cmd.Context())
			if err != nil {
				return err
			}

			engine := constraints.NewEngine(a.engine.ConstraintsConfig())
			var (
				slotMatch constraints.SlotMatch
				option    *domain.ActivityOption
			)
			if m, ok := engine.FindSlot(it, args[0]); ok {
				slotMatch = m
				option = domain.EffectiveOption(&m.Slot)
			} else if am, ok := engine.FindActivity(it, args[0]); ok {
				slotMatch = am.SlotMatch
				option = &am.Option
			} else {
				return fmt.Errorf("no slot or activity matches %q", args[0])
			}

			violations := engine.Validate(it).ViolationsForSlot(slotMatch.Slot.SlotID)
			if violations == nil {
				violations = []domain.ConstraintViolation{}
			}
			return writeJSON(cmd.OutOrStdout(), inspectOutput{
				SlotID:     slotMatch.Slot.SlotID,
				DayNumber:  slotMatch.DayNumber,
				Option:     option,
				Move:       engine.CanMoveSlot(slotMatch.Slot),
				Violations: violations,
			})
		},
	}
}
