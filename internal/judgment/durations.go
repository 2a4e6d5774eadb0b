package judgment

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/ports"
)

const maxInferredMinutes = 720

const durationSystem = `Estimate how many minutes a typical visitor spends on each activity.
Guidelines by category: museum 90-180, temple or shrine 45-90, park or garden 60-120,
restaurant 60-90, cafe 30-60, market or shopping 60-120, viewpoint 30-60,
nightlife 90-180, tour or experience 120-240.
Answer with JSON only: {"results":[{"index":<int>,"minutes":<int>}]}.`

type durationEstimate struct {
	Index   *int     `json:"index"`
	Minutes *float64 `json:"minutes"`
}

func buildDurationRequest(it *domain.Itinerary, cfg Config) *request {
	var targets []target
	for di := range it.Days {
		day := &it.Days[di]
		for si := range day.Slots {
			s := &day.Slots[si]
			for oi := range s.Options {
				act := &s.Options[oi].Activity
				if act.Duration > 0 || act.Name == "" || len(targets) == cfg.MaxItemsPerCall {
					continue
				}
				targets = append(targets, target{
					ref:       domain.SlotRef{DayIndex: di, SlotIndex: si},
					option:    oi,
					dayNumber: day.DayNumber,
					slotID:    s.SlotID,
					slotType:  s.SlotType,
					activity:  act,
				})
			}
		}
	}
	if len(targets) == 0 {
		return nil
	}

	items := make([]map[string]any, 0, len(targets))
	for i, t := range targets {
		d := t.describe()
		d["index"] = i
		items = append(items, d)
	}

	return &request{
		completion: ports.CompletionRequest{
			System:    durationSystem,
			Prompt:    "ACTIVITIES_JSON:\n" + mustJSON(items),
			JSON:      true,
			MaxTokens: 20 * len(targets),
		},
		parse: func(raw string) []edit {
			var edits []edit
			for _, r := range decodeResults[durationEstimate](raw) {
				if r.Index == nil || r.Minutes == nil || *r.Index < 0 || *r.Index >= len(targets) {
					continue
				}
				minutes := int(*r.Minutes + 0.5)
				if minutes < 1 || minutes > maxInferredMinutes {
					continue
				}
				t := targets[*r.Index]
				option := t.option
				edits = append(edits, edit{
					ref:   t.ref,
					apply: func(s *domain.Slot) { s.Options[option].Activity.Duration = minutes },
					change: domain.ChangeRecord{
						Type:   domain.ChangeInferredDuration,
						Day:    t.dayNumber,
						SlotID: t.slotID,
						Reason: fmt.Sprintf("%q estimated at %d min", t.activity.Name, minutes),
					},
				})
			}
			return edits
		},
	}
}
