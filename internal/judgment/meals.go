package judgment

import (
	"fmt"
	"strings"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/ports"
)

const mealSystem = `You check whether a venue suits the meal it is scheduled for.
A bar is not a breakfast venue; a dessert shop is not a dinner venue; a museum is not a meal.
Answer with JSON only: {"results":[{"index":<int>,"suitable":<bool>,"reason":"...","suggestion":"..."}]}.
Give a short suggestion only when unsuitable.`

type mealVerdict struct {
	Index      *int   `json:"index"`
	Suitable   *bool  `json:"suitable"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

func buildMealRequest(it *domain.Itinerary, cfg Config) *request {
	var targets []target
	for _, t := range effectiveTargets(it) {
		if !t.slotType.IsMeal() {
			continue
		}
		if it.Slot(t.ref).Metadata.NeedsReplacement {
			continue
		}
		targets = append(targets, t)
		if len(targets) == cfg.MaxItemsPerCall {
			break
		}
	}
	if len(targets) == 0 {
		return nil
	}

	items := make([]map[string]any, 0, len(targets))
	for i, t := range targets {
		d := t.describe()
		d["index"] = i
		d["mealType"] = string(t.slotType)
		items = append(items, d)
	}

	return &request{
		completion: ports.CompletionRequest{
			System:    mealSystem,
			Prompt:    "MEALS_JSON:\n" + mustJSON(items),
			JSON:      true,
			MaxTokens: 80 * len(targets),
		},
		parse: func(raw string) []edit {
			var edits []edit
			for _, r := range decodeResults[mealVerdict](raw) {
				if r.Index == nil || r.Suitable == nil || *r.Index < 0 || *r.Index >= len(targets) || *r.Suitable {
					continue
				}
				t := targets[*r.Index]
				reason := strings.TrimSpace(r.Reason)
				if reason == "" {
					reason = fmt.Sprintf("not suitable for %s", t.slotType)
				}
				suggestion := strings.TrimSpace(r.Suggestion)
				edits = append(edits, edit{
					ref: t.ref,
					apply: func(s *domain.Slot) {
						s.Metadata.NeedsReplacement = true
						s.Metadata.ReplacementReason = reason
						s.Metadata.ReplacementSuggestion = suggestion
					},
					change: domain.ChangeRecord{
						Type:   domain.ChangeFlaggedUnsuitableMeal,
						Day:    t.dayNumber,
						SlotID: t.slotID,
						Reason: fmt.Sprintf("%q for %s: %s", t.activity.Name, t.slotType, reason),
					},
				})
			}
			return edits
		},
	}
}
