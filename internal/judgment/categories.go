package judgment

import (
	"fmt"
	"slices"
	"strings"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/ports"
)

// Categories is the closed vocabulary the category job may assign. Transport is
// not assignable and transport activities are never sent.
var Categories = []string{
	"attraction", "museum", "temple", "shrine", "park", "garden", "viewpoint",
	"neighborhood", "market", "shopping", "restaurant", "cafe", "bar", "nightlife",
	"entertainment", "experience", "tour", "nature", "beach", "onsen", "sports",
}

var categorySystem = `You check the category of each itinerary activity.
Allowed categories: ` + strings.Join(Categories, ", ") + `.
For every item return the correct category from the allowed list; return the current one when it is already right.
Answer with JSON only: {"results":[{"index":<int>,"category":"..."}]}.`

type categoryProposal struct {
	Index    *int   `json:"index"`
	Category string `json:"category"`
}

func buildCategoryRequest(it *domain.Itinerary, cfg Config) *request {
	targets := effectiveTargets(it)
	if len(targets) > cfg.MaxItemsPerCall {
		targets = targets[:cfg.MaxItemsPerCall]
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
			System:    categorySystem,
			Prompt:    "ACTIVITIES_JSON:\n" + mustJSON(items),
			JSON:      true,
			MaxTokens: 20 * len(targets),
		},
		parse: func(raw string) []edit {
			var edits []edit
			for _, r := range decodeResults[categoryProposal](raw) {
				if r.Index == nil || *r.Index < 0 || *r.Index >= len(targets) {
					continue
				}
				proposed := strings.ToLower(strings.TrimSpace(r.Category))
				if !slices.Contains(Categories, proposed) {
					continue
				}
				t := targets[*r.Index]
				current := strings.ToLower(strings.TrimSpace(t.activity.Category))
				if proposed == current {
					continue
				}
				option := t.option
				from := current
				if from == "" {
					from = "none"
				}
				edits = append(edits, edit{
					ref:   t.ref,
					apply: func(s *domain.Slot) { s.Options[option].Activity.Category = proposed },
					change: domain.ChangeRecord{
						Type:   domain.ChangeFixedCategory,
						Day:    t.dayNumber,
						SlotID: t.slotID,
						Reason: fmt.Sprintf("%q category %s -> %s", t.activity.Name, from, proposed),
					},
				})
			}
			return edits
		},
	}
}
