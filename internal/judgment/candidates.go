package judgment

import (
	"encoding/json"
	"strings"

	"itinerary-remediation-service/internal/domain"
)

// target addresses one option of one slot in the snapshot.
type target struct {
	ref       domain.SlotRef
	option    int
	dayNumber int
	slotID    string
	slotType  domain.SlotType
	activity  *domain.Activity
}

// effectiveTargets lists the effective option of every slot that has one.
// Travel slots are left out.
func effectiveTargets(it *domain.Itinerary) []target {
	var out []target
	for di := range it.Days {
		day := &it.Days[di]
		for si := range day.Slots {
			s := &day.Slots[si]
			idx := domain.EffectiveOptionIndex(s)
			if idx < 0 {
				continue
			}
			if domain.ResolveBehavior(s) == domain.BehaviorTravel {
				continue
			}
			out = append(out, target{
				ref:       domain.SlotRef{DayIndex: di, SlotIndex: si},
				option:    idx,
				dayNumber: day.DayNumber,
				slotID:    s.SlotID,
				slotType:  s.SlotType,
				activity:  &s.Options[idx].Activity,
			})
		}
	}
	return out
}

func (t target) describe() map[string]any {
	d := map[string]any{
		"name":     t.activity.Name,
		"category": t.activity.Category,
		"day":      t.dayNumber,
	}
	if desc := strings.TrimSpace(t.activity.Description); desc != "" {
		d["description"] = truncate(desc, 200)
	}
	if p := t.activity.Place; p != nil {
		if p.Neighborhood != "" {
			d["neighborhood"] = p.Neighborhood
		}
		if p.Address != "" {
			d["address"] = p.Address
		}
	}
	return d
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
