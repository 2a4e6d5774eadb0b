package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
)

// RecalculateSlotIDs renumbers every slot to d{day}-slot-{position} and rewrites
// dependencies that pointed at a renamed slot.
func RecalculateSlotIDs(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
	it := in.Clone()

	counts := make(map[string]int)
	for _, day := range it.Days {
		for _, s := range day.Slots {
			counts[s.SlotID]++
		}
	}

	renamed := make(map[string]string)
	var changes []domain.ChangeRecord
	for di := range it.Days {
		day := &it.Days[di]
		for si := range day.Slots {
			s := &day.Slots[si]
			want := domain.CanonicalSlotID(day.DayNumber, si+1)
			if s.SlotID == want {
				continue
			}
			if s.SlotID != "" && counts[s.SlotID] == 1 {
				renamed[s.SlotID] = want
			}
			changes = append(changes, domain.ChangeRecord{
				Type:   domain.ChangeFixedSlotID,
				Day:    day.DayNumber,
				SlotID: want,
				Reason: fmt.Sprintf("slot id %q -> %q", s.SlotID, want),
			})
			s.SlotID = want
		}
	}

	if len(renamed) == 0 {
		return it, changes
	}
	for di := range it.Days {
		for si := range it.Days[di].Slots {
			deps := it.Days[di].Slots[si].Dependencies
			for k := range deps {
				if to, ok := renamed[deps[k].TargetSlotID]; ok {
					deps[k].TargetSlotID = to
				}
			}
		}
	}
	return it, changes
}
