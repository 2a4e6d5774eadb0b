package remediation

import (
	"itinerary-remediation-service/internal/domain"
)

// FlagEmptySlots marks option-less slots for activity suggestion.
func FlagEmptySlots(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
	it := in.Clone()
	var changes []domain.ChangeRecord
	for di := range it.Days {
		day := &it.Days[di]
		for si := range day.Slots {
			s := &day.Slots[si]
			if len(s.Options) > 0 || s.Metadata.NeedsActivity {
				continue
			}
			category := "attraction"
			if s.SlotType.IsMeal() {
				category = "restaurant"
			}
			s.Metadata.NeedsActivity = true
			s.Metadata.SuggestedCategory = category
			changes = append(changes, domain.ChangeRecord{
				Type:   domain.ChangeFlaggedEmptySlot,
				Day:    day.DayNumber,
				SlotID: s.SlotID,
				Reason: "empty " + string(s.SlotType) + " slot needs a " + category,
			})
		}
	}
	return it, changes
}
