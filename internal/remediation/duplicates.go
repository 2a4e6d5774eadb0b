package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
)

// RemoveCrossDayDuplicates keeps the first occurrence of every place across the
// whole itinerary and deletes later ones. Identity is the place id, falling back
// to the normalized activity name. Transport slots pass through untouched.
func RemoveCrossDayDuplicates(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
	it := in.Clone()
	var changes []domain.ChangeRecord
	firstSeen := make(map[string]int)

	for di := range it.Days {
		day := &it.Days[di]
		kept := make([]domain.Slot, 0, len(day.Slots))
		for si := range day.Slots {
			s := &day.Slots[si]
			act := domain.EffectiveActivity(s)
			key := domain.PlaceKey(act)
			if key == "" || isTravelSlot(s) {
				kept = append(kept, *s)
				continue
			}
			if firstDay, dup := firstSeen[key]; dup {
				changes = append(changes, domain.ChangeRecord{
					Type:   domain.ChangeRemovedDuplicate,
					Day:    day.DayNumber,
					SlotID: s.SlotID,
					Reason: fmt.Sprintf("%q is already scheduled on day %d", act.Name, firstDay),
				})
				continue
			}
			firstSeen[key] = day.DayNumber
			kept = append(kept, *s)
		}
		day.Slots = kept
	}
	return it, changes
}
