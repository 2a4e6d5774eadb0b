package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
)

// FixBehaviors reclassifies slot behavior wherever it contradicts the slot's
// semantics: transport becomes travel, meal slots become meal, pre-booked becomes anchor.
func FixBehaviors(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
	it := in.Clone()
	var changes []domain.ChangeRecord
	for di := range it.Days {
		day := &it.Days[di]
		for si := range day.Slots {
			s := &day.Slots[si]
			want := domain.ResolveBehavior(s)
			if want == s.Behavior {
				continue
			}
			from := string(s.Behavior)
			if from == "" {
				from = "unset"
			}
			changes = append(changes, domain.ChangeRecord{
				Type:   domain.ChangeFixedBehavior,
				Day:    day.DayNumber,
				SlotID: s.SlotID,
				Reason: fmt.Sprintf("behavior %s -> %s", from, want),
			})
			s.Behavior = want
		}
	}
	return it, changes
}
