package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
)

// FlagMealLongCommutes marks meal slots whose commute in or out exceeds
// thresholdMinutes so a later stage can search for a venue near the adjacent stop.
func FlagMealLongCommutes(thresholdMinutes int) PassFunc {
	return func(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
		it := in.Clone()
		var changes []domain.ChangeRecord
		for di := range it.Days {
			day := &it.Days[di]
			for si := range day.Slots {
				s := &day.Slots[si]
				if !isMealSlot(s) || s.Metadata.NeedsNearbyReplacement {
					continue
				}

				inbound := commuteMinutes(s.CommuteFromPrevious)
				outbound := 0
				if si+1 < len(day.Slots) {
					outbound = commuteMinutes(day.Slots[si+1].CommuteFromPrevious)
				}
				if inbound <= thresholdMinutes && outbound <= thresholdMinutes {
					continue
				}

				var near *domain.Coordinates
				if inbound > thresholdMinutes && si > 0 {
					near = domain.DepartureCoordinates(domain.EffectiveActivity(&day.Slots[si-1]))
				}
				if near == nil && si+1 < len(day.Slots) {
					near = domain.PlaceCoordinates(domain.EffectiveActivity(&day.Slots[si+1]))
				}

				s.Metadata.NeedsNearbyReplacement = true
				if near != nil {
					c := *near
					s.Metadata.NearbySearchCoordinates = &c
				}
				changes = append(changes, domain.ChangeRecord{
					Type:   domain.ChangeFlaggedMealCommute,
					Day:    day.DayNumber,
					SlotID: s.SlotID,
					Reason: fmt.Sprintf("meal commute in %d min / out %d min exceeds %d min", inbound, outbound, thresholdMinutes),
				})
			}
		}
		return it, changes
	}
}

func isMealSlot(s *domain.Slot) bool {
	if domain.EffectiveActivity(s) == nil || isTravelSlot(s) {
		return false
	}
	return domain.ResolveBehavior(s) == domain.BehaviorMeal
}

func commuteMinutes(c *domain.CommuteInfo) int {
	if c == nil {
		return 0
	}
	return c.Duration
}
