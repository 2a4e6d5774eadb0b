package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/geo"
)

// RecalculateInvalidCommutes recomputes commutes longer than ceilingMinutes from
// real coordinates. When coordinates are missing, or the estimate is still over the
// ceiling, the slot is flagged instead of trusting or fabricating a number.
// Ceilings above MaxCommuteCeilingMinutes are lowered to it.
func RecalculateInvalidCommutes(ceilingMinutes int) PassFunc {
	if ceilingMinutes <= 0 || ceilingMinutes > MaxCommuteCeilingMinutes {
		ceilingMinutes = MaxCommuteCeilingMinutes
	}
	return func(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
		it := in.Clone()
		var changes []domain.ChangeRecord
		for di := range it.Days {
			day := &it.Days[di]
			for si := range day.Slots {
				s := &day.Slots[si]
				c := s.CommuteFromPrevious
				if c == nil || c.Duration <= ceilingMinutes || s.Metadata.NeedsCommuteRecalculation {
					continue
				}

				origin := commuteOrigin(day, si)
				dest := domain.PlaceCoordinates(domain.EffectiveActivity(s))
				if origin == nil || dest == nil {
					flagCommute(s, domain.CommuteIssueMissingCoordinates)
					changes = append(changes, domain.ChangeRecord{
						Type:   domain.ChangeFlaggedInvalidCommute,
						Day:    day.DayNumber,
						SlotID: s.SlotID,
						Reason: fmt.Sprintf("commute of %d min exceeds %d min and coordinates are unavailable", c.Duration, ceilingMinutes),
					})
					continue
				}

				est := geo.EstimateCommute(*origin, *dest)
				if est.Duration > ceilingMinutes {
					flagCommute(s, domain.CommuteIssueExceedsCeiling)
					changes = append(changes, domain.ChangeRecord{
						Type:   domain.ChangeFlaggedInvalidCommute,
						Day:    day.DayNumber,
						SlotID: s.SlotID,
						Reason: fmt.Sprintf("commute of %d min exceeds %d min; estimate from coordinates is still %d min", c.Duration, ceilingMinutes, est.Duration),
					})
					continue
				}

				s.Metadata.OriginalCommuteDuration = c.Duration
				s.Metadata.CommuteRecalculated = true
				s.Metadata.CommuteIssue = ""
				s.CommuteFromPrevious = &est
				changes = append(changes, domain.ChangeRecord{
					Type:   domain.ChangeRecalculatedCommute,
					Day:    day.DayNumber,
					SlotID: s.SlotID,
					Reason: fmt.Sprintf("commute %d min -> %d min by %s (%d m)", c.Duration, est.Duration, est.Method, est.Distance),
				})
			}
		}
		return it, changes
	}
}

// commuteOrigin is where the traveler stands before slot si: the previous slot's
// departure point, or the hotel for the first slot of the day.
func commuteOrigin(day *domain.Day, si int) *domain.Coordinates {
	if si > 0 {
		return domain.DepartureCoordinates(domain.EffectiveActivity(&day.Slots[si-1]))
	}
	if day.Accommodation != nil && day.Accommodation.Coordinates.Valid() {
		return day.Accommodation.Coordinates
	}
	return nil
}

func flagCommute(s *domain.Slot, issue domain.CommuteIssue) {
	s.Metadata.NeedsCommuteRecalculation = true
	s.Metadata.CommuteIssue = issue
}
