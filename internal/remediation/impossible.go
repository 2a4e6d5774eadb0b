package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/timeutil"
)

const (
	arrivalSettleMinutes   = 120
	departureBufferMinutes = 180
)

// RemoveImpossibleSlots drops first-day slots that end before the traveler can
// reach the city and last-day slots that start too close to the departing flight.
// Travel slots are kept.
func RemoveImpossibleSlots(flights *domain.FlightConstraints) PassFunc {
	return func(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
		it := in.Clone()
		if flights == nil || len(it.Days) == 0 {
			return it, nil
		}
		var changes []domain.ChangeRecord

		if arrival, err := timeutil.ParseHHMM(flights.ArrivalFlightTime); err == nil {
			earliest := arrival + arrivalSettleMinutes
			day := &it.Days[0]
			day.Slots = filterSlots(day, func(s *domain.Slot) (bool, string) {
				end, err := timeutil.ParseHHMM(s.TimeRange.End)
				if err != nil || end >= earliest {
					return true, ""
				}
				return false, fmt.Sprintf("ends at %s, before arrival at %s plus %d min",
					s.TimeRange.End, flights.ArrivalFlightTime, arrivalSettleMinutes)
			}, &changes)
		}

		if departure, err := timeutil.ParseHHMM(flights.DepartureFlightTime); err == nil {
			latest := departure - departureBufferMinutes
			day := &it.Days[len(it.Days)-1]
			day.Slots = filterSlots(day, func(s *domain.Slot) (bool, string) {
				start, err := timeutil.ParseHHMM(s.TimeRange.Start)
				if err != nil || start <= latest {
					return true, ""
				}
				return false, fmt.Sprintf("starts at %s, within %d min of the %s departure",
					s.TimeRange.Start, departureBufferMinutes, flights.DepartureFlightTime)
			}, &changes)
		}

		return it, changes
	}
}

func filterSlots(day *domain.Day, keep func(*domain.Slot) (bool, string), changes *[]domain.ChangeRecord) []domain.Slot {
	kept := make([]domain.Slot, 0, len(day.Slots))
	for si := range day.Slots {
		s := &day.Slots[si]
		if isTravelSlot(s) {
			kept = append(kept, *s)
			continue
		}
		ok, reason := keep(s)
		if ok {
			kept = append(kept, *s)
			continue
		}
		*changes = append(*changes, domain.ChangeRecord{
			Type:   domain.ChangeRemovedImpossibleSlot,
			Day:    day.DayNumber,
			SlotID: s.SlotID,
			Reason: reason,
		})
	}
	return kept
}

// isTravelSlot judges by slot semantics, not the stored label.
func isTravelSlot(s *domain.Slot) bool {
	return domain.ResolveBehavior(s) == domain.BehaviorTravel
}
