package remediation

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/geo"
)

// InferArrivalPlaces attaches gazetteer coordinates to transport activities that
// lack an arrival place. Without them the next leg's commute would be measured
// from the departure station.
func InferArrivalPlaces(g *geo.Gazetteer) PassFunc {
	return func(in domain.Itinerary) (domain.Itinerary, []domain.ChangeRecord) {
		it := in.Clone()
		var changes []domain.ChangeRecord
		for di := range it.Days {
			day := &it.Days[di]
			for si := range day.Slots {
				s := &day.Slots[si]
				for oi := range s.Options {
					act := &s.Options[oi].Activity
					if !domain.IsTransportActivity(act) {
						continue
					}
					if act.ArrivalPlace != nil && act.ArrivalPlace.Coordinates.Valid() {
						continue
					}
					loc, ok := g.LookupDestination(act.Name)
					if !ok {
						continue
					}

					coords := loc.Coordinates
					if act.ArrivalPlace == nil {
						act.ArrivalPlace = &domain.Place{Name: loc.Name}
					}
					act.ArrivalPlace.Coordinates = &coords

					changes = append(changes, domain.ChangeRecord{
						Type:   domain.ChangeInferredArrivalPlace,
						Day:    day.DayNumber,
						SlotID: s.SlotID,
						Reason: fmt.Sprintf("%q arrives in %s (%.4f, %.4f)", act.Name, loc.Name, coords.Lat, coords.Lng),
					})
				}
			}
		}
		return it, changes
	}
}
