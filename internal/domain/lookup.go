package domain

import "strings"

// SlotRef addresses a slot by position inside an Itinerary.
type SlotRef struct {
	DayIndex  int
	SlotIndex int
}

// Slot returns the referenced slot, or nil when the reference is out of range.
func (it *Itinerary) Slot(ref SlotRef) *Slot {
	if ref.DayIndex < 0 || ref.DayIndex >= len(it.Days) {
		return nil
	}
	day := &it.Days[ref.DayIndex]
	if ref.SlotIndex < 0 || ref.SlotIndex >= len(day.Slots) {
		return nil
	}
	return &day.Slots[ref.SlotIndex]
}

// PlaceKey is the identity used for duplicate detection: the place id when present,
// otherwise the lower-cased trimmed activity name. Empty means no identity.
func PlaceKey(a *Activity) string {
	if a == nil {
		return ""
	}
	if a.Place != nil {
		if id := strings.TrimSpace(a.Place.PlaceID); id != "" {
			return "id:" + id
		}
	}
	name := NormalizeName(a.Name)
	if name == "" {
		return ""
	}
	return "name:" + name
}

// NormalizeName lower-cases and trims a name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DepartureCoordinates returns where the traveler is after the activity ends:
// the arrival place of a transport activity, otherwise the activity's own place.
// A transport activity without a known arrival yields nil: its nominal place is
// the departure point and would poison the next leg.
func DepartureCoordinates(a *Activity) *Coordinates {
	if a == nil {
		return nil
	}
	if IsTransportActivity(a) {
		if a.ArrivalPlace != nil && a.ArrivalPlace.Coordinates.Valid() {
			return a.ArrivalPlace.Coordinates
		}
		return nil
	}
	if a.Place != nil && a.Place.Coordinates.Valid() {
		return a.Place.Coordinates
	}
	return nil
}

// PlaceCoordinates returns the activity's own valid coordinates, or nil.
func PlaceCoordinates(a *Activity) *Coordinates {
	if a == nil || a.Place == nil || !a.Place.Coordinates.Valid() {
		return nil
	}
	return a.Place.Coordinates
}
