package constraints

import (
	"strings"

	"itinerary-remediation-service/internal/domain"
)

// RigidityThreshold is the rigidity at or above which a slot cannot be moved.
const RigidityThreshold = 0.95

// MoveCheck explains whether a slot may be rescheduled.
type MoveCheck struct {
	Movable bool   `json:"movable"`
	Reason  string `json:"reason,omitempty"`
}

// CanMoveSlot rejects locked, highly rigid, and timed-booking slots.
func (e *Engine) CanMoveSlot(s domain.Slot) MoveCheck {
	switch {
	case s.IsLocked:
		return MoveCheck{Reason: "slot is locked"}
	case s.RigidityScore >= RigidityThreshold:
		return MoveCheck{Reason: "slot is too rigid to move"}
	case domain.HasTimedBooking(&s):
		return MoveCheck{Reason: "slot holds a timed booking"}
	}
	return MoveCheck{Movable: true}
}

// SlotMatch is the result of a lookup: where the slot is and a copy of it.
type SlotMatch struct {
	Ref       domain.SlotRef
	DayNumber int
	Slot      domain.Slot
}

// FindSlot looks a slot up by exact id first, then by fuzzy activity name.
func (e *Engine) FindSlot(it domain.Itinerary, query string) (SlotMatch, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return SlotMatch{}, false
	}
	for di, day := range it.Days {
		for si, s := range day.Slots {
			if s.SlotID == q {
				return SlotMatch{Ref: domain.SlotRef{DayIndex: di, SlotIndex: si}, DayNumber: day.DayNumber, Slot: s.Clone()}, true
			}
		}
	}
	m, ok := e.findByName(it, q, func(s *domain.Slot) []domain.ActivityOption {
		if opt := domain.EffectiveOption(s); opt != nil {
			return []domain.ActivityOption{*opt}
		}
		return nil
	})
	return m.SlotMatch, ok
}

// ActivityMatch locates an option inside the itinerary.
type ActivityMatch struct {
	SlotMatch
	Option domain.ActivityOption
}

// FindActivity looks an activity up by option id, then by fuzzy name across all options.
func (e *Engine) FindActivity(it domain.Itinerary, query string) (ActivityMatch, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return ActivityMatch{}, false
	}
	for di, day := range it.Days {
		for si, s := range day.Slots {
			for _, opt := range s.Options {
				if opt.ID == q {
					return ActivityMatch{
						SlotMatch: SlotMatch{Ref: domain.SlotRef{DayIndex: di, SlotIndex: si}, DayNumber: day.DayNumber, Slot: s.Clone()},
						Option:    opt.Clone(),
					}, true
				}
			}
		}
	}

	return e.findByName(it, q, func(s *domain.Slot) []domain.ActivityOption { return s.Options })
}

func (e *Engine) findByName(it domain.Itinerary, q string, options func(*domain.Slot) []domain.ActivityOption) (ActivityMatch, bool) {
	norm := domain.NormalizeName(q)
	var best ActivityMatch
	bestScore := 0
	for di, day := range it.Days {
		for si := range day.Slots {
			s := &day.Slots[si]
			for _, opt := range options(s) {
				if score := nameScore(norm, opt.Activity.Name); score > bestScore {
					bestScore = score
					best = ActivityMatch{
						SlotMatch: SlotMatch{Ref: domain.SlotRef{DayIndex: di, SlotIndex: si}, DayNumber: day.DayNumber, Slot: s.Clone()},
						Option:    opt.Clone(),
					}
				}
			}
		}
	}
	return best, bestScore > 0
}

// nameScore ranks how well a normalized query matches a name: exact beats
// containment beats reverse containment. Zero means no match.
func nameScore(query, name string) int {
	n := domain.NormalizeName(name)
	switch {
	case n == "":
		return 0
	case n == query:
		return 3
	case strings.Contains(n, query):
		return 2
	case strings.Contains(query, n):
		return 1
	default:
		return 0
	}
}
