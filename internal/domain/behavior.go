package domain

import (
	"slices"
	"strings"
)

// SlotBehavior is the functional role of a slot.
type SlotBehavior string

const (
	BehaviorAnchor   SlotBehavior = "anchor"
	BehaviorTravel   SlotBehavior = "travel"
	BehaviorMeal     SlotBehavior = "meal"
	BehaviorFlex     SlotBehavior = "flex"
	BehaviorOptional SlotBehavior = "optional"
)

const CategoryTransport = "transport"

var transportWords = []string{"shinkansen", "train", "flight", "ferry", "transfer"}

var anchorTags = []string{"pre-booked", "prebooked", "booked", "anchor", "reservation", "reserved"}

// EffectiveOptionIndex returns the index of the option that counts as the
// slot's choice: the selected option when it exists, otherwise the first one.
// It is -1 when the slot has no options.
func EffectiveOptionIndex(s *Slot) int {
	if s == nil || len(s.Options) == 0 {
		return -1
	}
	if s.SelectedOptionID != "" {
		for i := range s.Options {
			if s.Options[i].ID == s.SelectedOptionID {
				return i
			}
		}
	}
	return 0
}

func EffectiveOption(s *Slot) *ActivityOption {
	i := EffectiveOptionIndex(s)
	if i < 0 {
		return nil
	}
	return &s.Options[i]
}

// EffectiveActivity is EffectiveOption narrowed to its activity payload.
func EffectiveActivity(s *Slot) *Activity {
	opt := EffectiveOption(s)
	if opt == nil {
		return nil
	}
	return &opt.Activity
}

// IsTransportActivity reports whether a is a transport segment, by category or by name.
func IsTransportActivity(a *Activity) bool {
	if a == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(a.Category), CategoryTransport) {
		return true
	}
	for _, w := range strings.FieldsFunc(strings.ToLower(a.Name), isWordSeparator) {
		if slices.Contains(transportWords, w) {
			return true
		}
	}
	return false
}

func isWordSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
}

// HasAnchorTag reports whether the activity carries a pre-booked marker tag.
func HasAnchorTag(a *Activity) bool {
	if a == nil {
		return false
	}
	for _, t := range a.Tags {
		if slices.Contains(anchorTags, strings.ToLower(strings.TrimSpace(t))) {
			return true
		}
	}
	return false
}

// HasTimedBooking reports a booking-required activity with a timed ticket.
func HasTimedBooking(s *Slot) bool {
	return s.Fragility != nil && s.Fragility.BookingRequired && s.Fragility.TicketType == TicketTimed
}

// InferBehavior derives a behavior from slot semantics, ignoring the current value.
func InferBehavior(s *Slot) SlotBehavior {
	act := EffectiveActivity(s)
	switch {
	case IsTransportActivity(act):
		return BehaviorTravel
	case s.IsLocked:
		return BehaviorAnchor
	case s.SlotType.IsMeal():
		return BehaviorMeal
	case act == nil:
		return BehaviorOptional
	case HasTimedBooking(s):
		return BehaviorAnchor
	default:
		return BehaviorFlex
	}
}

// ResolveBehavior returns the behavior a slot should carry given its current value.
// A current value is kept unless it contradicts the slot's semantics.
func ResolveBehavior(s *Slot) SlotBehavior {
	act := EffectiveActivity(s)
	if IsTransportActivity(act) {
		return BehaviorTravel
	}
	if s.SlotType.IsMeal() {
		if s.Behavior == BehaviorTravel {
			return BehaviorTravel
		}
		return BehaviorMeal
	}
	if HasAnchorTag(act) || s.IsLocked || HasTimedBooking(s) {
		return BehaviorAnchor
	}
	switch s.Behavior {
	case BehaviorAnchor, BehaviorFlex, BehaviorOptional:
		return s.Behavior
	case BehaviorMeal:
		// meal behavior on a non-meal slot stays valid only for food venues
		if act != nil && IsFoodCategory(act.Category) {
			return BehaviorMeal
		}
	}
	return InferBehavior(s)
}

// IsFoodCategory reports categories that can serve as a meal.
func IsFoodCategory(category string) bool {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "restaurant", "cafe", "food", "bakery", "food-market", "street-food":
		return true
	default:
		return false
	}
}
