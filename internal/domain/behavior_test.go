package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotWith(slotType SlotType, act *Activity) Slot {
	s := Slot{SlotID: "d1-slot-1", SlotType: slotType}
	if act != nil {
		s.Options = []ActivityOption{{ID: "o1", Rank: 1, Activity: *act}}
	}
	return s
}

func TestEffectiveOption(t *testing.T) {
	s := Slot{Options: []ActivityOption{{ID: "a"}, {ID: "b"}}}
	require.NotNil(t, EffectiveOption(&s))
	assert.Equal(t, "a", EffectiveOption(&s).ID)

	s.SelectedOptionID = "b"
	assert.Equal(t, "b", EffectiveOption(&s).ID)

	s.SelectedOptionID = "missing"
	assert.Equal(t, "a", EffectiveOption(&s).ID, "unknown selection falls back to first option")

	assert.Nil(t, EffectiveOption(&Slot{}))
	assert.Nil(t, EffectiveOption(nil))
}

func TestIsTransportActivity(t *testing.T) {
	cases := []struct {
		name string
		act  *Activity
		want bool
	}{
		{"category", &Activity{Name: "Hop to the coast", Category: "Transport"}, true},
		{"shinkansen name", &Activity{Name: "Shinkansen to Kyoto", Category: "attraction"}, true},
		{"bullet train", &Activity{Name: "Bullet-train to Osaka"}, true},
		{"training is not a train", &Activity{Name: "Sushi Training Class", Category: "experience"}, false},
		{"plain attraction", &Activity{Name: "Senso-ji Temple", Category: "temple"}, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTransportActivity(tc.act))
		})
	}
}

func TestInferBehavior(t *testing.T) {
	locked := slotWith(SlotMorning, &Activity{Name: "Tea Ceremony", Category: "experience"})
	locked.IsLocked = true

	timed := slotWith(SlotAfternoon, &Activity{Name: "teamLab Planets", Category: "museum"})
	timed.Fragility = &Fragility{BookingRequired: true, TicketType: TicketTimed}

	cases := []struct {
		name string
		slot Slot
		want SlotBehavior
	}{
		{"transport", slotWith(SlotMorning, &Activity{Name: "Shinkansen to Kyoto"}), BehaviorTravel},
		{"locked", locked, BehaviorAnchor},
		{"meal", slotWith(SlotLunch, &Activity{Name: "Ichiran", Category: "restaurant"}), BehaviorMeal},
		{"empty", slotWith(SlotEvening, nil), BehaviorOptional},
		{"timed booking", timed, BehaviorAnchor},
		{"default", slotWith(SlotAfternoon, &Activity{Name: "Ueno Park", Category: "park"}), BehaviorFlex},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferBehavior(&tc.slot))
		})
	}
}

func TestResolveBehaviorIsStable(t *testing.T) {
	slots := []Slot{
		slotWith(SlotMorning, &Activity{Name: "Shinkansen to Kyoto", Category: "attraction"}),
		slotWith(SlotLunch, &Activity{Name: "Ichiran", Category: "restaurant"}),
		slotWith(SlotDinner, &Activity{Name: "Ferry to Miyajima"}),
		slotWith(SlotEvening, nil),
		slotWith(SlotAfternoon, &Activity{Name: "Ghibli Museum", Category: "museum", Tags: []string{"Pre-Booked"}}),
		slotWith(SlotAfternoon, &Activity{Name: "Harajuku", Category: "neighborhood"}),
	}
	slots[3].Behavior = BehaviorTravel
	slots[5].Behavior = BehaviorMeal

	want := []SlotBehavior{BehaviorTravel, BehaviorMeal, BehaviorTravel, BehaviorOptional, BehaviorAnchor, BehaviorFlex}
	for i := range slots {
		got := ResolveBehavior(&slots[i])
		assert.Equal(t, want[i], got, "slot %d", i)

		slots[i].Behavior = got
		assert.Equal(t, got, ResolveBehavior(&slots[i]), "slot %d must be stable", i)
	}
}

func TestResolveBehaviorKeepsUserOptional(t *testing.T) {
	s := slotWith(SlotEvening, &Activity{Name: "Golden Gai", Category: "nightlife"})
	s.Behavior = BehaviorOptional
	assert.Equal(t, BehaviorOptional, ResolveBehavior(&s))
}
