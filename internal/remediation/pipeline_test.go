package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary-remediation-service/internal/domain"
)

func activitySlot(id string, slotType domain.SlotType, start, end string, act domain.Activity) domain.Slot {
	return domain.Slot{
		SlotID:    id,
		SlotType:  slotType,
		TimeRange: domain.TimeRange{Start: start, End: end},
		Options:   []domain.ActivityOption{{ID: id + "-opt-1", Rank: 1, Activity: act}},
	}
}

func at(lat, lng float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lng: lng}
}

func changesOf(changes []domain.ChangeRecord, t domain.ChangeType) []domain.ChangeRecord {
	var out []domain.ChangeRecord
	for _, c := range changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// tripFixture is a three-day Tokyo/Kyoto trip with one of every defect the
// pipeline knows how to repair.
func tripFixture() domain.Itinerary {
	sensoji := domain.Activity{
		Name:     "Senso-ji Temple",
		Category: "temple",
		Duration: 90,
		Place:    &domain.Place{PlaceID: "place-sensoji", Name: "Senso-ji", Coordinates: at(35.7148, 139.7967)},
	}
	kinkakuji := domain.Activity{
		Name:     "Kinkaku-ji",
		Category: "temple",
		Duration: 90,
		Place:    &domain.Place{PlaceID: "place-kinkakuji", Coordinates: at(35.0394, 135.7292)},
	}

	day1 := domain.Day{DayNumber: 1, City: "Tokyo", Slots: []domain.Slot{
		activitySlot("early", domain.SlotMorning, "10:00", "12:00", domain.Activity{Name: "Tsukiji Outer Market", Category: "market"}),
		activitySlot("s2", domain.SlotAfternoon, "17:00", "18:30", sensoji),
		{SlotID: "s3", SlotType: domain.SlotDinner, TimeRange: domain.TimeRange{Start: "19:00", End: "20:30"}},
	}}

	shinkansen := activitySlot("x", domain.SlotMorning, "08:00", "09:00",
		domain.Activity{Name: "Shinkansen to Kyoto", Category: "transport", Duration: 135,
			Place: &domain.Place{Name: "Tokyo Station", Coordinates: at(35.6812, 139.7671)}})
	temple := activitySlot("y", domain.SlotMorning, "09:30", "11:00", kinkakuji)
	temple.CommuteFromPrevious = &domain.CommuteInfo{Duration: 420, Distance: 370000, Method: domain.MethodTransit}
	lunch := activitySlot("z", domain.SlotLunch, "12:30", "13:30",
		domain.Activity{Name: "Nishiki Market stall", Category: "restaurant", Duration: 60,
			Place: &domain.Place{Coordinates: at(35.0050, 135.7649)}})
	lunch.CommuteFromPrevious = &domain.CommuteInfo{Duration: 55, Method: domain.MethodTransit}
	day2 := domain.Day{DayNumber: 2, City: "Kyoto", Slots: []domain.Slot{shinkansen, temple, lunch}}

	day3 := domain.Day{DayNumber: 3, City: "Tokyo", Slots: []domain.Slot{
		activitySlot("d3-a", domain.SlotMorning, "09:00", "10:30", sensoji),
		activitySlot("d3-c", domain.SlotMorning, "11:00", "12:00", domain.Activity{Name: "Meiji Shrine", Category: "shrine"}),
		activitySlot("d3-b", domain.SlotAfternoon, "16:00", "17:00", domain.Activity{Name: "Ginza shopping", Category: "shopping"}),
	}}

	return domain.Itinerary{ID: "trip-1", Destination: "Japan", Days: []domain.Day{day1, day2, day3}}
}

var tripFlights = &domain.FlightConstraints{ArrivalFlightTime: "15:00", DepartureFlightTime: "18:00"}

func TestRemediateShinkansenArrivalFixesCommute(t *testing.T) {
	a := activitySlot("d1-slot-1", domain.SlotMorning, "08:00", "09:00",
		domain.Activity{Name: "Shinkansen to Kyoto", Category: "transport",
			Place: &domain.Place{Name: "Tokyo Station", Coordinates: at(35.6812, 139.7671)}})
	b := activitySlot("d1-slot-2", domain.SlotMorning, "09:30", "11:00",
		domain.Activity{Name: "Fushimi Inari Taisha", Category: "shrine",
			Place: &domain.Place{Coordinates: at(34.9671, 135.7727)}})
	b.CommuteFromPrevious = &domain.CommuteInfo{Duration: 380, Method: domain.MethodTransit}
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, City: "Kyoto", Slots: []domain.Slot{a, b}}}}

	out, changes := Remediate(it, nil, DefaultOptions())

	arrival := out.Days[0].Slots[0].Options[0].Activity.ArrivalPlace
	require.NotNil(t, arrival)
	require.True(t, arrival.Coordinates.Valid())
	assert.InDelta(t, 35.0, arrival.Coordinates.Lat, 0.2)
	assert.InDelta(t, 135.75, arrival.Coordinates.Lng, 0.2)

	commute := out.Days[0].Slots[1].CommuteFromPrevious
	require.NotNil(t, commute)
	assert.LessOrEqual(t, commute.Duration, 240)
	assert.True(t, out.Days[0].Slots[1].Metadata.CommuteRecalculated)
	assert.Equal(t, 380, out.Days[0].Slots[1].Metadata.OriginalCommuteDuration)

	assert.Len(t, changesOf(changes, domain.ChangeInferredArrivalPlace), 1)
	assert.Len(t, changesOf(changes, domain.ChangeRecalculatedCommute), 1)
}

func TestRemediateRemovesSlotBeforeArrival(t *testing.T) {
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{
		activitySlot("d1-slot-1", domain.SlotMorning, "10:00", "12:00", domain.Activity{Name: "Meiji Shrine"}),
		activitySlot("d1-slot-2", domain.SlotEvening, "18:00", "20:00", domain.Activity{Name: "Shibuya Sky"}),
	}}}}

	out, changes := Remediate(it, &domain.FlightConstraints{ArrivalFlightTime: "15:00"}, DefaultOptions())

	removed := changesOf(changes, domain.ChangeRemovedImpossibleSlot)
	require.Len(t, removed, 1)
	assert.Equal(t, "d1-slot-1", removed[0].SlotID)
	require.Len(t, out.Days[0].Slots, 1)
	assert.Equal(t, "Shibuya Sky", domain.EffectiveActivity(&out.Days[0].Slots[0]).Name)
}

func TestRemoveImpossibleSlotsKeepsTravelAndLastDay(t *testing.T) {
	it := domain.Itinerary{Days: []domain.Day{
		{DayNumber: 1, Slots: []domain.Slot{
			activitySlot("a", domain.SlotMorning, "09:00", "10:00", domain.Activity{Name: "Airport transfer", Category: "transport"}),
		}},
		{DayNumber: 2, Slots: []domain.Slot{
			activitySlot("b", domain.SlotMorning, "09:00", "11:00", domain.Activity{Name: "Ueno Park"}),
			activitySlot("c", domain.SlotAfternoon, "15:30", "17:00", domain.Activity{Name: "Akihabara"}),
		}},
	}}

	out, changes := RemoveImpossibleSlots(&domain.FlightConstraints{ArrivalFlightTime: "15:00", DepartureFlightTime: "18:00"})(it)

	require.Len(t, changes, 1)
	assert.Equal(t, "c", changes[0].SlotID)
	assert.Len(t, out.Days[0].Slots, 1, "travel slots are never removed")
	assert.Len(t, out.Days[1].Slots, 1)
	assert.Len(t, it.Days[1].Slots, 2, "input untouched")
}

func TestRemediateRemovesCrossDayDuplicate(t *testing.T) {
	sensoji := domain.Activity{Name: "Senso-ji Temple", Place: &domain.Place{PlaceID: "ChIJ-sensoji"}}
	it := domain.Itinerary{Days: []domain.Day{
		{DayNumber: 1, Slots: []domain.Slot{activitySlot("d1-slot-1", domain.SlotMorning, "09:00", "11:00", sensoji)}},
		{DayNumber: 2, Slots: []domain.Slot{
			activitySlot("d2-slot-1", domain.SlotMorning, "09:00", "11:00", sensoji),
			activitySlot("d2-slot-2", domain.SlotAfternoon, "13:00", "15:00", domain.Activity{Name: "Tokyo Tower"}),
		}},
	}}

	out, changes := Remediate(it, nil, DefaultOptions())

	dups := changesOf(changes, domain.ChangeRemovedDuplicate)
	require.Len(t, dups, 1)
	assert.Equal(t, 2, dups[0].Day)
	assert.Equal(t, "d2-slot-1", dups[0].SlotID)

	require.Len(t, out.Days[0].Slots, 1)
	assert.Equal(t, "Senso-ji Temple", domain.EffectiveActivity(&out.Days[0].Slots[0]).Name)
	require.Len(t, out.Days[1].Slots, 1)
	assert.Equal(t, "Tokyo Tower", domain.EffectiveActivity(&out.Days[1].Slots[0]).Name)
	assert.Equal(t, "d2-slot-1", out.Days[1].Slots[0].SlotID)
}

func TestRemediateFlagsEmptyLunch(t *testing.T) {
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{
		{SlotID: "d1-slot-1", SlotType: domain.SlotLunch, TimeRange: domain.TimeRange{Start: "12:00", End: "13:00"}},
		{SlotID: "d1-slot-2", SlotType: domain.SlotAfternoon, TimeRange: domain.TimeRange{Start: "14:00", End: "16:00"}},
	}}}}

	out, changes := Remediate(it, nil, DefaultOptions())

	lunch := out.Days[0].Slots[0]
	assert.True(t, lunch.Metadata.NeedsActivity)
	assert.Equal(t, "restaurant", lunch.Metadata.SuggestedCategory)
	assert.Equal(t, "attraction", out.Days[0].Slots[1].Metadata.SuggestedCategory)
	assert.Len(t, changesOf(changes, domain.ChangeFlaggedEmptySlot), 2)
}

func TestFlagMealLongCommutes(t *testing.T) {
	museum := activitySlot("a", domain.SlotMorning, "09:00", "11:30",
		domain.Activity{Name: "Edo-Tokyo Museum", Place: &domain.Place{Coordinates: at(35.6966, 139.7956)}})
	lunch := activitySlot("b", domain.SlotLunch, "12:30", "13:30", domain.Activity{Name: "Far away ramen", Category: "restaurant"})
	lunch.CommuteFromPrevious = &domain.CommuteInfo{Duration: 50}
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{museum, lunch}}}}

	out, changes := FlagMealLongCommutes(30)(it)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeFlaggedMealCommute, changes[0].Type)

	meta := out.Days[0].Slots[1].Metadata
	assert.True(t, meta.NeedsNearbyReplacement)
	require.NotNil(t, meta.NearbySearchCoordinates)
	assert.Equal(t, 35.6966, meta.NearbySearchCoordinates.Lat)

	_, again := FlagMealLongCommutes(30)(out)
	assert.Empty(t, again)

	short := it.Clone()
	short.Days[0].Slots[1].CommuteFromPrevious.Duration = 20
	_, none := FlagMealLongCommutes(30)(short)
	assert.Empty(t, none)
}

func TestFlagMealLongCommutesOutbound(t *testing.T) {
	dinner := activitySlot("a", domain.SlotDinner, "18:00", "19:30", domain.Activity{Name: "Izakaya", Category: "restaurant"})
	bar := activitySlot("b", domain.SlotEvening, "20:30", "22:00",
		domain.Activity{Name: "Golden Gai", Place: &domain.Place{Coordinates: at(35.6938, 139.7036)}})
	bar.CommuteFromPrevious = &domain.CommuteInfo{Duration: 45}
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{dinner, bar}}}}

	out, changes := FlagMealLongCommutes(30)(it)
	require.Len(t, changes, 1)
	near := out.Days[0].Slots[0].Metadata.NearbySearchCoordinates
	require.NotNil(t, near)
	assert.Equal(t, 139.7036, near.Lng)
}

func TestRecalculateInvalidCommutesFlagsWhatItCannotFix(t *testing.T) {
	noCoords := activitySlot("a", domain.SlotMorning, "09:00", "10:00", domain.Activity{Name: "Somewhere"})
	next := activitySlot("b", domain.SlotMorning, "10:30", "12:00", domain.Activity{Name: "Elsewhere"})
	next.CommuteFromPrevious = &domain.CommuteInfo{Duration: 600}

	farA := activitySlot("c", domain.SlotMorning, "09:00", "10:00",
		domain.Activity{Name: "Sapporo Clock Tower", Place: &domain.Place{Coordinates: at(43.0621, 141.3544)}})
	farB := activitySlot("d", domain.SlotAfternoon, "16:00", "17:00",
		domain.Activity{Name: "Naha Kokusai Street", Place: &domain.Place{Coordinates: at(26.2149, 127.6847)}})
	farB.CommuteFromPrevious = &domain.CommuteInfo{Duration: 900}

	it := domain.Itinerary{Days: []domain.Day{
		{DayNumber: 1, Slots: []domain.Slot{noCoords, next}},
		{DayNumber: 2, Slots: []domain.Slot{farA, farB}},
	}}

	out, changes := RecalculateInvalidCommutes(240)(it)
	require.Len(t, changes, 2)
	for _, c := range changes {
		assert.Equal(t, domain.ChangeFlaggedInvalidCommute, c.Type)
	}

	m1 := out.Days[0].Slots[1].Metadata
	assert.True(t, m1.NeedsCommuteRecalculation)
	assert.Equal(t, domain.CommuteIssueMissingCoordinates, m1.CommuteIssue)
	assert.Equal(t, 600, out.Days[0].Slots[1].CommuteFromPrevious.Duration, "unfixable commutes are left as reported")

	m2 := out.Days[1].Slots[1].Metadata
	assert.True(t, m2.NeedsCommuteRecalculation)
	assert.Equal(t, domain.CommuteIssueExceedsCeiling, m2.CommuteIssue)
}

func TestRecalculateInvalidCommutesUsesHotelForFirstSlot(t *testing.T) {
	first := activitySlot("a", domain.SlotMorning, "09:00", "10:00",
		domain.Activity{Name: "Shinjuku Gyoen", Place: &domain.Place{Coordinates: at(35.6852, 139.7101)}})
	first.CommuteFromPrevious = &domain.CommuteInfo{Duration: 300}
	it := domain.Itinerary{Days: []domain.Day{{
		DayNumber:     1,
		Accommodation: &domain.Accommodation{Name: "Park Hyatt", Coordinates: at(35.6856, 139.6907)},
		Slots:         []domain.Slot{first},
	}}}

	out, changes := RecalculateInvalidCommutes(240)(it)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeRecalculatedCommute, changes[0].Type)
	c := out.Days[0].Slots[0].CommuteFromPrevious
	assert.Equal(t, domain.MethodWalk, c.Method)
	assert.Less(t, c.Duration, 60)
}

func TestRecalculateSlotIDsRewritesDependencies(t *testing.T) {
	a := activitySlot("old-a", domain.SlotMorning, "09:00", "10:00", domain.Activity{Name: "A"})
	b := activitySlot("old-b", domain.SlotMorning, "10:30", "11:00", domain.Activity{Name: "B"})
	b.Dependencies = []domain.Dependency{{Type: domain.DependsMustAfter, TargetSlotID: "old-a"}}
	c := activitySlot("d2-slot-1", domain.SlotMorning, "09:00", "10:00", domain.Activity{Name: "C"})
	c.Dependencies = []domain.Dependency{{Type: domain.DependsDifferentDay, TargetSlotID: "old-b"}}
	it := domain.Itinerary{Days: []domain.Day{
		{DayNumber: 1, Slots: []domain.Slot{a, b}},
		{DayNumber: 2, Slots: []domain.Slot{c}},
	}}

	out, changes := RecalculateSlotIDs(it)
	assert.Len(t, changes, 2, "already canonical ids produce no change")
	assert.Equal(t, "d1-slot-1", out.Days[0].Slots[0].SlotID)
	assert.Equal(t, "d1-slot-2", out.Days[0].Slots[1].SlotID)
	assert.Equal(t, "d1-slot-1", out.Days[0].Slots[1].Dependencies[0].TargetSlotID)
	assert.Equal(t, "d1-slot-2", out.Days[1].Slots[0].Dependencies[0].TargetSlotID)
}

func TestFixBehaviors(t *testing.T) {
	train := activitySlot("a", domain.SlotMorning, "08:00", "09:00", domain.Activity{Name: "Bullet-train to Osaka", Category: "attraction"})
	train.Behavior = domain.BehaviorFlex
	dinner := activitySlot("b", domain.SlotDinner, "19:00", "20:00", domain.Activity{Name: "Kaiseki", Category: "restaurant"})
	dinner.Behavior = domain.BehaviorFlex
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{train, dinner}}}}

	out, changes := FixBehaviors(it)
	require.Len(t, changes, 2)
	assert.Equal(t, domain.BehaviorTravel, out.Days[0].Slots[0].Behavior)
	assert.Equal(t, domain.BehaviorMeal, out.Days[0].Slots[1].Behavior)
	assert.Contains(t, changes[0].Reason, "flex -> travel")
}

// mislabeledFixture stores behaviors that contradict what the slots are: a
// shrine and a repeat temple marked travel, a shinkansen and a lunch marked flex.
func mislabeledFixture() domain.Itinerary {
	sensoji := domain.Activity{Name: "Senso-ji Temple", Category: "temple",
		Place: &domain.Place{PlaceID: "place-sensoji", Coordinates: at(35.7148, 139.7967)}}

	shrine := activitySlot("m", domain.SlotMorning, "10:00", "12:00", domain.Activity{Name: "Meiji Shrine", Category: "shrine"})
	shrine.Behavior = domain.BehaviorTravel
	day1 := domain.Day{DayNumber: 1, City: "Tokyo", Slots: []domain.Slot{
		shrine,
		activitySlot("s", domain.SlotEvening, "17:00", "18:30", sensoji),
	}}

	train := activitySlot("t", domain.SlotMorning, "08:00", "09:00",
		domain.Activity{Name: "Shinkansen to Kyoto", Category: "transport",
			Place: &domain.Place{Name: "Tokyo Station", Coordinates: at(35.6812, 139.7671)}})
	train.Behavior = domain.BehaviorFlex
	lunch := activitySlot("l", domain.SlotLunch, "12:30", "13:30", domain.Activity{Name: "Nishiki Market stall", Category: "restaurant"})
	lunch.Behavior = domain.BehaviorFlex
	repeat := activitySlot("r", domain.SlotAfternoon, "15:00", "16:00", sensoji)
	repeat.Behavior = domain.BehaviorTravel
	day2 := domain.Day{DayNumber: 2, City: "Kyoto", Slots: []domain.Slot{train, lunch, repeat}}

	return domain.Itinerary{ID: "trip-mislabeled", Days: []domain.Day{day1, day2}}
}

var mislabeledFlights = &domain.FlightConstraints{ArrivalFlightTime: "15:00"}

func assertPipelineInvariants(t *testing.T, out domain.Itinerary) {
	t.Helper()
	seen := map[string]int{}
	for _, day := range out.Days {
		for i, s := range day.Slots {
			assert.Equal(t, domain.CanonicalSlotID(day.DayNumber, i+1), s.SlotID)

			if c := s.CommuteFromPrevious; c != nil && c.Duration > 240 {
				assert.True(t, s.Metadata.NeedsCommuteRecalculation, "slot %s keeps an unflagged %d min commute", s.SlotID, c.Duration)
			}
			if s.SlotType.IsMeal() {
				assert.Contains(t, []domain.SlotBehavior{domain.BehaviorMeal, domain.BehaviorTravel}, s.Behavior, s.SlotID)
			}
			act := domain.EffectiveActivity(&s)
			if act == nil {
				continue
			}
			if act.Category == domain.CategoryTransport {
				assert.Equal(t, domain.BehaviorTravel, s.Behavior, s.SlotID)
			}
			if key := domain.PlaceKey(act); key != "" && s.Behavior != domain.BehaviorTravel {
				seen[key]++
				assert.Equal(t, 1, seen[key], "place %s scheduled twice", key)
			}
		}
	}
}

func TestRemoveCrossDayDuplicatesIgnoresTravelLabel(t *testing.T) {
	out, changes := RemoveCrossDayDuplicates(mislabeledFixture())
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeRemovedDuplicate, changes[0].Type)
	assert.Equal(t, "r", changes[0].SlotID)
	assert.Len(t, out.Days[1].Slots, 2)
}

func TestRemoveImpossibleSlotsIgnoresTravelLabel(t *testing.T) {
	out, changes := RemoveImpossibleSlots(mislabeledFlights)(mislabeledFixture())
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeRemovedImpossibleSlot, changes[0].Type)
	assert.Equal(t, "m", changes[0].SlotID)
	require.Len(t, out.Days[0].Slots, 1)
	assert.Equal(t, "Senso-ji Temple", domain.EffectiveActivity(&out.Days[0].Slots[0]).Name)
}

func TestRemediateMislabeledBehaviors(t *testing.T) {
	cases := map[string]*domain.FlightConstraints{
		"without flights": nil,
		"with arrival":    mislabeledFlights,
	}
	for name, flights := range cases {
		t.Run(name, func(t *testing.T) {
			first, changes := Remediate(mislabeledFixture(), flights, DefaultOptions())
			assertPipelineInvariants(t, first)
			assert.Len(t, changesOf(changes, domain.ChangeRemovedDuplicate), 1)

			day2 := first.Days[1].Slots
			require.Len(t, day2, 2)
			assert.Equal(t, domain.BehaviorTravel, day2[0].Behavior)
			assert.Equal(t, domain.BehaviorMeal, day2[1].Behavior)

			second, again := Remediate(first, flights, DefaultOptions())
			assert.Empty(t, again)
			assert.Equal(t, first, second)
		})
	}
}

func TestRemediateCapsCommuteCeiling(t *testing.T) {
	a := activitySlot("a", domain.SlotMorning, "09:00", "10:00", domain.Activity{Name: "Somewhere"})
	b := activitySlot("b", domain.SlotAfternoon, "15:30", "17:00", domain.Activity{Name: "Elsewhere"})
	b.CommuteFromPrevious = &domain.CommuteInfo{Duration: 300, Method: domain.MethodTransit}
	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{a, b}}}}

	opts := DefaultOptions()
	opts.CommuteCeilingMinutes = 400
	out, changes := Remediate(it, nil, opts)
	assert.True(t, out.Days[0].Slots[1].Metadata.NeedsCommuteRecalculation)
	assert.Len(t, changesOf(changes, domain.ChangeFlaggedInvalidCommute), 1)
	assertPipelineInvariants(t, out)

	_, direct := RecalculateInvalidCommutes(400)(it)
	assert.Len(t, direct, 1, "a looser ceiling is lowered to 240")
}

func TestRemediateInvariants(t *testing.T) {
	out, changes := Remediate(tripFixture(), tripFlights, DefaultOptions())
	require.NotEmpty(t, changes)
	assertPipelineInvariants(t, out)

	seen := map[string]int{}
	for _, day := range out.Days {
		for _, s := range day.Slots {
			if act := domain.EffectiveActivity(&s); act != nil {
				seen[domain.PlaceKey(act)]++
			}
		}
	}
	assert.Equal(t, 1, seen["id:place-sensoji"])

	assert.Len(t, out.Days[0].Slots, 2, "10:00-12:00 slot falls before the 15:00 arrival")
	assert.Len(t, out.Days[2].Slots, 1, "repeat Senso-ji and the 16:00 slot are gone")
	assert.Len(t, out.Days[1].Slots, 3)
	assert.True(t, out.Days[1].Slots[2].Metadata.NeedsNearbyReplacement)
}

func TestRemediateIsIdempotent(t *testing.T) {
	first, changes := Remediate(tripFixture(), tripFlights, DefaultOptions())
	require.NotEmpty(t, changes)

	second, again := Remediate(first, tripFlights, DefaultOptions())
	assert.Empty(t, again)
	assert.Equal(t, first, second)
}

func TestRemediateDoesNotMutateInput(t *testing.T) {
	in := tripFixture()
	before := in.Clone()
	_, _ = Remediate(in, tripFlights, DefaultOptions())
	assert.Equal(t, before, in)
}

func TestPipelineSkip(t *testing.T) {
	p := NewPipeline(nil, Options{Skip: []string{PassFlagEmptySlots, PassRecalculateSlotIDs}})
	assert.NotContains(t, p.Passes(), PassFlagEmptySlots)
	assert.Contains(t, p.Passes(), PassRecalculateSlotIDs, "slot ids are always renumbered")

	it := domain.Itinerary{Days: []domain.Day{{DayNumber: 1, Slots: []domain.Slot{{SlotType: domain.SlotLunch}}}}}
	out, changes := p.Run(it)
	assert.False(t, out.Days[0].Slots[0].Metadata.NeedsActivity)
	assert.Len(t, changes, 2, "behavior and slot id only")
}

func TestRemediateEmptyItinerary(t *testing.T) {
	out, changes := Remediate(domain.Itinerary{}, tripFlights, DefaultOptions())
	assert.Empty(t, out.Days)
	assert.Empty(t, changes)
}
