package constraints

import (
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/timeutil"
)

func violation(l domain.ConstraintLayer, sev domain.Severity, slotID, msg, resolution string) domain.ConstraintViolation {
	return domain.ConstraintViolation{
		Layer:          l,
		Severity:       sev,
		Message:        msg,
		AffectedSlotID: slotID,
		Resolution:     resolution,
	}
}

// checkTemporal flags activities longer than the slot they sit in.
func checkTemporal(it *domain.Itinerary, _ Config) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for di := range it.Days {
		for si := range it.Days[di].Slots {
			s := &it.Days[di].Slots[si]
			act := domain.EffectiveActivity(s)
			if act == nil || act.Duration <= 0 {
				continue
			}
			r, err := timeutil.ParseRange(s.TimeRange.Start, s.TimeRange.End)
			if err != nil {
				continue
			}
			if act.Duration > r.Minutes() {
				out = append(out, violation(domain.LayerTemporal, domain.SeverityWarning, s.SlotID,
					fmt.Sprintf("%q needs %d min but the slot spans %d min", act.Name, act.Duration, r.Minutes()),
					"extend the slot or pick a shorter activity"))
			}
		}
	}
	return out
}

// checkTravel compares the gap between adjacent slots against the commute into the later one.
func checkTravel(it *domain.Itinerary, cfg Config) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for di := range it.Days {
		slots := it.Days[di].Slots
		for si := 1; si < len(slots); si++ {
			cur := &slots[si]
			if cur.CommuteFromPrevious == nil {
				continue
			}
			prevEnd, err := timeutil.ParseHHMM(slots[si-1].TimeRange.End)
			if err != nil {
				continue
			}
			curStart, err := timeutil.ParseHHMM(cur.TimeRange.Start)
			if err != nil {
				continue
			}

			gap := curStart - prevEnd
			commute := cur.CommuteFromPrevious.Duration
			switch {
			case commute > gap:
				out = append(out, violation(domain.LayerTravel, domain.SeverityError, cur.SlotID,
					fmt.Sprintf("commute of %d min does not fit the %d min gap after the previous slot", commute, gap),
					"shift the slot later or choose a closer activity"))
			case gap < cfg.MinBufferMinutes:
				out = append(out, violation(domain.LayerTravel, domain.SeverityInfo, cur.SlotID,
					fmt.Sprintf("only %d min between slots; less than the %d min buffer", gap, cfg.MinBufferMinutes),
					"leave more slack between activities"))
			}
		}
	}
	return out
}

// checkClustering flags A, B, A cluster sequences within a day.
func checkClustering(it *domain.Itinerary, _ Config) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for di := range it.Days {
		type clustered struct {
			slotID  string
			cluster string
		}
		var seq []clustered
		for _, s := range it.Days[di].Slots {
			if s.ClusterID == "" {
				continue
			}
			seq = append(seq, clustered{slotID: s.SlotID, cluster: s.ClusterID})
		}
		for i := 2; i < len(seq); i++ {
			a, b, c := seq[i-2], seq[i-1], seq[i]
			if a.cluster == c.cluster && b.cluster != a.cluster {
				out = append(out, violation(domain.LayerClustering, domain.SeverityWarning, b.slotID,
					fmt.Sprintf("day %d leaves cluster %q and returns to it", it.Days[di].DayNumber, a.cluster),
					fmt.Sprintf("move %s next to the other %q stops", b.slotID, b.cluster)))
			}
		}
	}
	return out
}

type slotPosition struct {
	dayIndex  int
	slotIndex int
}

func (p slotPosition) order() int { return p.dayIndex*100 + p.slotIndex }

// checkDependencies resolves ordering relations using a global day*100+slot index.
func checkDependencies(it *domain.Itinerary, _ Config) []domain.ConstraintViolation {
	positions := make(map[string]slotPosition)
	for di := range it.Days {
		for si, s := range it.Days[di].Slots {
			if s.SlotID == "" {
				continue
			}
			if _, dup := positions[s.SlotID]; !dup {
				positions[s.SlotID] = slotPosition{dayIndex: di, slotIndex: si}
			}
		}
	}

	var out []domain.ConstraintViolation
	for di := range it.Days {
		for si, s := range it.Days[di].Slots {
			self := slotPosition{dayIndex: di, slotIndex: si}
			for _, dep := range s.Dependencies {
				target, ok := positions[dep.TargetSlotID]
				if !ok {
					continue
				}
				switch dep.Type {
				case domain.DependsMustBefore:
					if self.order() >= target.order() {
						out = append(out, violation(domain.LayerDependencies, domain.SeverityError, s.SlotID,
							fmt.Sprintf("%s must happen before %s", s.SlotID, dep.TargetSlotID), dep.Reason))
					}
				case domain.DependsMustAfter:
					if self.order() <= target.order() {
						out = append(out, violation(domain.LayerDependencies, domain.SeverityError, s.SlotID,
							fmt.Sprintf("%s must happen after %s", s.SlotID, dep.TargetSlotID), dep.Reason))
					}
				case domain.DependsSameDay:
					if self.dayIndex != target.dayIndex {
						out = append(out, violation(domain.LayerDependencies, domain.SeverityError, s.SlotID,
							fmt.Sprintf("%s must be on the same day as %s", s.SlotID, dep.TargetSlotID), dep.Reason))
					}
				case domain.DependsDifferentDay:
					if self.dayIndex == target.dayIndex {
						out = append(out, violation(domain.LayerDependencies, domain.SeverityWarning, s.SlotID,
							fmt.Sprintf("%s should be on a different day from %s", s.SlotID, dep.TargetSlotID), dep.Reason))
					}
				}
			}
		}
	}
	return out
}

// checkPacing looks at daily walking distance, walking streaks and total activity time.
func checkPacing(it *domain.Itinerary, cfg Config) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for di := range it.Days {
		day := &it.Days[di]
		walked := 0
		streak, longest := 0, 0
		activeMinutes := 0

		for si := range day.Slots {
			s := &day.Slots[si]
			if c := s.CommuteFromPrevious; c != nil && c.Method == domain.MethodWalk {
				walked += c.Distance
				streak++
				if streak > longest {
					longest = streak
				}
			} else {
				streak = 0
			}
			if act := domain.EffectiveActivity(s); act != nil && act.Duration > 0 {
				activeMinutes += act.Duration
			}
		}

		if walked > cfg.MaxDailyWalkingMeters {
			out = append(out, violation(domain.LayerPacing, domain.SeverityWarning, "",
				fmt.Sprintf("day %d involves %.1f km of walking (limit %.1f km)", day.DayNumber, float64(walked)/1000, float64(cfg.MaxDailyWalkingMeters)/1000),
				"replace some walks with transit"))
		}
		if cfg.MaxConsecutiveWalks > 0 && longest >= cfg.MaxConsecutiveWalks {
			out = append(out, violation(domain.LayerPacing, domain.SeverityInfo, "",
				fmt.Sprintf("day %d has %d walking segments in a row", day.DayNumber, longest),
				"consider a transit hop or a rest stop"))
		}
		if activeMinutes > cfg.MaxDailyActivityMinutes {
			out = append(out, violation(domain.LayerPacing, domain.SeverityWarning, "",
				fmt.Sprintf("day %d schedules %d min of activities; may be exhausting", day.DayNumber, activeMinutes),
				"drop or shorten an activity"))
		}
	}
	return out
}

// checkFragility reports weather, crowd and booking exposure.
func checkFragility(it *domain.Itinerary, _ Config) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for di := range it.Days {
		for si := range it.Days[di].Slots {
			s := &it.Days[di].Slots[si]
			f := s.Fragility
			if f == nil {
				continue
			}
			name := s.SlotID
			if act := domain.EffectiveActivity(s); act != nil {
				name = act.Name
			}

			if f.WeatherSensitivity.Significant() {
				out = append(out, violation(domain.LayerFragility, domain.SeverityInfo, s.SlotID,
					fmt.Sprintf("%s is weather-sensitive; have an indoor backup", name), "keep an indoor alternative ready"))
			}
			if f.CrowdSensitivity.Significant() && inPeakHours(s, f.PeakHours) {
				out = append(out, violation(domain.LayerFragility, domain.SeverityWarning, s.SlotID,
					fmt.Sprintf("%s is scheduled during peak crowd hours", name), "visit earlier or later in the day"))
			}
			if f.BookingRequired && !s.IsLocked {
				out = append(out, violation(domain.LayerFragility, domain.SeverityWarning, s.SlotID,
					fmt.Sprintf("%s requires advance booking", name), "book and lock this slot"))
			}
		}
	}
	return out
}

func inPeakHours(s *domain.Slot, windows []string) bool {
	start, err := timeutil.ParseHHMM(s.TimeRange.Start)
	if err != nil {
		return false
	}
	for _, w := range windows {
		r, err := timeutil.ParseWindow(w)
		if err != nil {
			continue
		}
		if r.Contains(start) {
			return true
		}
	}
	return false
}

// checkCrossDay verifies the buffer before a city transition departs.
func checkCrossDay(it *domain.Itinerary, cfg Config) []domain.ConstraintViolation {
	var out []domain.ConstraintViolation
	for di := range it.Days {
		day := &it.Days[di]
		if day.CityTransition == nil {
			continue
		}
		departure, err := timeutil.ParseHHMM(day.CityTransition.DepartureTime)
		if err != nil {
			continue
		}

		var last *domain.Slot
		lastEnd := 0
		for si := range day.Slots {
			s := &day.Slots[si]
			if domain.ResolveBehavior(s) == domain.BehaviorTravel {
				continue
			}
			r, err := timeutil.ParseRange(s.TimeRange.Start, s.TimeRange.End)
			if err != nil || r.Start >= departure {
				continue
			}
			if last == nil || r.End > lastEnd {
				last, lastEnd = s, r.End
			}
		}
		if last == nil {
			continue
		}

		if buffer := departure - lastEnd; buffer < cfg.CityTransitionBufferMinutes {
			out = append(out, violation(domain.LayerCrossDay, domain.SeverityWarning, last.SlotID,
				fmt.Sprintf("only %d min between the last activity and the %s departure to %s",
					buffer, day.CityTransition.DepartureTime, day.CityTransition.To),
				fmt.Sprintf("end the activity at least %d min before departure", cfg.CityTransitionBufferMinutes)))
		}
	}
	return out
}
