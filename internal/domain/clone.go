package domain

// Clone returns a deep copy of the itinerary. Engines clone before mutating
// so the caller's value is never touched.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.GeneralTips = cloneStrings(it.GeneralTips)
	if it.EstimatedBudget != nil {
		b := *it.EstimatedBudget
		out.EstimatedBudget = &b
	}
	if it.Days != nil {
		out.Days = make([]Day, len(it.Days))
		for i := range it.Days {
			out.Days[i] = it.Days[i].Clone()
		}
	}
	return out
}

func (d Day) Clone() Day {
	out := d
	if d.CityTransition != nil {
		ct := *d.CityTransition
		out.CityTransition = &ct
	}
	if d.Accommodation != nil {
		a := *d.Accommodation
		a.Coordinates = cloneCoordinates(d.Accommodation.Coordinates)
		out.Accommodation = &a
	}
	out.CommuteFromHotel = d.CommuteFromHotel.clone()
	out.CommuteToHotel = d.CommuteToHotel.clone()
	if d.Slots != nil {
		out.Slots = make([]Slot, len(d.Slots))
		for i := range d.Slots {
			out.Slots[i] = d.Slots[i].Clone()
		}
	}
	return out
}

func (s Slot) Clone() Slot {
	out := s
	if s.Options != nil {
		out.Options = make([]ActivityOption, len(s.Options))
		for i := range s.Options {
			out.Options[i] = s.Options[i].Clone()
		}
	}
	out.CommuteFromPrevious = s.CommuteFromPrevious.clone()
	if s.Fragility != nil {
		f := *s.Fragility
		f.PeakHours = cloneStrings(s.Fragility.PeakHours)
		out.Fragility = &f
	}
	if s.Dependencies != nil {
		out.Dependencies = append([]Dependency(nil), s.Dependencies...)
	}
	out.Metadata = s.Metadata.clone()
	return out
}

func (o ActivityOption) Clone() ActivityOption {
	out := o
	out.MatchReasons = cloneStrings(o.MatchReasons)
	out.Tradeoffs = cloneStrings(o.Tradeoffs)
	out.Activity.Tags = cloneStrings(o.Activity.Tags)
	out.Activity.Place = o.Activity.Place.clone()
	out.Activity.ArrivalPlace = o.Activity.ArrivalPlace.clone()
	if o.Activity.EstimatedCost != nil {
		c := *o.Activity.EstimatedCost
		out.Activity.EstimatedCost = &c
	}
	return out
}

func (p *Place) clone() *Place {
	if p == nil {
		return nil
	}
	out := *p
	out.Coordinates = cloneCoordinates(p.Coordinates)
	return &out
}

func (c *CommuteInfo) clone() *CommuteInfo {
	if c == nil {
		return nil
	}
	out := *c
	if c.Cost != nil {
		cost := *c.Cost
		out.Cost = &cost
	}
	return &out
}

func cloneCoordinates(c *Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
