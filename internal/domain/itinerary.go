package domain

// Itinerary is the root aggregate of a multi-day travel schedule.
// It is owned by the caller; engines receive it by value and return a new version.
type Itinerary struct {
	ID              string   `json:"id,omitempty"`
	Destination     string   `json:"destination"`
	Country         string   `json:"country,omitempty"`
	Days            []Day    `json:"days"`
	GeneralTips     []string `json:"generalTips,omitempty"`
	EstimatedBudget *Budget  `json:"estimatedBudget,omitempty"`
}

type Budget struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency,omitempty"`
}

// Day is one calendar day of an Itinerary. DayNumber is 1-based and contiguous.
type Day struct {
	DayNumber        int             `json:"dayNumber"`
	Date             string          `json:"date,omitempty"`
	City             string          `json:"city"`
	Title            string          `json:"title,omitempty"`
	Slots            []Slot          `json:"slots"`
	CityTransition   *CityTransition `json:"cityTransition,omitempty"`
	Accommodation    *Accommodation  `json:"accommodation,omitempty"`
	CommuteFromHotel *CommuteInfo    `json:"commuteFromHotel,omitempty"`
	CommuteToHotel   *CommuteInfo    `json:"commuteToHotel,omitempty"`
}

// CityTransition is present only on a day where the traveler changes city.
type CityTransition struct {
	From          string        `json:"from"`
	To            string        `json:"to"`
	Method        CommuteMethod `json:"method,omitempty"`
	DepartureTime string        `json:"departureTime,omitempty"`
	ArrivalTime   string        `json:"arrivalTime,omitempty"`
	Duration      int           `json:"duration,omitempty"`
}

type Accommodation struct {
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	CheckIn     string       `json:"checkIn,omitempty"`
	CheckOut    string       `json:"checkOut,omitempty"`
}

type SlotType string

const (
	SlotMorning   SlotType = "morning"
	SlotBreakfast SlotType = "breakfast"
	SlotLunch     SlotType = "lunch"
	SlotAfternoon SlotType = "afternoon"
	SlotDinner    SlotType = "dinner"
	SlotEvening   SlotType = "evening"
)

// IsMeal reports whether the slot type denotes a meal.
func (t SlotType) IsMeal() bool {
	switch t {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	default:
		return false
	}
}

type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slot is a time-boxed unit of a day holding ranked candidate activities.
type Slot struct {
	SlotID              string           `json:"slotId"`
	SlotType            SlotType         `json:"slotType"`
	TimeRange           TimeRange        `json:"timeRange"`
	Options             []ActivityOption `json:"options"`
	SelectedOptionID    string           `json:"selectedOptionId,omitempty"`
	IsLocked            bool             `json:"isLocked,omitempty"`
	Behavior            SlotBehavior     `json:"behavior,omitempty"`
	RigidityScore       float64          `json:"rigidityScore,omitempty"`
	CommuteFromPrevious *CommuteInfo     `json:"commuteFromPrevious,omitempty"`
	Fragility           *Fragility       `json:"fragility,omitempty"`
	Dependencies        []Dependency     `json:"dependencies,omitempty"`
	ClusterID           string           `json:"clusterId,omitempty"`
	Metadata            SlotMetadata     `json:"metadata"`
}

// ActivityOption is one ranked candidate for a slot. Rank 1 is best.
type ActivityOption struct {
	ID           string   `json:"id"`
	Rank         int      `json:"rank"`
	Score        float64  `json:"score"`
	Activity     Activity `json:"activity"`
	MatchReasons []string `json:"matchReasons,omitempty"`
	Tradeoffs    []string `json:"tradeoffs,omitempty"`
}

// Activity is the payload of an option. Duration is in minutes; zero means unknown.
type Activity struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category"`
	Duration      int      `json:"duration,omitempty"`
	Place         *Place   `json:"place,omitempty"`
	ArrivalPlace  *Place   `json:"arrivalPlace,omitempty"`
	IsFree        bool     `json:"isFree,omitempty"`
	EstimatedCost *Cost    `json:"estimatedCost,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Source        string   `json:"source,omitempty"`
}

type Place struct {
	PlaceID      string       `json:"placeId,omitempty"`
	Name         string       `json:"name,omitempty"`
	Address      string       `json:"address,omitempty"`
	Neighborhood string       `json:"neighborhood,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Rating       float64      `json:"rating,omitempty"`
	ReviewCount  int          `json:"reviewCount,omitempty"`
}

type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

type CommuteMethod string

const (
	MethodWalk       CommuteMethod = "walk"
	MethodTransit    CommuteMethod = "transit"
	MethodTaxi       CommuteMethod = "taxi"
	MethodDrive      CommuteMethod = "drive"
	MethodShinkansen CommuteMethod = "shinkansen"
	MethodFlight     CommuteMethod = "flight"
	MethodBus        CommuteMethod = "bus"
	MethodFerry      CommuteMethod = "ferry"
)

// CommuteInfo describes travel into a slot. Duration is in minutes, Distance in meters.
type CommuteInfo struct {
	Duration     int           `json:"duration"`
	Distance     int           `json:"distance,omitempty"`
	Method       CommuteMethod `json:"method"`
	Instructions string        `json:"instructions,omitempty"`
	Cost         *Cost         `json:"cost,omitempty"`
}

type Sensitivity string

const (
	SensitivityNone   Sensitivity = "none"
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Significant reports medium or high sensitivity.
func (s Sensitivity) Significant() bool {
	return s == SensitivityMedium || s == SensitivityHigh
}

type TicketType string

const (
	TicketTimed    TicketType = "timed"
	TicketFlexible TicketType = "flexible"
)

// Fragility captures weather/crowd sensitivity and booking constraints.
// PeakHours entries are "HH:MM-HH:MM" windows.
type Fragility struct {
	WeatherSensitivity Sensitivity `json:"weatherSensitivity,omitempty"`
	CrowdSensitivity   Sensitivity `json:"crowdSensitivity,omitempty"`
	PeakHours          []string    `json:"peakHours,omitempty"`
	BookingRequired    bool        `json:"bookingRequired,omitempty"`
	TicketType         TicketType  `json:"ticketType,omitempty"`
	BestTimeOfDay      string      `json:"bestTimeOfDay,omitempty"`
}

type DependencyType string

const (
	DependsMustBefore   DependencyType = "must-before"
	DependsMustAfter    DependencyType = "must-after"
	DependsSameDay      DependencyType = "same-day"
	DependsDifferentDay DependencyType = "different-day"
)

// Dependency is an ordering constraint from the owning slot against TargetSlotID.
type Dependency struct {
	Type         DependencyType `json:"type"`
	TargetSlotID string         `json:"targetSlotId"`
	Reason       string         `json:"reason,omitempty"`
}

// FlightConstraints bound the usable hours of the first and last day.
type FlightConstraints struct {
	ArrivalFlightTime   string `json:"arrivalFlightTime,omitempty"`
	DepartureFlightTime string `json:"departureFlightTime,omitempty"`
}
