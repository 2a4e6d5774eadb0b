package geo

import (
	"fmt"
	"math"

	"itinerary-remediation-service/internal/domain"
)

// WalkThresholdMeters is the distance below which a leg is assumed walkable.
const WalkThresholdMeters = 3000.0

type methodProfile struct {
	speedKmh    float64
	waitMinutes int
}

// Average door-to-door speeds and fixed waiting/boarding overhead per method.
var profiles = map[domain.CommuteMethod]methodProfile{
	domain.MethodWalk:       {speedKmh: 4.8, waitMinutes: 0},
	domain.MethodTransit:    {speedKmh: 25, waitMinutes: 8},
	domain.MethodBus:        {speedKmh: 18, waitMinutes: 8},
	domain.MethodTaxi:       {speedKmh: 28, waitMinutes: 5},
	domain.MethodDrive:      {speedKmh: 35, waitMinutes: 5},
	domain.MethodFerry:      {speedKmh: 25, waitMinutes: 15},
	domain.MethodShinkansen: {speedKmh: 200, waitMinutes: 15},
	domain.MethodFlight:     {speedKmh: 650, waitMinutes: 90},
}

// MethodForDistance picks walk below WalkThresholdMeters and transit otherwise.
func MethodForDistance(meters float64) domain.CommuteMethod {
	if meters < WalkThresholdMeters {
		return domain.MethodWalk
	}
	return domain.MethodTransit
}

// DurationMinutes estimates travel minutes for a distance and method:
// distance / speed plus the method's fixed wait, rounded up, at least one minute.
func DurationMinutes(meters float64, method domain.CommuteMethod) int {
	p, ok := profiles[method]
	if !ok {
		p = profiles[domain.MethodTransit]
	}
	travel := meters / 1000 / p.speedKmh * 60
	minutes := int(math.Ceil(travel)) + p.waitMinutes
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// EstimateCommute builds a CommuteInfo between two coordinates using the
// distance-based method choice and the speed heuristic.
func EstimateCommute(from, to domain.Coordinates) domain.CommuteInfo {
	meters := HaversineMeters(from, to)
	method := MethodForDistance(meters)
	return domain.CommuteInfo{
		Duration:     DurationMinutes(meters, method),
		Distance:     int(math.Round(meters)),
		Method:       method,
		Instructions: fmt.Sprintf("Estimated %s of %.1f km", method, meters/1000),
	}
}
