package services

import (
	"context"
	"fmt"
	"strings"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/ports"
)

// ResolveCoordinates geocodes every place and accommodation that has an address
// but no usable coordinates. Each distinct address is looked up once. Places the
// geocoder cannot find are left untouched.
func ResolveCoordinates(
	ctx context.Context,
	it domain.Itinerary,
	geocoder ports.Geocoder,
	log *logger.Logger,
) (domain.Itinerary, int, error) {
	out := it.Clone()
	if log == nil {
		log = logger.Nop()
	}

	pending := make(map[string][]**domain.Coordinates)
	var addresses []string
	need := func(address string, target **domain.Coordinates) {
		address = strings.TrimSpace(address)
		if address == "" || (*target).Valid() {
			return
		}
		if _, seen := pending[address]; !seen {
			addresses = append(addresses, address)
		}
		pending[address] = append(pending[address], target)
	}

	for di := range out.Days {
		day := &out.Days[di]
		if day.Accommodation != nil {
			need(day.Accommodation.Address, &day.Accommodation.Coordinates)
		}
		for si := range day.Slots {
			for oi := range day.Slots[si].Options {
				act := &day.Slots[si].Options[oi].Activity
				if act.Place != nil {
					need(act.Place.Address, &act.Place.Coordinates)
				}
				if act.ArrivalPlace != nil {
					need(act.ArrivalPlace.Address, &act.ArrivalPlace.Coordinates)
				}
			}
		}
	}
	if len(addresses) == 0 {
		return out, 0, nil
	}

	found, err := geocoder.Geocode(ctx, addresses)
	if err != nil {
		return it.Clone(), 0, fmt.Errorf("resolve coordinates: %w", err)
	}

	resolved := 0
	for address, targets := range pending {
		c, ok := found[address]
		if !ok || !c.Valid() {
			log.Debug("address not geocoded", "address", address)
			continue
		}
		for _, t := range targets {
			cc := c
			*t = &cc
			resolved++
		}
	}
	log.Info("coordinates resolved", "addresses", len(addresses), "places", resolved)
	return out, resolved, nil
}
