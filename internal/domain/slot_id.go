package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var slotIDPattern = regexp.MustCompile(`^d(\d+)-slot-(\d+)$`)

// CanonicalSlotID returns "d{day}-slot-{position}" with a 1-based position.
func CanonicalSlotID(dayNumber, position int) string {
	return fmt.Sprintf("d%d-slot-%d", dayNumber, position)
}

// ParseSlotID extracts day number and position from a canonical slot id.
func ParseSlotID(id string) (dayNumber, position int, ok bool) {
	m := slotIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, false
	}
	d, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	p, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return d, p, true
}
