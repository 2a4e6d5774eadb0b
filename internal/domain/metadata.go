package domain

// MetadataVersion is bumped whenever a field is added to SlotMetadata.
const MetadataVersion = 1

type CommuteIssue string

const (
	CommuteIssueExceedsCeiling     CommuteIssue = "exceeds_ceiling"
	CommuteIssueMissingCoordinates CommuteIssue = "missing_coordinates"
)

// SlotMetadata holds flags remediation attaches to a slot without altering its schema.
// Unknown forward-compatible flags go into Extensions.
type SlotMetadata struct {
	Version int `json:"version,omitempty"`

	NeedsActivity     bool   `json:"needsActivity,omitempty"`
	SuggestedCategory string `json:"suggestedCategory,omitempty"`

	NeedsNearbyReplacement  bool         `json:"needsNearbyReplacement,omitempty"`
	NearbySearchCoordinates *Coordinates `json:"nearbySearchCoordinates,omitempty"`

	NeedsReplacement      bool   `json:"needsReplacement,omitempty"`
	ReplacementReason     string `json:"replacementReason,omitempty"`
	ReplacementSuggestion string `json:"replacementSuggestion,omitempty"`

	CommuteRecalculated       bool         `json:"commuteRecalculated,omitempty"`
	NeedsCommuteRecalculation bool         `json:"needsCommuteRecalculation,omitempty"`
	CommuteIssue              CommuteIssue `json:"commuteIssue,omitempty"`
	OriginalCommuteDuration   int          `json:"originalCommuteDuration,omitempty"`

	Extensions map[string]string `json:"extensions,omitempty"`
}

func (m SlotMetadata) clone() SlotMetadata {
	out := m
	if m.NearbySearchCoordinates != nil {
		c := *m.NearbySearchCoordinates
		out.NearbySearchCoordinates = &c
	}
	if m.Extensions != nil {
		out.Extensions = make(map[string]string, len(m.Extensions))
		for k, v := range m.Extensions {
			out.Extensions[k] = v
		}
	}
	return out
}
