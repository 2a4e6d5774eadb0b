package domain

type ChangeType string

const (
	ChangeInferredArrivalPlace  ChangeType = "INFERRED_ARRIVAL_PLACE"
	ChangeRemovedImpossibleSlot ChangeType = "REMOVED_IMPOSSIBLE_SLOT"
	ChangeRemovedDuplicate      ChangeType = "REMOVED_DUPLICATE"
	ChangeFixedBehavior         ChangeType = "FIXED_BEHAVIOR"
	ChangeFlaggedMealCommute    ChangeType = "FLAGGED_MEAL_LONG_COMMUTE"
	ChangeFlaggedEmptySlot      ChangeType = "FLAGGED_EMPTY_SLOT"
	ChangeRecalculatedCommute   ChangeType = "RECALCULATED_COMMUTE"
	ChangeFlaggedInvalidCommute ChangeType = "FLAGGED_INVALID_COMMUTE"
	ChangeFixedSlotID           ChangeType = "FIXED_SLOT_ID"
	ChangeRemovedSemanticDup    ChangeType = "REMOVED_SEMANTIC_DUPLICATE"
	ChangeFlaggedUnsuitableMeal ChangeType = "FLAGGED_UNSUITABLE_MEAL"
	ChangeInferredDuration      ChangeType = "INFERRED_DURATION"
	ChangeFixedCategory         ChangeType = "FIXED_CATEGORY"
)

// ChangeRecord is the audit entry a remediation pass emits for each repair or flag.
type ChangeRecord struct {
	Type   ChangeType `json:"type"`
	Day    int        `json:"day"`
	SlotID string     `json:"slotId,omitempty"`
	Reason string     `json:"reason"`
}
