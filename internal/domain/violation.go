package domain

type ConstraintLayer string

const (
	LayerTemporal     ConstraintLayer = "temporal"
	LayerTravel       ConstraintLayer = "travel"
	LayerClustering   ConstraintLayer = "clustering"
	LayerDependencies ConstraintLayer = "dependencies"
	LayerPacing       ConstraintLayer = "pacing"
	LayerFragility    ConstraintLayer = "fragility"
	LayerCrossDay     ConstraintLayer = "cross-day"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ConstraintViolation is one finding of a validation layer.
type ConstraintViolation struct {
	Layer          ConstraintLayer `json:"layer"`
	Severity       Severity        `json:"severity"`
	Message        string          `json:"message"`
	AffectedSlotID string          `json:"affectedSlotId,omitempty"`
	Resolution     string          `json:"resolution,omitempty"`
}
