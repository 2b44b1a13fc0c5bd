package domain

// EstimationKind selects which figure the AI is asked to estimate.
type EstimationKind string

const (
	EstimateMaintenance  EstimationKind = "maintenance"
	EstimateAppreciation EstimationKind = "appreciation"
)

// Valid reports whether k is a known estimation kind.
func (k EstimationKind) Valid() bool {
	return k == EstimateMaintenance || k == EstimateAppreciation
}

// EstimationRequest asks the AI for one figure about one asset.
type EstimationRequest struct {
	Name string         `json:"name"`
	Type AssetType      `json:"type"`
	Kind EstimationKind `json:"kind"`
}

// EstimationResult is the model's answer coerced into the engine's contract.
// Value is nil only when the model explicitly declined to estimate. Range,
// when present, is ascending; Value is not forced to fall inside it.
type EstimationResult struct {
	Value       *float64    `json:"value"`
	Range       *[2]float64 `json:"range"`
	Explanation string      `json:"explanation"`
}
