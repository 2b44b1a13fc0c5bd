package domain

// AssetType classifies what kind of asset the user is describing.
type AssetType string

const (
	AssetTypePhysical  AssetType = "physical"
	AssetTypeDigital   AssetType = "digital"
	AssetTypeFinancial AssetType = "financial"
	AssetTypeUnset     AssetType = ""
)

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypePhysical, AssetTypeDigital, AssetTypeFinancial:
		return true
	}
	return false
}

// Asset is a user-described item. Value and Maintenance are nil when the user
// has not filled them in; Appreciation may be negative (depreciation).
type Asset struct {
	Name         string    `json:"name"`
	Value        *float64  `json:"value"`
	Maintenance  *float64  `json:"maintenance"`  // monthly, USD
	Appreciation *float64  `json:"appreciation"` // annual percent
	Type         AssetType `json:"type"`
}

// Incomplete reports whether the asset is missing the fields required before
// it may be sent for AI estimation.
func (a Asset) Incomplete() bool {
	return a.Name == "" || !a.Type.Valid()
}

// ProjectedAsset is an Asset plus the derived financial metrics. It is
// computed fresh on each request and never persisted.
type ProjectedAsset struct {
	Asset
	LifespanYears     Metric  `json:"lifespan_years"`
	AnnualCost        float64 `json:"annual_cost"`
	AnnualReturn      float64 `json:"annual_return"`
	ReturnLabel       string  `json:"return_label"` // "Return" or "Loss"
	ROIPercent        Metric  `json:"roi_percent"`
	DoublingTimeYears Metric  `json:"doubling_time_years"`
	ProjectedValue5y  float64 `json:"projected_value_5y"`
}
