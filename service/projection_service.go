package service

import (
	"math"

	"saylorscope/domain"
)

// ProjectionService derives financial metrics from raw asset fields. It holds
// no state and performs no I/O; every method is a pure function of its input.
type ProjectionService struct{}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService() *ProjectionService {
	return &ProjectionService{}
}

// Project computes the derived metrics for a single asset. It is total over
// all valid assets and never returns an error; undefined figures come back as
// the "n/a" or "indefinite" metric states instead.
func (s *ProjectionService) Project(asset domain.Asset) domain.ProjectedAsset {
	value := deref(asset.Value)
	maintenance := deref(asset.Maintenance)
	appreciation := deref(asset.Appreciation)

	lifespan := domain.NA()
	if maintenance > 0 {
		// Years until the monthly burn rate exhausts the value.
		lifespan = domain.Number(value / maintenance / 12)
	} else if value > 0 {
		lifespan = domain.Indefinite()
	}

	annualCost := maintenance * 12
	annualReturn := (appreciation / 100) * value

	roi := domain.NA()
	if value > 0 {
		roi = domain.Number((annualReturn - annualCost) / value * 100)
	}

	doubling := domain.NA()
	if appreciation > 0 {
		doubling = domain.Number(math.Log(2) / math.Log(1+appreciation/100))
	}

	// Negative rates pass through literally; a rate at or below -100% yields
	// a zero or sign-flipped projection and is not clamped.
	projected := value * math.Pow(1+appreciation/100, projectionYears)

	label := "Return"
	if appreciation < 0 {
		label = "Loss"
	}

	return domain.ProjectedAsset{
		Asset:             asset,
		LifespanYears:     lifespan,
		AnnualCost:        annualCost,
		AnnualReturn:      annualReturn,
		ReturnLabel:       label,
		ROIPercent:        roi,
		DoublingTimeYears: doubling,
		ProjectedValue5y:  projected,
	}
}

// ProjectAll projects every asset in the list, preserving order. Used by the
// compare endpoint to analyze a whole portfolio in one pass.
func (s *ProjectionService) ProjectAll(assets []domain.Asset) []domain.ProjectedAsset {
	results := make([]domain.ProjectedAsset, len(assets))
	for i, asset := range assets {
		results[i] = s.Project(asset)
	}
	return results
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
