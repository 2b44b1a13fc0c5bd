package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"saylorscope/domain"
	"saylorscope/service"
)

type ProjectionHandler struct {
	service *service.ProjectionService
}

func NewProjectionHandler(service *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{service: service}
}

// projectedAssetView is the wire shape of a projection. Numbers are formatted
// to two decimals here, at the presentation boundary; the calculator itself
// returns raw values.
type projectedAssetView struct {
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Value             *float64  `json:"value"`
	Maintenance       *float64  `json:"maintenance"`
	Appreciation      *float64  `json:"appreciation"`
	LifespanYears     string    `json:"lifespan_years"`
	AnnualCost        string    `json:"annual_cost"`
	AnnualReturn      string    `json:"annual_return"`
	ReturnLabel       string    `json:"return_label"`
	ROIPercent        string    `json:"roi_percent"`
	DoublingTimeYears string    `json:"doubling_time_years"`
	ProjectedValue5y  string    `json:"projected_value_5y"`
}

func newProjectedAssetView(p domain.ProjectedAsset) projectedAssetView {
	return projectedAssetView{
		Name:              p.Name,
		Type:              string(p.Type),
		Value:             p.Value,
		Maintenance:       p.Maintenance,
		Appreciation:      p.Appreciation,
		LifespanYears:     p.LifespanYears.String(),
		AnnualCost:        fmt.Sprintf("%.2f", p.AnnualCost),
		AnnualReturn:      fmt.Sprintf("%.2f", p.AnnualReturn),
		ReturnLabel:       p.ReturnLabel,
		ROIPercent:        p.ROIPercent.String(),
		DoublingTimeYears: p.DoublingTimeYears.String(),
		ProjectedValue5y:  fmt.Sprintf("%.2f", p.ProjectedValue5y),
	}
}

// Project computes the derived metrics for a single asset.
func (h *ProjectionHandler) Project(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, newProjectedAssetView(h.service.Project(asset)))
}

// Compare projects a whole list of assets in one call.
func (h *ProjectionHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var assets []domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&assets); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	views := make([]projectedAssetView, 0, len(assets))
	for _, p := range h.service.ProjectAll(assets) {
		views = append(views, newProjectedAssetView(p))
	}
	writeJSON(w, views)
}

// writeJSON encodes into a buffer first so the header is not written when
// encoding fails.
func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
