package http

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"

	"saylorscope/domain"
	"saylorscope/service"
)

type EstimationHandler struct {
	service *service.EstimationService
}

func NewEstimationHandler(service *service.EstimationService) *EstimationHandler {
	return &EstimationHandler{service: service}
}

// estimationView populates only the requested kind's field; the sibling
// figure stays absent.
type estimationView struct {
	Maintenance  *float64    `json:"maintenance,omitempty"`
	Appreciation *float64    `json:"appreciation,omitempty"`
	Range        *[2]float64 `json:"range"`
	Explanation  string      `json:"explanation"`
}

// errorView is the failure shape. Raw carries the upstream text for parse and
// upstream failures so clients can surface diagnostics.
type errorView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`
}

// Estimate asks the AI for the requested figure about one asset.
func (h *EstimationHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req domain.EstimationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Estimate(r.Context(), callerToken(r), req)
	if err != nil {
		writeEstimationError(w, err)
		return
	}

	view := estimationView{
		Range:       result.Range,
		Explanation: result.Explanation,
	}
	if req.Kind == domain.EstimateMaintenance {
		view.Maintenance = result.Value
	} else {
		view.Appreciation = result.Value
	}
	writeJSON(w, view)
}

// callerToken identifies the caller for quota accounting. Clients behind the
// same address share a quota.
func callerToken(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeEstimationError(w http.ResponseWriter, err error) {
	kind := service.ErrKind(err)

	status := http.StatusInternalServerError
	switch kind {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindQuotaExceeded:
		status = http.StatusTooManyRequests
	case service.KindUpstream, service.KindParse:
		status = http.StatusBadGateway
	}

	log.Printf("Estimation failed (%s): %v", kind, err)

	view := errorView{
		Kind:    string(kind),
		Message: err.Error(),
		Raw:     service.RawText(err),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(view); encodeErr != nil {
		log.Printf("Error encoding error response: %v", encodeErr)
	}
}
