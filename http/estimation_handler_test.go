package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saylorscope/ratelimit"
	"saylorscope/service"
)

// stubLLM satisfies service.LLMClient with a canned answer.
type stubLLM struct {
	calls    int
	response string
}

func (s *stubLLM) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.response, nil
}

func newEstimationHandler(llm service.LLMClient, limit int) *EstimationHandler {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), limit, 24*time.Hour)
	return NewEstimationHandler(service.NewEstimationService(llm, limiter))
}

func postEstimate(handler *EstimationHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/asset/estimate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:51234"
	w := httptest.NewRecorder()
	handler.Estimate(w, req)
	return w
}

func TestEstimateHandler_MaintenanceOnlyPopulatesMaintenance(t *testing.T) {
	llm := &stubLLM{response: `{"value": 120, "range": [80, 200], "explanation": "Typical service costs."}`}
	handler := newEstimationHandler(llm, 7)

	w := postEstimate(handler, `{"name": "Toyota Corolla 2018", "type": "physical", "kind": "maintenance"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view map[string]any
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if view["maintenance"] != 120.0 {
		t.Errorf("expected maintenance 120, got %v", view["maintenance"])
	}
	if _, ok := view["appreciation"]; ok {
		t.Errorf("appreciation must be absent for a maintenance request")
	}
	if view["explanation"] != "Typical service costs." {
		t.Errorf("unexpected explanation: %v", view["explanation"])
	}
}

func TestEstimateHandler_ValidationErrorIs400(t *testing.T) {
	llm := &stubLLM{}
	handler := newEstimationHandler(llm, 7)

	w := postEstimate(handler, `{"type": "physical", "kind": "maintenance"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if llm.calls != 0 {
		t.Errorf("model must not be called for an invalid request")
	}

	var view errorView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if view.Kind != string(service.KindValidation) {
		t.Errorf("expected validation kind, got %q", view.Kind)
	}
}

func TestEstimateHandler_QuotaExceededIs429(t *testing.T) {
	llm := &stubLLM{response: `{"value": 5, "range": null, "explanation": "ok"}`}
	handler := newEstimationHandler(llm, 1)

	body := `{"name": "Bitcoin", "type": "digital", "kind": "appreciation"}`

	if w := postEstimate(handler, body); w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}

	w := postEstimate(handler, body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
	if llm.calls != 1 {
		t.Errorf("rejected request must not reach the model, got %d calls", llm.calls)
	}
}

func TestEstimateHandler_ParseFailureIs502WithRawText(t *testing.T) {
	llm := &stubLLM{response: "No JSON here, sorry."}
	handler := newEstimationHandler(llm, 7)

	w := postEstimate(handler, `{"name": "Bitcoin", "type": "digital", "kind": "appreciation"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var view errorView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if view.Kind != string(service.KindParse) {
		t.Errorf("expected parse kind, got %q", view.Kind)
	}
	if view.Raw != "No JSON here, sorry." {
		t.Errorf("error body must carry the raw model text, got %q", view.Raw)
	}
}

func TestEstimateHandler_MethodNotAllowed(t *testing.T) {
	handler := newEstimationHandler(&stubLLM{}, 7)

	req := httptest.NewRequest(http.MethodGet, "/asset/estimate", nil)
	w := httptest.NewRecorder()

	handler.Estimate(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
