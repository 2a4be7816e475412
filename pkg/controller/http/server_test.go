package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/Qctopus/contingento-engine/pkg/controller/http"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/repository/memory"
	"github.com/Qctopus/contingento-engine/pkg/usecase"
)

func newTestServer(t *testing.T) *httpctrl.Server {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Hazard().Put(ctx, &model.Hazard{ID: "hurricane", Name: "Hurricane"}))
	gt.NoError(t, repo.HazardProfile().Put(ctx, &model.HazardProfile{
		LocationID: "kingston", HazardID: "hurricane", Level: 8,
	}))
	gt.NoError(t, repo.BusinessType().Put(ctx, &model.BusinessType{
		ID: "restaurant", Name: "Restaurant", Category: "food_service",
	}))
	gt.NoError(t, repo.Vulnerability().Put(ctx, &model.VulnerabilityProfile{
		BusinessTypeID: "restaurant", HazardID: "hurricane", Vulnerability: 8, ImpactSeverity: 9,
	}))
	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:                "storm-shutters",
		Name:              "Install storm shutters",
		Category:          types.CategoryPrevention,
		ApplicableHazards: []types.HazardID{"hurricane"},
		Effectiveness:     8,
		Cost:              types.CostMedium,
		Selection:         types.SelectionEssential,
		Active:            true,
	}))

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()
	return httpctrl.New(uc)
}

func postJSON(t *testing.T, srv *httpctrl.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.N(t, rec.Code).Equal(http.StatusOK)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/recommendations", map[string]any{
		"location_id":      "kingston",
		"business_type_id": "restaurant",
		"characteristics":  map[string]any{"coastal_location": true},
	})
	gt.N(t, rec.Code).Equal(http.StatusOK)

	var resp model.Recommendation
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.A(t, resp.Risks).Length(1)
	gt.V(t, resp.Risks[0].Tier).Equal(types.TierVeryHigh)
	gt.A(t, resp.Strategies).Length(1)
	gt.B(t, resp.NoGuidance).False()
}

func TestCalculationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/calculations", map[string]any{
		"session_id":       "wizard-1",
		"location_id":      "kingston",
		"business_type_id": "restaurant",
		"hazard_ids":       []string{"hurricane"},
	})
	gt.N(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		RiskCalculations []*model.RiskAssessment `json:"risk_calculations"`
		Strategies       []*model.RankedStrategy `json:"strategies"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.A(t, resp.RiskCalculations).Length(1)
	gt.V(t, resp.RiskCalculations[0].HazardID).Equal("hurricane")
}

func TestCalculationsRequiresHazards(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/calculations", map[string]any{
		"location_id":      "kingston",
		"business_type_id": "restaurant",
	})
	gt.N(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestRecommendationsRejectsBadBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.N(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestManualRatingEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/calculations", map[string]any{
		"session_id":       "wizard-2",
		"location_id":      "kingston",
		"business_type_id": "restaurant",
		"hazard_ids":       []string{"hurricane"},
	})
	gt.N(t, rec.Code).Equal(http.StatusOK)

	body, err := json.Marshal(map[string]int{"likelihood": 4, "severity": 4})
	gt.NoError(t, err).Required()
	req := httptest.NewRequest(http.MethodPut, "/api/sessions/wizard-2/hazards/hurricane/manual-rating", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.N(t, w.Code).Equal(http.StatusOK)

	var assessment model.RiskAssessment
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &assessment)).Required()
	if assessment.Manual == nil {
		t.Fatal("manual rating missing from response")
	}
	gt.N(t, assessment.Manual.Score).Equal(16)
	gt.V(t, assessment.Manual.Tier).Equal(types.TierExtreme)

	// Session endpoint returns the stored assessment with the rating
	getReq := httptest.NewRequest(http.MethodGet, "/api/sessions/wizard-2/", nil)
	getRec := httptest.NewRecorder()
	srv.ServeHTTP(getRec, getReq)
	gt.N(t, getRec.Code).Equal(http.StatusOK)
}

func TestManualRatingUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(map[string]int{"likelihood": 2, "severity": 2})
	gt.NoError(t, err).Required()
	req := httptest.NewRequest(http.MethodPut, "/api/sessions/nope/hazards/hurricane/manual-rating", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.N(t, w.Code).Equal(http.StatusNotFound)
}
