package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/usecase"
	"github.com/Qctopus/contingento-engine/pkg/utils/errutil"
)

type assessmentRequest struct {
	SessionID       types.SessionID       `json:"session_id,omitempty"`
	LocationID      types.LocationID      `json:"location_id"`
	BusinessTypeID  types.BusinessTypeID  `json:"business_type_id"`
	Characteristics model.Characteristics `json:"characteristics"`
	HazardIDs       []types.HazardID      `json:"hazard_ids,omitempty"`
}

func (r *assessmentRequest) toUseCase() *usecase.AssessmentRequest {
	return &usecase.AssessmentRequest{
		SessionID:       r.SessionID,
		LocationID:      r.LocationID,
		BusinessTypeID:  r.BusinessTypeID,
		Characteristics: r.Characteristics,
		HazardIDs:       r.HazardIDs,
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck // header already committed
}

func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode recommendation request"), http.StatusBadRequest)
		return
	}

	rec, err := s.uc.Recommend(r.Context(), req.toUseCase())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	writeJSON(w, r, rec)
}

func (s *Server) calculationsHandler(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode calculation request"), http.StatusBadRequest)
		return
	}

	rec, err := s.uc.Calculate(r.Context(), req.toUseCase())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	resp := struct {
		RiskCalculations []*model.RiskAssessment `json:"risk_calculations"`
		Strategies       []*model.RankedStrategy `json:"strategies"`
		NoGuidance       bool                    `json:"no_guidance"`
	}{
		RiskCalculations: rec.Risks,
		Strategies:       rec.Strategies,
		NoGuidance:       rec.NoGuidance,
	}
	writeJSON(w, r, resp)
}

func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))

	assessments, err := s.uc.Session(r.Context(), sessionID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	resp := struct {
		SessionID   types.SessionID         `json:"session_id"`
		Assessments []*model.RiskAssessment `json:"assessments"`
	}{
		SessionID:   sessionID,
		Assessments: assessments,
	}
	writeJSON(w, r, resp)
}

func (s *Server) manualRatingHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))
	hazardID := types.HazardID(chi.URLParam(r, "hazardID"))

	var req struct {
		Likelihood int `json:"likelihood"`
		Severity   int `json:"severity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode manual rating request"), http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.SetManualRating(r.Context(), sessionID, hazardID, req.Likelihood, req.Severity)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	writeJSON(w, r, assessment)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, usecase.ErrHazardsRequired),
		errors.Is(err, model.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}
