package handler

import (
	"net/http"

	"algoprep/internal/app/service"
	"algoprep/internal/common"

	"github.com/go-chi/chi/v5"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(as *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/questions", h.questionAnalytics)
	r.Get("/candidates", h.candidateAnalytics)
	r.Get("/question-bank", h.questionBank)
}

func (h *AnalyticsHandler) questionAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsService.QuestionAnalytics(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, analytics)
}

func (h *AnalyticsHandler) candidateAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsService.CandidateAnalytics(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, analytics)
}

func (h *AnalyticsHandler) questionBank(w http.ResponseWriter, r *http.Request) {
	entries, err := h.analyticsService.QuestionBank(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
