package handler

import (
	"net/http"

	"algoprep/internal/app/service"
	"algoprep/internal/common"

	"github.com/go-chi/chi/v5"
)

type RecommendationHandler struct {
	recommendationService *service.RecommendationService
}

func NewRecommendationHandler(rs *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: rs}
}

func (h *RecommendationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.recommend) // GET /api/v1/recommendations?user_id=...
}

func (h *RecommendationHandler) recommend(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	recommended, err := h.recommendationService.Recommend(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, recommended)
}
