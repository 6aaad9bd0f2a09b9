package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"algoprep/internal/api/middleware"
	"algoprep/internal/app/service"
	"algoprep/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/user/{userID}", h.listUserSubmissions)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/record", h.recordSubmission)
		authed.Delete("/user/{userID}", h.deleteUserSubmissions)
		authed.Delete("/{submissionID}", h.deleteSubmission)
	})
}

func (h *SubmissionHandler) recordSubmission(w http.ResponseWriter, r *http.Request) {
	var req service.RecordSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.UserID == "" {
		// Default to the authenticated user when the body names nobody.
		if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
			req.UserID = userID
		}
	}

	sub, err := h.submissionService.RecordSubmission(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionHandler) listUserSubmissions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	subs, err := h.submissionService.ListUserSubmissions(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) deleteUserSubmissions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	deleted, err := h.submissionService.DeleteUserSubmissions(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Deleted %d submissions.", deleted),
	})
}

func (h *SubmissionHandler) deleteSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionID")

	if err := h.submissionService.DeleteSubmission(r.Context(), submissionID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Submission deleted."})
}
