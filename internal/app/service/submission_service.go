package service

import (
	"context"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
	"algoprep/internal/domain/repository"

	"github.com/google/uuid"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
}

func NewSubmissionService(submissionRepo repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{submissionRepo: submissionRepo}
}

type RecordSubmissionRequest struct {
	UserID     string                 `json:"user_id"`
	QuestionID string                 `json:"question_id"`
	Status     model.SubmissionStatus `json:"status"`
}

// RecordSubmission stores an attempt/solve record. The status is taken at
// the caller's word; it is not cross-checked against execution results.
func (s *SubmissionService) RecordSubmission(ctx context.Context, req RecordSubmissionRequest) (*model.Submission, error) {
	if req.UserID == "" || req.QuestionID == "" {
		return nil, common.Errorf("user_id and question_id required: %w", common.ErrBadRequest)
	}
	status := req.Status
	if status == "" {
		status = model.StatusAttempted
	}
	if status != model.StatusAttempted && status != model.StatusSolved {
		return nil, common.Errorf("status must be %q or %q: %w", model.StatusAttempted, model.StatusSolved, common.ErrBadRequest)
	}

	sub := &model.Submission{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		QuestionID: req.QuestionID,
		Status:     status,
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, common.Errorf("failed to record submission: %w", err)
	}
	return sub, nil
}

func (s *SubmissionService) ListUserSubmissions(ctx context.Context, userID string) ([]model.Submission, error) {
	return s.submissionRepo.FindByUser(ctx, userID)
}

func (s *SubmissionService) DeleteSubmission(ctx context.Context, id string) error {
	return s.submissionRepo.Delete(ctx, id)
}

func (s *SubmissionService) DeleteUserSubmissions(ctx context.Context, userID string) (int64, error) {
	return s.submissionRepo.DeleteByUser(ctx, userID)
}
