package service

import (
	"context"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
	"algoprep/internal/domain/repository"
	"algoprep/internal/recommend"
)

type RecommendationService struct {
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
}

func NewRecommendationService(
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
) *RecommendationService {
	return &RecommendationService{
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
	}
}

// Recommend picks up to 5 questions for the user, least-practiced first.
// Both stores are read fresh on every call; nothing is cached.
//
// With no user id the whole catalog is the candidate pool. A user id with no
// solved history (including ids that match no user) ranks uniformly modulo
// the random tiebreak. A user who solved everything falls back to the full
// catalog, so solved questions may resurface.
func (s *RecommendationService) Recommend(ctx context.Context, userID string) ([]model.RecommendedQuestion, error) {
	var history []model.Question
	var pool []model.Question

	if userID == "" {
		all, err := s.questionRepo.ListAll(ctx)
		if err != nil {
			return nil, common.Errorf("failed to list questions: %w", err)
		}
		pool = all
	} else {
		solved, err := s.submissionRepo.FindByUserAndStatus(ctx, userID, model.StatusSolved)
		if err != nil {
			return nil, common.Errorf("failed to load solved submissions: %w", err)
		}

		solvedIDs := make([]string, 0, len(solved))
		seen := make(map[string]bool)
		for _, sub := range solved {
			// Each solved submission contributes to the counters, so a
			// question solved twice weighs its tags twice.
			q, err := s.questionRepo.FindByID(ctx, sub.QuestionID)
			if err != nil {
				if isNotFound(err) {
					continue // dangling question_id
				}
				return nil, common.Errorf("failed to load solved question: %w", err)
			}
			history = append(history, *q)
			if !seen[sub.QuestionID] {
				seen[sub.QuestionID] = true
				solvedIDs = append(solvedIDs, sub.QuestionID)
			}
		}

		pool, err = s.questionRepo.ListExcluding(ctx, solvedIDs)
		if err != nil {
			return nil, common.Errorf("failed to list unsolved questions: %w", err)
		}
		if len(pool) == 0 {
			pool, err = s.questionRepo.ListAll(ctx)
			if err != nil {
				return nil, common.Errorf("failed to list questions: %w", err)
			}
		}
	}

	ranked := recommend.Rank(history, pool)
	out := make([]model.RecommendedQuestion, 0, len(ranked))
	for _, q := range ranked {
		out = append(out, model.RecommendedQuestion{ID: q.ID, Title: q.Title, Difficulty: q.Difficulty})
	}
	return out, nil
}
