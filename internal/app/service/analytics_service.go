package service

import (
	"context"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
	"algoprep/internal/domain/repository"
	"algoprep/internal/recommend"
)

type AnalyticsService struct {
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
}

func NewAnalyticsService(
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
	}
}

type QuestionAnalytics struct {
	TotalQuestions int            `json:"total_questions"`
	ByDifficulty   map[string]int `json:"by_difficulty"`
	ByTag          map[string]int `json:"by_tag"`
}

type CandidateAnalytics struct {
	TotalCandidates int `json:"total_candidates"`
}

type QuestionBankEntry struct {
	ID         string                   `json:"id"`
	Title      string                   `json:"title"`
	Difficulty model.QuestionDifficulty `json:"difficulty"`
	Tags       string                   `json:"tags"`
	UsageCount int                      `json:"usage_count"`
}

func (s *AnalyticsService) QuestionAnalytics(ctx context.Context) (*QuestionAnalytics, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list questions: %w", err)
	}
	byDifficulty := map[string]int{
		string(model.DifficultyEasy):   0,
		string(model.DifficultyMedium): 0,
		string(model.DifficultyHard):   0,
	}
	byTag := make(map[string]int)
	for _, q := range questions {
		byDifficulty[string(q.Difficulty)]++
		for _, tag := range recommend.SplitTags(q.Tags) {
			byTag[tag]++
		}
	}
	return &QuestionAnalytics{
		TotalQuestions: len(questions),
		ByDifficulty:   byDifficulty,
		ByTag:          byTag,
	}, nil
}

func (s *AnalyticsService) CandidateAnalytics(ctx context.Context) (*CandidateAnalytics, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, common.Errorf("failed to count users: %w", err)
	}
	return &CandidateAnalytics{TotalCandidates: total}, nil
}

// QuestionBank lists the catalog with real per-question submission counts.
func (s *AnalyticsService) QuestionBank(ctx context.Context) ([]QuestionBankEntry, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list questions: %w", err)
	}
	counts, err := s.submissionRepo.CountByQuestion(ctx)
	if err != nil {
		return nil, common.Errorf("failed to count submissions: %w", err)
	}

	entries := make([]QuestionBankEntry, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, QuestionBankEntry{
			ID:         q.ID,
			Title:      q.Title,
			Difficulty: q.Difficulty,
			Tags:       q.Tags,
			UsageCount: counts[q.ID],
		})
	}
	return entries, nil
}
