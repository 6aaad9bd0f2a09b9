package service

import (
	"context"
	"log"
	"unicode/utf8"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
	"algoprep/internal/domain/repository"
	"algoprep/internal/search"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// minTitleLength is the boundary rule for question titles, in runes.
const minTitleLength = 5

type QuestionService struct {
	questionRepo repository.QuestionRepository
	index        *search.Index
}

func NewQuestionService(questionRepo repository.QuestionRepository, index *search.Index) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, index: index}
}

type CreateQuestionRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Difficulty  model.QuestionDifficulty `json:"difficulty"`
	Tags        string                   `json:"tags"`
}

type UpdateQuestionRequest struct {
	Title       *string                   `json:"title,omitempty"`
	Description *string                   `json:"description,omitempty"`
	Difficulty  *model.QuestionDifficulty `json:"difficulty,omitempty"`
	Tags        *string                   `json:"tags,omitempty"`
}

func (s *QuestionService) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	if utf8.RuneCountInString(req.Title) < minTitleLength {
		return nil, common.Errorf("title must be at least %d characters: %w", minTitleLength, common.ErrValidation)
	}
	if req.Description == "" || req.Difficulty == "" {
		return nil, common.Errorf("description and difficulty are required: %w", common.ErrValidation)
	}

	if _, err := s.questionRepo.FindByTitle(ctx, req.Title); err == nil {
		return nil, common.Errorf("question already exists: %w", common.ErrConflict)
	} else if !isNotFound(err) {
		return nil, common.Errorf("failed to check title uniqueness: %w", err)
	}

	question := &model.Question{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, common.Errorf("failed to create question: %w", err)
	}

	// The mutation's caller must observe the new title in search results, so
	// the rebuild completes before we return.
	if err := s.RebuildIndex(ctx); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, req UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != question.Title {
		if utf8.RuneCountInString(*req.Title) < minTitleLength {
			return nil, common.Errorf("title must be at least %d characters: %w", minTitleLength, common.ErrValidation)
		}
		if _, err := s.questionRepo.FindByTitle(ctx, *req.Title); err == nil {
			return nil, common.Errorf("question already exists: %w", common.ErrConflict)
		} else if !isNotFound(err) {
			return nil, common.Errorf("failed to check title uniqueness: %w", err)
		}
		question.Title = *req.Title
		question.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		question.Description = *req.Description
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
	if req.Tags != nil {
		question.Tags = *req.Tags
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, common.Errorf("failed to update question: %w", err)
	}
	if err := s.RebuildIndex(ctx); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.RebuildIndex(ctx)
}

// GetQuestion resolves a question by id, falling back to its slug.
func (s *QuestionService) GetQuestion(ctx context.Context, ref string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, ref)
	if isNotFound(err) {
		question, err = s.questionRepo.FindBySlug(ctx, ref)
	}
	return question, err
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.ListAll(ctx)
}

// Search runs the prefix index and resolves matched titles back to full
// records. An empty prefix yields an empty result by design, not the whole
// catalog.
func (s *QuestionService) Search(ctx context.Context, prefix string) ([]model.Question, error) {
	if prefix == "" {
		return []model.Question{}, nil
	}
	titles := s.index.Search(prefix)
	if len(titles) == 0 {
		return []model.Question{}, nil
	}
	return s.questionRepo.FindByLoweredTitles(ctx, titles)
}

// RebuildIndex repopulates the prefix index from the current catalog. Called
// once at startup and after every question mutation.
func (s *QuestionService) RebuildIndex(ctx context.Context) error {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return common.Errorf("failed to load questions for index rebuild: %w", err)
	}
	titles := make([]string, 0, len(questions))
	for _, q := range questions {
		titles = append(titles, q.Title)
	}
	s.index.Rebuild(titles)
	log.Printf("Prefix index rebuilt with %d titles", len(titles))
	return nil
}
