package service

import (
	"context"
	"errors"
	"testing"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
	"algoprep/internal/search"
)

func newQuestionServiceForTest(qs ...model.Question) (*QuestionService, *fakeQuestionRepo) {
	repo := newFakeQuestionRepo(qs...)
	svc := NewQuestionService(repo, search.NewIndex())
	return svc, repo
}

func TestCreateQuestionIndexesTitleBeforeReturning(t *testing.T) {
	svc, _ := newQuestionServiceForTest()
	ctx := context.Background()

	created, err := svc.CreateQuestion(ctx, CreateQuestionRequest{
		Title:       "Two Sum",
		Description: "Find two numbers adding to target.",
		Difficulty:  model.DifficultyEasy,
		Tags:        "array,hashmap",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if created.Slug != "two-sum" {
		t.Errorf("Slug = %q; want %q", created.Slug, "two-sum")
	}

	// Read-after-write: a successful create must already be searchable.
	results, err := svc.Search(ctx, "two")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Two Sum" {
		t.Errorf("Search(\"two\") = %v; want the created question", results)
	}
}

func TestCreateQuestionRejectsShortTitle(t *testing.T) {
	svc, _ := newQuestionServiceForTest()

	_, err := svc.CreateQuestion(context.Background(), CreateQuestionRequest{
		Title:       "Sum",
		Description: "Too short a title.",
		Difficulty:  model.DifficultyEasy,
	})
	if !errors.Is(err, common.ErrValidation) {
		t.Errorf("CreateQuestion with short title: err = %v; want ErrValidation", err)
	}
}

func TestCreateQuestionRejectsDuplicateTitle(t *testing.T) {
	svc, _ := newQuestionServiceForTest(model.Question{
		ID: "q1", Title: "Two Sum", Slug: "two-sum",
		Description: "d", Difficulty: model.DifficultyEasy,
	})

	_, err := svc.CreateQuestion(context.Background(), CreateQuestionRequest{
		Title:       "Two Sum",
		Description: "duplicate",
		Difficulty:  model.DifficultyEasy,
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Errorf("CreateQuestion duplicate: err = %v; want ErrConflict", err)
	}
}

func TestDeleteQuestionRemovesFromIndex(t *testing.T) {
	svc, _ := newQuestionServiceForTest(
		model.Question{ID: "q1", Title: "Two Sum", Slug: "two-sum", Description: "d", Difficulty: model.DifficultyEasy},
		model.Question{ID: "q2", Title: "Word Ladder", Slug: "word-ladder", Description: "d", Difficulty: model.DifficultyHard},
	)
	ctx := context.Background()
	if err := svc.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	if err := svc.DeleteQuestion(ctx, "q1"); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	results, err := svc.Search(ctx, "two")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(\"two\") after delete = %v; want empty", results)
	}

	remaining, err := svc.Search(ctx, "w")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "q2" {
		t.Errorf("Search(\"w\") = %v; want q2 only", remaining)
	}
}

func TestUpdateQuestionReindexesNewTitle(t *testing.T) {
	svc, _ := newQuestionServiceForTest(model.Question{
		ID: "q1", Title: "Two Sum", Slug: "two-sum", Description: "d", Difficulty: model.DifficultyEasy,
	})
	ctx := context.Background()
	if err := svc.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	newTitle := "Three Sum"
	updated, err := svc.UpdateQuestion(ctx, "q1", UpdateQuestionRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.Slug != "three-sum" {
		t.Errorf("Slug = %q; want %q", updated.Slug, "three-sum")
	}

	if results, _ := svc.Search(ctx, "two"); len(results) != 0 {
		t.Errorf("Search(\"two\") after rename = %v; want empty", results)
	}
	results, _ := svc.Search(ctx, "three")
	if len(results) != 1 || results[0].Title != "Three Sum" {
		t.Errorf("Search(\"three\") = %v; want the renamed question", results)
	}
}

func TestSearchEmptyPrefixReturnsNothing(t *testing.T) {
	svc, _ := newQuestionServiceForTest(model.Question{
		ID: "q1", Title: "Two Sum", Slug: "two-sum", Description: "d", Difficulty: model.DifficultyEasy,
	})
	ctx := context.Background()
	if err := svc.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	results, err := svc.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(\"\") = %v; want empty by design", results)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newQuestionServiceForTest(model.Question{
		ID: "q1", Title: "Two Sum", Slug: "two-sum", Description: "d", Difficulty: model.DifficultyEasy,
	})
	ctx := context.Background()
	if err := svc.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	for _, prefix := range []string{"tw", "TW", "Two S"} {
		results, err := svc.Search(ctx, prefix)
		if err != nil {
			t.Fatalf("Search(%q): %v", prefix, err)
		}
		if len(results) != 1 || results[0].ID != "q1" {
			t.Errorf("Search(%q) = %v; want q1", prefix, results)
		}
	}
}

func TestGetQuestionFallsBackToSlug(t *testing.T) {
	svc, _ := newQuestionServiceForTest(model.Question{
		ID: "q1", Title: "Two Sum", Slug: "two-sum", Description: "d", Difficulty: model.DifficultyEasy,
	})
	ctx := context.Background()

	byID, err := svc.GetQuestion(ctx, "q1")
	if err != nil || byID.ID != "q1" {
		t.Errorf("GetQuestion by id = %v, %v; want q1", byID, err)
	}
	bySlug, err := svc.GetQuestion(ctx, "two-sum")
	if err != nil || bySlug.ID != "q1" {
		t.Errorf("GetQuestion by slug = %v, %v; want q1", bySlug, err)
	}
	if _, err := svc.GetQuestion(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetQuestion(missing): err = %v; want ErrNotFound", err)
	}
}
