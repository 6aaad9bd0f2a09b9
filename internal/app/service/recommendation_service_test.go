package service

import (
	"context"
	"testing"

	"algoprep/internal/domain/model"
	"algoprep/internal/recommend"
)

func catalogForTest() []model.Question {
	return []model.Question{
		{ID: "q1", Title: "Two Sum", Difficulty: model.DifficultyEasy, Tags: "array,hashmap"},
		{ID: "q2", Title: "Word Ladder", Difficulty: model.DifficultyHard, Tags: "bfs,graph"},
		{ID: "q3", Title: "Climb Stairs", Difficulty: model.DifficultyEasy, Tags: "dp"},
	}
}

func TestRecommendWithoutUserUsesWholeCatalog(t *testing.T) {
	repo := newFakeQuestionRepo(catalogForTest()...)
	svc := NewRecommendationService(repo, &fakeSubmissionRepo{})

	got, err := svc.Recommend(context.Background(), "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Recommend returned %d items; want 3", len(got))
	}
}

func TestRecommendExcludesSolvedQuestions(t *testing.T) {
	repo := newFakeQuestionRepo(catalogForTest()...)
	subs := &fakeSubmissionRepo{}
	subs.Create(context.Background(), &model.Submission{ID: "s1", UserID: "u1", QuestionID: "q1", Status: model.StatusSolved})

	svc := NewRecommendationService(repo, subs)
	got, err := svc.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, r := range got {
		if r.ID == "q1" {
			t.Errorf("Recommend returned solved question q1")
		}
	}
	if len(got) != 2 {
		t.Errorf("Recommend returned %d items; want 2 unsolved", len(got))
	}
}

func TestRecommendFallsBackWhenAllSolved(t *testing.T) {
	repo := newFakeQuestionRepo(catalogForTest()...)
	subs := &fakeSubmissionRepo{}
	ctx := context.Background()
	for i, id := range []string{"q1", "q2", "q3"} {
		subs.Create(ctx, &model.Submission{ID: string(rune('a' + i)), UserID: "u1", QuestionID: id, Status: model.StatusSolved})
	}

	svc := NewRecommendationService(repo, subs)
	got, err := svc.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// Solved questions may resurface here; the guarantee is non-emptiness.
	if len(got) != 3 {
		t.Errorf("Recommend with everything solved returned %d items; want full catalog fallback of 3", len(got))
	}
}

func TestRecommendUnknownUserActsLikeNewLearner(t *testing.T) {
	repo := newFakeQuestionRepo(catalogForTest()...)
	svc := NewRecommendationService(repo, &fakeSubmissionRepo{})

	got, err := svc.Recommend(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Recommend for unknown user returned %d items; want 3", len(got))
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	svc := NewRecommendationService(newFakeQuestionRepo(), &fakeSubmissionRepo{})

	got, err := svc.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recommend on empty catalog = %v; want empty", got)
	}
}

func TestRecommendOmitsDescriptionAndTags(t *testing.T) {
	repo := newFakeQuestionRepo(model.Question{
		ID: "q1", Title: "Two Sum", Difficulty: model.DifficultyEasy,
		Description: "secret", Tags: "array",
	})
	svc := NewRecommendationService(repo, &fakeSubmissionRepo{})

	got, err := svc.Recommend(context.Background(), "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Recommend returned %d items; want 1", len(got))
	}
	want := model.RecommendedQuestion{ID: "q1", Title: "Two Sum", Difficulty: model.DifficultyEasy}
	if got[0] != want {
		t.Errorf("Recommend item = %+v; want %+v", got[0], want)
	}
}

func TestRecommendNeverExceedsLimit(t *testing.T) {
	var qs []model.Question
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		qs = append(qs, model.Question{ID: id, Title: "Question " + id, Difficulty: model.DifficultyEasy})
	}
	svc := NewRecommendationService(newFakeQuestionRepo(qs...), &fakeSubmissionRepo{})

	got, err := svc.Recommend(context.Background(), "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != recommend.MaxResults {
		t.Errorf("Recommend returned %d items; want %d", len(got), recommend.MaxResults)
	}
}

func TestRecommendWeighsRepeatSolves(t *testing.T) {
	// u1 solved the array question three times; the graph candidate must
	// rank ahead of the remaining array candidate on every run.
	repo := newFakeQuestionRepo(
		model.Question{ID: "q1", Title: "Two Sum", Difficulty: model.DifficultyEasy, Tags: "array"},
		model.Question{ID: "q2", Title: "Rotate Array", Difficulty: model.DifficultyMedium, Tags: "array"},
		model.Question{ID: "q3", Title: "Word Ladder", Difficulty: model.DifficultyHard, Tags: "graph"},
	)
	subs := &fakeSubmissionRepo{}
	ctx := context.Background()
	for _, id := range []string{"s1", "s2", "s3"} {
		subs.Create(ctx, &model.Submission{ID: id, UserID: "u1", QuestionID: "q1", Status: model.StatusSolved})
	}

	svc := NewRecommendationService(repo, subs)
	for i := 0; i < 20; i++ {
		got, err := svc.Recommend(ctx, "u1")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Recommend returned %d items; want 2", len(got))
		}
		if got[0].ID != "q3" {
			t.Fatalf("run %d: got %s first; want under-practiced graph question q3", i, got[0].ID)
		}
	}
}
