package service

import (
	"context"
	"strings"
	"time"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
)

// In-memory repository fakes for service tests.

type fakeQuestionRepo struct {
	questions map[string]model.Question // by id
}

func newFakeQuestionRepo(qs ...model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[string]model.Question)}
	for _, q := range qs {
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	for _, existing := range r.questions {
		if existing.Title == q.Title {
			return common.ErrConflict
		}
	}
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *model.Question) error {
	if _, ok := r.questions[q.ID]; !ok {
		return common.ErrNotFound
	}
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) FindByID(_ context.Context, id string) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &q, nil
}

func (r *fakeQuestionRepo) FindBySlug(_ context.Context, slug string) (*model.Question, error) {
	for _, q := range r.questions {
		if q.Slug == slug {
			return &q, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeQuestionRepo) FindByTitle(_ context.Context, title string) (*model.Question, error) {
	for _, q := range r.questions {
		if q.Title == title {
			return &q, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeQuestionRepo) ListAll(_ context.Context) ([]model.Question, error) {
	out := []model.Question{}
	for _, q := range r.questions {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) ListExcluding(_ context.Context, excludedIDs []string) ([]model.Question, error) {
	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	out := []model.Question{}
	for _, q := range r.questions {
		if !excluded[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindByLoweredTitles(_ context.Context, loweredTitles []string) ([]model.Question, error) {
	wanted := make(map[string]bool, len(loweredTitles))
	for _, t := range loweredTitles {
		wanted[strings.ToLower(t)] = true
	}
	out := []model.Question{}
	for _, q := range r.questions {
		if wanted[strings.ToLower(q.Title)] {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	submissions []model.Submission
}

func (r *fakeSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	s := *sub
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	r.submissions = append(r.submissions, s)
	return nil
}

func (r *fakeSubmissionRepo) Delete(_ context.Context, id string) error {
	for i, s := range r.submissions {
		if s.ID == id {
			r.submissions = append(r.submissions[:i], r.submissions[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeSubmissionRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	kept := r.submissions[:0]
	var deleted int64
	for _, s := range r.submissions {
		if s.UserID == userID {
			deleted++
		} else {
			kept = append(kept, s)
		}
	}
	r.submissions = kept
	return deleted, nil
}

func (r *fakeSubmissionRepo) FindByUser(_ context.Context, userID string) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range r.submissions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindByUserAndStatus(_ context.Context, userID string, status model.SubmissionStatus) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range r.submissions {
		if s.UserID == userID && s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) CountByQuestion(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, s := range r.submissions {
		counts[s.QuestionID]++
	}
	return counts, nil
}

type fakeUserRepo struct {
	users map[string]model.User // by id
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return common.ErrConflict
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}
