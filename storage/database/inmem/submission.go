package inmemdb

import (
	"context"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/task"
)

type submissionRepository struct {
	db *submissionTable
}

var _ task.SubmissionRepository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) task.SubmissionRepository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) indexOf(id string) int {
	for i, sub := range repo.db.rows {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub task.Submission) (task.Submission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if sub.ID == "" {
		sub.ID = core.NewID()
	}
	repo.db.rows = append(repo.db.rows, sub)
	return sub, nil
}

func (repo *submissionRepository) QueryAllSubmissions(_ context.Context) ([]task.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subs := make([]task.Submission, len(repo.db.rows))
	copy(subs, repo.db.rows)
	return subs, nil
}

func (repo *submissionRepository) GetSubmissionByID(_ context.Context, id string) (task.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return task.Submission{}, task.ErrNotFound
}

func (repo *submissionRepository) UpdateSubmission(_ context.Context, sub task.Submission) (task.Submission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.indexOf(sub.ID)
	if i < 0 {
		return task.Submission{}, task.ErrNotFound
	}
	repo.db.rows[i] = sub
	return sub, nil
}

func (repo *submissionRepository) DeleteSubmissionsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	kept := make([]task.Submission, 0, len(repo.db.rows))
	for _, sub := range repo.db.rows {
		if !contains(ids, sub.ID) {
			kept = append(kept, sub)
		}
	}
	repo.db.rows = kept
	return nil
}
