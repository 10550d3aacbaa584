package inmemdb

import (
	"context"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/task"
)

type examRepository struct {
	db *examTable
}

var _ task.ExamRepository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) task.ExamRepository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) indexOf(id string) int {
	for i, exam := range repo.db.rows {
		if exam.ID == id {
			return i
		}
	}
	return -1
}

func (repo *examRepository) CreateExam(_ context.Context, exam task.Exam) (task.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if exam.ID == "" {
		exam.ID = core.NewID()
	}
	repo.db.rows = append(repo.db.rows, exam)
	return exam, nil
}

func (repo *examRepository) QueryAllExams(_ context.Context) ([]task.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	exams := make([]task.Exam, len(repo.db.rows))
	copy(exams, repo.db.rows)
	return exams, nil
}

func (repo *examRepository) GetExamByID(_ context.Context, id string) (task.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return task.Exam{}, task.ErrNotFound
}

func (repo *examRepository) UpdateExam(_ context.Context, exam task.Exam) (task.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.indexOf(exam.ID)
	if i < 0 {
		return task.Exam{}, task.ErrNotFound
	}
	repo.db.rows[i] = exam
	return exam, nil
}

func (repo *examRepository) DeleteExamsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	kept := make([]task.Exam, 0, len(repo.db.rows))
	for _, exam := range repo.db.rows {
		if !contains(ids, exam.ID) {
			kept = append(kept, exam)
		}
	}
	repo.db.rows = kept
	return nil
}
