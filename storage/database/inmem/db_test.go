package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/task"
)

func setup(t *testing.T) (task.ExamRepository, task.SubmissionRepository) {
	db, err := Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewExamRepository(db), NewSubmissionRepository(db)
}

func TestExamRepository_roundTrip(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	date := core.NaiveDateTime(2025, time.May, 2, 9, 0)

	e1, err := repo.CreateExam(ctx, task.Exam{Title: "Algebra", Subject: "Maths", Date: date, Status: task.StatusUpcoming, Type: task.TypeWritten})
	require.NoError(t, err)
	e2, err := repo.CreateExam(ctx, task.Exam{Title: "Lab", Subject: "Physics", Date: date, Status: task.StatusUpcoming, Type: task.TypePractical})
	require.NoError(t, err)

	assert.NotEmpty(t, e1.ID)
	assert.NotEqual(t, e1.ID, e2.ID)

	exams, err := repo.QueryAllExams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []task.Exam{e1, e2}, exams, "insertion order")

	// delete unknown ID is a no-op
	require.NoError(t, repo.DeleteExamsByID(ctx, "unknown"))
	exams, _ = repo.QueryAllExams(ctx)
	assert.Len(t, exams, 2)

	require.NoError(t, repo.DeleteExamsByID(ctx, e1.ID))
	exams, _ = repo.QueryAllExams(ctx)
	assert.Equal(t, []task.Exam{e2}, exams)

	_, err = repo.GetExamByID(ctx, e1.ID)
	assert.Equal(t, task.ErrNotFound, err)
}

func TestExamRepository_UpdateExam(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	date := core.NaiveDateTime(2025, time.May, 2, 9, 0)

	e1, _ := repo.CreateExam(ctx, task.Exam{Title: "A", Date: date, Status: task.StatusUpcoming})
	e2, _ := repo.CreateExam(ctx, task.Exam{Title: "B", Date: date, Status: task.StatusUpcoming})

	e1.Status = task.StatusCompleted
	updated, err := repo.UpdateExam(ctx, e1)
	require.NoError(t, err)
	assert.Equal(t, e1, updated)

	exams, _ := repo.QueryAllExams(ctx)
	assert.Equal(t, []task.Exam{e1, e2}, exams, "updated record keeps its position")

	_, err = repo.UpdateExam(ctx, task.Exam{ID: "unknown"})
	assert.Equal(t, task.ErrNotFound, err)
}

func TestSubmissionRepository_roundTrip(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()
	deadline := core.NaiveDateTime(2025, time.May, 2, 0, 0)

	seen := make(map[string]bool)
	for _, title := range []string{"Essay", "Report", "Slides"} {
		sub, err := repo.CreateSubmission(ctx, task.Submission{Title: title, Deadline: deadline, Status: task.StatusPending})
		require.NoError(t, err)
		assert.NotEmpty(t, sub.ID)
		assert.False(t, seen[sub.ID], "ID %s reused", sub.ID)
		seen[sub.ID] = true
	}

	subs, err := repo.QueryAllSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "Essay", subs[0].Title)
	assert.Equal(t, "Slides", subs[2].Title)

	// returned slices are copies
	subs[0].Title = "changed"
	again, _ := repo.QueryAllSubmissions(ctx)
	assert.Equal(t, "Essay", again[0].Title)

	got, err := repo.GetSubmissionByID(ctx, subs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Report", got.Title)

	require.NoError(t, repo.DeleteSubmissionsByID(ctx, subs[1].ID))
	again, _ = repo.QueryAllSubmissions(ctx)
	assert.Len(t, again, 2)
	for _, sub := range again {
		assert.NotEqual(t, subs[1].ID, sub.ID)
	}
}

func TestCreate_keepsGivenID(t *testing.T) {
	_, repo := setup(t)
	sub, err := repo.CreateSubmission(context.Background(), task.Submission{ID: "given"})
	require.NoError(t, err)
	assert.Equal(t, "given", sub.ID)
}
