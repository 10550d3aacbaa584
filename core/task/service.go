package task

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

type (
	ExamRepository interface {
		CreateExam(ctx context.Context, exam Exam) (Exam, error)
		// QueryAllExams returns all exams in insertion order.
		QueryAllExams(ctx context.Context) ([]Exam, error)
		GetExamByID(ctx context.Context, id string) (Exam, error)
		// UpdateExam replaces the exam with the same ID in place.
		UpdateExam(ctx context.Context, exam Exam) (Exam, error)
		// DeleteExamsByID ignores unknown IDs.
		DeleteExamsByID(ctx context.Context, ids ...string) error
	}

	SubmissionRepository interface {
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		QueryAllSubmissions(ctx context.Context) ([]Submission, error)
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		UpdateSubmission(ctx context.Context, sub Submission) (Submission, error)
		DeleteSubmissionsByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		AddExam(ctx context.Context, ne NewExam) (Exam, error)
		ListExams(ctx context.Context) ([]Exam, error)
		GetExam(ctx context.Context, id string) (Exam, error)
		UpdateExam(ctx context.Context, id string, ue UpdateExam) (Exam, error)
		CompleteExam(ctx context.Context, id string) (Exam, error)
		ReopenExam(ctx context.Context, id string) (Exam, error)
		DeleteExam(ctx context.Context, id string) error

		AddSubmission(ctx context.Context, ns NewSubmission) (Submission, error)
		ListSubmissions(ctx context.Context) ([]Submission, error)
		GetSubmission(ctx context.Context, id string) (Submission, error)
		UpdateSubmission(ctx context.Context, id string, us UpdateSubmission) (Submission, error)
		CompleteSubmission(ctx context.Context, id string) (Submission, error)
		ReopenSubmission(ctx context.Context, id string) (Submission, error)
		DeleteSubmission(ctx context.Context, id string) error
	}

	service struct {
		examRepo ExamRepository
		subRepo  SubmissionRepository
		newID    func() string
	}
)

var _ Service = (*service)(nil)

func NewService(examRepo ExamRepository, subRepo SubmissionRepository) Service {
	return &service{
		examRepo: examRepo,
		subRepo:  subRepo,
		newID:    core.NewID,
	}
}

// Exams

func (svc *service) AddExam(ctx context.Context, ne NewExam) (Exam, error) {
	exam := Exam{
		ID:      svc.newID(),
		Title:   ne.Title,
		Subject: ne.Subject,
		Date:    ne.Date,
		Status:  ne.Status,
		Type:    ne.Type,
	}
	if ne.Description != nil {
		exam.Description = *ne.Description
	}
	return svc.examRepo.CreateExam(ctx, exam)
}

func (svc *service) ListExams(ctx context.Context) ([]Exam, error) {
	return svc.examRepo.QueryAllExams(ctx)
}

func (svc *service) GetExam(ctx context.Context, id string) (Exam, error) {
	return svc.examRepo.GetExamByID(ctx, core.CleanString(id))
}

func (svc *service) UpdateExam(ctx context.Context, id string, ue UpdateExam) (Exam, error) {
	exam, err := svc.GetExam(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	return svc.examRepo.UpdateExam(ctx, ue.apply(exam))
}

func (svc *service) CompleteExam(ctx context.Context, id string) (Exam, error) {
	return svc.transitionExam(ctx, id, eventComplete)
}

func (svc *service) ReopenExam(ctx context.Context, id string) (Exam, error) {
	return svc.transitionExam(ctx, id, eventReopen)
}

func (svc *service) transitionExam(ctx context.Context, id, event string) (Exam, error) {
	exam, err := svc.GetExam(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	status, err := transition(ctx, KindExam, exam.Status, event)
	if err != nil {
		return Exam{}, err
	}
	exam.Status = status
	return svc.examRepo.UpdateExam(ctx, exam)
}

func (svc *service) DeleteExam(ctx context.Context, id string) error {
	return svc.examRepo.DeleteExamsByID(ctx, core.CleanString(id))
}

// Submissions

func (svc *service) AddSubmission(ctx context.Context, ns NewSubmission) (Submission, error) {
	sub := Submission{
		ID:       svc.newID(),
		Title:    ns.Title,
		Subject:  ns.Subject,
		Deadline: ns.Deadline,
		Status:   ns.Status,
	}
	if ns.Description != nil {
		sub.Description = *ns.Description
	}
	return svc.subRepo.CreateSubmission(ctx, sub)
}

func (svc *service) ListSubmissions(ctx context.Context) ([]Submission, error) {
	return svc.subRepo.QueryAllSubmissions(ctx)
}

func (svc *service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	return svc.subRepo.GetSubmissionByID(ctx, core.CleanString(id))
}

func (svc *service) UpdateSubmission(ctx context.Context, id string, us UpdateSubmission) (Submission, error) {
	sub, err := svc.GetSubmission(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	return svc.subRepo.UpdateSubmission(ctx, us.apply(sub))
}

func (svc *service) CompleteSubmission(ctx context.Context, id string) (Submission, error) {
	return svc.transitionSubmission(ctx, id, eventComplete)
}

func (svc *service) ReopenSubmission(ctx context.Context, id string) (Submission, error) {
	return svc.transitionSubmission(ctx, id, eventReopen)
}

func (svc *service) transitionSubmission(ctx context.Context, id, event string) (Submission, error) {
	sub, err := svc.GetSubmission(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	status, err := transition(ctx, KindSubmission, sub.Status, event)
	if err != nil {
		return Submission{}, err
	}
	sub.Status = status
	return svc.subRepo.UpdateSubmission(ctx, sub)
}

func (svc *service) DeleteSubmission(ctx context.Context, id string) error {
	return svc.subRepo.DeleteSubmissionsByID(ctx, core.CleanString(id))
}
