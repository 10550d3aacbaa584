package task

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/trackademics/core"
)

// Kinds
const (
	KindExam       = "exam"
	KindSubmission = "submission"
)

// Statuses
const (
	StatusUpcoming  = "upcoming" // exams only
	StatusPending   = "pending"  // submissions only
	StatusCompleted = "completed"
)

// Exam types
const (
	TypeWritten   = "written"
	TypePractical = "practical"
)

var (
	ExamStatuses       = []string{StatusUpcoming, StatusCompleted}
	SubmissionStatuses = []string{StatusPending, StatusCompleted}
	ExamTypes          = []string{TypeWritten, TypePractical}
)

// OpenStatus returns the not-yet-done status of the given record kind.
func OpenStatus(kind string) string {
	if kind == KindExam {
		return StatusUpcoming
	}
	return StatusPending
}

type Exam struct {
	Title       string        `json:"title"`
	Subject     string        `json:"subject"`
	Date        core.DateTime `json:"date"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Type        string        `json:"type"`
	ID          string        `json:"id"`
}

func (e Exam) IsDone() bool { return e.Status == StatusCompleted }

type Submission struct {
	Title       string        `json:"title"`
	Subject     string        `json:"subject"`
	Deadline    core.DateTime `json:"deadline"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	ID          string        `json:"id"`
}

func (s Submission) IsDone() bool { return s.Status == StatusCompleted }

// NewExam contains information needed to create a new Exam.
type NewExam struct {
	Title       string        `json:"title" validate:"required,notblank"`
	Subject     string        `json:"subject" validate:"required,notblank"`
	Date        core.DateTime `json:"date" validate:"required"`
	Description *string       `json:"description" validate:"required"`
	Status      string        `json:"status" validate:"required,examstatus"`
	Type        string        `json:"type" validate:"required,examtype"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Status = core.CleanString(ne.Status, true /* lower */)
	ne.Type = core.CleanString(ne.Type, true /* lower */)
	if ne.Description != nil {
		desc := core.CleanString(*ne.Description)
		ne.Description = &desc
	}
	return validate.Struct(ne)
}

// UpdateExam defines what information may be provided to modify an existing Exam.
type UpdateExam struct {
	Title       *string        `json:"title" validate:"omitempty,notblank"`
	Subject     *string        `json:"subject" validate:"omitempty,notblank"`
	Date        *core.DateTime `json:"date"`
	Description *string        `json:"description"`
	Status      *string        `json:"status" validate:"omitempty,examstatus"`
	Type        *string        `json:"type" validate:"omitempty,examtype"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error {
	cleanPtr(ue.Title)
	cleanPtr(ue.Subject)
	cleanPtr(ue.Description)
	cleanPtr(ue.Status, true /* lower */)
	cleanPtr(ue.Type, true /* lower */)
	return validate.Struct(ue)
}

// apply returns `e` with the set fields of ue; the ID never changes.
func (ue UpdateExam) apply(e Exam) Exam {
	if ue.Title != nil {
		e.Title = *ue.Title
	}
	if ue.Subject != nil {
		e.Subject = *ue.Subject
	}
	if ue.Date != nil && !ue.Date.IsZero() {
		e.Date = *ue.Date
	}
	if ue.Description != nil {
		e.Description = *ue.Description
	}
	if ue.Status != nil {
		e.Status = *ue.Status
	}
	if ue.Type != nil {
		e.Type = *ue.Type
	}
	return e
}

// NewSubmission contains information needed to create a new Submission.
type NewSubmission struct {
	Title       string        `json:"title" validate:"required,notblank"`
	Subject     string        `json:"subject" validate:"required,notblank"`
	Deadline    core.DateTime `json:"deadline" validate:"required"`
	Description *string       `json:"description" validate:"required"`
	Status      string        `json:"status" validate:"required,submissionstatus"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.Title = core.CleanString(ns.Title)
	ns.Subject = core.CleanString(ns.Subject)
	ns.Status = core.CleanString(ns.Status, true /* lower */)
	if ns.Description != nil {
		desc := core.CleanString(*ns.Description)
		ns.Description = &desc
	}
	return validate.Struct(ns)
}

// UpdateSubmission defines what information may be provided to modify an existing Submission.
type UpdateSubmission struct {
	Title       *string        `json:"title" validate:"omitempty,notblank"`
	Subject     *string        `json:"subject" validate:"omitempty,notblank"`
	Deadline    *core.DateTime `json:"deadline"`
	Description *string        `json:"description"`
	Status      *string        `json:"status" validate:"omitempty,submissionstatus"`
}

func (us *UpdateSubmission) Validate(validate *validator.Validate) error {
	cleanPtr(us.Title)
	cleanPtr(us.Subject)
	cleanPtr(us.Description)
	cleanPtr(us.Status, true /* lower */)
	return validate.Struct(us)
}

func (us UpdateSubmission) apply(s Submission) Submission {
	if us.Title != nil {
		s.Title = *us.Title
	}
	if us.Subject != nil {
		s.Subject = *us.Subject
	}
	if us.Deadline != nil && !us.Deadline.IsZero() {
		s.Deadline = *us.Deadline
	}
	if us.Description != nil {
		s.Description = *us.Description
	}
	if us.Status != nil {
		s.Status = *us.Status
	}
	return s
}

func cleanPtr(s *string, lower ...bool) {
	if s != nil {
		*s = core.CleanString(*s, lower...)
	}
}
