package testutil

import (
	"context"
	"io"
	"log"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/task"
	"github.com/trezcool/trackademics/services/logger"
	"github.com/trezcool/trackademics/storage/database/inmem"
)

// Repos holds fresh in-memory repositories for one test.
type Repos struct {
	Exams       task.ExamRepository
	Submissions task.SubmissionRepository
}

func NewRepos(t *testing.T) Repos {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("NewRepos() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return Repos{
		Exams:       inmemdb.NewExamRepository(db),
		Submissions: inmemdb.NewSubmissionRepository(db),
	}
}

// NewConfig returns a non-debug test config with request logs disabled.
func NewConfig() *core.Config {
	conf := &core.Config{
		AppName:  "Trackademics",
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
	}
	conf.Server.AllowOrigins = []string{"*"}
	conf.Server.DisableReqLogs = true
	return conf
}

// NewLogger returns a logger writing nowhere, with rollbar reporting disabled.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "TEST : ", 0), conf)
	logger.Enable(false)
	return logger
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	task.InitValidators(validate, translator)
	return validate, translator
}

func CreateExam(
	t *testing.T,
	repo task.ExamRepository,
	title, subject string,
	date core.DateTime,
	status, typ string,
	description ...string,
) task.Exam {
	exam := task.Exam{
		Title:   title,
		Subject: subject,
		Date:    date,
		Status:  status,
		Type:    typ,
	}
	if len(description) > 0 {
		exam.Description = description[0]
	}
	exam, err := repo.CreateExam(context.Background(), exam)
	if err != nil {
		t.Fatalf("CreateExam() failed: %v", err)
	}
	return exam
}

func CreateSubmission(
	t *testing.T,
	repo task.SubmissionRepository,
	title, subject string,
	deadline core.DateTime,
	status string,
	description ...string,
) task.Submission {
	sub := task.Submission{
		Title:    title,
		Subject:  subject,
		Deadline: deadline,
		Status:   status,
	}
	if len(description) > 0 {
		sub.Description = description[0]
	}
	sub, err := repo.CreateSubmission(context.Background(), sub)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
