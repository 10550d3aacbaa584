package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/trackademics/apps/api/echo"
	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/assistant"
	"github.com/trezcool/trackademics/core/priority"
	"github.com/trezcool/trackademics/core/task"
	"github.com/trezcool/trackademics/tests"
)

// Saturday 10 May 2025, 15:30 local time
var now = time.Date(2025, time.May, 10, 15, 30, 0, 0, time.Local)

// echoProvider answers with the question it was asked.
type echoProvider struct{}

func (echoProvider) Ask(_ context.Context, background, question string) (string, error) {
	return "Re: " + question + " [" + background + "]", nil
}

func setup(t *testing.T) (*commandLine, *bytes.Buffer, testutil.Repos) {
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = time.Now })

	conf := testutil.NewConfig()
	logger := testutil.NewLogger(conf)
	repos := testutil.NewRepos(t)
	validate, translator := testutil.NewValidator()

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:         conf,
		Logger:       logger,
		TaskSvc:      task.NewService(repos.Exams, repos.Submissions),
		AssistantSvc: assistant.NewService(echoProvider{}, 0, logger),
		Validate:     validate,
		Translator:   translator,
	})
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	out := &bytes.Buffer{}
	return &commandLine{client: newAPIClient(ts.URL, 5*time.Second), out: out}, out, repos
}

func at(day, hour int) core.DateTime {
	return core.NaiveDateTime(2025, time.May, day, hour, 0)
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"trackademics"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Equal(t, tt.wantErrStr, err.Error())
				}
			default:
				assert.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out, _ := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: []string{"summary"}},
		{name: "unknown flag", args: []string{"exams", "-lol"}, wantErr: errHelp},
		{name: "add-submission: missing flags", args: []string{"add-submission", "-title", "Essay"}, wantErr: errHelp},
		{name: "add-exam: missing flags", args: []string{"add-exam", "-subject", "Maths"}, wantErr: errHelp},
		{name: "delete: missing id", args: []string{"delete", "-kind", "exam"}, wantErr: errHelp},
		{name: "ask: blank question", args: []string{"ask", "-question", "   "}, wantErr: errHelp},
		{
			name:       "delete: bad kind",
			args:       []string{"delete", "-kind", "homework", "-id", "1"},
			wantErrStr: `invalid kind "homework": expected submission or exam`,
		},
		{
			name:       "add-submission: bad deadline",
			args:       []string{"add-submission", "-title", "Essay", "-subject", "English", "-deadline", "12/05/2025"},
			wantErrStr: `invalid deadline "12/05/2025": expected YYYY-MM-DD`,
		},
	})
}

func Test_commandLine_records(t *testing.T) {
	cli, out, repos := setup(t)

	essay := testutil.CreateSubmission(t, repos.Submissions, "Essay", "English", at(12, 0), task.StatusPending)
	testutil.CreateSubmission(t, repos.Submissions, "Old essay", "English", at(1, 0), task.StatusCompleted)
	midterm := testutil.CreateExam(t, repos.Exams, "Midterm", "Maths", at(20, 9), task.StatusUpcoming, task.TypeWritten)

	runCLITests(t, cli, out, []cliTest{
		{
			name:    "list submissions",
			args:    []string{"submissions"},
			wantOut: []string{"DEADLINE", "Essay", "Due in 2 days", "Pending", "Old essay", "Overdue!", "Completed"},
		},
		{
			name:    "list exams",
			args:    []string{"exams", "-type", "written"},
			wantOut: []string{"TYPE", "Midterm", "2025-05-20 09:00", "Written", "Due in 10 days"},
		},
		{
			name:    "empty filter result",
			args:    []string{"exams", "-subject", "History"},
			wantOut: []string{"No entries to display for the selected filter."},
		},
		{
			name:    "add submission",
			args:    []string{"add-submission", "-title", "Report", "-subject", "Physics", "-deadline", "2025-05-11"},
			wantOut: []string{"Submission added: "},
		},
		{
			name:    "add exam",
			args:    []string{"add-exam", "-title", "Final", "-subject", "Maths", "-date", "2025-06-01", "-type", "practical"},
			wantOut: []string{"Exam added: "},
		},
		{
			name:       "add exam: invalid type",
			args:       []string{"add-exam", "-title", "Final", "-subject", "Maths", "-date", "2025-06-01", "-type", "oral"},
			wantErrStr: "type: type must be one of [written, practical]",
		},
		{
			name:    "complete submission",
			args:    []string{"complete", "-kind", "submission", "-id", essay.ID},
			wantOut: []string{"Submission completed: " + essay.ID + " (completed)"},
		},
		{
			name:       "complete completed submission",
			args:       []string{"complete", "-kind", "submission", "-id", essay.ID},
			wantErrStr: "status: submission is already completed",
		},
		{
			name:    "reopen submission",
			args:    []string{"reopen", "-kind", "submission", "-id", essay.ID},
			wantOut: []string{"Submission reopened: " + essay.ID + " (pending)"},
		},
		{
			name:       "complete unknown exam",
			args:       []string{"complete", "-kind", "exam", "-id", "nope"},
			wantErrStr: "not found",
		},
		{
			name:    "delete exam",
			args:    []string{"delete", "-kind", "exam", "-id", midterm.ID},
			wantOut: []string{"Exam deleted: " + midterm.ID},
		},
	})

	// the added records made it through with their form times
	subs, err := repos.Submissions.QueryAllSubmissions(context.Background())
	require.NoError(t, err)
	var report task.Submission
	for _, s := range subs {
		if s.Title == "Report" {
			report = s
		}
	}
	assert.Equal(t, "2025-05-11T00:00:00", report.Deadline.String())

	exams, err := repos.Exams.QueryAllExams(context.Background())
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "Final", exams[0].Title)
	assert.Equal(t, "2025-06-01T09:00:00", exams[0].Date.String())
}

func Test_commandLine_summary(t *testing.T) {
	cli, out, repos := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{
			name: "nothing tracked",
			args: []string{"summary"},
			wantOut: []string{
				"No pending submissions to visualize.",
				"No upcoming exams to visualize.",
				"No tasks to prioritize right now.",
				"No upcoming deadlines!",
			},
		},
	})

	testutil.CreateSubmission(t, repos.Submissions, "Essay", "English", at(12, 0), task.StatusPending)
	testutil.CreateSubmission(t, repos.Submissions, "Lab report", "Physics", at(10, 0), task.StatusPending)
	testutil.CreateSubmission(t, repos.Submissions, "Old essay", "English", at(1, 0), task.StatusCompleted)
	testutil.CreateExam(t, repos.Exams, "Midterm", "Maths", at(20, 9), task.StatusUpcoming, task.TypeWritten)

	runCLITests(t, cli, out, []cliTest{
		{
			name: "dashboard",
			args: []string{"summary"},
			wantOut: []string{
				"    English  1\n    Physics  1\n",
				"    Maths  1\n",
				"  [10] Lab report - Physics (due 2025-05-10 00:00)\n" +
					"  [ 8] Essay - English (due 2025-05-12 00:00)\n" +
					"  [ 0] Midterm - Maths (due 2025-05-20 09:00)\n",
				"Due Today!",
				"Due in 10 days",
				"Next deadline in 0 days, 0 hours, 0 minutes: Lab report - Physics",
			},
		},
	})
	assert.NotContains(t, out.String(), "Old essay")
}

func Test_commandLine_ask(t *testing.T) {
	cli, out, repos := setup(t)

	essay := testutil.CreateSubmission(t, repos.Submissions, "Essay", "English", at(12, 0), task.StatusPending)

	runCLITests(t, cli, out, []cliTest{
		{name: "general question", args: []string{"ask", "-question", "How do I revise?"}, wantOut: []string{"How do I revise?"}},
		{
			name:    "about a record",
			args:    []string{"ask", "-question", "Where do I start?", "-kind", "submission", "-id", essay.ID},
			wantOut: []string{"Re: Where do I start? [Title: Essay\nDescription: ]"},
		},
		{
			name:       "about a record: bad kind",
			args:       []string{"ask", "-question", "Where?", "-id", essay.ID},
			wantErrStr: `invalid kind "": expected submission or exam`,
		},
	})
}

func Test_renderer_records(t *testing.T) {
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = time.Now })

	var out bytes.Buffer
	records := []record{
		{ID: "1", Title: "Essay", Subject: "English", Status: "pending", Deadline: "2025-05-10T23:59:00"},
		{ID: "2", Title: "Broken", Subject: "English", Status: "pending", Deadline: "tomorrow"},
	}

	renderer{out: &out}.records(task.KindSubmission, records)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Due Today!")
	assert.Contains(t, lines[2], "invalid date")

	out.Reset()
	renderer{out: &out}.summary(records, nil)
	assert.Contains(t, out.String(), "1 record(s) skipped: invalid date")
	assert.Contains(t, out.String(), "Next deadline in 0 days, 8 hours, 29 minutes: Essay - English")
}

func Test_renderer_badge(t *testing.T) {
	badge := priority.Badge{Label: "Overdue!", Severity: priority.SeverityCritical}

	assert.Equal(t, "Overdue!", renderer{}.badge(badge))
	assert.Equal(t, "\033[1;31mOverdue!\033[0m", renderer{color: true}.badge(badge))
}

func Test_errorMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{name: "error key", code: 404, body: `{"error":"not found"}`, want: "not found"},
		{name: "field errors", code: 400, body: `{"title":"this field is required","date":"bad"}`, want: "date: bad; title: this field is required"},
		{name: "plain text", code: 502, body: "upstream down", want: "upstream down"},
		{name: "empty body", code: 500, body: "", want: "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.code, []byte(tt.body)))
		})
	}
}
