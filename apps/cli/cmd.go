package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/task"
)

const formDateLayout = "2006-01-02"

// Times sent with dates picked on the command line.
const (
	submissionTime = "T00:00:00"
	examTime       = "T09:00:00"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	client *apiClient
	out    io.Writer
	color  bool
}

func (cli *commandLine) render() renderer {
	return renderer{out: cli.out, color: cli.color}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  submissions [-status S] [-subject S]             - list submissions")
	fmt.Fprintln(cli.out, "  exams [-status S] [-type T] [-subject S]         - list exams")
	fmt.Fprintln(cli.out, "  add-submission -title T -subject S -deadline YYYY-MM-DD [-description D] [-status S]")
	fmt.Fprintln(cli.out, "  add-exam -title T -subject S -date YYYY-MM-DD [-type T] [-description D] [-status S]")
	fmt.Fprintln(cli.out, "  delete -kind submission|exam -id ID              - delete a record")
	fmt.Fprintln(cli.out, "  complete -kind submission|exam -id ID            - mark a record completed")
	fmt.Fprintln(cli.out, "  reopen -kind submission|exam -id ID              - reopen a completed record")
	fmt.Fprintln(cli.out, "  summary                                          - show the dashboard")
	fmt.Fprintln(cli.out, "  ask -question Q [-kind submission|exam -id ID]   - ask the study assistant")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses the subcommand flags; a help request or a bad flag prints usage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()
	cmdArgs := args[2:]

	switch args[1] {
	case "submissions":
		fs := cli.flagSet("submissions")
		status := fs.String("status", "", "pending | completed")
		subject := fs.String("subject", "", "Subject name")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		records, err := cli.client.listSubmissions(ctx, *status, *subject)
		if err != nil {
			return err
		}
		cli.render().records(task.KindSubmission, records)
		return nil

	case "exams":
		fs := cli.flagSet("exams")
		status := fs.String("status", "", "upcoming | completed")
		typ := fs.String("type", "", "written | practical")
		subject := fs.String("subject", "", "Subject name")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		records, err := cli.client.listExams(ctx, *status, *typ, *subject)
		if err != nil {
			return err
		}
		cli.render().records(task.KindExam, records)
		return nil

	case "add-submission":
		fs := cli.flagSet("add-submission")
		title := fs.String("title", "", "Submission title")
		subject := fs.String("subject", "", "Subject name")
		deadline := fs.String("deadline", "", "Deadline date (YYYY-MM-DD)")
		description := fs.String("description", "", "Description")
		status := fs.String("status", task.StatusPending, "pending | completed")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if *title == "" || *subject == "" || *deadline == "" {
			fs.Usage()
			return errHelp
		}
		if err := checkFormDate("deadline", *deadline); err != nil {
			return err
		}
		rec, err := cli.client.add(ctx, task.KindSubmission, map[string]string{
			"title":       *title,
			"subject":     *subject,
			"deadline":    *deadline + submissionTime,
			"description": *description,
			"status":      *status,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Submission added: %s\n", rec.ID)
		return nil

	case "add-exam":
		fs := cli.flagSet("add-exam")
		title := fs.String("title", "", "Exam title")
		subject := fs.String("subject", "", "Subject name")
		date := fs.String("date", "", "Exam date (YYYY-MM-DD)")
		typ := fs.String("type", task.TypeWritten, "written | practical")
		description := fs.String("description", "", "Description")
		status := fs.String("status", task.StatusUpcoming, "upcoming | completed")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if *title == "" || *subject == "" || *date == "" {
			fs.Usage()
			return errHelp
		}
		if err := checkFormDate("date", *date); err != nil {
			return err
		}
		rec, err := cli.client.add(ctx, task.KindExam, map[string]string{
			"title":       *title,
			"subject":     *subject,
			"date":        *date + examTime,
			"type":        *typ,
			"description": *description,
			"status":      *status,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Exam added: %s\n", rec.ID)
		return nil

	case "delete", "complete", "reopen":
		fs := cli.flagSet(args[1])
		kind := fs.String("kind", "", "submission | exam")
		id := fs.String("id", "", "Record ID")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if err := checkKind(*kind); err != nil {
			return err
		}
		if *id == "" {
			fs.Usage()
			return errHelp
		}
		return cli.modify(ctx, args[1], *kind, *id)

	case "summary":
		submissions, err := cli.client.listSubmissions(ctx, "", "")
		if err != nil {
			return err
		}
		exams, err := cli.client.listExams(ctx, "", "", "")
		if err != nil {
			return err
		}
		cli.render().summary(submissions, exams)
		return nil

	case "ask":
		fs := cli.flagSet("ask")
		question := fs.String("question", "", "Your question")
		kind := fs.String("kind", "", "submission | exam (with -id)")
		id := fs.String("id", "", "Record ID the question is about")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if core.CleanString(*question) == "" {
			fs.Usage()
			return errHelp
		}
		var answer string
		var err error
		if *id == "" {
			answer, err = cli.client.askGeneral(ctx, *question)
		} else {
			if err := checkKind(*kind); err != nil {
				return err
			}
			answer, err = cli.client.ask(ctx, *kind, *id, *question)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, answer)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) modify(ctx context.Context, action, kind, id string) error {
	label := capitalize(kind)
	if action == "delete" {
		if err := cli.client.delete(ctx, kind, id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s deleted: %s\n", label, id)
		return nil
	}

	rec, err := cli.client.transition(ctx, kind, id, action)
	if err != nil {
		return err
	}
	done := map[string]string{"complete": "completed", "reopen": "reopened"}[action]
	fmt.Fprintf(cli.out, "%s %s: %s (%s)\n", label, done, rec.ID, rec.Status)
	return nil
}

func checkKind(kind string) error {
	if kind != task.KindSubmission && kind != task.KindExam {
		return fmt.Errorf("invalid kind %q: expected submission or exam", kind)
	}
	return nil
}

func checkFormDate(name, value string) error {
	if _, err := time.Parse(formDateLayout, value); err != nil {
		return fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", name, value)
	}
	return nil
}
