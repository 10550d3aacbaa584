package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/priority"
	"github.com/trezcool/trackademics/core/task"
)

const (
	dueLayout = "2006-01-02 15:04"

	invalidDate = "invalid date"
)

var severityColors = map[priority.Severity]string{
	priority.SeverityLow:      "\033[32m",   // green
	priority.SeverityMedium:   "\033[33m",   // yellow
	priority.SeverityHigh:     "\033[1;33m", // bold yellow
	priority.SeverityCritical: "\033[1;31m", // bold red
}

const colorReset = "\033[0m"

// record is an exam or a submission as returned by the API.
// Dates stay strings so that one bad value only spoils its own row.
type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Type        string `json:"type,omitempty"`
	Date        string `json:"date,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

func (r record) due() string {
	if r.Deadline != "" {
		return r.Deadline
	}
	return r.Date
}

func (r record) item(kind string) (priority.Item, error) {
	dt, err := core.ParseDateTime(r.due())
	if err != nil {
		return priority.Item{}, err
	}
	return priority.Item{
		Kind:        kind,
		ID:          r.ID,
		Title:       r.Title,
		Subject:     r.Subject,
		Description: r.Description,
		Status:      r.Status,
		Type:        r.Type,
		Date:        dt,
		Due:         dt.Time,
		Done:        r.Status == task.StatusCompleted,
	}, nil
}

// items converts records, returning the ones whose date cannot be parsed separately.
func items(kind string, records []record) ([]priority.Item, []record) {
	valid := make([]priority.Item, 0, len(records))
	var invalid []record
	for _, r := range records {
		it, err := r.item(kind)
		if err != nil {
			invalid = append(invalid, r)
			continue
		}
		valid = append(valid, it)
	}
	return valid, invalid
}

type renderer struct {
	out   io.Writer
	color bool
}

func (r renderer) badge(b priority.Badge) string {
	if !r.color {
		return b.Label
	}
	return severityColors[b.Severity] + b.Label + colorReset
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// records prints one row per record with its deadline badge.
func (r renderer) records(kind string, records []record) {
	if len(records) == 0 {
		fmt.Fprintln(r.out, "No entries to display for the selected filter.")
		return
	}

	today := core.NowFunc()
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	if kind == task.KindExam {
		fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tDATE\tTYPE\tSTATUS\tBADGE")
	} else {
		fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tDEADLINE\tSTATUS\tBADGE")
	}
	for _, rec := range records {
		due, badge := invalidDate, invalidDate
		if it, err := rec.item(kind); err == nil {
			due = it.Due.Format(dueLayout)
			badge = r.badge(priority.Classify(it.Due, today))
		}
		if kind == task.KindExam {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				rec.ID, rec.Title, rec.Subject, due, capitalize(rec.Type), capitalize(rec.Status), badge)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				rec.ID, rec.Title, rec.Subject, due, capitalize(rec.Status), badge)
		}
	}
	_ = w.Flush()
}

// summary prints the dashboard: counts per subject, priority ranking, upcoming lists and the next deadline.
func (r renderer) summary(submissions, exams []record) {
	now := core.NowFunc()
	subItems, badSubs := items(task.KindSubmission, submissions)
	examItems, badExams := items(task.KindExam, exams)
	all := append(append([]priority.Item{}, subItems...), examItems...)

	fmt.Fprintln(r.out, "Status Overview")
	r.counts("Pending submissions by subject", "No pending submissions to visualize.", priority.Open(subItems))
	r.counts("Upcoming exams by subject", "No upcoming exams to visualize.", priority.Open(examItems))

	fmt.Fprintln(r.out, "\nSorted by Priority")
	ranked := priority.Rank(all, now)
	if len(ranked) == 0 {
		fmt.Fprintln(r.out, "  No tasks to prioritize right now.")
	}
	for _, it := range ranked {
		fmt.Fprintf(r.out, "  [%2d] %s - %s (due %s)\n", it.Score, it.Title, it.Subject, it.Due.Format(dueLayout))
	}

	r.upcoming("Upcoming Submissions", "No upcoming submissions.", subItems, now)
	r.upcoming("Upcoming Exams", "No upcoming exams.", examItems, now)

	fmt.Fprintln(r.out, "\nTime Tracker")
	if next, ok := priority.NextDeadline(all, now); ok {
		fmt.Fprintf(r.out, "  Next deadline in %s: %s - %s\n", next, next.Item.Title, next.Item.Subject)
	} else {
		fmt.Fprintln(r.out, "  No upcoming deadlines!")
	}

	if skipped := len(badSubs) + len(badExams); skipped > 0 {
		fmt.Fprintf(r.out, "\n%d record(s) skipped: %s\n", skipped, invalidDate)
	}
}

func (r renderer) counts(title, empty string, items []priority.Item) {
	fmt.Fprintf(r.out, "  %s:\n", title)
	counts := priority.CountBySubject(items)
	if len(counts) == 0 {
		fmt.Fprintf(r.out, "    %s\n", empty)
		return
	}
	subjects := make([]string, 0, len(counts))
	for subject := range counts {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, subject := range subjects {
		fmt.Fprintf(w, "    %s\t%d\n", subject, counts[subject])
	}
	_ = w.Flush()
}

func (r renderer) upcoming(title, empty string, items []priority.Item, now time.Time) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	upcoming := priority.Upcoming(items, now)
	if len(upcoming) == 0 {
		fmt.Fprintf(r.out, "  %s\n", empty)
		return
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, it := range upcoming {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			it.Title, it.Subject, it.Due.Format(dueLayout), r.badge(priority.Classify(it.Due, now)))
	}
	_ = w.Flush()
}
