// Package priority turns exam and submission records into deadline badges,
// priority scores and filtered or sorted views for the dashboard.
//
// Every function is pure: the current day or instant is always passed in.
package priority

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/task"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	// All disables a filter.
	All = "All"

	maxUrgency      = 10
	charsPerPoint   = 50
	maxLengthPoints = 5
)

// ParseError is returned for date strings that are not ISO-8601.
type ParseError = core.ParseError

type (
	// Item is the scoring view of an exam or a submission.
	Item struct {
		Kind        string        `json:"kind"`
		ID          string        `json:"id"`
		Title       string        `json:"title"`
		Subject     string        `json:"subject"`
		Description string        `json:"description"`
		Status      string        `json:"status"`
		Type        string        `json:"type,omitempty"` // exams only
		Date        core.DateTime `json:"date"`
		Due         time.Time     `json:"-"`
		Done        bool          `json:"-"`
	}

	Badge struct {
		Label         string   `json:"label"`
		Severity      Severity `json:"severity"`
		DaysRemaining int      `json:"days_remaining"`
	}

	Ranked struct {
		Item
		Score int `json:"score"`
	}

	Filter struct {
		Status  string
		Type    string // exams only: a set type drops every submission
		Subject string
	}

	Countdown struct {
		Item      Item
		Remaining time.Duration
		Days      int
		Hours     int
		Minutes   int
	}
)

// ParseDate parses an ISO-8601 date or datetime.
func ParseDate(s string) (time.Time, error) {
	dt, err := core.ParseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time, nil
}

// DaysRemaining returns the number of calendar days from `today` to `due`, ignoring the time of day.
func DaysRemaining(due, today time.Time) int {
	return int(dateOf(due).Sub(dateOf(today)).Hours() / 24)
}

// dateOf returns t's calendar date as midnight UTC, so that day differences ignore DST shifts.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify returns the deadline badge of a record due on `due`.
func Classify(due, today time.Time) Badge {
	days := DaysRemaining(due, today)
	badge := Badge{DaysRemaining: days}
	switch {
	case days > 2:
		badge.Label = fmt.Sprintf("Due in %d days", days)
		badge.Severity = SeverityLow
	case days == 2:
		badge.Label = "Due in 2 days"
		badge.Severity = SeverityMedium
	case days == 1:
		badge.Label = "Due in 1 day"
		badge.Severity = SeverityMedium
	case days == 0:
		badge.Label = "Due Today!"
		badge.Severity = SeverityHigh
	default:
		badge.Label = "Overdue!"
		badge.Severity = SeverityCritical
	}
	return badge
}

// Score returns the priority of a record: closer deadlines and longer descriptions score higher.
//
//	urgency = max(0, 10 - days_left)
//	length  = min(len(description) / 50, 5)
func Score(due time.Time, description string, today time.Time) int {
	urgency := maxUrgency - DaysRemaining(due, today)
	if urgency < 0 {
		urgency = 0
	}
	length := utf8.RuneCountInString(description) / charsPerPoint
	if length > maxLengthPoints {
		length = maxLengthPoints
	}
	return urgency + length
}

// Rank scores the items that are not done yet and sorts them by descending score.
// Items with equal scores keep their input order.
func Rank(items []Item, today time.Time) []Ranked {
	ranked := make([]Ranked, 0, len(items))
	for _, item := range items {
		if item.Done {
			continue
		}
		ranked = append(ranked, Ranked{Item: item, Score: Score(item.Due, item.Description, today)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// Apply keeps the items matching every set field of f, in input order.
// An empty field or All matches everything.
func (f Filter) Apply(items []Item) []Item {
	status, typ, subject := f.normalized()
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if status != "" && item.Status != status {
			continue
		}
		if typ != "" && item.Type != typ {
			continue
		}
		if subject != "" && !strings.EqualFold(core.CleanString(item.Subject), subject) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func (f Filter) IsEmpty() bool {
	status, typ, subject := f.normalized()
	return status == "" && typ == "" && subject == ""
}

func (f Filter) normalized() (status, typ, subject string) {
	clean := func(s string) string {
		s = core.CleanString(s)
		if strings.EqualFold(s, All) {
			return ""
		}
		return s
	}
	return clean(f.Status), clean(f.Type), clean(f.Subject)
}

// Upcoming keeps the items that are not done and not yet past their due day,
// sorted by ascending due date and time.
func Upcoming(items []Item, today time.Time) []Item {
	upcoming := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Done && DaysRemaining(item.Due, today) >= 0 {
			upcoming = append(upcoming, item)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Due.Before(upcoming[j].Due) })
	return upcoming
}

// NextDeadline returns the countdown from `now` to the earliest upcoming item.
// It reports false when nothing is upcoming.
// A deadline due today whose time has already passed counts down from zero.
func NextDeadline(items []Item, now time.Time) (Countdown, bool) {
	upcoming := Upcoming(items, now)
	if len(upcoming) == 0 {
		return Countdown{}, false
	}
	next := upcoming[0]
	remaining := next.Due.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return Countdown{
		Item:      next,
		Remaining: remaining,
		Days:      int(remaining / (24 * time.Hour)),
		Hours:     int(remaining % (24 * time.Hour) / time.Hour),
		Minutes:   int(remaining % time.Hour / time.Minute),
	}, true
}

func (c Countdown) String() string {
	return fmt.Sprintf("%d days, %d hours, %d minutes", c.Days, c.Hours, c.Minutes)
}

// CountBySubject counts the items per subject.
func CountBySubject(items []Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Subject]++
	}
	return counts
}

// Open keeps the items that are not done, in input order.
func Open(items []Item) []Item {
	open := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Done {
			open = append(open, item)
		}
	}
	return open
}

// Adapters

func ExamItem(e task.Exam) Item {
	return Item{
		Kind:        task.KindExam,
		ID:          e.ID,
		Title:       e.Title,
		Subject:     e.Subject,
		Description: e.Description,
		Status:      e.Status,
		Type:        e.Type,
		Date:        e.Date,
		Due:         e.Date.Time,
		Done:        e.IsDone(),
	}
}

func SubmissionItem(s task.Submission) Item {
	return Item{
		Kind:        task.KindSubmission,
		ID:          s.ID,
		Title:       s.Title,
		Subject:     s.Subject,
		Description: s.Description,
		Status:      s.Status,
		Date:        s.Deadline,
		Due:         s.Deadline.Time,
		Done:        s.IsDone(),
	}
}

func ExamItems(exams []task.Exam) []Item {
	items := make([]Item, 0, len(exams))
	for _, e := range exams {
		items = append(items, ExamItem(e))
	}
	return items
}

func SubmissionItems(subs []task.Submission) []Item {
	items := make([]Item, 0, len(subs))
	for _, s := range subs {
		items = append(items, SubmissionItem(s))
	}
	return items
}
