package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/priority"
	"github.com/trezcool/trackademics/core/task"
)

type (
	dashboardApi struct {
		svc task.Service
	}

	rankedItem struct {
		Kind    string        `json:"kind"`
		ID      string        `json:"id"`
		Title   string        `json:"title"`
		Subject string        `json:"subject"`
		Date    core.DateTime `json:"date"`
		Score   int           `json:"score"`
	}

	badgedItem struct {
		priority.Item
		Badge priority.Badge `json:"badge"`
	}

	upcomingResponse struct {
		Submissions []badgedItem `json:"submissions"`
		Exams       []badgedItem `json:"exams"`
	}

	nextDeadlineResponse struct {
		Message string         `json:"message"`
		Days    int            `json:"days"`
		Hours   int            `json:"hours"`
		Minutes int            `json:"minutes"`
		Item    *priority.Item `json:"item,omitempty"`
	}

	summaryCounts struct {
		Submissions        int `json:"submissions"`
		PendingSubmissions int `json:"pending_submissions"`
		Exams              int `json:"exams"`
		UpcomingExams      int `json:"upcoming_exams"`
	}

	summaryResponse struct {
		PendingSubmissionsBySubject map[string]int `json:"pending_submissions_by_subject"`
		UpcomingExamsBySubject      map[string]int `json:"upcoming_exams_by_subject"`
		Counts                      summaryCounts  `json:"counts"`
	}
)

func registerDashboardAPI(g *echo.Group, svc task.Service) {
	api := dashboardApi{svc: svc}

	g.GET("/priority", api.ranking)
	g.GET("/upcoming", api.upcoming)
	g.GET("/next-deadline", api.nextDeadline)
	g.GET("/summary", api.summary)
}

// items returns the submissions then the exams as scoring items.
func (api *dashboardApi) items(ctx context.Context) (subs, exams []priority.Item, err error) {
	submissions, err := api.svc.ListSubmissions(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "listing submissions")
	}
	examList, err := api.svc.ListExams(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "listing exams")
	}
	return priority.SubmissionItems(submissions), priority.ExamItems(examList), nil
}

// Handlers

func (api *dashboardApi) ranking(ctx echo.Context) error {
	subs, exams, err := api.items(ctx.Request().Context())
	if err != nil {
		return err
	}

	ranked := priority.Rank(append(subs, exams...), core.NowFunc())
	items := make([]rankedItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, rankedItem{
			Kind:    r.Kind,
			ID:      r.ID,
			Title:   r.Title,
			Subject: r.Subject,
			Date:    r.Date,
			Score:   r.Score,
		})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"items": items})
}

func (api *dashboardApi) upcoming(ctx echo.Context) error {
	subs, exams, err := api.items(ctx.Request().Context())
	if err != nil {
		return err
	}

	now := core.NowFunc()
	withBadges := func(items []priority.Item) []badgedItem {
		upcoming := priority.Upcoming(items, now)
		badged := make([]badgedItem, 0, len(upcoming))
		for _, item := range upcoming {
			badged = append(badged, badgedItem{Item: item, Badge: priority.Classify(item.Due, now)})
		}
		return badged
	}
	return ctx.JSON(http.StatusOK, upcomingResponse{
		Submissions: withBadges(subs),
		Exams:       withBadges(exams),
	})
}

func (api *dashboardApi) nextDeadline(ctx echo.Context) error {
	subs, exams, err := api.items(ctx.Request().Context())
	if err != nil {
		return err
	}

	countdown, ok := priority.NextDeadline(append(subs, exams...), core.NowFunc())
	if !ok {
		return ctx.JSON(http.StatusOK, echo.Map{"message": "No upcoming deadlines!"})
	}
	return ctx.JSON(http.StatusOK, nextDeadlineResponse{
		Message: "Next deadline in " + countdown.String(),
		Days:    countdown.Days,
		Hours:   countdown.Hours,
		Minutes: countdown.Minutes,
		Item:    &countdown.Item,
	})
}

func (api *dashboardApi) summary(ctx echo.Context) error {
	subs, exams, err := api.items(ctx.Request().Context())
	if err != nil {
		return err
	}

	pending := priority.Filter{Status: task.StatusPending}.Apply(subs)
	upcoming := priority.Filter{Status: task.StatusUpcoming}.Apply(exams)
	return ctx.JSON(http.StatusOK, summaryResponse{
		PendingSubmissionsBySubject: priority.CountBySubject(pending),
		UpcomingExamsBySubject:      priority.CountBySubject(upcoming),
		Counts: summaryCounts{
			Submissions:        len(subs),
			PendingSubmissions: len(pending),
			Exams:              len(exams),
			UpcomingExams:      len(upcoming),
		},
	})
}
