package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core/assistant"
	"github.com/trezcool/trackademics/core/priority"
	"github.com/trezcool/trackademics/core/task"
)

type (
	submissionApi struct {
		svc       task.Service
		assistant assistant.Service
		validate  *validator.Validate
	}

	submissionResponse struct {
		Message string          `json:"message"`
		Data    task.Submission `json:"data"`
	}

	submissionsResponse struct {
		Submissions []task.Submission `json:"submissions"`
	}
)

func registerSubmissionAPI(g *echo.Group, svc task.Service, assistantSvc assistant.Service, validate *validator.Validate) {
	api := submissionApi{
		svc:       svc,
		assistant: assistantSvc,
		validate:  validate,
	}

	g.POST("/add", api.create)
	g.GET("/all", api.list)

	// detail endpoints
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
	g.POST("/:id/complete", api.complete)
	g.POST("/:id/reopen", api.reopen)
	g.POST("/:id/ask", api.ask)
}

// Handlers

func (api *submissionApi) create(ctx echo.Context) error {
	var data task.NewSubmission
	if err := bind(ctx, &data, "NewSubmission"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.AddSubmission(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding submission")
	}

	return ctx.JSON(http.StatusOK, submissionResponse{Message: "Submission added", Data: sub})
}

func (api *submissionApi) list(ctx echo.Context) error {
	subs, err := api.svc.ListSubmissions(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing submissions")
	}

	filter := bindFilter(ctx)
	filter.Type = ""
	if !filter.IsEmpty() {
		subs = filterSubmissions(subs, filter)
	}

	return ctx.JSON(http.StatusOK, submissionsResponse{Submissions: subs})
}

func (api *submissionApi) retrieve(ctx echo.Context) error {
	sub, err := api.svc.GetSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) update(ctx echo.Context) error {
	var data task.UpdateSubmission
	if err := bind(ctx, &data, "UpdateSubmission"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.UpdateSubmission(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating submission")
	}

	return ctx.JSON(http.StatusOK, submissionResponse{Message: "Submission updated", Data: sub})
}

func (api *submissionApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteSubmission(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting submission")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Submission deleted"})
}

func (api *submissionApi) complete(ctx echo.Context) error {
	sub, err := api.svc.CompleteSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "completing submission")
	}
	return ctx.JSON(http.StatusOK, submissionResponse{Message: "Submission completed", Data: sub})
}

func (api *submissionApi) reopen(ctx echo.Context) error {
	sub, err := api.svc.ReopenSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "reopening submission")
	}
	return ctx.JSON(http.StatusOK, submissionResponse{Message: "Submission reopened", Data: sub})
}

func (api *submissionApi) ask(ctx echo.Context) error {
	var data assistant.Question
	if err := bind(ctx, &data, "Question"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.GetSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting submission")
	}
	data.Context = assistant.RecordContext(sub.Title, sub.Description)

	answer, err := api.assistant.Ask(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "asking about submission")
	}
	return ctx.JSON(http.StatusOK, answer)
}

func filterSubmissions(subs []task.Submission, filter priority.Filter) []task.Submission {
	keep := make(map[string]bool, len(subs))
	for _, item := range filter.Apply(priority.SubmissionItems(subs)) {
		keep[item.ID] = true
	}
	filtered := make([]task.Submission, 0, len(keep))
	for _, sub := range subs {
		if keep[sub.ID] {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}
