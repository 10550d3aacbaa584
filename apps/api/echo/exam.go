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
	examApi struct {
		svc       task.Service
		assistant assistant.Service
		validate  *validator.Validate
	}

	examResponse struct {
		Message string    `json:"message"`
		Data    task.Exam `json:"data"`
	}

	examsResponse struct {
		Exams []task.Exam `json:"exams"`
	}
)

func registerExamAPI(g *echo.Group, svc task.Service, assistantSvc assistant.Service, validate *validator.Validate) {
	api := examApi{
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

func (api *examApi) create(ctx echo.Context) error {
	var data task.NewExam
	if err := bind(ctx, &data, "NewExam"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	exam, err := api.svc.AddExam(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding exam")
	}

	return ctx.JSON(http.StatusOK, examResponse{Message: "Exam added", Data: exam})
}

func (api *examApi) list(ctx echo.Context) error {
	exams, err := api.svc.ListExams(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing exams")
	}

	filter := bindFilter(ctx)
	if !filter.IsEmpty() {
		exams = filterExams(exams, filter)
	}

	return ctx.JSON(http.StatusOK, examsResponse{Exams: exams})
}

func (api *examApi) retrieve(ctx echo.Context) error {
	exam, err := api.svc.GetExam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting exam")
	}
	return ctx.JSON(http.StatusOK, exam)
}

func (api *examApi) update(ctx echo.Context) error {
	var data task.UpdateExam
	if err := bind(ctx, &data, "UpdateExam"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	exam, err := api.svc.UpdateExam(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}

	return ctx.JSON(http.StatusOK, examResponse{Message: "Exam updated", Data: exam})
}

func (api *examApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteExam(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Exam deleted"})
}

func (api *examApi) complete(ctx echo.Context) error {
	exam, err := api.svc.CompleteExam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "completing exam")
	}
	return ctx.JSON(http.StatusOK, examResponse{Message: "Exam completed", Data: exam})
}

func (api *examApi) reopen(ctx echo.Context) error {
	exam, err := api.svc.ReopenExam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "reopening exam")
	}
	return ctx.JSON(http.StatusOK, examResponse{Message: "Exam reopened", Data: exam})
}

func (api *examApi) ask(ctx echo.Context) error {
	var data assistant.Question
	if err := bind(ctx, &data, "Question"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	exam, err := api.svc.GetExam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting exam")
	}
	data.Context = assistant.RecordContext(exam.Title, exam.Description)

	answer, err := api.assistant.Ask(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "asking about exam")
	}
	return ctx.JSON(http.StatusOK, answer)
}

func filterExams(exams []task.Exam, filter priority.Filter) []task.Exam {
	keep := make(map[string]bool, len(exams))
	for _, item := range filter.Apply(priority.ExamItems(exams)) {
		keep[item.ID] = true
	}
	filtered := make([]task.Exam, 0, len(keep))
	for _, exam := range exams {
		if keep[exam.ID] {
			filtered = append(filtered, exam)
		}
	}
	return filtered
}
