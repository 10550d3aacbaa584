package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core/assistant"
)

type assistantApi struct {
	svc      assistant.Service
	validate *validator.Validate
}

func registerAssistantAPI(g *echo.Group, svc assistant.Service, validate *validator.Validate) {
	api := assistantApi{svc: svc, validate: validate}
	g.POST("/ask", api.ask)
}

func (api *assistantApi) ask(ctx echo.Context) error {
	var data assistant.Question
	if err := bind(ctx, &data, "Question"); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	answer, err := api.svc.Ask(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "asking assistant")
	}
	return ctx.JSON(http.StatusOK, answer)
}
