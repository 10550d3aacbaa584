package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/priority"
)

// bind decodes the request into `data`; malformed payloads are validation errors.
func bind(ctx echo.Context, data interface{}, name string) error {
	err := ctx.Bind(data)
	if err == nil {
		return nil
	}
	var herr *echo.HTTPError
	if errors.As(err, &herr) && herr.Code == http.StatusBadRequest {
		var perr *core.ParseError
		if errors.As(herr.Internal, &perr) {
			return core.NewValidationError(perr)
		}
		return core.NewValidationError(errors.New(fmt.Sprint(herr.Message)))
	}
	return errors.Wrap(err, "binding to "+name)
}

// bindFilter reads the `status`, `type` and `subject` query parameters.
func bindFilter(ctx echo.Context) priority.Filter {
	return priority.Filter{
		Status:  ctx.QueryParam("status"),
		Type:    ctx.QueryParam("type"),
		Subject: ctx.QueryParam("subject"),
	}
}
