package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// requestValidator checks parameters and bodies against the OpenAPI
// document. Requests for operations the document does not describe pass
// through untouched and are left to the router.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: describeValidation(err)})
			}
			return next(ctx)
		}
	}, nil
}

// describeValidation condenses a validation failure into one line without
// the schema dump kin-openapi attaches to schema errors.
func describeValidation(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return "invalid request"
	}

	where := "request"
	switch {
	case reqErr.Parameter != nil:
		where = "parameter " + reqErr.Parameter.Name
	case reqErr.RequestBody != nil:
		where = "request body"
	}

	reason := reqErr.Reason
	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		reason = schemaErr.Reason
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			reason = strings.Join(pointer, ".") + ": " + reason
		}
	} else if reason == "" && reqErr.Err != nil {
		reason = reqErr.Err.Error()
	}
	if reason == "" {
		reason = "invalid"
	}
	return where + ": " + reason
}
