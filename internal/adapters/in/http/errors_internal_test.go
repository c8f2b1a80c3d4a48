package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required", errs.NewValueIsRequiredError("email"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("hire_date"), http.StatusBadRequest},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), http.StatusBadRequest},
		{"bad reference", errs.NewValueIsInvalidErrorWithCause("customer_id", errs.NewObjectNotFoundError("customer", "x")), http.StatusBadRequest},
		{"not found", errs.NewObjectNotFoundError("shipment", "x"), http.StatusNotFound},
		{"conflict", errs.NewObjectAlreadyExistsError("email", "a@b.c"), http.StatusConflict},
		{"credentials", errs.ErrInvalidCredentials, http.StatusUnauthorized},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestFail_HidesInternalErrors(t *testing.T) {
	s := &Server{logger: zap.NewNop()}
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.NoError(t, s.fail(ctx, errors.New("pq: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), internalErrorMessage)
	assert.NotContains(t, rec.Body.String(), "pq")
}

func TestFail_KeepsMessageOnOneLine(t *testing.T) {
	s := &Server{logger: zap.NewNop()}
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := errors.Join(errs.NewValueIsRequiredError("first_name"), errs.NewValueIsRequiredError("city"))
	assert.NoError(t, s.fail(ctx, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := strings.TrimSpace(rec.Body.String())
	assert.NotContains(t, body, "\n")
	assert.Contains(t, body, "first_name; ")
}

func TestParseRequestedDate(t *testing.T) {
	for _, raw := range []string{"2025-01-15", "2025-01-15T09:30", "2025-01-15T09:30:00+02:00"} {
		got, err := parseRequestedDate(raw)
		assert.NoError(t, err, raw)
		if assert.NotNil(t, got, raw) {
			assert.Equal(t, 15, got.Day())
		}
	}

	got, err := parseRequestedDate("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseRequestedDate("tomorrow")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
