package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	apperrors "reservation-system/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Search)
}

func TestParseFilterFromQueryLimitIsCapped(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"limit": {"9999"}})
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQueryPageComputesOffset(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"limit": {"20"}, "page": {"3"}})
	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 40, filter.Offset)
}

func TestParseFilterFromQuerySortAndFilter(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{
		"search":                   {"chair"},
		"sort[reservation_date]":   {"DESC"},
		"sort[bogus]":              {"sideways"},
		"filter[status]":           {"pending"},
		"filter[reservation_date]": {"2026-09-15"},
	})

	assert.Equal(t, "chair", filter.Search)
	assert.Equal(t, map[string]string{"reservation_date": "desc"}, filter.Sort)
	assert.Equal(t, "pending", filter.Filter["status"])
	assert.Equal(t, "2026-09-15", filter.Filter["reservation_date"])
}

func TestParseFilterFromQueryWithoutPagination(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"withPagination": {"false"}})
	assert.False(t, filter.WithPagination)
}

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorResponseMapsHttpError(t *testing.T) {
	ctx, rec := newTestContext(t)

	err := ErrorResponse(ctx, apperrors.NewHttpError(http.StatusConflict, "already taken", nil, nil), zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
}

func TestErrorResponseMapsSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrBadRequest, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		ctx, rec := newTestContext(t)
		require.NoError(t, ErrorResponse(ctx, tc.err, zap.NewNop()))
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestErrorResponseMapsInvalidInput(t *testing.T) {
	ctx, rec := newTestContext(t)

	require.NoError(t, ErrorResponse(ctx, apperrors.NewInvalidInputError("items must be a JSON array"), zap.NewNop()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "items must be a JSON array")
}

func TestErrorResponseHidesInternalDetailInProduction(t *testing.T) {
	e := echo.New()
	e.Debug = false
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, ErrorResponse(e.NewContext(req, rec), errors.New("pq: connection refused"), zap.NewNop()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestErrorResponseExposesInternalDetailInDebug(t *testing.T) {
	e := echo.New()
	e.Debug = true
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, ErrorResponse(e.NewContext(req, rec), errors.New("pq: connection refused"), zap.NewNop()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "pq: connection refused")
}

func TestSuccessResponseWithPagination(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=10&page=2", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, SuccessResponse(ctx, []int{1, 2, 3}, "ok", http.StatusOK, 25))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"total_count":25`)
	assert.Contains(t, body, `"total_pages":3`)
	assert.Contains(t, body, `"page":2`)
}
