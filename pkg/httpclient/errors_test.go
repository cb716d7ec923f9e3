package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_FlatBody(t *testing.T) {
	err := ParseResponseError(response(http.StatusUnprocessableEntity,
		`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`), "resend")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "resend: Invalid to field", appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestParseResponseError_NestedBody(t *testing.T) {
	err := ParseResponseError(response(http.StatusConflict,
		`{"error":{"code":"DUPLICATE","message":"already queued"}}`), "mailer")

	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(err))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestParseResponseError_AuthIsMisconfiguration(t *testing.T) {
	err := ParseResponseError(response(http.StatusUnauthorized,
		`{"name":"missing_api_key","message":"Missing API key"}`), "resend")

	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))
}

func TestParseResponseError_UpstreamFailures(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{http.StatusTooManyRequests, `{"name":"rate_limit_exceeded","message":"Too many requests"}`},
		{http.StatusInternalServerError, `oops`},
		{http.StatusServiceUnavailable, ``},
	}

	for _, tt := range tests {
		err := ParseResponseError(response(tt.status, tt.body), "resend")
		assert.ErrorIs(t, err, apperrors.ErrBadGateway)
		assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
	}
}

func TestParseResponseError_UnstructuredBodyKept(t *testing.T) {
	err := ParseResponseError(response(http.StatusGone, "gone for good"), "resend")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "resend: gone for good", appErr.Message)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusTooManyRequests))
	assert.False(t, IsClientError(http.StatusOK))
	assert.False(t, IsClientError(http.StatusBadGateway))
}
