package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

// ProviderErrorResponse covers the two error body shapes seen from providers:
// a flat {"name","message"} object and a nested {"error":{"code","message"}}.
type ProviderErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// translates it into an AppError. Only call it for non-2xx statuses.
func ParseResponseError(resp *http.Response, provider string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", provider, resp.StatusCode, err)
	}

	code, message := "", string(bodyBytes)
	var body ProviderErrorResponse
	if json.Unmarshal(bodyBytes, &body) == nil {
		switch {
		case body.Error != nil:
			code, message = body.Error.Code, body.Error.Message
		case body.Message != "":
			code, message = body.Name, body.Message
		}
	}
	return mapProviderError(resp.StatusCode, code, message, provider)
}

// mapProviderError keeps 4xx semantics visible to callers. Anything the
// provider could not process on its side becomes a bad gateway.
func mapProviderError(status int, code, message, provider string) error {
	cause := fmt.Errorf("%s returned status %d (%s): %s", provider, status, code, message)
	qualifiedMsg := fmt.Sprintf("%s: %s", provider, message)

	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return &apperrors.AppError{
			Code:    "INVALID_INPUT",
			Message: qualifiedMsg,
			Status:  http.StatusBadRequest,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, cause),
		}
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		// A rejected API key is our misconfiguration, not the caller's.
		return &apperrors.AppError{
			Code:    "NOT_CONFIGURED",
			Message: qualifiedMsg,
			Status:  http.StatusInternalServerError,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrNotConfigured, cause),
		}
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusGone:
		return apperrors.Gone(qualifiedMsg)
	case status == http.StatusTooManyRequests:
		return apperrors.BadGateway(qualifiedMsg, fmt.Errorf("%w: %w", apperrors.ErrTooManyRequests, cause))
	default:
		return apperrors.BadGateway(qualifiedMsg, cause)
	}
}

// IsClientError reports whether status is a 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
