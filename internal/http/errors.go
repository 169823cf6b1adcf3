package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/researchhub/portal-api/internal/errors"
)

// statusForCode maps an application error code to an HTTP status.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return httpStatusClientClosedRequest
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Nginx convention for requests abandoned by the client.
const httpStatusClientClosedRequest = 499

// WriteAppError translates a service error into a JSON error response. The
// response message is the error's user-facing message; wrapped causes stay in
// the logs only.
func WriteAppError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		WriteError(w, ErrorParams{
			Code:    http.StatusGatewayTimeout,
			ErrCode: string(apperrors.ErrCodeTimeout),
			Err:     errors.New("request timed out"),
		})
		return
	}

	code := apperrors.CodeOf(err)
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	WriteError(w, ErrorParams{
		Code:    statusForCode(code),
		ErrCode: string(code),
		Err:     errors.New(message),
	})
}
