package commerce

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// APIResponse is the envelope every JSON endpoint writes on success
type APIResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is the envelope written for failed requests
type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Message  string `json:"message"`
	TextCode string `json:"text_code,omitempty"`
}

// RespondData writes the success envelope
func RespondData(ctx router.Context, status int, data any, message string) error {
	return ctx.JSON(status, APIResponse{
		Data:    data,
		Message: message,
	})
}

// RespondError maps domain errors onto HTTP status codes and writes the
// error envelope. Unrecognized errors become opaque 500s.
func RespondError(ctx router.Context, logger Logger, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	if logger != nil {
		logger.Info(
			"request error",
			"error", richErr.Message,
			"category", richErr.Category,
			"text_code", richErr.TextCode,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)
	}

	status := richErr.Code
	if status == 0 {
		status = router.StatusInternalServerError
	}

	message := richErr.Message
	if status >= router.StatusInternalServerError {
		message = "An unexpected server error occurred"
	}

	return ctx.JSON(status, APIError{
		Error: APIErrorBody{
			Message:  message,
			TextCode: richErr.TextCode,
		},
	})
}

// ErrorResponder converts errors returned by downstream handlers and
// guards into JSON error envelopes. Mount it outermost so guard
// rejections are serialized the same way handler failures are.
func ErrorResponder(logger Logger) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if err := hf(ctx); err != nil {
				return RespondError(ctx, logger, err)
			}
			return nil
		}
	}
}
