package commerce

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map suitable for JSON responses.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}

// WrapValidationError converts an ozzo validation error into the rich
// error the HTTP responder knows how to serialize.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	fields := FormatValidationErrorToMap(err)
	meta := make(map[string]any, len(fields))
	for k, v := range fields {
		meta[k] = v
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request payload").
		WithTextCode("VALIDATION_ERROR").
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(meta)
}
