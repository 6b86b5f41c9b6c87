package commerce_test

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	commerce "github.com/goliatone/go-commerce"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrorToMap(t *testing.T) {
	t.Run("flattens ozzo field errors", func(t *testing.T) {
		verrs := validation.Errors{
			"email":    errors.New("must be a valid email address"),
			"password": errors.New("the length must be between 8 and 100"),
		}

		out := commerce.FormatValidationErrorToMap(verrs)

		assert.Len(t, out, 2)
		assert.Equal(t, "must be a valid email address", out["email"])
		assert.Equal(t, "the length must be between 8 and 100", out["password"])
	})

	t.Run("falls back to a payload key for non field errors", func(t *testing.T) {
		out := commerce.FormatValidationErrorToMap(errors.New("unexpected end of JSON input"))

		assert.Len(t, out, 1)
		assert.Equal(t, "unexpected end of JSON input", out["payload"])
	})

	t.Run("nil error yields an empty map", func(t *testing.T) {
		out := commerce.FormatValidationErrorToMap(nil)
		assert.Empty(t, out)
	})
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, commerce.WrapValidationError(nil))
	})

	t.Run("produces a bad request rich error with field metadata", func(t *testing.T) {
		verrs := validation.Errors{
			"price": errors.New("must be no less than 1"),
		}

		err := commerce.WrapValidationError(verrs)
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryValidation, richErr.Category)
		assert.Equal(t, "VALIDATION_ERROR", richErr.TextCode)
		assert.Equal(t, goerrors.CodeBadRequest, richErr.Code)
		assert.Equal(t, "must be no less than 1", richErr.Metadata["price"])
	})
}
