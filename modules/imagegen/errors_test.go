package imagegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blankError struct{}

func (blankError) Error() string { return "" }

func TestNormalizeProviderError_RateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "standard envelope",
			raw:  `rpc failed: {"error": {"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"}}`,
		},
		{
			name: "double nested envelope",
			raw:  `{"error": {"error": {"code": 429, "status": "RESOURCE_EXHAUSTED"}}}`,
		},
		{
			name: "top level code",
			raw:  `{"code": 429, "message": "Too Many Requests"}`,
		},
		{
			name: "quota substring without structured code",
			raw:  `{"error": {"message": "You exceeded your current quota, please check your plan"}}`,
		},
		{
			name: "quota substring plain text",
			raw:  "You exceeded your current quota",
		},
		{
			name: "rate limit substring case insensitive",
			raw:  "Rate Limit reached for this project",
		},
		{
			name: "googleapi prefix",
			raw:  `googleapi: Error 429: {"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := normalizeProviderError(errors.New(tt.raw))

			var e *Error
			require.ErrorAs(t, normalized, &e)
			assert.Equal(t, ErrRateLimitExceeded, e.Code)
			assert.Equal(t, rateLimitMessage, e.Message)
		})
	}
}

func TestNormalizeProviderError_APIError(t *testing.T) {
	t.Parallel()

	t.Run("single nested message", func(t *testing.T) {
		raw := errors.New(`{"error": {"code": 500, "message": "Internal error encountered", "status": "INTERNAL"}}`)
		normalized := normalizeProviderError(raw)

		var e *Error
		require.ErrorAs(t, normalized, &e)
		assert.Equal(t, ErrAPIError, e.Code)
		assert.Equal(t, "Internal error encountered", e.Message)
	})

	t.Run("double nested message wins", func(t *testing.T) {
		raw := errors.New(`{"error": {"message": "outer wrapper", "error": {"code": 400, "message": "Invalid image payload"}}}`)
		normalized := normalizeProviderError(raw)

		var e *Error
		require.ErrorAs(t, normalized, &e)
		assert.Equal(t, ErrAPIError, e.Code)
		assert.Equal(t, "Invalid image payload", e.Message)
	})
}

func TestNormalizeProviderError_Generic(t *testing.T) {
	t.Parallel()

	raw := errors.New("connection reset by peer")
	normalized := normalizeProviderError(raw)

	var e *Error
	require.ErrorAs(t, normalized, &e)
	assert.Equal(t, ErrGenericError, e.Code)
	assert.Equal(t, "connection reset by peer", e.Message)
}

func TestNormalizeProviderError_Unknown(t *testing.T) {
	t.Parallel()

	normalized := normalizeProviderError(blankError{})

	var e *Error
	require.ErrorAs(t, normalized, &e)
	assert.Equal(t, ErrUnknownError, e.Code)
	assert.Equal(t, "Failed to generate image. Please try again.", e.Message)
}

func TestNormalizeProviderError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, normalizeProviderError(nil))
}

func TestNormalizeProviderError_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	normalized := normalizeProviderError(cause)

	assert.ErrorIs(t, normalized, cause)
	assert.Contains(t, normalized.Error(), "caused by: connection reset by peer")
}

func TestGetErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		err := &Error{Code: ErrNoResponseText, Message: noTextMessage}
		assert.Equal(t, ErrNoResponseText, GetErrorCode(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("segment image: %w", &Error{Code: ErrAPIError, Message: "boom"})
		assert.Equal(t, ErrAPIError, GetErrorCode(err))
	})

	t.Run("foreign error", func(t *testing.T) {
		assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	})
}

func TestParseProviderError(t *testing.T) {
	t.Parallel()

	t.Run("extracts embedded json", func(t *testing.T) {
		envelope := parseProviderError(`call failed: {"error": {"code": 503, "message": "overloaded"}} (retried)`)
		require.NotNil(t, envelope)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, 503, envelope.Error.Code)
		assert.Equal(t, "overloaded", envelope.Error.Message)
	})

	t.Run("no braces", func(t *testing.T) {
		assert.Nil(t, parseProviderError("plain text failure"))
	})

	t.Run("malformed json", func(t *testing.T) {
		assert.Nil(t, parseProviderError(`oops {"error": }`))
	})
}
