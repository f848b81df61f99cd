package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentWithRetry_NoKeys(t *testing.T) {
	t.Parallel()

	_, err := GenerateContentWithRetry(context.Background(), nil, "gemini-2.5-flash-image", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API keys provided")
}

func TestIsRateLimitError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "status code", err: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"), want: true},
		{name: "rate limit text", err: errors.New("Rate Limit reached"), want: true},
		{name: "quota text", err: errors.New("Quota exceeded for requests"), want: true},
		{name: "unrelated", err: errors.New("invalid argument"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimitError(tt.err))
		})
	}
}
