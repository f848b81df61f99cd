package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	maxAttemptsPerKey = 3
	retryDelay        = 2 * time.Second
)

// GenerateContentWithRetry - 429 에러 시 여러 API 키로 재시도하는 전송 계층 헬퍼.
// 핵심 오퍼레이션에는 재시도가 없으므로, 재시도가 필요한 호출자가 직접 사용한다.
// 키마다 최대 3회 시도하고, 429가 아닌 에러는 즉시 반환한다.
func GenerateContentWithRetry(
	ctx context.Context,
	apiKeys []string,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {

	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no API keys provided")
	}

	var lastErr error

	for keyIndex, apiKey := range apiKeys {
		log.Printf("🔑 [Gemini] Trying API key #%d/%d", keyIndex+1, len(apiKeys))

		// 키당 클라이언트는 한 번만 생성
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Printf("⚠️  [Gemini] Failed to create client with key #%d: %v", keyIndex+1, err)
			lastErr = err
			continue
		}

		for attempt := 1; attempt <= maxAttemptsPerKey; attempt++ {
			result, err := client.Models.GenerateContent(ctx, model, contents, config)
			if err == nil {
				log.Printf("✅ [Gemini] Success with API key #%d (attempt %d/%d)", keyIndex+1, attempt, maxAttemptsPerKey)
				return result, nil
			}

			lastErr = err

			// 429가 아닌 에러는 재시도 대상이 아님
			if !IsRateLimitError(err) {
				log.Printf("❌ [Gemini] Key #%d failed with non-429 error: %v", keyIndex+1, err)
				return nil, err
			}

			log.Printf("⚠️  [Gemini] Key #%d hit rate limit (429) on attempt %d/%d", keyIndex+1, attempt, maxAttemptsPerKey)

			if attempt < maxAttemptsPerKey {
				log.Printf("   ⏳ Waiting %s before retry...", retryDelay)
				select {
				case <-time.After(retryDelay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}

		log.Printf("⚠️  [Gemini] Key #%d exhausted all %d attempts, trying next key...", keyIndex+1, maxAttemptsPerKey)
	}

	return nil, fmt.Errorf("all %d API keys exhausted (%d attempts each), last error: %w",
		len(apiKeys), maxAttemptsPerKey, lastErr)
}

// IsRateLimitError - 429 Rate Limit 계열 에러인지 확인
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)
	return strings.Contains(errStr, "429") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "quota")
}
