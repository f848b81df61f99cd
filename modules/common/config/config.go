package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// PlaceholderAPIKey - GEMINI_API_KEY 미설정 시 사용되는 비프로덕션 플레이스홀더.
// 실제 API 호출은 프로바이더가 거부하므로 로컬 개발/테스트 용도로만 동작한다.
const PlaceholderAPIKey = "PLACEHOLDER_API_KEY"

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Gemini API
	GeminiAPIKey  string
	GeminiModel   string
	GeminiAPIKeys []string // 재시도 헬퍼용 추가 키 (옵션)
}

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	cfg := &Config{
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiAPIKeys: splitKeys(os.Getenv("GEMINI_API_KEYS")),
	}

	// API 키 미설정 시 플레이스홀더로 대체 (경고만, 실패 아님)
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = PlaceholderAPIKey
		log.Println("⚠️  GEMINI_API_KEY not set - using non-production placeholder, API calls will be rejected")
	}

	// 필수 값 검증
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Gemini: %s", cfg.GeminiModel)
	if len(cfg.GeminiAPIKeys) > 0 {
		log.Printf("   Extra API keys: %d", len(cfg.GeminiAPIKeys))
	}

	return cfg, nil
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}
	return nil
}

// AllAPIKeys - 기본 키 + 추가 키 목록 (중복/플레이스홀더 제외)
func (c *Config) AllAPIKeys() []string {
	keys := []string{}
	seen := map[string]bool{}

	for _, key := range append([]string{c.GeminiAPIKey}, c.GeminiAPIKeys...) {
		key = strings.TrimSpace(key)
		if key == "" || key == PlaceholderAPIKey || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	return keys
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitKeys - 쉼표로 구분된 키 목록 파싱
func splitKeys(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	keys := []string{}
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
