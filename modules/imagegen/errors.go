package imagegen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode - 정규화된 클라이언트 에러 코드
type ErrorCode string

const (
	ErrRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrAPIError          ErrorCode = "API_ERROR"
	ErrGenericError      ErrorCode = "GENERIC_ERROR"
	ErrUnknownError      ErrorCode = "UNKNOWN_ERROR"
	ErrNoResponseText    ErrorCode = "NO_RESPONSE_TEXT"
)

const (
	rateLimitMessage = "Rate limit exceeded. Please wait a moment and try again, or upgrade your API plan for a higher quota."
	unknownMessage   = "Failed to generate image. Please try again."
	noTextMessage    = "No response text received from the model"
)

// Error - 호출자에게 전달되는 정규화된 에러.
// 프로바이더의 원본 에러는 Cause로 보존된다 (Unwrap 가능).
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetErrorCode - 에러 체인에서 정규화 코드 추출 (없으면 빈 문자열)
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Gemini API 에러 본문의 알려진 형태들.
// 같은 429가 error.code / error.error.code / 최상위 code 세 가지 위치로
// 내려오므로, 알려진 형태 전부를 명시적으로 매칭한다.
type providerErrorDetail struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Status  string               `json:"status"`
	Error   *providerErrorDetail `json:"error"` // 중첩 변형 {error:{error:{...}}}
}

type providerErrorEnvelope struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Error   *providerErrorDetail `json:"error"`
}

// normalizeProviderError - 원격 호출 에러를 정규화 에러로 변환.
// 우선순위: 429/quota → RateLimitExceeded, 중첩 메시지 → ApiError,
// 일반 메시지 → GenericError, 그 외 → UnknownError
func normalizeProviderError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if msg == "" {
		return &Error{Code: ErrUnknownError, Message: unknownMessage, Cause: err}
	}

	envelope := parseProviderError(msg)

	if isRateLimitShape(envelope, msg) {
		return &Error{Code: ErrRateLimitExceeded, Message: rateLimitMessage, Cause: err}
	}

	if nested := nestedProviderMessage(envelope); nested != "" {
		return &Error{Code: ErrAPIError, Message: nested, Cause: err}
	}

	return &Error{Code: ErrGenericError, Message: msg, Cause: err}
}

// parseProviderError - 에러 메시지에 포함된 JSON 본문 파싱 (없으면 nil)
func parseProviderError(msg string) *providerErrorEnvelope {
	start := strings.Index(msg, "{")
	end := strings.LastIndex(msg, "}")
	if start < 0 || end <= start {
		return nil
	}

	var envelope providerErrorEnvelope
	if err := json.Unmarshal([]byte(msg[start:end+1]), &envelope); err != nil {
		return nil
	}
	return &envelope
}

// isRateLimitShape - 알려진 형태 중 하나라도 429를 담고 있거나
// 메시지에 quota/rate limit 패턴이 있는지 확인
func isRateLimitShape(envelope *providerErrorEnvelope, msg string) bool {
	if envelope != nil {
		if envelope.Code == 429 {
			return true
		}
		if envelope.Error != nil {
			if envelope.Error.Code == 429 {
				return true
			}
			if envelope.Error.Error != nil && envelope.Error.Error.Code == 429 {
				return true
			}
		}
	}

	lower := strings.ToLower(msg)
	return strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(msg, "429")
}

// nestedProviderMessage - 프로바이더가 보고한 에러 메시지 (두 단계 중첩까지 확인)
func nestedProviderMessage(envelope *providerErrorEnvelope) string {
	if envelope == nil || envelope.Error == nil {
		return ""
	}
	if envelope.Error.Error != nil && envelope.Error.Error.Message != "" {
		return envelope.Error.Error.Message
	}
	return envelope.Error.Message
}
