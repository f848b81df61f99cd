package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"google.golang.org/genai"

	"quel-imagegen-client/modules/common/config"
)

// DefaultModel - 이미지 생성 지원 기본 모델
const DefaultModel = "gemini-2.5-flash-image"

// Service - Gemini 이미지 생성/편집/세그멘테이션 클라이언트
type Service struct {
	genaiClient *genai.Client
	model       string
}

// NewService - 설정으로부터 클라이언트 생성
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.GeminiModel
	if model == "" {
		model = DefaultModel
	}

	log.Printf("✅ [ImageGen] Service initialized (model: %s)", model)
	return &Service{
		genaiClient: genaiClient,
		model:       model,
	}, nil
}

// NewServiceWithClient - 이미 생성된 genai 클라이언트 주입용
func NewServiceWithClient(client *genai.Client, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		genaiClient: client,
		model:       model,
	}
}

// Model - 사용 중인 모델 식별자
func (s *Service) Model() string {
	return s.model
}

// GenerateImage - 프롬프트 기반 이미지 생성.
// 콘텐츠 순서: [프롬프트, 참조 이미지들(입력 순서)].
// 첫 번째 candidate의 인라인 이미지를 순서대로 수집해 반환한다 (0장이어도 에러 아님).
func (s *Service) GenerateImage(ctx context.Context, req *GenerationRequest) ([]GeneratedImage, error) {
	if err := ValidateGenerationRequest(req); err != nil {
		return nil, err
	}

	log.Printf("🎨 [ImageGen] Generating image - references: %d, prompt: %s",
		len(req.ReferenceImages), truncateString(req.Prompt, 50))

	contents, err := buildGenerateContents(req)
	if err != nil {
		return nil, err
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		s.model,
		contents,
		buildGenerateConfig(req.Temperature, req.Seed, req.AspectRatio),
	)
	if err != nil {
		log.Printf("❌ [ImageGen] Generation failed: %v", err)
		return nil, normalizeProviderError(err)
	}

	images := extractInlineImages(result)
	log.Printf("✅ [ImageGen] Generation completed: %d image(s)", len(images))
	return images, nil
}

// EditImage - 원본 이미지 편집(인페인트).
// 콘텐츠 순서: [편집 지시문, 원본, 참조 이미지들(입력 순서), 마스크(있으면 마지막)].
func (s *Service) EditImage(ctx context.Context, req *EditRequest) ([]GeneratedImage, error) {
	if err := ValidateEditRequest(req); err != nil {
		return nil, err
	}

	log.Printf("🎨 [ImageGen] Editing image - references: %d, mask: %v, instruction: %s",
		len(req.ReferenceImages), req.MaskImage != nil, truncateString(req.Instruction, 50))

	contents, err := buildEditContents(req)
	if err != nil {
		return nil, err
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		s.model,
		contents,
		buildGenerateConfig(req.Temperature, req.Seed, req.AspectRatio),
	)
	if err != nil {
		log.Printf("❌ [ImageGen] Edit failed: %v", err)
		return nil, normalizeProviderError(err)
	}

	images := extractInlineImages(result)
	log.Printf("✅ [ImageGen] Edit completed: %d image(s)", len(images))
	return images, nil
}

// SegmentImage - 쿼리로 지정한 영역의 세그멘테이션 마스크 요청.
// 첫 번째 candidate의 첫 텍스트 파트를 JSON으로 파싱해 반환한다.
// 스키마 검증은 하지 않는다 (파싱 성공이 전부, JSON 에러는 그대로 전파).
func (s *Service) SegmentImage(ctx context.Context, req *SegmentationRequest) (*SegmentationResult, error) {
	if err := ValidateSegmentationRequest(req); err != nil {
		return nil, err
	}

	log.Printf("🔍 [ImageGen] Segmenting image - query: %s", truncateString(req.Query, 50))

	contents, err := buildSegmentContents(req)
	if err != nil {
		return nil, err
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		s.model,
		contents,
		&genai.GenerateContentConfig{
			Temperature: floatPtr(0.3), // 분석은 일관성 있게
		},
	)
	if err != nil {
		log.Printf("❌ [ImageGen] Segmentation failed: %v", err)
		return nil, normalizeProviderError(err)
	}

	text, ok := firstResponseText(result)
	if !ok {
		log.Printf("❌ [ImageGen] No text part in segmentation response")
		return nil, &Error{Code: ErrNoResponseText, Message: noTextMessage}
	}

	var segmentation SegmentationResult
	if err := json.Unmarshal([]byte(text), &segmentation); err != nil {
		log.Printf("❌ [ImageGen] Failed to parse segmentation JSON: %v", err)
		return nil, fmt.Errorf("failed to parse segmentation response: %w", err)
	}

	log.Printf("✅ [ImageGen] Segmentation completed: %d mask(s)", len(segmentation.Masks))
	return &segmentation, nil
}

// buildGenerateContents - 생성 요청의 콘텐츠 목록 구성
// 순서: 프롬프트 텍스트 → 참조 이미지들 (입력 순서 유지)
func buildGenerateContents(req *GenerationRequest) ([]*genai.Content, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(req.Prompt),
	}

	for i, img := range req.ReferenceImages {
		part, err := inlineImagePart(img)
		if err != nil {
			return nil, fmt.Errorf("reference image %d: %w", i+1, err)
		}
		parts = append(parts, part)
	}

	return []*genai.Content{{Parts: parts}}, nil
}

// buildEditContents - 편집 요청의 콘텐츠 목록 구성
// 순서: 지시문 → 원본 → 참조 이미지들 → 마스크 (있으면 반드시 마지막)
func buildEditContents(req *EditRequest) ([]*genai.Content, error) {
	prompt := BuildEditPrompt(req.Instruction, req.MaskImage != nil)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}

	original, err := inlineImagePart(req.OriginalImage)
	if err != nil {
		return nil, fmt.Errorf("original image: %w", err)
	}
	parts = append(parts, original)

	for i, img := range req.ReferenceImages {
		part, err := inlineImagePart(img)
		if err != nil {
			return nil, fmt.Errorf("reference image %d: %w", i+1, err)
		}
		parts = append(parts, part)
	}

	if req.MaskImage != nil {
		maskData, err := base64.StdEncoding.DecodeString(req.MaskImage.Data)
		if err != nil {
			return nil, fmt.Errorf("mask image: invalid base64 data: %w", err)
		}
		// 마스크는 PNG
		parts = append(parts, genai.NewPartFromBytes(maskData, "image/png"))
	}

	return []*genai.Content{{Parts: parts}}, nil
}

// buildSegmentContents - 세그멘테이션 요청의 콘텐츠 목록 구성
// 순서: 지시문 → 대상 이미지
func buildSegmentContents(req *SegmentationRequest) ([]*genai.Content, error) {
	image, err := inlineImagePart(req.Image)
	if err != nil {
		return nil, fmt.Errorf("segmentation image: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(BuildSegmentationPrompt(req.Query)),
		image,
	}

	return []*genai.Content{{Parts: parts}}, nil
}

// inlineImagePart - base64 이미지 입력을 인라인 파트로 변환
func inlineImagePart(img ImageInput) (*genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}

	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}

	return genai.NewPartFromBytes(data, mimeType), nil
}

// buildGenerateConfig - 생성 설정 구성 (미지정 값은 프로바이더 기본값)
func buildGenerateConfig(temperature *float32, seed *int32, aspectRatio string) *genai.GenerateContentConfig {
	generateConfig := &genai.GenerateContentConfig{
		Temperature: temperature,
		Seed:        seed,
	}

	if aspectRatio != "" {
		generateConfig.ImageConfig = &genai.ImageConfig{
			AspectRatio: aspectRatio,
		}
	}

	return generateConfig
}

// extractInlineImages - 첫 번째 candidate에서 인라인 이미지를 순서대로 수집
func extractInlineImages(result *genai.GenerateContentResponse) []GeneratedImage {
	images := []GeneratedImage{}

	if result == nil || len(result.Candidates) == 0 {
		return images
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil {
		return images
	}

	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			images = append(images, GeneratedImage{
				Data:     base64.StdEncoding.EncodeToString(part.InlineData.Data),
				MimeType: part.InlineData.MIMEType,
			})
		}
	}

	return images
}

// firstResponseText - 첫 번째 candidate의 첫 텍스트 파트
func firstResponseText(result *genai.GenerateContentResponse) (string, bool) {
	if result == nil || len(result.Candidates) == 0 {
		return "", false
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil {
		return "", false
	}

	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			return part.Text, true
		}
	}

	return "", false
}

// Helper functions
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
