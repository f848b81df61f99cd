package imagegen

import (
	"fmt"
	"strings"
)

// validAspectRatios - 지원하는 aspect ratio 목록
var validAspectRatios = map[string]bool{
	"1:1":  true,
	"16:9": true,
	"9:16": true,
	"4:3":  true,
	"3:4":  true,
}

// ValidateGenerationRequest - 생성 요청 검증
func ValidateGenerationRequest(req *GenerationRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("prompt is required")
	}

	// 참조 이미지 검증 (base64 디코딩은 전송 시점에 수행)
	for i, img := range req.ReferenceImages {
		if strings.TrimSpace(img.Data) == "" {
			return fmt.Errorf("reference image %d has no data", i+1)
		}
	}

	return validateAspectRatio(req.AspectRatio)
}

// ValidateEditRequest - 편집 요청 검증
func ValidateEditRequest(req *EditRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	if strings.TrimSpace(req.Instruction) == "" {
		return fmt.Errorf("instruction is required")
	}

	if strings.TrimSpace(req.OriginalImage.Data) == "" {
		return fmt.Errorf("original image is required")
	}

	for i, img := range req.ReferenceImages {
		if strings.TrimSpace(img.Data) == "" {
			return fmt.Errorf("reference image %d has no data", i+1)
		}
	}

	if req.MaskImage != nil && strings.TrimSpace(req.MaskImage.Data) == "" {
		return fmt.Errorf("mask image has no data")
	}

	return validateAspectRatio(req.AspectRatio)
}

// ValidateSegmentationRequest - 세그멘테이션 요청 검증
func ValidateSegmentationRequest(req *SegmentationRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	if strings.TrimSpace(req.Image.Data) == "" {
		return fmt.Errorf("image is required")
	}

	if strings.TrimSpace(req.Query) == "" {
		return fmt.Errorf("query is required")
	}

	return nil
}

// validateAspectRatio - aspect ratio 검증 (빈 값은 프로바이더 기본값 사용)
func validateAspectRatio(ratio string) error {
	if ratio != "" && !validAspectRatios[ratio] {
		return fmt.Errorf("invalid aspect ratio: %s", ratio)
	}
	return nil
}
