package imagegen

// ImageInput - 입력 이미지 데이터
type ImageInput struct {
	Data     string `json:"data"`      // base64 인코딩된 이미지 데이터
	MimeType string `json:"mime_type"` // image/png, image/jpeg 등 (비어있으면 image/png)
}

// GenerationRequest - 이미지 생성 요청
type GenerationRequest struct {
	Prompt          string       `json:"prompt"`
	ReferenceImages []ImageInput `json:"reference_images,omitempty"` // 참조 이미지 (순서 유지)
	Temperature     *float32     `json:"temperature,omitempty"`      // nil이면 프로바이더 기본값
	Seed            *int32       `json:"seed,omitempty"`             // nil이면 랜덤
	AspectRatio     string       `json:"aspect_ratio,omitempty"`     // "1:1", "16:9" 등 (옵션)
}

// EditRequest - 이미지 편집(인페인트) 요청
type EditRequest struct {
	Instruction     string       `json:"instruction"`
	OriginalImage   ImageInput   `json:"original_image"`
	ReferenceImages []ImageInput `json:"reference_images,omitempty"`
	MaskImage       *ImageInput  `json:"mask_image,omitempty"` // 흰색(255) 영역만 변경
	Temperature     *float32     `json:"temperature,omitempty"`
	Seed            *int32       `json:"seed,omitempty"`
	AspectRatio     string       `json:"aspect_ratio,omitempty"`
}

// SegmentationRequest - 이미지 세그멘테이션 요청
type SegmentationRequest struct {
	Image ImageInput `json:"image"`
	Query string     `json:"query"` // 분할 대상 영역 설명
}

// GeneratedImage - 생성된 이미지 한 장
type GeneratedImage struct {
	Data     string `json:"data"`      // base64 인코딩된 이미지 데이터
	MimeType string `json:"mime_type"` // 프로바이더가 반환한 MIME 타입
}

// SegmentationMask - 세그멘테이션 마스크 한 개
// Mask는 base64 PNG이며 픽셀값 255 = 선택 영역, 0 = 배경
type SegmentationMask struct {
	Label string `json:"label"`
	Box   []int  `json:"box_2d"` // [x, y, width, height]
	Mask  string `json:"mask"`
}

// SegmentationResult - 세그멘테이션 응답 전체
type SegmentationResult struct {
	Masks []SegmentationMask `json:"masks"`
}
