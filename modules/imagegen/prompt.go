package imagegen

import "fmt"

// 편집 지시 프롬프트 - 고정 프레이밍 템플릿
const editPromptTemplate = `[PHOTO EDITOR'S TASK]
You are a professional photo editor. Apply the requested change to the provided image.

EDIT REQUEST: %s

EDITING RULES:
- Preserve the original lighting, perspective, and composition
- Blend the edit naturally and professionally into the scene
- Keep everything outside the scope of the request exactly the same`

// 마스크가 있을 때만 덧붙는 고정 절
const maskHandlingClause = `

MASK HANDLING:
- The final input image is a mask
- Restrict changes to pixels where the mask is white (255) only
- Leave every other pixel completely unchanged
- Respect the mask boundaries precisely and blend seamlessly at the edges`

// 세그멘테이션 지시 프롬프트 - JSON 출력 형태를 명시
const segmentationPromptTemplate = `[IMAGE SEGMENTATION TASK]
Analyze the provided image and segment the region described below.

TARGET: %s

OUTPUT FORMAT:
Return ONLY a JSON object of this exact shape, with no markdown fences and no extra text:
{"masks": [{"label": "<short description>", "box_2d": [x, y, width, height], "mask": "<base64 encoded PNG>"}]}

RULES:
- Include masks only for the requested object or region
- "box_2d" is the bounding box as [x, y, width, height] in pixels
- "mask" is a base64-encoded PNG where pixel value 255 marks the selected region and 0 marks the background`

// BuildEditPrompt - 편집 지시문 생성 (마스크 유무에 따라 절 추가)
func BuildEditPrompt(instruction string, hasMask bool) string {
	prompt := fmt.Sprintf(editPromptTemplate, instruction)
	if hasMask {
		prompt += maskHandlingClause
	}
	return prompt
}

// BuildSegmentationPrompt - 세그멘테이션 지시문 생성
func BuildSegmentationPrompt(query string) string {
	return fmt.Sprintf(segmentationPromptTemplate, query)
}
