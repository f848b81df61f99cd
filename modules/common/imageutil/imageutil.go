package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"quel-imagegen-client/modules/imagegen"
)

const transparentPixelBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/x8AAwMB/6X+ZQAAAABJRU5ErkJggg=="

var transparentPixelBytes []byte

func init() {
	data, err := base64.StdEncoding.DecodeString(transparentPixelBase64)
	if err != nil {
		log.Printf("⚠️ Failed to decode placeholder pixel: %v", err)
		return
	}
	transparentPixelBytes = data
}

// PlaceholderBase64 returns a 1x1 transparent PNG in base64 for slots that have no source image.
func PlaceholderBase64() string {
	return transparentPixelBase64
}

// PlaceholderBytes returns a copy of the transparent PNG bytes.
func PlaceholderBytes() []byte {
	if len(transparentPixelBytes) == 0 {
		return []byte{}
	}
	out := make([]byte, len(transparentPixelBytes))
	copy(out, transparentPixelBytes)
	return out
}

// ExtractBase64Data - data URL에서 base64 페이로드만 추출
func ExtractBase64Data(dataURL string) string {
	if strings.Contains(dataURL, ",") {
		parts := strings.SplitN(dataURL, ",", 2)
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return dataURL
}

// ExtractMimeType - data URL에서 MIME 타입 추출 (없으면 image/png)
func ExtractMimeType(dataURL string) string {
	if strings.HasPrefix(dataURL, "data:") {
		parts := strings.SplitN(dataURL, ";", 2)
		if len(parts) >= 1 {
			return strings.TrimPrefix(parts[0], "data:")
		}
	}
	return "image/png"
}

// ImageInputFromBytes - 바이너리 이미지를 ImageInput으로 변환 (MIME 미지정 시 자동 감지)
func ImageInputFromBytes(data []byte, mimeType string) imagegen.ImageInput {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return imagegen.ImageInput{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
}

// ImageInputFromFile - 파일을 읽어 ImageInput으로 변환
func ImageInputFromFile(path string) (imagegen.ImageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imagegen.ImageInput{}, fmt.Errorf("failed to read image file: %w", err)
	}
	return ImageInputFromBytes(data, ""), nil
}

// ImageInputFromDataURL - 브라우저 data URL을 ImageInput으로 변환
func ImageInputFromDataURL(dataURL string) imagegen.ImageInput {
	return imagegen.ImageInput{
		Data:     ExtractBase64Data(dataURL),
		MimeType: ExtractMimeType(dataURL),
	}
}

// ConvertPNGToWebP - PNG 바이너리를 WebP로 변환
func ConvertPNGToWebP(pngData []byte, quality float32) ([]byte, error) {
	log.Printf("🔄 Converting PNG to WebP (quality: %.1f)", quality)

	// PNG 디코딩
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}

	// WebP 인코딩
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()

	log.Printf("✅ PNG converted to WebP: %d bytes → %d bytes (%.1f%% reduction)",
		len(pngData), len(webpData),
		float64(len(pngData)-len(webpData))/float64(len(pngData))*100)

	return webpData, nil
}

// SaveImages - 생성된 이미지들을 디렉토리에 저장, 저장된 경로 목록 반환
func SaveImages(dir, prefix string, images []imagegen.GeneratedImage) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images to save")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// 파일명 충돌 방지용 식별자
	runID := uuid.New().String()[:8]

	saved := make([]string, 0, len(images))
	for i, img := range images {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return saved, fmt.Errorf("failed to decode image %d: %w", i+1, err)
		}

		fileName := fmt.Sprintf("%s_%s_%d%s", prefix, runID, i+1, extensionFromMimeType(img.MimeType))
		filePath := filepath.Join(dir, fileName)

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return saved, fmt.Errorf("failed to write image %d: %w", i+1, err)
		}

		log.Printf("💾 Saved image: %s (%d bytes)", filePath, len(data))
		saved = append(saved, filePath)
	}

	return saved, nil
}

// SaveImagesAsWebP - PNG 결과물을 WebP로 변환해 저장 (PNG가 아니면 원본 그대로 저장)
func SaveImagesAsWebP(dir, prefix string, images []imagegen.GeneratedImage, quality float32) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images to save")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.New().String()[:8]

	saved := make([]string, 0, len(images))
	for i, img := range images {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return saved, fmt.Errorf("failed to decode image %d: %w", i+1, err)
		}

		ext := extensionFromMimeType(img.MimeType)
		if img.MimeType == "image/png" {
			if webpData, err := ConvertPNGToWebP(data, quality); err == nil {
				data = webpData
				ext = ".webp"
			} else {
				log.Printf("⚠️ WebP conversion failed, keeping PNG: %v", err)
			}
		}

		fileName := fmt.Sprintf("%s_%s_%d%s", prefix, runID, i+1, ext)
		filePath := filepath.Join(dir, fileName)

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return saved, fmt.Errorf("failed to write image %d: %w", i+1, err)
		}

		log.Printf("💾 Saved image: %s (%d bytes)", filePath, len(data))
		saved = append(saved, filePath)
	}

	return saved, nil
}

// extensionFromMimeType - MIME 타입에 맞는 파일 확장자
func extensionFromMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
