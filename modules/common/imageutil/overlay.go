package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG 디코더 등록
	"image/png"
	"log"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록

	"quel-imagegen-client/modules/imagegen"
)

// 마스크별 오버레이 색상 (순환 사용)
var overlayPalette = []color.RGBA{
	{R: 255, G: 64, B: 64, A: 255},
	{R: 64, G: 200, B: 64, A: 255},
	{R: 64, G: 128, B: 255, A: 255},
	{R: 255, G: 200, B: 0, A: 255},
}

const overlayAlpha = 0.45

// OverlaySegmentation - 세그멘테이션 마스크를 원본 위에 시각화 (PNG 반환).
// 마스크 픽셀값 255 = 선택 영역이며, box_2d [x, y, w, h] 영역에 맞게
// nearest neighbor 방식으로 스케일해 합성한다.
func OverlaySegmentation(baseImage []byte, masks []imagegen.SegmentationMask) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(baseImage))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base image: %w", err)
	}
	log.Printf("🔍 Overlay base image format: %s (%d mask(s))", format, len(masks))

	bounds := src.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Src)

	for i, mask := range masks {
		tint := overlayPalette[i%len(overlayPalette)]

		maskData, err := base64.StdEncoding.DecodeString(mask.Mask)
		if err != nil {
			log.Printf("⚠️  Mask %d (%s): invalid base64, skipping: %v", i+1, mask.Label, err)
			continue
		}

		maskImg, _, err := image.Decode(bytes.NewReader(maskData))
		if err != nil {
			log.Printf("⚠️  Mask %d (%s): decode failed, skipping: %v", i+1, mask.Label, err)
			continue
		}

		target := maskTargetRect(mask.Box, bounds)
		if target.Empty() {
			log.Printf("⚠️  Mask %d (%s): empty target box, skipping", i+1, mask.Label)
			continue
		}

		tintMaskedRegion(canvas, maskImg, target, tint)
		strokeRect(canvas, target, tint)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}

// maskTargetRect - box_2d를 캔버스 내 대상 영역으로 변환
// box가 없거나 잘못된 경우 전체 이미지를 대상으로 한다
func maskTargetRect(box []int, bounds image.Rectangle) image.Rectangle {
	if len(box) != 4 || box[2] <= 0 || box[3] <= 0 {
		return bounds
	}

	rect := image.Rect(box[0], box[1], box[0]+box[2], box[1]+box[3])
	return rect.Intersect(bounds)
}

// tintMaskedRegion - 마스크의 선택 픽셀(255)에 해당하는 영역만 틴트 합성.
// 마스크를 대상 영역 크기에 맞게 nearest neighbor로 샘플링한다.
func tintMaskedRegion(canvas *image.RGBA, maskImg image.Image, target image.Rectangle, tint color.RGBA) {
	maskBounds := maskImg.Bounds()
	targetWidth := target.Dx()
	targetHeight := target.Dy()

	for y := target.Min.Y; y < target.Max.Y; y++ {
		for x := target.Min.X; x < target.Max.X; x++ {
			maskX := maskBounds.Min.X + (x-target.Min.X)*maskBounds.Dx()/targetWidth
			maskY := maskBounds.Min.Y + (y-target.Min.Y)*maskBounds.Dy()/targetHeight

			// 255 = 선택 영역 (경계 안티앨리어싱 고려해 128 기준)
			r, _, _, _ := maskImg.At(maskX, maskY).RGBA()
			if r>>8 < 128 {
				continue
			}

			canvas.SetRGBA(x, y, blendPixel(canvas.RGBAAt(x, y), tint, overlayAlpha))
		}
	}
}

// blendPixel - 원본 픽셀 위에 틴트를 알파 합성
func blendPixel(base color.RGBA, tint color.RGBA, alpha float64) color.RGBA {
	blend := func(b, t uint8) uint8 {
		return uint8(float64(b)*(1-alpha) + float64(t)*alpha)
	}
	return color.RGBA{
		R: blend(base.R, tint.R),
		G: blend(base.G, tint.G),
		B: blend(base.B, tint.B),
		A: 255,
	}
}

// strokeRect - 대상 영역의 2px 테두리
func strokeRect(canvas *image.RGBA, rect image.Rectangle, c color.RGBA) {
	const thickness = 2

	for t := 0; t < thickness; t++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			setIfInside(canvas, x, rect.Min.Y+t, c)
			setIfInside(canvas, x, rect.Max.Y-1-t, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			setIfInside(canvas, rect.Min.X+t, y, c)
			setIfInside(canvas, rect.Max.X-1-t, y, c)
		}
	}
}

func setIfInside(canvas *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(canvas.Bounds()) {
		canvas.SetRGBA(x, y, c)
	}
}
