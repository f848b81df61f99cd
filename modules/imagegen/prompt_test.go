package imagegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEditPrompt(t *testing.T) {
	t.Parallel()

	t.Run("contains instruction", func(t *testing.T) {
		prompt := BuildEditPrompt("replace the sky with a sunset", false)
		assert.Contains(t, prompt, "replace the sky with a sunset")
	})

	t.Run("contains fixed framing", func(t *testing.T) {
		prompt := BuildEditPrompt("remove the car", false)
		assert.Contains(t, prompt, "lighting, perspective, and composition")
		assert.Contains(t, prompt, "naturally and professionally")
	})

	t.Run("mask clause present iff mask supplied", func(t *testing.T) {
		withMask := BuildEditPrompt("brighten the face", true)
		withoutMask := BuildEditPrompt("brighten the face", false)

		assert.Contains(t, withMask, "mask is white (255)")
		assert.Contains(t, withMask, "blend seamlessly at the edges")
		assert.NotContains(t, withoutMask, "mask is white (255)")
		assert.NotContains(t, withoutMask, "MASK HANDLING")
	})

	t.Run("mask clause appended after framing", func(t *testing.T) {
		prompt := BuildEditPrompt("swap the background", true)
		framingIdx := strings.Index(prompt, "EDITING RULES")
		maskIdx := strings.Index(prompt, "MASK HANDLING")
		require.GreaterOrEqual(t, framingIdx, 0)
		require.Greater(t, maskIdx, framingIdx)
	})
}

func TestBuildSegmentationPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildSegmentationPrompt("the red umbrella")

	assert.Contains(t, prompt, "the red umbrella")
	assert.Contains(t, prompt, `"masks"`)
	assert.Contains(t, prompt, "box_2d")
	assert.Contains(t, prompt, "255")
	assert.Contains(t, prompt, "base64")
}
