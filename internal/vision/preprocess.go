package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/nfnt/resize"
)

const (
	// ImageSize is the model's input edge length.
	ImageSize = 224
	// Channels is the model's input channel count (RGB).
	Channels = 3
	// TensorLen is the element count of one input tensor, batch included.
	TensorLen = 1 * ImageSize * ImageSize * Channels
)

// FromBytes decodes raw encoded image bytes (JPEG, PNG or WebP) and
// preprocesses them into a model input tensor.
func FromBytes(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.NewDecodeError(err)
	}
	return FromImage(img)
}

// FromImage converts a decoded image into the model input tensor: direct
// (non-proportional) resize to 224x224, RGB channel-last float32 layout,
// values kept in [0,255]. The model graph owns any further normalization.
func FromImage(img image.Image) ([]float32, error) {
	if img == nil {
		return nil, apperr.NewDecodeError(fmt.Errorf("nil image"))
	}

	resized := resize.Resize(ImageSize, ImageSize, img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width != ImageSize || height != ImageSize {
		return nil, apperr.NewDecodeError(fmt.Errorf("resize produced %dx%d, want %dx%d", width, height, ImageSize, ImageSize))
	}

	inputData := make([]float32, TensorLen)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			// RGBA returns 16-bit channels; shift down to [0,255].
			pixelIndex := (y*width + x) * Channels
			inputData[pixelIndex] = float32(r >> 8)
			inputData[pixelIndex+1] = float32(g >> 8)
			inputData[pixelIndex+2] = float32(b >> 8)
		}
	}

	return inputData, nil
}
