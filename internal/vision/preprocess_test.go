package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func assertValidTensor(t *testing.T, tensor []float32) {
	t.Helper()
	require.Len(t, tensor, TensorLen)
	for i, v := range tensor {
		if v < 0 || v > 255 {
			t.Fatalf("tensor[%d] = %v outside [0,255]", i, v)
		}
	}
}

func TestFromImage_TensorShapeAndRange(t *testing.T) {
	tensor, err := FromImage(testImage(640, 480))
	require.NoError(t, err)
	assertValidTensor(t, tensor)
}

func TestFromImage_NonSquareInputGetsDirectResize(t *testing.T) {
	// Non-proportional resize: wildly rectangular inputs still fill 224x224.
	tensor, err := FromImage(testImage(1000, 50))
	require.NoError(t, err)
	assertValidTensor(t, tensor)
}

func TestFromImage_TinyInputUpscales(t *testing.T) {
	tensor, err := FromImage(testImage(8, 8))
	require.NoError(t, err)
	assertValidTensor(t, tensor)
}

func TestFromImage_GrayscaleConvertsToRGB(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 300, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			gray.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	tensor, err := FromImage(gray)
	require.NoError(t, err)
	assertValidTensor(t, tensor)
}

func TestFromImage_NilImage(t *testing.T) {
	tensor, err := FromImage(nil)
	assert.Nil(t, tensor)
	assert.True(t, apperr.IsCode(err, apperr.CodeDecodeError))
}

func TestFromBytes_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(320, 240)))

	tensor, err := FromBytes(buf.Bytes())
	require.NoError(t, err)
	assertValidTensor(t, tensor)
}

func TestFromBytes_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(320, 240), nil))

	tensor, err := FromBytes(buf.Bytes())
	require.NoError(t, err)
	assertValidTensor(t, tensor)
}

func TestFromBytes_Undecodable(t *testing.T) {
	tensor, err := FromBytes([]byte("definitely not an image"))
	assert.Nil(t, tensor)
	assert.True(t, apperr.IsCode(err, apperr.CodeDecodeError))
}

func TestFromBytes_Empty(t *testing.T) {
	tensor, err := FromBytes(nil)
	assert.Nil(t, tensor)
	assert.True(t, apperr.IsCode(err, apperr.CodeDecodeError))
}

func TestFromImage_ChannelLastLayout(t *testing.T) {
	// Uniform red image: every pixel triple must read (255, 0, 0).
	img := image.NewRGBA(image.Rect(0, 0, 224, 224))
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	tensor, err := FromImage(img)
	require.NoError(t, err)

	for i := 0; i < TensorLen; i += Channels {
		if tensor[i] != 255 || tensor[i+1] != 0 || tensor[i+2] != 0 {
			t.Fatalf("pixel %d = (%v,%v,%v), want (255,0,0)", i/Channels, tensor[i], tensor[i+1], tensor[i+2])
		}
	}
}
