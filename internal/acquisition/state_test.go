package acquisition

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_InitiallyHidden(t *testing.T) {
	state := State{}
	assert.False(t, state.CameraVisible)
}

func TestState_CameraOpenedShowsWidget(t *testing.T) {
	state := State{}.CameraOpened()
	assert.True(t, state.CameraVisible)
}

func TestState_FileUploadedHidesCamera(t *testing.T) {
	state := State{}.CameraOpened().FileUploaded()
	assert.False(t, state.CameraVisible)
}

func TestState_PhotoCapturedHidesCameraSameCycle(t *testing.T) {
	state := State{}.CameraOpened().PhotoCaptured()
	assert.False(t, state.CameraVisible)
}

func TestResolve_NoInput(t *testing.T) {
	input := Resolve(nil, nil)
	assert.Equal(t, SourceNone, input.Source)
	assert.Nil(t, input.Image)
	assert.Nil(t, input.Capture)
}

func TestResolve_UploadOnly(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	input := Resolve(img, nil)
	assert.Equal(t, SourceUpload, input.Source)
	assert.Equal(t, img, input.Image)
}

func TestResolve_CaptureOnly(t *testing.T) {
	capture := []byte{0x89, 0x50, 0x4e, 0x47}
	input := Resolve(nil, capture)
	assert.Equal(t, SourceCapture, input.Source)
	assert.Equal(t, capture, input.Capture)
}

func TestResolve_UploadWinsOverStaleCapture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	capture := []byte{0x01, 0x02}
	input := Resolve(img, capture)
	assert.Equal(t, SourceUpload, input.Source)
	assert.Equal(t, img, input.Image)
	assert.Nil(t, input.Capture)
}
