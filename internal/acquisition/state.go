package acquisition

import "image"

// Source identifies where the active input image came from.
type Source string

const (
	SourceNone    Source = "none"
	SourceUpload  Source = "upload"
	SourceCapture Source = "capture"
)

// State is the per-session UI state for the two input modes. The camera
// widget starts hidden; upload and camera are mutually exclusive.
type State struct {
	CameraVisible bool `json:"camera_visible"`
}

// FileUploaded hides the camera widget. Upload always wins.
func (s State) FileUploaded() State {
	s.CameraVisible = false
	return s
}

// CameraOpened shows the camera widget.
func (s State) CameraOpened() State {
	s.CameraVisible = true
	return s
}

// PhotoCaptured hides the camera widget on the same cycle, so it does not
// remain open after a capture.
func (s State) PhotoCaptured() State {
	s.CameraVisible = false
	return s
}

// Input is the resolved active input for one render cycle: a decoded image
// for uploads, raw encoded bytes for captures, or neither.
type Input struct {
	Source  Source
	Image   image.Image
	Capture []byte
}

// Resolve picks the active input by priority: upload over capture over none.
// Both present at once is legal leftover widget state; upload wins by rule.
func Resolve(upload image.Image, capture []byte) Input {
	if upload != nil {
		return Input{Source: SourceUpload, Image: upload}
	}
	if len(capture) > 0 {
		return Input{Source: SourceCapture, Capture: capture}
	}
	return Input{Source: SourceNone}
}
