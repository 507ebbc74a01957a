package handlers

// StatusResponse tells the UI whether prediction is available.
type StatusResponse struct {
	Operational        bool   `json:"operational"`
	ModelLoaded        bool   `json:"model_loaded"`
	LabelsLoaded       bool   `json:"labels_loaded"`
	ModelName          string `json:"model_name"`
	ClassCount         int    `json:"class_count"`
	ClassCountMismatch bool   `json:"class_count_mismatch"`
}

// PredictionResponse is the formatted top-1 result for one input image.
type PredictionResponse struct {
	Class          string  `json:"class"`
	Label          string  `json:"label"`
	Confidence     float64 `json:"confidence"`
	ConfidenceText string  `json:"confidence_text"`
	Progress       int     `json:"progress"`
	Source         string  `json:"source"`
}

// progressValue is the progress-bar position: integer truncation of the
// confidence percentage, clamped to [0,100].
func progressValue(confidence float64) int {
	p := int(confidence)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
