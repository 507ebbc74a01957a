package model

// NumClasses is the size of the model's output probability vector.
const NumClasses = 100

// Options describes the engine's interface to the graph: where the weights
// live and how the input/output tensors are named and shaped.
type Options struct {
	ModelPath  string
	InputName  string
	OutputName string
	// InputShape is NHWC: (batch, height, width, channels).
	InputShape []int64
	// DeterminismCheck runs a fixed tensor through the session twice at
	// construction and fails if the outputs differ. Catches augmentation
	// layers that are still active at inference time.
	DeterminismCheck bool
	// LibraryPath overrides the ONNX Runtime shared library location.
	LibraryPath string
}

// Predictor is the inference surface the handler layer depends on.
type Predictor interface {
	Predict(tensor []float32) ([]float32, error)
}

// Argmax returns the index and value of the maximum probability.
func Argmax(probs []float32) (int, float32) {
	maxIdx := 0
	maxVal := probs[0]
	for i, val := range probs {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}
	return maxIdx, maxVal
}
