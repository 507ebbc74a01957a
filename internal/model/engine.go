package model

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
)

// Engine wraps an ONNX Runtime session built once per process. The input and
// output tensors are pre-allocated and shared across calls, so Predict runs
// under a mutex.
type Engine struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	modelPath    string
	mu           sync.Mutex
}

// NewEngine builds the engine from a weights file. A missing file maps to
// NOT_FOUND, a session the runtime rejects (graph and declared tensor names
// or shapes disagree) maps to STRUCTURE_MISMATCH. Either way the engine is
// unusable and prediction must not proceed.
func NewEngine(opts Options) (*Engine, error) {
	if _, err := os.Stat(opts.ModelPath); err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NewNotFoundError(opts.ModelPath)
		}
		return nil, apperr.NewUnexpectedError(err)
	}

	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, apperr.NewUnexpectedError(fmt.Errorf("failed to initialize ONNX environment: %w", err))
	}

	inputShape := ort.NewShape(opts.InputShape...)
	outputShape := ort.NewShape(1, NumClasses)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, apperr.NewUnexpectedError(fmt.Errorf("failed to create input tensor: %w", err))
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, apperr.NewUnexpectedError(fmt.Errorf("failed to create output tensor: %w", err))
	}

	session, err := ort.NewAdvancedSession(opts.ModelPath,
		[]string{opts.InputName}, []string{opts.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, apperr.NewStructureMismatchError(err)
	}

	engine := &Engine{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		modelPath:    opts.ModelPath,
	}

	if opts.DeterminismCheck {
		if err := engine.verifyDeterminism(); err != nil {
			engine.Close()
			return nil, err
		}
	}

	return engine, nil
}

// verifyDeterminism runs a fixed mid-gray tensor through the session twice
// and compares outputs elementwise. Augmentation layers baked into the graph
// must behave as identity transforms at inference time; a difference here
// means they do not.
func (e *Engine) verifyDeterminism() error {
	probe := make([]float32, len(e.inputTensor.GetData()))
	for i := range probe {
		probe[i] = 127
	}

	first, err := e.Predict(probe)
	if err != nil {
		return err
	}
	second, err := e.Predict(probe)
	if err != nil {
		return err
	}
	for i := range first {
		if first[i] != second[i] {
			return apperr.NewStructureMismatchError(
				fmt.Errorf("non-deterministic output at index %d: %v vs %v", i, first[i], second[i]))
		}
	}
	log.Info().Msg("Model determinism verified")
	return nil
}

// Predict copies inputData into the shared input tensor, runs the session
// and returns a copy of the validated probability vector.
func (e *Engine) Predict(inputData []float32) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	input := e.inputTensor.GetData()
	if len(inputData) != len(input) {
		return nil, apperr.NewUnexpectedError(
			fmt.Errorf("expected %d input values, got %d", len(input), len(inputData)))
	}
	copy(input, inputData)

	if err := e.session.Run(); err != nil {
		return nil, apperr.NewUnexpectedError(fmt.Errorf("inference failed: %w", err))
	}

	output := e.outputTensor.GetData()
	probs := make([]float32, len(output))
	copy(probs, output)

	if err := validateProbabilities(probs); err != nil {
		return nil, err
	}
	return probs, nil
}

// ModelPath returns the weights file the engine was built from.
func (e *Engine) ModelPath() string {
	return e.modelPath
}

func (e *Engine) Close() {
	if e.inputTensor != nil {
		e.inputTensor.Destroy()
	}
	if e.outputTensor != nil {
		e.outputTensor.Destroy()
	}
	if e.session != nil {
		e.session.Destroy()
	}
	ort.DestroyEnvironment()
}

// validateProbabilities checks the output is a usable distribution: right
// length, finite, non-negative.
func validateProbabilities(probs []float32) error {
	if len(probs) != NumClasses {
		return apperr.NewUnexpectedError(
			fmt.Errorf("expected %d output values, got %d", NumClasses, len(probs)))
	}
	for i, p := range probs {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			return apperr.NewUnexpectedError(fmt.Errorf("non-finite probability at index %d", i))
		}
		if p < 0 {
			return apperr.NewUnexpectedError(fmt.Errorf("negative probability at index %d", i))
		}
	}
	return nil
}
