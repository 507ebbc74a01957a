package handlers

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/foodlens-ai/foodlens/internal/acquisition"
	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/foodlens-ai/foodlens/internal/labels"
	"github.com/foodlens-ai/foodlens/internal/model"
	"github.com/foodlens-ai/foodlens/internal/session"
	"github.com/foodlens-ai/foodlens/internal/vision"
	"github.com/foodlens-ai/foodlens/pkg/metric"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps the multipart form memory per request.
const maxUploadBytes = 10 << 20

const sessionCookie = "fl_session"

type Handler struct {
	predictor model.Predictor
	registry  *labels.Registry
	sessions  *session.Store
	modelName string
}

// New builds the handler layer. predictor or registry may be nil when
// startup failed; the handler then serves the blocking warning instead of
// predictions until the process restarts.
func New(predictor model.Predictor, registry *labels.Registry, sessions *session.Store, modelName string) *Handler {
	return &Handler{
		predictor: predictor,
		registry:  registry,
		sessions:  sessions,
		modelName: modelName,
	}
}

func (h *Handler) operational() bool {
	return h.predictor != nil && h.registry != nil
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Status reports whether the engine and registry initialized, so the UI can
// render a blocking warning when prediction is unavailable.
func (h *Handler) Status(c *gin.Context) {
	resp := StatusResponse{
		Operational:  h.operational(),
		ModelLoaded:  h.predictor != nil,
		LabelsLoaded: h.registry != nil,
		ModelName:    h.modelName,
	}
	if h.registry != nil {
		resp.ClassCount = h.registry.Count()
		resp.ClassCountMismatch = h.registry.CountMismatch()
	}
	c.JSON(http.StatusOK, resp)
}

// UIState returns the camera-visibility state for the caller's session.
func (h *Handler) UIState(c *gin.Context) {
	sessionID := h.sessionID(c)
	c.JSON(http.StatusOK, h.sessions.Get(sessionID))
}

// CameraOpen shows the camera widget for the caller's session.
func (h *Handler) CameraOpen(c *gin.Context) {
	sessionID := h.sessionID(c)
	state := h.sessions.Get(sessionID).CameraOpened()
	h.sessions.Put(sessionID, state)
	c.JSON(http.StatusOK, state)
}

// Predict runs the full pipeline for one interaction: resolve the active
// input, update the session's camera-visibility state, preprocess, infer and
// format the top-1 result.
func (h *Handler) Predict(c *gin.Context) {
	if !h.operational() {
		h.fail(c, acquisition.SourceNone, apperr.NewNotOperationalError())
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		h.fail(c, acquisition.SourceNone, apperr.NewDecodeError(fmt.Errorf("failed to parse multipart form: %w", err)))
		return
	}

	sessionID := h.sessionID(c)
	state := h.sessions.Get(sessionID)

	upload, err := h.decodeUploadPart(c)
	if err != nil {
		h.fail(c, acquisition.SourceUpload, apperr.From(err))
		return
	}
	capture, err := h.readCapturePart(c)
	if err != nil {
		h.fail(c, acquisition.SourceCapture, apperr.From(err))
		return
	}

	// Upload always wins; either event hides the camera widget.
	if upload != nil {
		state = state.FileUploaded()
	} else if capture != nil {
		state = state.PhotoCaptured()
	}
	h.sessions.Put(sessionID, state)

	input := acquisition.Resolve(upload, capture)
	if input.Source == acquisition.SourceNone {
		h.fail(c, acquisition.SourceNone, apperr.NewNoInputError())
		return
	}

	resp, err := h.predict(input)
	if err != nil {
		h.fail(c, input.Source, apperr.From(err))
		return
	}

	metric.Incr(metric.PredictionCount, metric.BuildTag(
		metric.NewTag(metric.TagOutcome, metric.TagValueOutcomeSuccess),
		metric.NewTag(metric.TagSource, string(input.Source)),
	))
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) predict(input acquisition.Input) (*PredictionResponse, error) {
	preprocessStart := time.Now()
	var tensor []float32
	var err error
	switch input.Source {
	case acquisition.SourceUpload:
		tensor, err = vision.FromImage(input.Image)
	case acquisition.SourceCapture:
		tensor, err = vision.FromBytes(input.Capture)
	}
	if err != nil {
		return nil, err
	}
	metric.Timing(metric.PreprocessLatency, time.Since(preprocessStart), nil)

	inferenceStart := time.Now()
	probs, err := h.predictor.Predict(tensor)
	if err != nil {
		return nil, err
	}
	metric.Timing(metric.InferenceLatency, time.Since(inferenceStart), nil)

	index, maxVal := model.Argmax(probs)
	name, err := h.registry.Name(index)
	if err != nil {
		return nil, err
	}

	confidence := float64(maxVal) * 100
	return &PredictionResponse{
		Class:          name,
		Label:          labels.Pretty(name),
		Confidence:     confidence,
		ConfidenceText: fmt.Sprintf("%.2f%%", confidence),
		Progress:       progressValue(confidence),
		Source:         string(input.Source),
	}, nil
}

// decodeUploadPart returns the decoded image from the "image" form part, or
// nil when the part is absent.
func (h *Handler) decodeUploadPart(c *gin.Context) (image.Image, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	log.Debug().Msgf("Received upload: %s, size: %d bytes", header.Filename, header.Size)

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, apperr.NewDecodeError(err)
	}
	log.Debug().Msgf("Upload format: %s, dimensions: %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// readCapturePart returns the raw bytes of the "capture" form part, or nil
// when the part is absent. Decoding happens in the preprocessor.
func (h *Handler) readCapturePart(c *gin.Context) ([]byte, error) {
	file, header, err := c.Request.FormFile("capture")
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	log.Debug().Msgf("Received capture: %d bytes", header.Size)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperr.NewDecodeError(err)
	}
	return data, nil
}

func (h *Handler) fail(c *gin.Context, source acquisition.Source, info apperr.ErrorInfo) {
	log.Error().Str("code", string(info.Code)).Str("source", string(source)).Msg(info.Message)
	metric.Incr(metric.PredictionCount, metric.BuildTag(
		metric.NewTag(metric.TagOutcome, metric.TagValueOutcomeError),
		metric.NewTag(metric.TagSource, string(source)),
		metric.NewTag(metric.TagErrorCode, string(info.Code)),
	))
	c.JSON(info.HttpStatus, gin.H{"code": info.Code, "error": info.Message})
}

// sessionID returns the caller's session id, minting a cookie on first use.
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, h.sessions.TTLSeconds(), "/", "", false, true)
	return id
}
