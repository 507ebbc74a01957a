package main

import (
	"path/filepath"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"

	"github.com/foodlens-ai/foodlens/internal/config"
	"github.com/foodlens-ai/foodlens/internal/handlers"
	"github.com/foodlens-ai/foodlens/internal/labels"
	"github.com/foodlens-ai/foodlens/internal/model"
	"github.com/foodlens-ai/foodlens/internal/session"
	"github.com/foodlens-ai/foodlens/internal/vision"
	"github.com/foodlens-ai/foodlens/pkg/httpframework"
	"github.com/foodlens-ai/foodlens/pkg/logger"
	"github.com/foodlens-ai/foodlens/pkg/metric"
)

var cfg config.Configs

func main() {
	config.Init(&cfg)
	logger.Init(cfg)
	metric.Init(cfg)

	// Startup failures leave the process serving: the UI renders a blocking
	// warning and prediction stays disabled until restart.
	registry, err := labels.Load(cfg.ClassNamesPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.ClassNamesPath).Msg("Failed to load class names")
	} else {
		log.Info().Int("count", registry.Count()).Msg("Class names loaded")
	}

	engine, err := model.NewEngine(model.Options{
		ModelPath:        cfg.ModelPath,
		InputName:        cfg.ModelInputName,
		OutputName:       cfg.ModelOutputName,
		InputShape:       []int64{1, vision.ImageSize, vision.ImageSize, vision.Channels},
		DeterminismCheck: cfg.ModelDeterminismCheck,
		LibraryPath:      cfg.OnnxLibraryPath,
	})
	if err != nil {
		log.Error().Err(err).Str("path", cfg.ModelPath).Msg("Failed to initialize inference engine")
	} else {
		defer engine.Close()
		log.Info().Str("path", cfg.ModelPath).Msg("Inference engine initialized")
	}

	var predictor model.Predictor
	if engine != nil {
		predictor = engine
	}

	sessions := session.NewStore(cfg.SessionTTLSeconds)
	handler := handlers.New(predictor, registry, sessions, modelName(cfg.ModelPath))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	httpframework.Init(cors.New(corsConfig))

	handlers.Register(httpframework.Instance(), handler)

	port := cfg.AppPort
	if port == 0 {
		port = 8080
		log.Warn().Int("port", port).Msg("App port not set, defaulting to 8080")
	}
	if err := httpframework.Instance().Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func modelName(modelPath string) string {
	base := filepath.Base(modelPath)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
