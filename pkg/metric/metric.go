package metric

import (
	"sync"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/foodlens-ai/foodlens/internal/config"
	"github.com/rs/zerolog/log"
)

const (
	ApiRequestCount   = "api_request_count"
	ApiRequestLatency = "api_request_latency"
	PredictionCount   = "prediction_count"
	InferenceLatency  = "inference_latency"
	PreprocessLatency = "preprocess_latency"
)

var (
	// it is safe to use one client from multiple goroutines simultaneously
	statsDClient = getDefaultClient()
	// by default full sampling
	samplingRate = 1.0
	appName      = ""
	initialized  = false
	once         sync.Once
)

// Init initializes the metrics client
func Init(cfg config.Configs) {
	if initialized {
		log.Debug().Msgf("Metrics already initialized!")
		return
	}
	once.Do(func() {
		samplingRate = cfg.AppMetricSamplingRate
		appName = cfg.AppName
		globalTags := getGlobalTags(cfg)

		client, err := statsd.New(
			cfg.StatsdAddress,
			statsd.WithTags(globalTags),
		)
		if err != nil {
			log.Warn().AnErr("StatsD client initialization failed, metrics disabled", err)
			return
		}
		statsDClient = client
		log.Info().Msgf("Metrics client initialized with statsd address - %s, global tags - %v, and "+
			"sampling rate - %f", cfg.StatsdAddress, globalTags, samplingRate)
		initialized = true
	})
}

func getDefaultClient() *statsd.Client {
	client, _ := statsd.New("localhost:8125")
	return client
}

func getGlobalTags(cfg config.Configs) []string {
	env := cfg.AppEnv
	if len(env) == 0 {
		log.Warn().Msg("APP_ENV is not set")
	}
	service := cfg.AppName
	if len(service) == 0 {
		log.Warn().Msg("APP_NAME is not set")
	}
	return []string{
		TagAsString(TagEnv, env),
		TagAsString(TagService, service),
	}
}

// Timing sends timing information
func Timing(name string, value time.Duration, tags []string) {
	tags = append(tags, TagAsString(TagService, appName))
	err := statsDClient.Timing(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().AnErr("Error occurred while doing statsd timing", err)
	}
}

// Count Increases metric counter by value
func Count(name string, value int64, tags []string) {
	tags = append(tags, TagAsString(TagService, appName))
	err := statsDClient.Count(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().AnErr("Error occurred while doing statsd count", err)
	}
}

// Incr Increases metric counter by 1
func Incr(name string, tags []string) {
	Count(name, 1, tags)
}

func Gauge(name string, value float64, tags []string) {
	tags = append(tags, TagAsString(TagService, appName))
	err := statsDClient.Gauge(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().AnErr("Error occurred while doing statsd gauge", err)
	}
}
