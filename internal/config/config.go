package config

import (
	"log"
	"sync"

	"github.com/spf13/viper"
)

// Configs holds every knob the application reads from the environment.
// Defaults are registered for all keys so a zero-configuration run works.
type Configs struct {
	// App configuration
	AppName               string  `mapstructure:"app_name"`
	AppEnv                string  `mapstructure:"app_env"`
	AppLogLevel           string  `mapstructure:"app_log_level"`
	AppMetricSamplingRate float64 `mapstructure:"app_metric_sampling_rate"`
	AppPort               int     `mapstructure:"app_port"`

	// Statsd configuration
	StatsdAddress string `mapstructure:"statsd_address"`

	// Model configuration
	ModelPath             string `mapstructure:"model_path"`
	ModelInputName        string `mapstructure:"model_input_name"`
	ModelOutputName       string `mapstructure:"model_output_name"`
	ModelDeterminismCheck bool   `mapstructure:"model_determinism_check"`
	OnnxLibraryPath       string `mapstructure:"onnx_library_path"`

	// Class names configuration
	ClassNamesPath string `mapstructure:"class_names_path"`

	// Session configuration
	SessionTTLSeconds int `mapstructure:"session_ttl_seconds"`
}

var once sync.Once

// Init binds environment variables and unmarshals them into cfg.
// APP_NAME (env) maps to app_name (config key) and so on.
func Init(cfg *Configs) {
	once.Do(func() {
		registerDefaults()
		viper.AutomaticEnv()
		if err := viper.Unmarshal(cfg); err != nil {
			log.Fatalf("Failed to unmarshal config from environment: %v", err)
		}
	})
}

func registerDefaults() {
	viper.SetDefault("app_name", "foodlens")
	viper.SetDefault("app_env", "dev")
	viper.SetDefault("app_log_level", "INFO")
	viper.SetDefault("app_metric_sampling_rate", 1.0)
	viper.SetDefault("app_port", 8080)
	viper.SetDefault("statsd_address", "localhost:8125")
	viper.SetDefault("model_path", "models/food100.onnx")
	viper.SetDefault("model_input_name", "input")
	viper.SetDefault("model_output_name", "output")
	viper.SetDefault("model_determinism_check", true)
	viper.SetDefault("onnx_library_path", "")
	viper.SetDefault("class_names_path", "models/class_names.json")
	viper.SetDefault("session_ttl_seconds", 1800)
}
