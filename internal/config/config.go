package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
	Questions  QuestionsConfig  `yaml:"questions" mapstructure:"questions"`
	Transcribe TranscribeConfig `yaml:"transcribe" mapstructure:"transcribe"`
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AnalyzePerMin   float64  `yaml:"analyze_per_min" mapstructure:"analyze_per_min"`
	AnalyzeBurst    int      `yaml:"analyze_burst" mapstructure:"analyze_burst"`
	ShutdownTimeout int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// AuthConfig configures bearer-token verification. Tokens are verified here,
// never issued; issuance belongs to the identity provider.
type AuthConfig struct {
	Secret string `yaml:"secret" mapstructure:"secret"`
}

// QuestionsConfig configures the question source.
type QuestionsConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // static | openai
	BankPath string `yaml:"bank_path" mapstructure:"bank_path"`
	Count    int    `yaml:"count" mapstructure:"count"`
}

// TranscribeConfig configures the transcription capability.
type TranscribeConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // static | openai
	Model    string `yaml:"model" mapstructure:"model"`
}

// OpenAIConfig holds OpenAI API settings shared by the question generator
// and the Whisper transcriber.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// ScoringConfig holds the placeholder score ranges.
type ScoringConfig struct {
	MetricMin    int `yaml:"metric_min" mapstructure:"metric_min"`
	MetricMax    int `yaml:"metric_max" mapstructure:"metric_max"`
	ReadinessMin int `yaml:"readiness_min" mapstructure:"readiness_min"`
	ReadinessMax int `yaml:"readiness_max" mapstructure:"readiness_max"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTERVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "interview.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.analyze_per_min", 10.0)
	v.SetDefault("server.analyze_burst", 3)
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("questions.provider", "static")
	v.SetDefault("questions.count", 5)
	v.SetDefault("transcribe.provider", "static")
	v.SetDefault("transcribe.model", "whisper-1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("scoring.metric_min", 70)
	v.SetDefault("scoring.metric_max", 90)
	v.SetDefault("scoring.readiness_min", 60)
	v.SetDefault("scoring.readiness_max", 95)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
