package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/rentsignal/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Datasets DatasetsConfig `yaml:"datasets" mapstructure:"datasets"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DatasetsConfig locates the three input datasets. Each location may be a
// local path, an http(s):// URL or an ftp:// URL, optionally pointing at a
// .zip archive.
type DatasetsConfig struct {
	Listings             string                `yaml:"listings" mapstructure:"listings" validate:"required"`
	Rentals              string                `yaml:"rentals" mapstructure:"rentals" validate:"required"`
	Neighborhoods        string                `yaml:"neighborhoods" mapstructure:"neighborhoods"`
	NeighborhoodProperty string                `yaml:"neighborhood_property" mapstructure:"neighborhood_property" validate:"required"`
	NeighborhoodField    string                `yaml:"neighborhood_field" mapstructure:"neighborhood_field" validate:"required"`
	Encoding             string                `yaml:"encoding" mapstructure:"encoding"`
	Delimiter            string                `yaml:"delimiter" mapstructure:"delimiter" validate:"len=1"`
	Strict               bool                  `yaml:"strict" mapstructure:"strict"`
	TempDir              string                `yaml:"temp_dir" mapstructure:"temp_dir" validate:"required"`
	TimePoints           []model.TimePointSpec `yaml:"time_points" mapstructure:"time_points" validate:"len=3,dive"`
}

// TimePointSpecs returns the configured time points as a fixed-size array.
func (d DatasetsConfig) TimePointSpecs() [model.NumTimePoints]model.TimePointSpec {
	out := model.DefaultTimePoints()
	for i := 0; i < len(d.TimePoints) && i < model.NumTimePoints; i++ {
		if d.TimePoints[i].Column != "" {
			out[i].Column = d.TimePoints[i].Column
		}
		if d.TimePoints[i].Label != "" {
			out[i].Label = d.TimePoints[i].Label
		}
	}
	return out
}

// AnalysisConfig configures the neighborhood pipeline.
type AnalysisConfig struct {
	ListingMode string `yaml:"listing_mode" mapstructure:"listing_mode" validate:"oneof=flat by_zip"`
}

// FetchConfig configures remote dataset downloads.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs" validate:"gte=1"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=1"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RENTSIGNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("datasets.listings", "data/filtered_listings.csv")
	v.SetDefault("datasets.rentals", "data/filled_prices_dataset.csv")
	v.SetDefault("datasets.neighborhoods", "data/neighbourhoods.geojson")
	v.SetDefault("datasets.neighborhood_property", "neighbourhood")
	v.SetDefault("datasets.neighborhood_field", "pri_neigh")
	v.SetDefault("datasets.delimiter", ",")
	v.SetDefault("datasets.strict", false)
	v.SetDefault("datasets.temp_dir", "/tmp/rentsignal")
	v.SetDefault("datasets.time_points", defaultTimePoints())
	v.SetDefault("analysis.listing_mode", "flat")
	v.SetDefault("fetch.user_agent", "rentsignal/1.0")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
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

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return eris.Wrap(err, "config: validate")
	}
	return nil
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

func defaultTimePoints() []map[string]string {
	def := model.DefaultTimePoints()
	out := make([]map[string]string, 0, len(def))
	for _, tp := range def {
		out = append(out, map[string]string{"column": tp.Column, "label": tp.Label})
	}
	return out
}
