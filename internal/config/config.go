package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/spf13/viper"
)

// Log formats accepted by LOG_FORMAT.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// EnvPrefix prefixes every environment variable the service reads.
const EnvPrefix = "BUOY"

// Config holds all run settings, populated from defaults, an optional config
// file and BUOY_* environment variables, in increasing priority.
type Config struct {
	Station domain.Station

	NDBCBaseURL    string
	FetchTimeout   time.Duration
	SpectralLayout domain.SpectralLayout

	OutputPath      string
	MetricsTextfile string

	LogLevel  slog.Level
	LogFormat string

	// Optional Kafka publishing of the finished document.
	KafkaBrokers []string
	KafkaTopic   string
}

// KafkaEnabled reports whether a broker list was configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("station.id", "44097")
	v.SetDefault("station.name", "Block Island, RI")
	v.SetDefault("station.lat", "40.969")
	v.SetDefault("station.lon", "-71.124")
	v.SetDefault("ndbc.base_url", "https://www.ndbc.noaa.gov/data/realtime2/")
	v.SetDefault("ndbc.timeout", "30s")
	v.SetDefault("ndbc.spectral_layout", domain.DefaultSpectralLayout)
	v.SetDefault("output.path", "data/buoy.json")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatText)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "buoy-observations")
}

// Load reads configuration, applying defaults where unset. configFile may be
// empty; when set, it must exist and parse as YAML.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	lat, err := parseFloat(v, "station.lat")
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat(v, "station.lon")
	if err != nil {
		return nil, err
	}

	timeoutStr := strings.TrimSpace(v.GetString("ndbc.timeout"))
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid %s %q", envName("ndbc.timeout"), timeoutStr)
	}

	layout, err := domain.LookupSpectralLayout(strings.TrimSpace(v.GetString("ndbc.spectral_layout")))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envName("ndbc.spectral_layout"), err)
	}

	level, err := parseLogLevel(v.GetString("log.level"))
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(strings.TrimSpace(v.GetString("log.format")))
	if format != LogFormatText && format != LogFormatJSON {
		return nil, fmt.Errorf("invalid %s %q (allowed: text, json)", envName("log.format"), format)
	}

	cfg := &Config{
		Station: domain.Station{
			ID:   strings.TrimSpace(v.GetString("station.id")),
			Name: strings.TrimSpace(v.GetString("station.name")),
			Lat:  lat,
			Lon:  lon,
		},
		NDBCBaseURL:     strings.TrimSpace(v.GetString("ndbc.base_url")),
		FetchTimeout:    timeout,
		SpectralLayout:  layout,
		OutputPath:      strings.TrimSpace(v.GetString("output.path")),
		MetricsTextfile: strings.TrimSpace(v.GetString("metrics.textfile")),
		LogLevel:        level,
		LogFormat:       format,
		KafkaBrokers:    parseBrokers(v.GetString("kafka.brokers")),
		KafkaTopic:      strings.TrimSpace(v.GetString("kafka.topic")),
	}

	if cfg.Station.ID == "" {
		return nil, errors.New("BUOY_STATION_ID is required")
	}
	if cfg.NDBCBaseURL == "" {
		return nil, errors.New("BUOY_NDBC_BASE_URL is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("BUOY_OUTPUT_PATH is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("BUOY_KAFKA_BROKERS is set but BUOY_KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

// envName maps a config key to the environment variable that overrides it.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func parseFloat(v *viper.Viper, key string) (float64, error) {
	s := strings.TrimSpace(v.GetString(key))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envName(key), s, err)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid %s %q (allowed: debug, info, warn, error)", envName("log.level"), s)
	}
}
