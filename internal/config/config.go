package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/go-playground/validator/v10"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string
	LogLevel       logging.Level

	TBABaseURL    string `validate:"required,url"`
	TBAKey        string
	TBATimeout    time.Duration `validate:"gt=0"`
	TBAMaxRetries int           `validate:"gte=0"`
	TBARetryBase  time.Duration `validate:"gt=0"`

	TBACircuitEnabled        bool
	TBACircuitFailureCount   int           `validate:"gte=1"`
	TBACircuitOpenTimeout    time.Duration `validate:"gt=0"`
	TBACircuitHalfOpenMaxReq int           `validate:"gte=1"`

	Years            []int  `validate:"required,min=1,dive,gte=1992"`
	RosterYear       int    `validate:"gte=1992"`
	ChunkSize        int    `validate:"gte=1"`
	Workers          int    `validate:"gte=1"`
	FetchConcurrency int    `validate:"gte=1"`
	QueueSize        int    `validate:"gte=1"`
	OutputPath       string `validate:"required"`

	AccessAttempts    int           `validate:"gte=1"`
	AccessBackoffUnit time.Duration `validate:"gte=0"`
	AccessThrottle    time.Duration `validate:"gte=0"`
	RosterAttempts    int           `validate:"gte=1"`
	RosterRetryDelay  time.Duration `validate:"gte=0"`

	CacheTTL       time.Duration `validate:"gt=0"`
	CacheTeamSize  int           `validate:"gte=1"`
	CacheEventSize int           `validate:"gte=1"`

	ResultDBEnabled                     bool
	ResultDBURL                         string `validate:"required_if=ResultDBEnabled true"`
	ResultDBDisablePreparedBinaryResult bool
	ResultDBBatchSize                   int `validate:"gte=1"`

	MetricsTextfile string

	UptraceEnabled     bool
	UptraceDSN         string `validate:"required_if=UptraceEnabled true"`
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration `validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:          appEnv,
		ServiceName:     getEnv("APP_SERVICE_NAME", "slff-scorer"),
		ServiceVersion:  getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:        logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		TBABaseURL:      strings.TrimSpace(getEnv("TBA_BASE_URL", "https://www.thebluealliance.com/api/v3")),
		TBAKey:          strings.TrimSpace(getEnv("TBA_KEY", os.Getenv("TBAKEY"))),
		OutputPath:      getEnv("SLFF_OUTPUT_PATH", "BIG DATA.csv"),
		ResultDBURL:     strings.TrimSpace(getEnv("RESULT_DB_URL", "")),
		MetricsTextfile: strings.TrimSpace(getEnv("METRICS_TEXTFILE", "")),
		UptraceDSN:      strings.TrimSpace(getEnv("UPTRACE_DSN", "")),

		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
	}
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)

	if cfg.Years, err = parseYears(getEnv("SLFF_YEARS", "2024,2023,2022")); err != nil {
		return Config{}, fmt.Errorf("parse SLFF_YEARS: %w", err)
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"TBA_MAX_RETRIES", 2, &cfg.TBAMaxRetries},
		{"TBA_CIRCUIT_FAILURE_COUNT", 20, &cfg.TBACircuitFailureCount},
		{"TBA_CIRCUIT_HALF_OPEN_MAX_REQ", 2, &cfg.TBACircuitHalfOpenMaxReq},
		{"SLFF_ROSTER_YEAR", 2025, &cfg.RosterYear},
		{"SLFF_CHUNK_SIZE", 50, &cfg.ChunkSize},
		{"SLFF_WORKERS", 10, &cfg.Workers},
		{"SLFF_FETCH_CONCURRENCY", 10, &cfg.FetchConcurrency},
		{"SLFF_QUEUE_SIZE", 100, &cfg.QueueSize},
		{"ACCESS_ATTEMPTS", 3, &cfg.AccessAttempts},
		{"ROSTER_ATTEMPTS", 3, &cfg.RosterAttempts},
		{"CACHE_TEAM_SIZE", 2000, &cfg.CacheTeamSize},
		{"CACHE_EVENT_SIZE", 1000, &cfg.CacheEventSize},
		{"RESULT_DB_BATCH_SIZE", 100, &cfg.ResultDBBatchSize},
	}
	for _, item := range ints {
		value, err := getEnvAsInt(item.key, item.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", item.key, err)
		}
		*item.dst = value
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"TBA_TIMEOUT", "30s", &cfg.TBATimeout},
		{"TBA_RETRY_BASE", "500ms", &cfg.TBARetryBase},
		{"TBA_CIRCUIT_OPEN_TIMEOUT", "30s", &cfg.TBACircuitOpenTimeout},
		{"ACCESS_BACKOFF_UNIT", "1s", &cfg.AccessBackoffUnit},
		{"ACCESS_THROTTLE", "20ms", &cfg.AccessThrottle},
		{"ROSTER_RETRY_DELAY", "5s", &cfg.RosterRetryDelay},
		{"CACHE_TTL", "1h", &cfg.CacheTTL},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, item := range durations {
		value, err := time.ParseDuration(getEnv(item.key, item.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", item.key, err)
		}
		*item.dst = value
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"TBA_CIRCUIT_ENABLED", "false", &cfg.TBACircuitEnabled},
		{"RESULT_DB_ENABLED", "false", &cfg.ResultDBEnabled},
		{"RESULT_DB_DISABLE_PREPARED_BINARY_RESULT", "true", &cfg.ResultDBDisablePreparedBinaryResult},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"UPTRACE_LOGS_ENABLED", "true", &cfg.UptraceLogsEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
	}
	for _, item := range bools {
		value, err := strconv.ParseBool(getEnv(item.key, item.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", item.key, err)
		}
		*item.dst = value
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// parseYears keeps the configured order; it is the column order of the output.
func parseYears(raw string) ([]int, error) {
	var out []int
	seen := make(map[int]struct{})
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		year, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", item, err)
		}
		if _, dup := seen[year]; dup {
			return nil, fmt.Errorf("duplicate year %d", year)
		}
		seen[year] = struct{}{}
		out = append(out, year)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one year is required")
	}

	return out, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
