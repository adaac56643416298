package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"go-kiezmap/logger"
)

// Endpoints are the upstream base URLs. Overridable so the gateways can be pointed at mirrors or fakes.
type Endpoints struct {
	ExchangeRate  string
	Weather       string
	Overpass      string
	Nominatim     string
	Maps          string
	AssistantBase string
}

type Config struct {
	Mode string
	Port string

	CrimeFile string

	MapsAPIKey        string
	AssistantAPIKey   string
	AssistantProvider string
	AssistantModel    string

	RedisAddr      string
	SessionTTL     time.Duration
	WarmupSchedule string
	CORSOrigins    []string
	TraceStdout    bool

	Endpoints Endpoints
	Profile   Profile
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads the process environment. Missing secrets are allowed; the features behind them degrade.
func Load(log *logger.Logger) *Config {
	profile := LoadProfile(log)

	cfg := &Config{
		Mode:              String("APP_MODE", "dev"),
		Port:              String("PORT", "8080"),
		CrimeFile:         String("CRIME_FILE", profile.Crime.File),
		MapsAPIKey:        String("MAPS_API_KEY", ""),
		AssistantAPIKey:   firstNonEmpty(os.Getenv("ASSISTANT_API_KEY"), os.Getenv("GEMINI_API_KEY"), os.Getenv("OPENAI_API_KEY")),
		AssistantProvider: strings.ToLower(String("ASSISTANT_PROVIDER", "gemini")),
		AssistantModel:    String("ASSISTANT_MODEL", ""),
		RedisAddr:         String("REDIS_ADDR", ""),
		SessionTTL:        time.Duration(Int("SESSION_TTL_MINUTES", 120)) * time.Minute,
		WarmupSchedule:    String("WARMUP_SCHEDULE", ""),
		CORSOrigins:       List("CORS_ORIGINS", []string{"http://localhost:8080"}),
		TraceStdout:       Bool("TRACE_STDOUT", false),
		Endpoints: Endpoints{
			ExchangeRate:  String("EXCHANGE_RATE_URL", "https://api.exchangerate-api.com"),
			Weather:       String("WEATHER_URL", "https://api.open-meteo.com/v1/forecast"),
			Overpass:      String("OVERPASS_URL", "http://overpass-api.de/api/interpreter"),
			Nominatim:     String("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			Maps:          String("MAPS_BASE_URL", ""),
			AssistantBase: String("ASSISTANT_BASE_URL", ""),
		},
		Profile: profile,
	}

	if cfg.MapsAPIKey == "" {
		log.Warn("MAPS_API_KEY not set, geocoding falls back to Nominatim")
	}
	if cfg.AssistantAPIKey == "" {
		log.Warn("assistant API key not set, chat answers will be placeholders")
	}
	return cfg
}

func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func Int(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Bool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// List splits a comma-separated variable, dropping blanks.
func List(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
