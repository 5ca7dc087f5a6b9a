package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the server configuration read from the environment.
type Config struct {
	Port        string
	CORSOrigins []string

	LLMProvider       string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	PollinationsModel string

	SerpAPIKey string

	ProviderTimeout time.Duration
	LLMTimeout      time.Duration
	EnrichTimeout   time.Duration
	RequestTimeout  time.Duration
	SearchLimit     int
	HistoryWindow   int
	EnrichSearch    bool
	EnrichHandlers  bool

	AudioBackend   string
	AudioVoice     string
	AudioTTL       time.Duration
	TTSLanguage    string
	SpeechLanguage string
	PublicBaseURL  string

	MongoURL      string
	DBName        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

const (
	LLMGemini       = "gemini"
	LLMOpenAI       = "openai"
	LLMPollinations = "pollinations"

	AudioNone         = "none"
	AudioPollinations = "pollinations"
	AudioGoogle       = "google"
)

// Load reads configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port:              envOrDefault("PORT", "8080"),
		CORSOrigins:       splitList(envOrDefault("CORS_ORIGINS", "*")),
		LLMProvider:       strings.ToLower(envOrDefault("LLM_PROVIDER", LLMPollinations)),
		GeminiModel:       envOrDefault("GEMINI_MODEL", "gemini-2.0-flash-001"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       envOrDefault("OPENAI_MODEL", "llama3.1-8b"),
		PollinationsModel: envOrDefault("POLLINATIONS_MODEL", "openai"),
		SerpAPIKey:        os.Getenv("SERPAPI_KEY"),
		ProviderTimeout:   envDurationOrDefault("PROVIDER_TIMEOUT", 10*time.Second),
		LLMTimeout:        envDurationOrDefault("LLM_TIMEOUT", 30*time.Second),
		EnrichTimeout:     envDurationOrDefault("ENRICH_TIMEOUT", 8*time.Second),
		RequestTimeout:    envDurationOrDefault("REQUEST_TIMEOUT", 45*time.Second),
		SearchLimit:       envIntOrDefault("SEARCH_LIMIT", 10),
		HistoryWindow:     envIntOrDefault("HISTORY_WINDOW", 6),
		EnrichSearch:      envBoolOrDefault("ENRICH_SEARCH", true),
		EnrichHandlers:    envBoolOrDefault("ENRICH_HANDLERS", false),
		AudioBackend:      strings.ToLower(envOrDefault("AUDIO_BACKEND", AudioNone)),
		AudioVoice:        envOrDefault("AUDIO_VOICE", "alloy"),
		AudioTTL:          envDurationOrDefault("AUDIO_TTL", time.Hour),
		TTSLanguage:       envOrDefault("TTS_LANGUAGE", "en-US"),
		SpeechLanguage:    envOrDefault("SPEECH_LANGUAGE", "en-US"),
		PublicBaseURL:     strings.TrimRight(envOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		MongoURL:          os.Getenv("MONGO_URL"),
		DBName:            envOrDefault("DB_NAME", "gerch"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           envIntOrDefault("REDIS_DB", 0),
	}

	switch cfg.LLMProvider {
	case LLMGemini, LLMPollinations:
	case LLMOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("OPENAI_API_KEY is required in environment when LLM_PROVIDER=openai")
		}
	default:
		return Config{}, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}

	switch cfg.AudioBackend {
	case AudioNone, AudioPollinations:
	case AudioGoogle:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("REDIS_ADDR is required in environment when AUDIO_BACKEND=google")
		}
	default:
		return Config{}, fmt.Errorf("unknown AUDIO_BACKEND %q", cfg.AudioBackend)
	}

	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 10
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}

// envDurationOrDefault accepts Go durations ("5s") or plain seconds ("5").
func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
