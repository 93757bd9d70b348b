package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
)

type Config struct {
	Port string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAIRPS     float64
	OpenAIBurst   int

	ProviderTimeout time.Duration

	DatabaseURL string
	CORSOrigins []string

	// UISessions bounds the per-session drawer and selection state kept in memory.
	UISessions int
}

// Load reads .env (if any) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            envOr("PORT", "8080"),
		OpenAIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:     envOr("OPENAI_MODEL", openai.GPT4oMini),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		OpenAIRPS:       floatEnv("OPENAI_RPS", 2),
		OpenAIBurst:     intEnv("OPENAI_BURST", 4),
		ProviderTimeout: durationEnv("PROVIDER_TIMEOUT", 60*time.Second),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CORSOrigins:     listEnv("CORS_ORIGINS", []string{"*"}),
		UISessions:      intEnv("UI_SESSIONS", 1024),
	}
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func floatEnv(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("[config] bad %s=%q, using %v", k, v, d)
		return d
	}
	return f
}

func intEnv(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] bad %s=%q, using %d", k, v, d)
		return d
	}
	return n
}

func durationEnv(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil || dur <= 0 {
		log.Printf("[config] bad %s=%q, using %s", k, v, d)
		return d
	}
	return dur
}

func listEnv(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return d
	}
	return out
}
