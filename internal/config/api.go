package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

var (
	apiConfig *APIConfig
	apiOnce   sync.Once
)

func LoadAPIConfig() *APIConfig {
	apiOnce.Do(func() {
		baseURL := os.Getenv("API_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8000"
			log.Printf("Warning: API_BASE_URL not set, defaulting to %s", baseURL)
		}
		timeout := 30 * time.Second
		if raw := os.Getenv("API_TIMEOUT"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Printf("Warning: invalid API_TIMEOUT %q, keeping %s", raw, timeout)
			} else {
				timeout = parsed
			}
		}
		apiConfig = &APIConfig{
			BaseURL: baseURL,
			Timeout: timeout,
		}
	})
	return apiConfig
}
