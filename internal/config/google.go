package config

import (
	"os"
	"sync"
)

type GoogleConfig struct {
	ClientID     string
	CallbackAddr string
}

var (
	googleConfig *GoogleConfig
	googleOnce   sync.Once
)

func LoadGoogleConfig() *GoogleConfig {
	googleOnce.Do(func() {
		addr := os.Getenv("GOOGLE_CALLBACK_ADDR")
		if addr == "" {
			addr = "127.0.0.1:8399"
		}
		googleConfig = &GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			CallbackAddr: addr,
		}
	})
	return googleConfig
}
