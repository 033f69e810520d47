package testutils

import (
	"time"

	"github.com/traintrack/traintrack/config"
	"golang.org/x/crypto/bcrypt"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "traintrack-test",
		},
		JWT: config.JWTConfig{
			SecretKey:     "test-secret-key-32-chars-long!!",
			Issuer:        "test-issuer",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		TokenStore: config.TokenStoreConfig{
			Backend: "memory",
		},
		Auth: config.AuthConfig{
			BcryptCost:    bcrypt.MinCost,
			AdminUsername: "admin",
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
	}
}
