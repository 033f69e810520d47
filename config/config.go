package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	Server     ServerConfig     `envPrefix:"SERVER_"`
	Log        LogConfig        `envPrefix:"LOG_"`
	Database   DatabaseConfig   `envPrefix:"DB_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	JWT        JWTConfig        `envPrefix:"JWT_"`
	TokenStore TokenStoreConfig `envPrefix:"TOKEN_STORE_"`
	Auth       AuthConfig       `envPrefix:"AUTH_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"traintrack"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"8080"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"traintrack.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type JWTConfig struct {
	SecretKey     string        `env:"SECRET_KEY,required"`
	Issuer        string        `env:"ISSUER" envDefault:"traintrack"`
	AccessExpiry  time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"REFRESH_EXPIRY" envDefault:"720h"`
}

// TokenStoreConfig selects the token record backend. The choice is resolved
// once at construction time, never branched on at call sites.
type TokenStoreConfig struct {
	Backend string `env:"BACKEND" envDefault:"memory"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
	// Registrations matching AdminUsername are granted the admin role.
	AdminUsername string `env:"ADMIN_USERNAME"`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	return env.Parse(cfg)
}
