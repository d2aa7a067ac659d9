package config

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"veilmarket/internal/auctionerrors"
)

const vaultKeySize = 32

// Config carries everything the engine needs at startup. The vault key is
// decoded and validated here: a process without a usable 256-bit key must
// not come up at all.
type Config struct {
	Port           string
	VaultKey       []byte
	JWTSecret      string
	DBURL          string // empty: in-memory store
	NATSURL        string // empty: log-only notifier
	CommissionRate float64
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		// Not an error: production deployments set real environment variables.
		log.Println("config: no", envFile, "file found")
	}

	key, err := parseVaultKey(os.Getenv("VAULT_KEY"))
	if err != nil {
		return nil, err
	}

	rate, err := parseRate(getEnv("COMMISSION_RATE", "0.05"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		VaultKey:       key,
		JWTSecret:      getEnv("JWT_SECRET", ""),
		DBURL:          getEnv("DB_URL", ""),
		NATSURL:        getEnv("NATS_URL", ""),
		CommissionRate: rate,
	}, nil
}

func parseVaultKey(raw string) ([]byte, error) {
	if raw == "" {
		return nil, fmt.Errorf("config: VAULT_KEY is not set: %w", auctionerrors.ErrVaultMisconfigured)
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("config: VAULT_KEY is not valid hex: %w", auctionerrors.ErrVaultMisconfigured)
	}
	if len(key) != vaultKeySize {
		return nil, fmt.Errorf("config: VAULT_KEY must decode to %d bytes, got %d: %w", vaultKeySize, len(key), auctionerrors.ErrVaultMisconfigured)
	}
	return key, nil
}

func parseRate(raw string) (float64, error) {
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: COMMISSION_RATE %q is not a number: %w", raw, err)
	}
	if rate < 0 || rate >= 1 {
		return 0, fmt.Errorf("config: COMMISSION_RATE %.2f out of [0,1)", rate)
	}
	return rate, nil
}

// getEnv gets the env by key or falls back
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
