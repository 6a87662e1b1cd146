package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	DatabaseURL      string
	StripeSecretKey  string
	CheckoutOrigin   string
	CartSnapshotFile string
}

// Load reads configuration from the environment, picking up a local .env
// file first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getenv("PORT", "8080"),
		Env:              getenv("ENV", "development"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		CheckoutOrigin:   getenv("CHECKOUT_ORIGIN", "http://localhost:3000"),
		CartSnapshotFile: getenv("CART_SNAPSHOT_FILE", "luxe-cart.json"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
