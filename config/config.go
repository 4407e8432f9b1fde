// Package config loads the runtime configuration from the environment,
// optionally seeded from a .env file during local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 int
	JWTSecret            string
	MongoURI             string
	DeliveryChargeCents  int64
	DiscountCents        int64
	GatewayProvider      string // "stripe", "mollie" or "" for cash-on-delivery only
	StripeAPIKey         string
	MollieAPIKey         string
	GatewaySigningSecret string
	CollaboratorBaseURL  string // when empty the service calls itself
	AdminEmail           string
	AdminPassword        string
}

func Load() (Config, error) {
	// Missing .env is fine: on a real deployment everything comes
	// from the process environment.
	_ = godotenv.Load()

	config := Config{
		Port:                 intFromEnv("PORT", 8080),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		MongoURI:             os.Getenv("MONGO_URI"),
		DeliveryChargeCents:  int64(intFromEnv("DELIVERY_CHARGE_CENTS", 4000)),
		DiscountCents:        int64(intFromEnv("DISCOUNT_CENTS", 0)),
		GatewayProvider:      os.Getenv("GATEWAY_PROVIDER"),
		StripeAPIKey:         os.Getenv("STRIPE_API_KEY"),
		MollieAPIKey:         os.Getenv("MOLLIE_API_KEY"),
		GatewaySigningSecret: os.Getenv("GATEWAY_SIGNING_SECRET"),
		CollaboratorBaseURL:  os.Getenv("COLLABORATOR_BASE_URL"),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
	}

	if config.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing env JWT_SECRET")
	}
	switch config.GatewayProvider {
	case "":
		// cash-on-delivery only
	case "stripe":
		if config.StripeAPIKey == "" {
			return Config{}, fmt.Errorf("missing env STRIPE_API_KEY")
		}
	case "mollie":
		if config.MollieAPIKey == "" {
			return Config{}, fmt.Errorf("missing env MOLLIE_API_KEY")
		}
	default:
		return Config{}, fmt.Errorf("unsupported GATEWAY_PROVIDER %q", config.GatewayProvider)
	}
	if config.GatewayProvider != "" && config.GatewaySigningSecret == "" {
		return Config{}, fmt.Errorf("missing env GATEWAY_SIGNING_SECRET")
	}

	return config, nil
}

func intFromEnv(name string, defaultValue int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
