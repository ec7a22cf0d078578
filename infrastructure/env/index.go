package env

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	apperrors "paygate.io/application/appErrors"
	"paygate.io/infrastructure/cryptography"
	"paygate.io/infrastructure/logger"
	"paygate.io/infrastructure/validator"
)

const (
	defaultFlutterwaveBaseURL = "https://api.flutterwave.com/v3"
	defaultGatewayTimeout     = 60 * time.Second
)

// momoKeys turn mobile money on. Setting any of them requires the whole group.
var momoKeys = []string{
	"MOMO_BASE_URL",
	"MOMO_API_USER",
	"MOMO_API_KEY",
	"MOMO_SUBSCRIPTION_KEY",
	"MOMO_TARGET_ENVIRONMENT",
	"MOMO_CALLBACK_URL",
}

// Config is built once at start up and only read afterwards.
type Config struct {
	Env            string   `validate:"required,oneof=development staging production test"`
	Port           string   `validate:"required,digits"`
	GinMode        string   `validate:"required,oneof=debug release test"`
	AllowedOrigins []string `validate:"dive,url"`

	Flutterwave FlutterwaveConfig
	MoMo        *MoMoConfig
	Redis       *RedisConfig
}

type FlutterwaveConfig struct {
	BaseURL       string        `validate:"required,url"`
	SecretKey     string        `validate:"required"`
	EncryptionKey string        `validate:"required,len=24"`
	RedirectURL   string        `validate:"required,url"`
	Timeout       time.Duration `validate:"gt=0"`
}

type MoMoConfig struct {
	BaseURL           string `validate:"required,url"`
	APIUser           string `validate:"required"`
	APIKey            string `validate:"required"`
	SubscriptionKey   string `validate:"required"`
	TargetEnvironment string `validate:"required"`
	CallbackURL       string `validate:"omitempty,url"`
}

type RedisConfig struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

// LoadConfig reads the process environment into a Config and refuses to
// return a partial one.
func LoadConfig() (*Config, error) {
	timeout := defaultGatewayTimeout
	if raw := os.Getenv("GATEWAY_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, apperrors.ConfigurationError("GATEWAY_TIMEOUT is not a valid duration", err)
		}
		timeout = parsed
	}

	config := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		Flutterwave: FlutterwaveConfig{
			BaseURL:       getEnv("FLW_BASE_URL", defaultFlutterwaveBaseURL),
			SecretKey:     os.Getenv("FLW_SECRET_KEY"),
			EncryptionKey: os.Getenv("FLW_ENCRYPTION_KEY"),
			RedirectURL:   os.Getenv("FLW_REDIRECT_URL"),
			Timeout:       timeout,
		},
	}

	if anySet(momoKeys) {
		config.MoMo = &MoMoConfig{
			BaseURL:           getEnv("MOMO_BASE_URL", "https://sandbox.momodeveloper.mtn.com"),
			APIUser:           os.Getenv("MOMO_API_USER"),
			APIKey:            os.Getenv("MOMO_API_KEY"),
			SubscriptionKey:   os.Getenv("MOMO_SUBSCRIPTION_KEY"),
			TargetEnvironment: getEnv("MOMO_TARGET_ENVIRONMENT", "sandbox"),
			CallbackURL:       os.Getenv("MOMO_CALLBACK_URL"),
		}
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Redis = &RedisConfig{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if errs := validator.ValidatorInstance.ValidateStruct(c); errs != nil {
		messages := []string{}
		for _, err := range *errs {
			messages = append(messages, err.Error())
		}
		return apperrors.ConfigurationError(fmt.Sprintf("invalid configuration: %s", strings.Join(messages, "; ")), nil)
	}
	if err := cryptography.ValidateTripleDESKey(c.Flutterwave.EncryptionKey); err != nil {
		return apperrors.ConfigurationError("invalid FLW_ENCRYPTION_KEY", err)
	}
	return nil
}

func anySet(keys []string) bool {
	for _, key := range keys {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
