package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Kafka is disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	// E-mail is disabled when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	CompanyName  string

	NotifyTimeout   time.Duration
	ShutdownTimeout time.Duration
}

// Load reads envFile if it exists, then the environment. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	var c Config

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("godotenv.Load[%s]: %w", envFile, err)
		}
	}

	var errs []error

	c = Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 10, &errs),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute, &errs),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "orders"),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvInt("SMTP_PORT", 587, &errs),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		MailFrom:          getEnv("MAIL_FROM", "noreply@storefront.local"),
		CompanyName:       getEnv("COMPANY_NAME", "Storefront"),
		NotifyTimeout:     getEnvDuration("NOTIFY_TIMEOUT", 30*time.Second, &errs),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second, &errs),
	}

	if err := errors.Join(errs...); err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("c.Validate: %w", err)
	}

	return c, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is empty"))
	}
	if c.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS[%d] must be positive", c.RateLimitRequests))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW[%s] must be positive", c.RateLimitWindow))
	}
	if c.NotifyTimeout <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFY_TIMEOUT[%s] must be positive", c.NotifyTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT[%s] must be positive", c.ShutdownTimeout))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is empty"))
	}

	return errors.Join(errs...)
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s[%s]: %w", key, v, err))
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s[%s]: %w", key, v, err))
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
