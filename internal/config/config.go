package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                string
	DBConn              string
	LogLevel            string
	JWTSecret           string
	WhatsAppAPIURL      string
	WhatsAppToken       string
	WhatsAppPhoneID     string
	WhatsAppVerifyToken string
	WhatsAppAppSecret   string
	RatesURL            string
	LoanMarginPercent   float64
	SMTPHost            string
	SMTPPort            string
	SMTPUsername        string
	SMTPPassword        string
	SenderEmail         string
	DigestSchedule      string
	StaleLeadDays       int
}

// NewConfig loads configuration from a .env file (if present) and environment variables
func NewConfig() (*Config, error) {
	// A missing .env is fine; real environment variables win either way
	_ = godotenv.Load()

	margin, err := strconv.ParseFloat(getEnv("LOAN_MARGIN_PERCENT", "5.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOAN_MARGIN_PERCENT: %w", err)
	}
	staleDays, err := strconv.Atoi(getEnv("STALE_LEAD_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_LEAD_DAYS: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBConn:              getEnv("DB_CONN", "host=localhost port=5432 user=crm password=crm dbname=crm sslmode=disable"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		WhatsAppAPIURL:      getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
		WhatsAppToken:       getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneID:     getEnv("WHATSAPP_PHONE_ID", ""),
		WhatsAppVerifyToken: getEnv("WHATSAPP_VERIFY_TOKEN", "verify-me"),
		WhatsAppAppSecret:   getEnv("WHATSAPP_APP_SECRET", ""),
		RatesURL:            getEnv("RATES_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		LoanMarginPercent:   margin,
		SMTPHost:            getEnv("SMTP_HOST", "localhost"),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", "crm@leadbank.local"),
		DigestSchedule:      getEnv("DIGEST_SCHEDULE", "0 8 * * *"),
		StaleLeadDays:       staleDays,
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
