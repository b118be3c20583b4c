package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	DBPath         string
	SecretKey      string
	AccessTokenTTL time.Duration
	OTPTTL         time.Duration
	AdminEmails    []string
	UploadDir      string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	FromEmail      string
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "8000"),
		DBPath:         getenv("DB_PATH", "data/mess_rebate.db"),
		SecretKey:      getenv("SECRET_KEY", "change_me_in_production"),
		AccessTokenTTL: getenvMinutes("ACCESS_TOKEN_EXPIRE_MINUTES", 30*time.Minute),
		OTPTTL:         getenvMinutes("OTP_EXPIRE_MINUTES", 10*time.Minute),
		AdminEmails:    getenvList("ADMIN_EMAILS", "admin1@hall6.ac.in,admin2@hall6.ac.in,warden@hall6.ac.in,mess.admin@hall6.ac.in"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads/documents"),
		SMTPHost:       getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getenvInt("SMTP_PORT", 587),
		SMTPUsername:   getenv("SMTP_USERNAME", ""),
		SMTPPassword:   getenv("SMTP_PASSWORD", ""),
		FromEmail:      getenv("FROM_EMAIL", ""),
	}
}

// AdminEmailSet returns the fixed admin allowlist, normalized the same way
// login emails are.
func (config Config) AdminEmailSet() map[string]struct{} {
	set := make(map[string]struct{}, len(config.AdminEmails))
	for _, email := range config.AdminEmails {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

func getenv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvMinutes(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return fallback
}

func getenvList(key string, fallback string) []string {
	raw := getenv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
