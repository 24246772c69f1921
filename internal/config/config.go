package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Everything has a working default so the server can
// start against a local MySQL with nothing but `go run`; production
// deployments override via the environment (or a .env file loaded in main).
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on (default 5000)
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret        string // secret used to sign vendor session JWTs
	VendorTokenTTL   int    // vendor token time-to-live in minutes
	BcryptCost       int    // bcrypt cost for vendor credential hashing
	VendorSeedSecret string // password seeded into every food court credential row

	SMTPHost string // SMTP server host; empty disables real delivery
	SMTPPort string // SMTP server port
	SMTPUser string // SMTP auth username (also the From address)
	SMTPPass string // SMTP auth password

	LogLevel string // zap log level (debug/info/warn/error)
}

// Load reads configuration values from environment variables and returns a
// Config. Unset variables fall back to the documented defaults.
func Load() Config {
	return Config{
		Env:    getenv("APP_ENV", "dev"),
		Port:   getenv("PORT", "5000"),
		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"), // empty allowed
		DBHost: getenv("DB_HOST", "127.0.0.1"),
		DBPort: getenv("DB_PORT", "3306"),
		DBName: getenv("DB_NAME", "kiiteats"),

		JWTSecret:        getenv("JWT_SECRET", "kiiteats-dev-secret"),
		VendorTokenTTL:   envIntDef("VENDOR_TOKEN_TTL_MIN", 720),
		BcryptCost:       envIntDef("BCRYPT_COST", 10),
		VendorSeedSecret: getenv("VENDOR_DEFAULT_PASSWORD", "admin123"),

		SMTPHost: os.Getenv("EMAIL_HOST"),
		SMTPPort: getenv("EMAIL_PORT", "587"),
		SMTPUser: os.Getenv("EMAIL_USER"),
		SMTPPass: os.Getenv("EMAIL_PASS"),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}
}

// envIntDef retrieves an integer environment variable, falling back to the
// default on missing or malformed values.
func envIntDef(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
