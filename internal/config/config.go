package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"` // Bind address, defaults to all interfaces.
	Port int    `yaml:"port"` // Listen port.
}

// DatabaseConfig holds the database DSN.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // PostgreSQL DSN or SQLite path.
}

// JWTConfig holds admin token signing settings.
type JWTConfig struct {
	Secret      string        `yaml:"secret"` // HS256 signing secret.
	TokenExpiry time.Duration `yaml:"-"`      // Token lifetime, defaults to 24h.
}

// UnmarshalYAML decodes the token expiry from a duration string like
// "24h".
func (j *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret      string `yaml:"secret"`
		TokenExpiry string `yaml:"token-expiry"`
	}
	if errDecode := value.Decode(&raw); errDecode != nil {
		return errDecode
	}
	j.Secret = raw.Secret
	if strings.TrimSpace(raw.TokenExpiry) != "" {
		parsed, errParse := time.ParseDuration(raw.TokenExpiry)
		if errParse != nil {
			return fmt.Errorf("config: invalid jwt token-expiry: %w", errParse)
		}
		j.TokenExpiry = parsed
	}
	return nil
}

// AdminConfig seeds the first administrator account.
type AdminConfig struct {
	Username string `yaml:"username"` // Seed admin login.
	Password string `yaml:"password"` // Seed admin plaintext password, hashed on insert.
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host      string `yaml:"host"`       // SMTP server host.
	Port      int    `yaml:"port"`       // SMTP server port.
	Username  string `yaml:"username"`   // SMTP auth user.
	Password  string `yaml:"password"`   // SMTP auth password.
	FromName  string `yaml:"from-name"`  // Sender display name.
	FromEmail string `yaml:"from-email"` // Sender address.
	ContactTo string `yaml:"contact-to"` // Destination for contact form mail.
}

// StorageConfig holds blob storage settings.
type StorageConfig struct {
	BasePath string `yaml:"base-path"` // Root directory for stored files.
	BaseURL  string `yaml:"base-url"`  // Public URL prefix for stored files.
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // logrus level name, defaults to info.
	File  string `yaml:"file"`  // Optional log file, rotated when set.
}

// Config aggregates all application settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads the YAML config at path and applies environment overrides.
// A missing file is not an error; environment variables alone can carry
// a complete configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
			}
		case os.IsNotExist(errRead):
			// fall through to env + defaults
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if errValidate := cfg.validate(); errValidate != nil {
		return nil, errValidate
	}
	return cfg, nil
}

// applyEnvOverrides maps environment variables onto the config.
func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Server.Host, "SERVER_HOST")
	overrideInt(&cfg.Server.Port, "SERVER_PORT")
	overrideString(&cfg.Database.DSN, "DATABASE_DSN")
	overrideString(&cfg.JWT.Secret, "JWT_SECRET")
	overrideString(&cfg.Admin.Username, "ADMIN_USERNAME")
	overrideString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	overrideString(&cfg.SMTP.Host, "SMTP_HOST")
	overrideInt(&cfg.SMTP.Port, "SMTP_PORT")
	overrideString(&cfg.SMTP.Username, "SMTP_USERNAME")
	overrideString(&cfg.SMTP.Password, "SMTP_PASSWORD")
	overrideString(&cfg.SMTP.FromName, "SMTP_FROM_NAME")
	overrideString(&cfg.SMTP.FromEmail, "SMTP_FROM_EMAIL")
	overrideString(&cfg.SMTP.ContactTo, "CONTACT_TO")
	overrideString(&cfg.Storage.BasePath, "STORAGE_BASE_PATH")
	overrideString(&cfg.Storage.BaseURL, "STORAGE_BASE_URL")
	overrideString(&cfg.Log.Level, "LOG_LEVEL")
	overrideString(&cfg.Log.File, "LOG_FILE")
}

// applyDefaults fills unset fields with working defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		cfg.Database.DSN = "data/site.db"
	}
	if cfg.JWT.TokenExpiry <= 0 {
		cfg.JWT.TokenExpiry = 24 * time.Hour
	}
	if strings.TrimSpace(cfg.Storage.BasePath) == "" {
		cfg.Storage.BasePath = "data/uploads"
	}
	if strings.TrimSpace(cfg.Storage.BaseURL) == "" {
		cfg.Storage.BaseURL = "/files"
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
}

// validate rejects configurations the server cannot run with.
func (c *Config) validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port: %d", c.Server.Port)
	}
	return nil
}

// SMTPConfigured reports whether outbound mail can be sent.
func (c *Config) SMTPConfigured() bool {
	return strings.TrimSpace(c.SMTP.Host) != "" && strings.TrimSpace(c.SMTP.FromEmail) != ""
}

func overrideString(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*dst = strings.TrimSpace(value)
	}
}

func overrideInt(dst *int, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, errParse := strconv.Atoi(strings.TrimSpace(value)); errParse == nil {
			*dst = parsed
		}
	}
}
