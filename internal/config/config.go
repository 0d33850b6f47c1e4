package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host          string `yaml:"host"`
		Port          int    `yaml:"port"`
		Env           string `yaml:"env"`
		PublicBaseURL string `yaml:"public_base_url"` // used in email links
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"` // gorm AutoMigrate on serve
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret"`
		TTL             int    `yaml:"ttl"`               // minutes
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"` // hours
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type          string `yaml:"type"`      // local, minio
		BasePath      string `yaml:"base_path"` // local only
		BaseURL       string `yaml:"base_url"`  // public URL prefix
		Endpoint      string `yaml:"endpoint"`
		Region        string `yaml:"region"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		UseSSL        bool   `yaml:"use_ssl"`
		PostsBucket   string `yaml:"posts_bucket"`
		AvatarsBucket string `yaml:"avatars_bucket"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`
		AllowedTypes []string `yaml:"allowed_types"`
		AvatarSize   int      `yaml:"avatar_size"`   // px, longest side
		ImageQuality int      `yaml:"image_quality"` // JPEG 1-100
	} `yaml:"upload"`

	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// Defaults returns a config usable for local development.
func Defaults() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.PublicBaseURL = "http://localhost:4000"

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 20
	cfg.Database.MaxIdleConns = 5

	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTLHours = 7 * 24

	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@creatorhub.local"
	cfg.Email.FromName = "CreatorHub"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"
	cfg.Storage.PostsBucket = "posts"
	cfg.Storage.AvatarsBucket = "avatars"

	cfg.Upload.MaxSize = 50 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "video/quicktime", "video/webm",
	}
	cfg.Upload.AvatarSize = 400
	cfg.Upload.ImageQuality = 85

	cfg.Kafka.Topic = "post-events"

	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	cfg.CORS.AllowedOrigins = []string{"*"}

	return &cfg
}

// Load builds the config: defaults, then the YAML file (optional), then .env
// and environment variables.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	// .env is optional, missing file is fine
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	v := viper.New()
	v.AutomaticEnv()

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setInt := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	setList := func(key string, dst *[]string) {
		if v.IsSet(key) {
			*dst = splitList(v.GetString(key))
		}
	}

	setString("SERVER_HOST", &cfg.Server.Host)
	setInt("SERVER_PORT", &cfg.Server.Port)
	setString("SERVER_ENV", &cfg.Server.Env)
	setString("PUBLIC_BASE_URL", &cfg.Server.PublicBaseURL)

	setString("DATABASE_DRIVER", &cfg.Database.Driver)
	setString("DATABASE_URL", &cfg.Database.DSN)
	setBool("DATABASE_AUTO_MIGRATE", &cfg.Database.AutoMigrate)

	setString("JWT_SECRET", &cfg.JWT.Secret)
	setInt("JWT_TTL", &cfg.JWT.TTL)

	setString("SMTP_HOST", &cfg.Email.SMTPHost)
	setInt("SMTP_PORT", &cfg.Email.SMTPPort)
	setString("SMTP_USER", &cfg.Email.SMTPUsername)
	setString("SMTP_PASSWORD", &cfg.Email.SMTPPassword)
	setString("SMTP_FROM", &cfg.Email.FromEmail)

	setString("STORAGE_TYPE", &cfg.Storage.Type)
	setString("STORAGE_BASE_PATH", &cfg.Storage.BasePath)
	setString("STORAGE_BASE_URL", &cfg.Storage.BaseURL)
	setString("MINIO_ENDPOINT", &cfg.Storage.Endpoint)
	setString("MINIO_ACCESS_KEY", &cfg.Storage.AccessKey)
	setString("MINIO_SECRET_KEY", &cfg.Storage.SecretKey)
	setBool("MINIO_USE_SSL", &cfg.Storage.UseSSL)

	setList("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	setString("KAFKA_TOPIC", &cfg.Kafka.Topic)

	setList("CORS_ALLOWED_ORIGINS", &cfg.CORS.AllowedOrigins)

	setString("FIRST_ADMIN_EMAIL", &cfg.FirstAdminEmail)
	setString("FIRST_ADMIN_PASSWORD", &cfg.FirstAdminPassword)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	var errs []error
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.url is required"))
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver: %q", c.Database.Driver))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	switch c.Storage.Type {
	case "local", "minio":
	default:
		errs = append(errs, fmt.Errorf("unsupported storage type: %q", c.Storage.Type))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LoadConfig loads into AppConfig, exiting on error.
func LoadConfig() {
	cfg, err := Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
