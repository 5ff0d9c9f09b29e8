package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HTTPPort           int           `yaml:"http_port" validate:"required,min=1,max=65535"`
	JwtTTL             time.Duration `yaml:"jwt_ttl" validate:"required"`
	ConfirmationWindow time.Duration `yaml:"confirmation_window" validate:"required"`
	PageSize           int           `yaml:"page_size" validate:"required,min=1,max=1000"`
	CorsOrigins        []string      `yaml:"cors_origins"`
	SecureHeadersHSTS  bool          `yaml:"secure_headers_hsts"` // only behind https
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`

	// re-read the caller's role from the database on every authenticated request
	ResolveRolePerRequest bool `yaml:"resolve_role_per_request"`

	EmailWorkers    int `yaml:"email_workers" validate:"required,min=1"`
	EmailQueueSize  int `yaml:"email_queue_size" validate:"required,min=1"`
	EmailMaxRetries int `yaml:"email_max_retries" validate:"min=0"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server" validate:"required"`
	SMTPPort   int    `yaml:"smtp_port" validate:"required"`
	Username   string `yaml:"username" validate:"required"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

type Private struct {
	Pg                 Pg     `yaml:"pg" validate:"required"`
	JwtKey             string `yaml:"jwt_key" validate:"required"`
	ConfirmationSecret string `yaml:"confirmation_secret" validate:"required"`
	Email              Email  `yaml:"email" validate:"required"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (s *Config) ConfirmationSecret() string {
	return s.Private.ConfirmationSecret
}

func (s *Config) Addr() string {
	return fmt.Sprintf(":%d", s.Public.HTTPPort)
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// applyEnv lets deployments keep secrets out of private.yaml
func applyEnv(cfg *Config) {
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		cfg.Public.HTTPPort = port
	}
	if v := os.Getenv("YAMDB_JWT_KEY"); v != "" {
		cfg.Private.JwtKey = v
	}
	if v := os.Getenv("YAMDB_CONFIRMATION_SECRET"); v != "" {
		cfg.Private.ConfirmationSecret = v
	}
	if v := os.Getenv("YAMDB_PG_PASSWORD"); v != "" {
		cfg.Private.Pg.Password = v
	}
}

// Validate checks required fields
func (s *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(s); err != nil {
		return err
	}
	return nil
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
