package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets yaml carry values like "15m" or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type JWTConfig struct {
	Secret          string   `yaml:"secret"`
	AccessTokenTTL  Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL Duration `yaml:"refresh_token_ttl"`
}

type ServiceConfig struct {
	BaseHostPath                string   `yaml:"base_host_path"`
	MaxVerificationCodeAttempts int      `yaml:"max_verification_code_attempts"`
	MaxResetPasswordAttempts    int      `yaml:"max_reset_password_attempts"`
	VerificationTokenTTL        Duration `yaml:"verification_token_ttl"`
	ResetPasswordTokenTTL       Duration `yaml:"reset_password_token_ttl"`
	BlacklistSweepInterval      Duration `yaml:"blacklist_sweep_interval"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT     JWTConfig     `yaml:"jwt"`
	Service ServiceConfig `yaml:"service"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.AccessTokenTTL == 0 {
		cfg.JWT.AccessTokenTTL = Duration(15 * time.Minute)
	}
	if cfg.JWT.RefreshTokenTTL == 0 {
		cfg.JWT.RefreshTokenTTL = Duration(30 * 24 * time.Hour)
	}
	if cfg.Service.MaxVerificationCodeAttempts == 0 {
		cfg.Service.MaxVerificationCodeAttempts = 3
	}
	if cfg.Service.MaxResetPasswordAttempts == 0 {
		cfg.Service.MaxResetPasswordAttempts = 3
	}
	if cfg.Service.VerificationTokenTTL == 0 {
		cfg.Service.VerificationTokenTTL = Duration(24 * time.Hour)
	}
	if cfg.Service.ResetPasswordTokenTTL == 0 {
		cfg.Service.ResetPasswordTokenTTL = Duration(time.Hour)
	}
	if cfg.Service.BlacklistSweepInterval == 0 {
		cfg.Service.BlacklistSweepInterval = Duration(time.Hour)
	}
}
