/**
* Name: 			config.go
* Description: 		서버/클라이언트 공용 설정
* Workflow: 		.env 로드 -> 기본값 -> 설정 파일 -> SIACK_ 환경변수 순서로 덮어쓰기
 */
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is used only when no secret is configured.
const DefaultJWTSecret = "default_secret_key"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Files    FilesConfig    `mapstructure:"files"`
	Client   ClientConfig   `mapstructure:"client"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig API 서버 설정
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig sqlite 파일 경로
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// JWTConfig 토큰 서명 키와 만료 시간(초)
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expiry int    `mapstructure:"expiry"`
}

func (j JWTConfig) ExpiryDuration() time.Duration {
	return time.Duration(j.Expiry) * time.Second
}

// SigningKey returns the configured secret, or DefaultJWTSecret when unset.
func (j JWTConfig) SigningKey() string {
	if j.Secret == "" {
		return DefaultJWTSecret
	}
	return j.Secret
}

// SecurityConfig CORS, 요청 제한, 비밀번호 해시 비용
type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RatePerSecond  float64  `mapstructure:"rate_per_second"`
	RateBurst      int      `mapstructure:"rate_burst"`
	PasswordCost   int      `mapstructure:"password_cost"`
	InviteCode     string   `mapstructure:"invite_code"`
}

// FilesConfig 업로드 파일 저장 위치와 최대 크기(바이트)
type FilesConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
	MaxBytes  int64  `mapstructure:"max_bytes"`
}

// ClientConfig 터미널 클라이언트 설정
type ClientConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"`
	StateDir   string `mapstructure:"state_dir"`
	TokenTTL   int    `mapstructure:"token_ttl"`
	InviteCode string `mapstructure:"invite_code"`
}

func (c ClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c ClientConfig) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "./siack.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", 3600)
	v.SetDefault("security.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("security.rate_per_second", 5.0)
	v.SetDefault("security.rate_burst", 10)
	v.SetDefault("security.password_cost", 10)
	v.SetDefault("security.invite_code", "")
	v.SetDefault("files.upload_dir", "uploads")
	v.SetDefault("files.max_bytes", 5<<20)
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 10)
	v.SetDefault("client.state_dir", "")
	v.SetDefault("client.token_ttl", 3600)
	v.SetDefault("client.invite_code", "")
	v.SetDefault("logging.level", "info")
}

// Load reads configuration. path may be empty, in which case only defaults and environment apply.
func Load(path string) (*Config, error) {
	// .env 파일은 없어도 된다
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SIACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values neither binary can run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("jwt.expiry must be positive: %d", c.JWT.Expiry)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive: %d", c.Client.Timeout)
	}
	if c.Client.TokenTTL <= 0 {
		return fmt.Errorf("client.token_ttl must be positive: %d", c.Client.TokenTTL)
	}
	if c.Files.UploadDir == "" || c.Files.MaxBytes <= 0 {
		return errors.New("files.upload_dir and files.max_bytes are required")
	}
	if c.Security.RateBurst <= 0 || c.Security.RatePerSecond <= 0 {
		return errors.New("security rate limit must be positive")
	}
	return nil
}

// UsingDefaultSecret reports whether the JWT secret fell back to the built-in value.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret
}
