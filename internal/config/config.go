package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listen settings for one of the two servers.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MongoConfig locates the document store. URI has no default: a missing
// store location is a fatal startup condition.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// BootstrapAdmin is the out-of-band administrator credential ensured at
// startup. Both fields empty means no bootstrap is performed.
type BootstrapAdmin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// JWTConfig holds the token signing secret for the admin API.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// Config is the application configuration shared by both servers.
type Config struct {
	Server      ServerConfig   `mapstructure:"server"`
	AdminServer ServerConfig   `mapstructure:"admin_server"`
	Mongo       MongoConfig    `mapstructure:"mongo"`
	Admin       BootstrapAdmin `mapstructure:"admin"`
	JWT         JWTConfig      `mapstructure:"jwt"`
}

// ErrMissingMongoURI is returned by Load when no store location was
// configured through the file or the environment.
var ErrMissingMongoURI = errors.New("mongo uri is not configured")

// Default returns the development configuration used by tests and local
// tooling.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		AdminServer: ServerConfig{
			Host: "0.0.0.0",
			Port: 8081,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://127.0.0.1:27017",
			Database: "ministore",
		},
		JWT: JWTConfig{
			Secret: "ministore-secret",
		},
	}
}

// Load reads config.yaml from path (optional) and merges environment
// overrides. The environment names match the original deployment surface:
// MONGODB_URI, ADMIN_USERNAME, ADMIN_PASSWORD, JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("admin_server.host", "0.0.0.0")
	v.SetDefault("admin_server.port", 8081)
	v.SetDefault("mongo.database", "ministore")
	v.SetDefault("jwt.secret", "ministore-secret")

	_ = v.BindEnv("mongo.uri", "MONGODB_URI")
	_ = v.BindEnv("admin.username", "ADMIN_USERNAME")
	_ = v.BindEnv("admin.password", "ADMIN_PASSWORD")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Mongo.URI == "" {
		return nil, ErrMissingMongoURI
	}
	return &cfg, nil
}
