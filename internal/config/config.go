package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file, environment variables or command line flags.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Documents DocumentsConfig `mapstructure:"documents"`
	S3        S3Config        `mapstructure:"s3"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig selects the record store. Driver is "mongo" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// JWTConfig defines token signing configuration.
// A zero Expiration issues tokens without an exp claim.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// DocumentsConfig describes the on-disk document tree and how it is served.
type DocumentsConfig struct {
	Root      string `mapstructure:"root"`
	URLPrefix string `mapstructure:"url_prefix"`
	MaxSize   int64  `mapstructure:"max_size"`
}

// S3Config configures the optional bucket mirror of stored documents.
type S3Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var ErrMissingSecret = errors.New("jwt.secret must be set")

// LoadConfig reads configuration from path/config.yaml, environment variables
// (server.address -> SERVER_ADDRESS) and, when flags is non-nil, the --address flag.
func LoadConfig(path string, flags *pflag.FlagSet) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "intern_track")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "0s")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("documents.root", "documents")
	v.SetDefault("documents.url_prefix", "/documents")
	v.SetDefault("documents.max_size", 10*1024*1024)
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if flags != nil {
		if f := flags.Lookup("address"); f != nil {
			if err = v.BindPFlag("server.address", f); err != nil {
				return
			}
		}
	}

	err = v.ReadInConfig()
	// A missing config file is fine, defaults and env vars still apply.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if config.JWT.Secret == "" {
		return config, ErrMissingSecret
	}
	return config, nil
}
