package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard backend.
// The values are read by Viper from config.yaml or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects the store. Driver is "mongo" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// S3Config points at the bucket that receives published roster exports.
// An empty BucketName disables publishing.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// AuthConfig covers session tokens and the account provisioning hook.
type AuthConfig struct {
	Secret           string        `mapstructure:"secret"`
	Issuer           string        `mapstructure:"issuer"`
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
	HookSecret       string        `mapstructure:"hook_secret"`
	InstructorDomain string        `mapstructure:"instructor_domain"`
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// ErrAuthSecretMissing is returned when no token signing secret is configured.
var ErrAuthSecretMissing = errors.New("auth.secret must be set")

// RequireSecret fails when tokens would be signed with an empty key.
func (c AuthConfig) RequireSecret() error {
	if c.Secret == "" {
		return ErrAuthSecretMissing
	}
	return nil
}

// LoadConfig reads configuration from path/config.yaml and the environment.
// A missing file is not an error; defaults and env vars are used instead.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitu")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("auth.issuer", "fitu")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("auth.instructor_domain", "@dict.gov.ph")
	// Bound explicitly so AutomaticEnv sees them without a config file.
	for _, key := range []string{"s3.endpoint", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name", "auth.secret", "auth.hook_secret"} {
		_ = v.BindEnv(key)
	}

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.Database.Driver != DriverMongo && config.Database.Driver != DriverMemory {
		return config, errors.New("database.driver must be mongo or memory")
	}
	return config, nil
}
