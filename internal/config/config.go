package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (FOLIO_HTTP_PORT, ...).
const EnvPrefix = "FOLIO"

// Config holds application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Contact ContactConfig `mapstructure:"contact"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Content ContentConfig `mapstructure:"content"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// NotifyConfig holds notification queue settings.
type NotifyConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ContactConfig holds submission workflow settings.
type ContactConfig struct {
	ResetDelay  time.Duration `mapstructure:"reset_delay"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
	SendDelay   time.Duration `mapstructure:"send_delay"`
	FailWith    string        `mapstructure:"fail_with"`
}

// RedisConfig holds the submission guard settings. An empty Addr disables
// Redis and the in-process guard is used instead.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// ContentConfig holds upstream content settings.
type ContentConfig struct {
	GitHubUser string        `mapstructure:"github_user"`
	DevToTag   string        `mapstructure:"devto_tag"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type loadOptions struct {
	configFile string
	envFiles   []string
	binders    []func(*viper.Viper) error
}

// Option configures Load.
type Option func(*loadOptions)

// WithConfigFile reads an explicit config file instead of searching for
// folio.yaml in the working directory.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFiles loads dotenv files before reading the environment.
// Missing files are skipped. Default: .env
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = paths
	}
}

// WithBinder lets the caller bind command-line flags so they take precedence.
func WithBinder(fn func(*viper.Viper) error) Option {
	return func(o *loadOptions) {
		o.binders = append(o.binders, fn)
	}
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("http.port", 8080)
	v.SetDefault("notify.ttl", 4000*time.Millisecond)
	v.SetDefault("contact.reset_delay", 3000*time.Millisecond)
	v.SetDefault("contact.send_timeout", 10*time.Second)
	v.SetDefault("contact.send_delay", 1500*time.Millisecond)
	v.SetDefault("contact.fail_with", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "folio:")
	v.SetDefault("content.github_user", "Var1d")
	v.SetDefault("content.devto_tag", "gamedev")
	v.SetDefault("content.timeout", 5*time.Second)
}

// Load reads configuration from defaults, an optional folio.yaml, dotenv
// files, the environment (prefix FOLIO_) and bound flags, in increasing
// precedence.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	for _, path := range o.envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("yaml")
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
	} else {
		v.SetConfigName("folio")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for _, bind := range o.binders {
		if err := bind(v); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the components cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port out of range: %d", c.HTTP.Port))
	}
	if c.Notify.TTL <= 0 {
		errs = append(errs, fmt.Errorf("notify.ttl must be positive"))
	}
	if c.Contact.ResetDelay <= 0 {
		errs = append(errs, fmt.Errorf("contact.reset_delay must be positive"))
	}
	if c.Contact.SendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("contact.send_timeout must be positive"))
	}
	if c.Contact.SendDelay < 0 {
		errs = append(errs, fmt.Errorf("contact.send_delay must not be negative"))
	}
	return errors.Join(errs...)
}
