package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"bookCatalog/package/logger"
)

const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	IsDebug bool          `yaml:"is_debug" env:"IS_DEBUG" env-default:"false"`
	Listen  Listener      `yaml:"listen"`
	Storage StorageConfig `yaml:"storage"`
	Key     JWTSecretKey  `yaml:"authorization"`
	CORS    CORSConfig    `yaml:"cors"`
	Log     LogConfig     `yaml:"log"`
}

type Listener struct {
	BindIp string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env:"PORT" env-default:"8080"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"json" env-description:"json, sqlite or postgres"`
	UsersFile string `yaml:"users_file" env:"USERS_FILE" env-default:"data/User.json"`
	BooksFile string `yaml:"books_file" env:"BOOKS_FILE" env-default:"data/Book.json"`
	// DSN is a file path for sqlite and a connection string for postgres.
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type JWTSecretKey struct {
	SecretKey string        `yaml:"key" env:"JWT_SECRET_KEY" env-required:"true"`
	TTL       time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads .env (if any), then the YAML file at path (if it exists), then
// the environment. Environment values win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		logger.Log.Infof("Reading app configuration from %s", path)
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		logger.Log.Info("Reading app configuration from environment")
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		logger.Log.Debug(help)
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverJSON:
		if c.Storage.UsersFile == "" || c.Storage.BooksFile == "" {
			return errors.New("storage: users_file and books_file are required for the json driver")
		}
	case DriverSQLite, DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage: dsn is required for the %s driver", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}
	if c.Key.TTL <= 0 {
		return errors.New("authorization: ttl must be positive")
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Listen.BindIp, c.Listen.Port)
}

// String masks the signing key.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Listen: %s, Storage: %s, Key: *** (masked), TTL: %s}",
		c.Address(), c.Storage.Driver, c.Key.TTL)
}
