package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath         = "config/config.yml"
	DefaultOwnershipRulesPath = "config/ownership_rules.yml"
	DefaultMaxUploadBytes     = 10 * 1024 * 1024
	DefaultDecisionLockTTL    = 30 * time.Second
)

// DefaultAllowedTypes is the upload MIME allow-list used when none is configured
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type OwnershipRule struct {
	Method    string `yaml:"method"`
	Path      string `yaml:"path"`
	Source    string `yaml:"source"`
	ParamName string `yaml:"paramName"`
}

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type UploadConfig struct {
	MaxBytes     int64    `yaml:"max_bytes"`
	AllowedTypes []string `yaml:"allowed_types"`
}

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

type StorageConfig struct {
	Driver     string           `yaml:"driver"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type VerificationConfig struct {
	LockTTL string `yaml:"lock_ttl"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Logging      LoggingConfig      `yaml:"logging"`
	Upload       UploadConfig       `yaml:"upload"`
	Storage      StorageConfig      `yaml:"storage"`
	Twilio       TwilioConfig       `yaml:"twilio"`
	NATS         NATSConfig         `yaml:"nats"`
	Casbin       CasbinConfig       `yaml:"casbin"`
	Verification VerificationConfig `yaml:"verification"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	Logging         LoggingConfig
	MaxUploadBytes  int64
	AllowedTypes    []string
	Storage         StorageConfig
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	NATSURL         string
	CasbinModelPath string
	DecisionLockTTL time.Duration
	OwnershipRules  []OwnershipRule
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("TALENTNEST_CONFIG", DefaultConfigPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	ownershipRules, err := loadOwnershipRules(env("TALENTNEST_OWNERSHIP_RULES", DefaultOwnershipRulesPath))
	if err != nil {
		return nil, err
	}

	return FromFile(configFile, ownershipRules)
}

// FromFile flattens a parsed config file, applies environment overrides and defaults
func FromFile(configFile *ConfigFile, ownershipRules []OwnershipRule) (*Config, error) {
	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	lockTTL := DefaultDecisionLockTTL
	if configFile.Verification.LockTTL != "" {
		lockTTL, err = time.ParseDuration(configFile.Verification.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid verification lock TTL: %w", err)
		}
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	maxBytes := configFile.Upload.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	allowed := configFile.Upload.AllowedTypes
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}

	port := configFile.App.Port
	if port == 0 {
		port = 8080
	}

	storage := configFile.Storage
	storage.Driver = env("STORAGE_DRIVER", storage.Driver)
	if storage.Driver == "" {
		storage.Driver = "memory"
	}
	storage.Cloudinary.CloudName = env("CLOUDINARY_CLOUD_NAME", storage.Cloudinary.CloudName)
	storage.Cloudinary.APIKey = env("CLOUDINARY_API_KEY", storage.Cloudinary.APIKey)
	storage.Cloudinary.APISecret = env("CLOUDINARY_API_SECRET", storage.Cloudinary.APISecret)

	logging := configFile.Logging
	logging.Level = env("LOG_LEVEL", logging.Level)

	return &Config{
		Port:            env("PORT", strconv.Itoa(port)),
		GinMode:         env("GIN_MODE", configFile.App.GinMode),
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         redisDB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		Logging:         logging,
		MaxUploadBytes:  maxBytes,
		AllowedTypes:    allowed,
		Storage:         storage,
		TwilioSID:       env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		NATSURL:         env("NATS_URL", configFile.NATS.URL),
		CasbinModelPath: configFile.Casbin.ModelPath,
		DecisionLockTTL: lockTTL,
		OwnershipRules:  ownershipRules,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func loadOwnershipRules(path string) ([]OwnershipRule, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ownership rules file: %w", err)
	}

	var rules struct {
		Rules []OwnershipRule `yaml:"ownershipRules"`
	}
	if err := yaml.Unmarshal(bytes, &rules); err != nil {
		return nil, fmt.Errorf("could not parse ownership rules yaml: %w", err)
	}
	return rules.Rules, nil
}
