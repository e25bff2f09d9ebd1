package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config     *Config
	configOnce sync.Once

	// source resolves keys from the environment first, then config.yaml
	source *viper.Viper
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // mysql (default), postgres, sqlite
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite file or DSN
	DBMigrationMode string // "auto" (default) or "drop"
	DBLogSQL        bool

	// Server
	ServerPort        string
	CORSAllowedOrigin string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// OTP
	OTPStore       string // redis (default) or memory
	OTPTTL         time.Duration
	OTPMaxAttempts int

	// JWT Authentication
	JWTSecretKey string
	JWTExpiry    time.Duration

	// Mail transport
	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string

	// Upload storage
	StorageDriver   string // local (default) or s3
	UploadDir       string
	UploadMaxBytes  int64
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PathStyle     bool
	S3PublicBaseURL string

	// Logging
	LogLevel string
	LogDir   string

	// Admin
	DefaultAdminEmployeeID string
	DefaultAdminEmail      string
	DefaultAdminPassword   string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	source = viper.New()
	source.SetConfigName("config")
	source.SetConfigType("yaml")
	source.AddConfigPath(".")
	source.AutomaticEnv()
	if err := source.ReadInConfig(); err != nil {
		fmt.Println("No config file found, using environment and defaults")
	}

	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))
	prefix := ""
	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	jwtSecret := getEnv("JWT_SECRET_KEY", "sk-barangay-secret-change-in-production")
	if envType == "SERVER" {
		jwtSecret = getEnvRequired("JWT_SECRET_KEY")
	}

	return &Config{
		EnvType: envType,

		// Database config - environment-specific variables win over plain ones
		DBDriver:        strings.ToLower(getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", "mysql"))),
		DBHost:          getEnv(prefix+"DB_HOST", getEnv("DB_HOST", "localhost")),
		DBUser:          getEnv(prefix+"DB_USER", getEnv("DB_USER", "root")),
		DBPassword:      getEnv(prefix+"DB_PASSWORD", getEnv("DB_PASSWORD", "")),
		DBName:          getEnv(prefix+"DB_NAME", getEnv("DB_NAME", "sk_barangay")),
		DBPort:          getEnv(prefix+"DB_PORT", getEnv("DB_PORT", "3306")),
		DBPath:          getEnv(prefix+"DB_PATH", getEnv("DB_PATH", "sk_barangay.db")),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", getEnv("DB_MIGRATION_MODE", "auto")),
		DBLogSQL:        getEnvAsBool("DB_LOG_SQL", false),

		// Server config
		ServerPort:        getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "5000")),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		// Redis config
		RedisHost:     getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:     getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// OTP config
		OTPStore:       strings.ToLower(getEnv("OTP_STORE", "redis")),
		OTPTTL:         time.Duration(getEnvAsInt("OTP_TTL_MINUTES", 10)) * time.Minute,
		OTPMaxAttempts: getEnvAsInt("OTP_MAX_ATTEMPTS", 5),

		// JWT config
		JWTSecretKey: jwtSecret,
		JWTExpiry:    time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		// Mail config
		MailHost:     getEnv("MAIL_HOST", ""),
		MailPort:     getEnvAsInt("MAIL_PORT", 587),
		MailUser:     getEnv("MAIL_USER", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", getEnv("MAIL_USER", "no-reply@localhost")),

		// Storage config
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:  int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3PathStyle:     getEnvAsBool("S3_PATH_STYLE", false),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		// Logging config
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogDir:   getEnv("LOG_DIR", "logs"),

		// Admin config
		DefaultAdminEmployeeID: getEnv("DEFAULT_ADMIN_EMPLOYEE_ID", "ADMIN-001"),
		DefaultAdminEmail:      getEnv("DEFAULT_ADMIN_EMAIL", "admin@localhost"),
		DefaultAdminPassword:   getEnv("DEFAULT_ADMIN_PASSWORD", ""),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBPath
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true"
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// MailEnabled reports whether an SMTP relay is configured
func (c *Config) MailEnabled() bool {
	return c.MailHost != ""
}

// Helper function to get a value with default
func getEnv(key, defaultValue string) string {
	if source != nil && source.IsSet(key) {
		return source.GetString(key)
	}
	return defaultValue
}

// Helper function to get a value as integer with default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get a value as boolean with default
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvRequired panics when the key is missing or empty
func getEnvRequired(key string) string {
	if value := getEnv(key, ""); value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
