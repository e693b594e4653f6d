package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	Auth      *AuthConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // Stockmate
	Environment    string        // development, production
	Port           string        // :8084
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	ProductListTTL  time.Duration
	CategoryListTTL time.Duration
	SalesSummaryTTL time.Duration
}

type AuthConfig struct {
	// Exactly one administrator. AdminPasswordHash (argon2id) wins over the
	// plain AdminPassword when both are set.
	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
	SessionExpiry     time.Duration
}

type RateLimitConfig struct {
	Enabled     bool
	AuthLimit   int
	AuthWindow  time.Duration
	WriteLimit  int
	WriteWindow time.Duration
	ReadLimit   int
	ReadWindow  time.Duration
}
