package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Ingest      IngestConfig
	Sources     SourcesConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// IngestConfig holds ingestion and aggregation configuration
type IngestConfig struct {
	CronToken          string
	DefaultHoursBack   int
	WindowHours        int
	MaxTopicsPerSource int
	MinClusterSize     int
	SampleSize         int
	EventsSubject      string
}

// SourcesConfig holds per-origin adapter configuration. Credentials are
// optional; a source without its credentials is left out of the active
// adapter set at startup.
type SourcesConfig struct {
	Reddit   RedditConfig
	RSS      RSSConfig
	Twitter  TwitterConfig
	Facebook FacebookConfig
}

// RedditConfig holds Reddit source configuration
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Subreddits   []string
	RequestDelay time.Duration
	PageLimit    int
}

// Enabled reports whether Reddit credentials are present.
func (c RedditConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.Username != "" && c.Password != ""
}

// RSSConfig holds RSS source configuration. RSS needs no credentials.
type RSSConfig struct {
	Feeds   []string
	Timeout time.Duration
}

// TwitterConfig holds Twitter source configuration
type TwitterConfig struct {
	BearerToken string
	Queries     []string
}

// Enabled reports whether a bearer token is present.
func (c TwitterConfig) Enabled() bool {
	return c.BearerToken != ""
}

// FacebookConfig holds Facebook source configuration
type FacebookConfig struct {
	AppID     string
	AppSecret string
	PageIDs   []string
}

// Enabled reports whether Facebook app credentials are present.
func (c FacebookConfig) Enabled() bool {
	return c.AppID != "" && c.AppSecret != ""
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 2*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "trends"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Ingest: IngestConfig{
			CronToken:          getEnv("CRON_TOKEN", ""),
			DefaultHoursBack:   getEnvAsInt("INGEST_DEFAULT_HOURS_BACK", 72),
			WindowHours:        getEnvAsInt("INGEST_WINDOW_HOURS", 24),
			MaxTopicsPerSource: getEnvAsInt("INGEST_MAX_TOPICS_PER_SOURCE", 5),
			MinClusterSize:     getEnvAsInt("INGEST_MIN_CLUSTER_SIZE", 2),
			SampleSize:         getEnvAsInt("INGEST_SAMPLE_SIZE", 5),
			EventsSubject:      getEnv("INGEST_EVENTS_SUBJECT", "trends.signal"),
		},
		Sources: SourcesConfig{
			Reddit: RedditConfig{
				ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
				ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
				Username:     getEnv("REDDIT_USERNAME", ""),
				Password:     getEnv("REDDIT_PASSWORD", ""),
				Subreddits:   getEnvAsSlice("REDDIT_SUBREDDITS", []string{"Teachers", "EdTech", "Professors", "education"}),
				RequestDelay: getEnvAsDuration("REDDIT_REQUEST_DELAY", 1*time.Second),
				PageLimit:    getEnvAsInt("REDDIT_PAGE_LIMIT", 50),
			},
			RSS: RSSConfig{
				Feeds: getEnvAsSlice("RSS_FEEDS", []string{
					"https://www.edsurge.com/news.rss",
					"https://feeds.feedburner.com/EducationWeek",
					"https://www.teachthought.com/feed/",
				}),
				Timeout: getEnvAsDuration("RSS_TIMEOUT", 10*time.Second),
			},
			Twitter: TwitterConfig{
				BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
				Queries:     getEnvAsSlice("TWITTER_QUERIES", []string{"#EdTech", "#TeacherLife", "#Education", "#Teachers"}),
			},
			Facebook: FacebookConfig{
				AppID:     getEnv("FACEBOOK_APP_ID", ""),
				AppSecret: getEnv("FACEBOOK_APP_SECRET", ""),
				PageIDs:   getEnvAsSlice("FACEBOOK_PAGE_IDS", []string{"EdWeek", "EdSurge", "TeachThought"}),
			},
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Ingest.CronToken == "" && config.Environment != "development" {
		return fmt.Errorf("cron token must be set in non-development environments")
	}

	if config.Ingest.WindowHours <= 0 {
		return fmt.Errorf("ingest window must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
