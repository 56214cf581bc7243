// Package config loads the application configuration from config.yaml,
// environment variables, and an optional .env file. The result is an
// immutable struct handed explicitly to each component; nothing reads
// viper after startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vnnews/crawler/internal/logger"
)

// Config is the full application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logger     logger.Config    `mapstructure:"logger"`
	Database   DatabaseConfig   `mapstructure:"database"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Crawler    CrawlerConfig    `mapstructure:"crawler"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Sanitizer  SanitizerConfig  `mapstructure:"sanitizer"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// HTTPConfig holds outbound HTTP settings shared by the page fetcher and
// the image downloader.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Accept    string        `mapstructure:"accept"`
}

// CrawlerConfig holds pipeline policy knobs.
type CrawlerConfig struct {
	// MinContentLength rejects extractions where both the plain text and
	// the sanitized HTML fall below this many characters.
	MinContentLength int `mapstructure:"min_content_length"`
	// MaxFeedItems caps how many entries of a feed are processed per crawl.
	MaxFeedItems int `mapstructure:"max_feed_items"`
	// MediaSubdir is the blob-store directory articles' media lands under.
	MediaSubdir string `mapstructure:"media_subdir"`
	// FeedInterval is the scheduler's polling cadence.
	FeedInterval time.Duration `mapstructure:"feed_interval"`
}

// StorageConfig selects and configures the blob store backend.
type StorageConfig struct {
	Backend string        `mapstructure:"backend"` // "fs" or "s3"
	FS      FSStoreConfig `mapstructure:"fs"`
	S3      S3StoreConfig `mapstructure:"s3"`
}

// FSStoreConfig configures the local filesystem blob store.
type FSStoreConfig struct {
	Root      string `mapstructure:"root"`
	PublicURL string `mapstructure:"public_url"`
}

// S3StoreConfig configures the S3-compatible blob store.
type S3StoreConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	PublicURL       string `mapstructure:"public_url"`
}

// SanitizerConfig is the HTML allow-list, loaded once and passed into the
// sanitizer rather than living as package globals.
type SanitizerConfig struct {
	Tags       []string            `mapstructure:"tags"`
	Attributes map[string][]string `mapstructure:"attributes"`
	Protocols  []string            `mapstructure:"protocols"`
}

// ClassifierRule maps a keyword set to a category name. Rule order is
// significant: the first rule with any keyword present wins.
type ClassifierRule struct {
	Keywords []string `mapstructure:"keywords"`
	Category string   `mapstructure:"category"`
}

// ClassifierConfig holds the keyword-to-category rules and the default
// category used when nothing matches.
type ClassifierConfig struct {
	Default string           `mapstructure:"default"`
	Rules   []ClassifierRule `mapstructure:"rules"`
}

// Load reads configuration from the given file (or the default search
// paths), environment variables, and .env, and decodes it.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// .env values become plain environment variables; godotenv never
	// overwrites variables that are already set.
	_ = godotenv.Load()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine: defaults plus environment variables apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults installs production-safe defaults, including the sanitizer
// allow-list and the keyword rules the classifier ships with.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "vnnews-crawler",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"encoding":    "json",
		"development": false,
	})

	v.SetDefault("database", map[string]any{
		"host":    "127.0.0.1",
		"port":    5432,
		"user":    "vnnews",
		"name":    "vnnews",
		"sslmode": "disable",
	})

	v.SetDefault("http", map[string]any{
		"timeout":    "25s",
		"user_agent": "VNNewsBot/1.0 (+contact@example.com) Chrome/127.0",
		"accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})

	v.SetDefault("crawler", map[string]any{
		"min_content_length": 300,
		"max_feed_items":     80,
		"media_subdir":       "articles",
		"feed_interval":      "30m",
	})

	v.SetDefault("storage", map[string]any{
		"backend": "fs",
		"fs": map[string]any{
			"root":       "./media",
			"public_url": "/media",
		},
	})

	v.SetDefault("sanitizer", map[string]any{
		"tags": []string{
			// baseline safe set
			"a", "abbr", "acronym", "code",
			// article content
			"p", "br", "strong", "em", "b", "i", "u", "span",
			"ul", "ol", "li", "blockquote",
			"h2", "h3", "h4", "h5", "h6",
			"figure", "figcaption", "img",
		},
		"attributes": map[string][]string{
			"a": {"href", "title", "rel", "target"},
			"img": {
				"src", "alt", "title", "loading",
				"data-src", "data-original", "srcset", "data-srcset", "sizes",
			},
		},
		"protocols": []string{"http", "https", "data"},
	})

	v.SetDefault("classifier", map[string]any{
		"default": "Tin tức",
		"rules": []map[string]any{
			{"keywords": []string{"bóng đá", "thể thao", "world cup", "v-league"}, "category": "Thể thao"},
			{"keywords": []string{"kinh tế", "tài chính", "chứng khoán", "doanh nghiệp", "giá xăng"}, "category": "Kinh tế"},
			{"keywords": []string{"giáo dục", "học sinh", "thi tốt nghiệp", "đại học"}, "category": "Giáo dục"},
			{"keywords": []string{"công nghệ", "ai ", "trí tuệ nhân tạo", "iphone", "android", "mạng xã hội"}, "category": "Công nghệ"},
			{"keywords": []string{"chính phủ", "quốc hội", "bộ trưởng", "thời sự"}, "category": "Thời sự"},
		},
	})
}
