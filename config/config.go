// Package config provides the configuration of the outlier search tool
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/researchaccelerator-hub/outlier-search/output"
	"github.com/researchaccelerator-hub/outlier-search/scoring"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "OUTLIER"

// SearchConfig holds everything needed to run a search
type SearchConfig struct {
	// YouTube Data API access
	APIKey string `mapstructure:"api_key" yaml:"api_key" json:"-"`
	// APIEndpoint overrides the API base URL
	APIEndpoint string        `mapstructure:"api_endpoint" yaml:"api_endpoint" json:"api_endpoint,omitempty"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" yaml:"http_timeout" json:"http_timeout"`

	// Logging: level name and "console" or "json"
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`

	// Strategy is one of "subscriber", "engagement", "channel"
	Strategy string `mapstructure:"strategy" yaml:"strategy" json:"strategy"`
	// EngagementMode is "divide" or "decay"
	EngagementMode string  `mapstructure:"engagement_mode" yaml:"engagement_mode" json:"engagement_mode"`
	MinScore       float64 `mapstructure:"min_score" yaml:"min_score" json:"min_score"`
	// Duration is one of "all", "short", "long"
	Duration string `mapstructure:"duration" yaml:"duration" json:"duration"`
	// Sort is "score" or "views"
	Sort string `mapstructure:"sort" yaml:"sort" json:"sort"`
	// Channels is an allow-list file path or URL
	Channels         string `mapstructure:"channels" yaml:"channels" json:"channels,omitempty"`
	SearchMaxResults int64  `mapstructure:"search_max_results" yaml:"search_max_results" json:"search_max_results"`

	// Output is "table", "json" or "jsonl"
	Output string `mapstructure:"output" yaml:"output" json:"output"`
}

// DefaultSearchConfig returns a configuration with sensible defaults
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		HTTPTimeout:      30 * time.Second,
		LogLevel:         "info",
		LogFormat:        "console",
		Strategy:         string(scoring.KindSubscriberNormalized),
		EngagementMode:   string(scoring.ModeDivide),
		MinScore:         5.0,
		Duration:         string(youtube.DurationAll),
		Sort:             string(youtube.SortByScore),
		SearchMaxResults: 50,
		Output:           "table",
	}
}

// SetDefaults registers the defaults with v so that env vars and config
// files can override each key
func SetDefaults(v *viper.Viper) {
	d := DefaultSearchConfig()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("api_endpoint", d.APIEndpoint)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("engagement_mode", d.EngagementMode)
	v.SetDefault("min_score", d.MinScore)
	v.SetDefault("duration", d.Duration)
	v.SetDefault("sort", d.Sort)
	v.SetDefault("channels", d.Channels)
	v.SetDefault("search_max_results", d.SearchMaxResults)
	v.SetDefault("output", d.Output)
}

// Load reads the configuration from v. When configFile is non-empty it is
// read first; environment variables prefixed with OUTLIER_ and any flags
// bound to v take precedence over it.
func Load(v *viper.Viper, configFile string) (*SearchConfig, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &SearchConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *SearchConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (set %s_API_KEY or --api-key)", EnvPrefix)
	}

	kind, err := scoring.ParseKind(c.Strategy)
	if err != nil {
		return err
	}
	if kind == scoring.KindEngagementDuration {
		if _, err := scoring.ParseMode(c.EngagementMode); err != nil {
			return err
		}
	}

	if _, err := youtube.ParseDurationClass(c.Duration); err != nil {
		return err
	}
	if _, err := youtube.ParseSortKey(c.Sort); err != nil {
		return err
	}

	if c.SearchMaxResults < 1 || c.SearchMaxResults > 50 {
		return fmt.Errorf("search_max_results must be between 1 and 50")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format '%s', must be one of: console, json", c.LogFormat)
	}

	if _, err := output.ParseFormat(c.Output); err != nil {
		return err
	}

	return nil
}

// BuildStrategy builds the scoring strategy selected by the configuration
func (c *SearchConfig) BuildStrategy(now func() time.Time) (scoring.Strategy, error) {
	kind, err := scoring.ParseKind(c.Strategy)
	if err != nil {
		return nil, err
	}

	var mode scoring.DurationMode
	if kind == scoring.KindEngagementDuration {
		if mode, err = scoring.ParseMode(c.EngagementMode); err != nil {
			return nil, err
		}
	}
	return scoring.New(kind, mode, now)
}

// Criteria builds the search criteria for keyword, scoped to channelIDs
func (c *SearchConfig) Criteria(keyword string, channelIDs []string) (youtube.SearchCriteria, error) {
	durationClass, err := youtube.ParseDurationClass(c.Duration)
	if err != nil {
		return youtube.SearchCriteria{}, err
	}
	sortKey, err := youtube.ParseSortKey(c.Sort)
	if err != nil {
		return youtube.SearchCriteria{}, err
	}

	return youtube.SearchCriteria{
		Keyword:       strings.TrimSpace(keyword),
		MinScore:      c.MinScore,
		DurationClass: durationClass,
		SortKey:       sortKey,
		ChannelIDs:    channelIDs,
	}, nil
}
