package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/client"
	"github.com/researchaccelerator-hub/outlier-search/common"
	"github.com/researchaccelerator-hub/outlier-search/config"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/researchaccelerator-hub/outlier-search/output"
	"github.com/researchaccelerator-hub/outlier-search/scoring"
	"github.com/researchaccelerator-hub/outlier-search/search"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by the commands of one invocation
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.SearchConfig
	logOutput  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logOutput: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "outlier-search",
		Short: "Find YouTube videos that outperform their channel",
		Long: `outlier-search queries the YouTube Data API for a keyword, scores every
candidate video with an outlier strategy and prints the top results.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return setupLogging(cfg.LogLevel, cfg.LogFormat, a.logOutput)
		},
	}

	defaults := config.DefaultSearchConfig()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a config file (yaml, json or toml)")
	flags.String("log-level", defaults.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", defaults.LogFormat, "Log format (console or json)")
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log_format", flags.Lookup("log-format"))

	rootCmd.AddCommand(newSearchCmd(a), newTierCmd(), newDurationCmd())
	return rootCmd
}

// setupLogging configures the global zerolog logger
func setupLogging(level, format string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	switch format {
	case "json":
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	case "console", "":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid log format '%s', must be one of: console, json", format)
	}
	return nil
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search for outlier videos matching a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd.Context(), strings.Join(args, " "), cmd.OutOrStdout())
		},
	}

	d := config.DefaultSearchConfig()

	flags := cmd.Flags()
	flags.String("api-key", "", "YouTube Data API key (or "+config.EnvPrefix+"_API_KEY)")
	flags.String("api-endpoint", d.APIEndpoint, "Override the YouTube Data API base URL")
	flags.Duration("http-timeout", d.HTTPTimeout, "Timeout of each API request")
	flags.String("strategy", d.Strategy, "Scoring strategy (subscriber, engagement, channel)")
	flags.String("engagement-mode", d.EngagementMode, "Duration adjustment of the engagement strategy (divide, decay)")
	flags.Float64("min-score", d.MinScore, "Only keep videos scoring strictly above this value")
	flags.String("duration", d.Duration, "Duration class (all, short, long)")
	flags.String("sort", d.Sort, "Sort key (score, views)")
	flags.String("channels", d.Channels, "Channel allow-list file or URL with one 'id[,name]' per line")
	flags.Int64("search-max-results", d.SearchMaxResults, "Results requested per search call (1-50)")
	flags.StringP("output", "o", d.Output, "Output format (table, json, jsonl)")

	for _, key := range []string{
		"api_key", "api_endpoint", "http_timeout", "strategy", "engagement_mode", "min_score",
		"duration", "sort", "channels", "search_max_results", "output",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(strings.ReplaceAll(key, "_", "-")))
	}

	return cmd
}

func (a *app) runSearch(ctx context.Context, keyword string, out io.Writer) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	strategy, err := cfg.BuildStrategy(time.Now)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	var channelIDs []string
	if cfg.Channels != "" {
		refs, err := common.LoadChannelAllowList(cfg.Channels)
		if err != nil {
			return fmt.Errorf("failed to load channel allow-list: %w", err)
		}
		channelIDs = common.ChannelIDs(refs)
		log.Info().Int("channels", len(channelIDs)).Str("source", cfg.Channels).Msg("Loaded channel allow-list")
	}

	criteria, err := cfg.Criteria(keyword, channelIDs)
	if err != nil {
		return err
	}

	opts := []client.Option{client.WithTimeout(cfg.HTTPTimeout)}
	if cfg.APIEndpoint != "" {
		opts = append(opts, client.WithEndpoint(cfg.APIEndpoint))
	}
	yt, err := client.NewYouTubeDataClient(cfg.APIKey, opts...)
	if err != nil {
		return err
	}
	if err := yt.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := yt.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect YouTube client")
		}
	}()

	searcher := search.NewSearcher(yt, strategy, search.WithSearchResults(cfg.SearchMaxResults))
	results, err := searcher.RunSearch(ctx, criteria)
	if errors.Is(err, search.ErrNoResults) {
		fmt.Fprintf(out, "No outliers found for %q above score %.2f\n", criteria.Keyword, criteria.MinScore)
		return nil
	}
	if err != nil {
		return err
	}

	return output.Render(out, format, results)
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <multiplier>",
		Short: "Print the outlier tier of a channel multiplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			multiplier, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid multiplier '%s': %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2fx %s\n", multiplier, scoring.Tier(multiplier))
			return nil
		},
	}
}

func newDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <iso8601>",
		Short: "Parse an ISO-8601 video duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := youtube.ParseDuration(args[0])
			if err != nil {
				log.Warn().Err(err).Msg("Duration could not be parsed")
			}
			class := youtube.DurationLong
			if youtube.DurationShort.Matches(seconds) {
				class = youtube.DurationShort
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d seconds (%s, %s)\n", seconds, youtube.FormatDuration(seconds), class)
			return nil
		},
	}
}
