package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/ytcomments/internal/comments"
	"github.com/example/ytcomments/internal/export"
)

// EnvPrefix namespaces every setting in the environment, e.g. YTC_API_KEY.
const EnvPrefix = "YTC"

// ErrHelp is returned when -h/--help was requested.
var ErrHelp = pflag.ErrHelp

type Config struct {
	APIKey         string
	Inputs         []string
	Output         string
	Timestamps     bool
	PageSize       int64
	Concurrency    int
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	DatabaseURL    string
	NATSURL        string
	// Endpoint overrides the YouTube API base URL.
	Endpoint string
	// ConfigFile is the file settings were read from, if any.
	ConfigFile string
}

// Load resolves settings from flags, YTC_* env vars, an optional .env file
// and an optional ytcomments.yaml, in that order of precedence.
func Load(args []string, stderr io.Writer) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIKey:         strings.TrimSpace(v.GetString("api-key")),
		Inputs:         flags.Args(),
		Output:         strings.TrimSpace(v.GetString("output")),
		Timestamps:     v.GetBool("timestamps"),
		PageSize:       v.GetInt64("page-size"),
		Concurrency:    v.GetInt("concurrency"),
		RequestTimeout: v.GetDuration("request-timeout"),
		LogLevel:       strings.TrimSpace(v.GetString("log-level")),
		LogFormat:      strings.TrimSpace(v.GetString("log-format")),
		DatabaseURL:    strings.TrimSpace(v.GetString("database-url")),
		NATSURL:        strings.TrimSpace(v.GetString("nats-url")),
		Endpoint:       strings.TrimSpace(v.GetString("endpoint")),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY"))
	}
	if cfg.Output == "" {
		cfg.Output = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Validate checks the settings once the list of inputs is final.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("api key is required (--api-key, YTC_API_KEY or YOUTUBE_API_KEY)")
	}
	if c.PageSize < 1 || c.PageSize > comments.MaxPageSize {
		return fmt.Errorf("page-size must be between 1 and %d, got %d", comments.MaxPageSize, c.PageSize)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request-timeout must not be negative, got %s", c.RequestTimeout)
	}
	if len(c.Inputs) == 0 {
		return errors.New("at least one video id or url is required")
	}
	if len(c.Inputs) > 1 && export.NewFileSink(c.Output, false).SingleFile() {
		return fmt.Errorf("output %q is a single file but %d videos were given; pass a directory", c.Output, len(c.Inputs))
	}
	return nil
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("ytcomments", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ytcomments [flags] [VIDEO_ID_OR_URL ...]\n\n")
		fmt.Fprintf(stderr, "Fetches every comment and reply of each video into <title>.txt.\n")
		fmt.Fprintf(stderr, "Without arguments the video list is read from a prompt.\n\nFlags:\n")
		flags.PrintDefaults()
	}

	flags.StringP("api-key", "k", "", "YouTube Data API v3 key")
	flags.StringP("output", "o", ".", "output directory, or a .txt file when fetching a single video")
	flags.Bool("timestamps", false, "prefix each line with the comment's publish time")
	flags.Int64("page-size", comments.MaxPageSize, "items requested per page (1-100)")
	flags.IntP("concurrency", "c", 1, "videos processed at the same time")
	flags.Duration("request-timeout", 30*time.Second, "timeout for each API request (0 disables)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("database-url", "", "also mirror comments into this Postgres database")
	flags.String("nats-url", "", "publish per-video outcome events to this NATS server")
	flags.String("config", "", "config file (default ./ytcomments.yaml)")
	flags.String("endpoint", "", "override the YouTube API base URL")
	_ = flags.MarkHidden("endpoint")
	return flags
}

func readConfigFile(v *viper.Viper) error {
	if path := strings.TrimSpace(v.GetString("config")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("ytcomments")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "ytcomments"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
