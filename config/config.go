package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "CATALOG"
	configFileEnvName = "CATALOG_CONFIG_FILE"
)

const (
	ModeTUI  = "tui"
	ModeHTTP = "http"
)

var themes = []string{"dark", "light", "notty"}

type Source struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	CAFile       string        `mapstructure:"ca_file"`
	SnapshotFile string        `mapstructure:"snapshot_file"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	LogFile        string     `mapstructure:"log_file"`
	Mode           string     `mapstructure:"mode"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Theme          string     `mapstructure:"theme"`
	Source         Source     `mapstructure:"source"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_file", "")
	v.SetDefault("mode", ModeTUI)
	v.SetDefault("http_server_addr", "127.0.0.1:8080")
	v.SetDefault("theme", "dark")
	v.SetDefault("source.endpoint", "https://fakestoreapi.com/products")
	v.SetDefault("source.timeout", time.Duration(0))
	v.SetDefault("source.max_attempts", 1)
	v.SetDefault("source.ca_file", "")
	v.SetDefault("source.snapshot_file", "")
}

// Load reads the configuration of the process and exits on failure.
func Load() Config {
	cfg, err := Parse(os.Args[1:])
	if err != nil {
		die(err)
	}
	return cfg
}

// Parse builds the configuration from defaults, the optional config file,
// CATALOG_* environment variables and command line flags, in increasing
// order of precedence.
func Parse(args []string) (Config, error) {
	const op = "config.Parse"

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cmdLine := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
	configFile := cmdLine.String("config", "", "config file")
	cmdLine.String("mode", ModeTUI, "inbound adapter: tui or http")
	cmdLine.String("snapshot", "", "browse an avro snapshot file instead of the remote endpoint")
	if err := cmdLine.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := v.BindPFlag("mode", cmdLine.Lookup("mode")); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := v.BindPFlag("source.snapshot_file", cmdLine.Lookup("snapshot")); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if path := configFilepath(*configFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func configFilepath(flagValue string) string {
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return flagValue
}

func (c Config) Validate() error {
	var errs []error

	if c.Mode != ModeTUI && c.Mode != ModeHTTP {
		errs = append(errs, fmt.Errorf("mode: want %q or %q, got %q", ModeTUI, ModeHTTP, c.Mode))
	}
	if c.Mode == ModeHTTP && c.HTTPServerAddr == "" {
		errs = append(errs, errors.New("http_server_addr: required in http mode"))
	}
	if !slices.Contains(themes, c.Theme) {
		errs = append(errs, fmt.Errorf("theme: want one of %q, got %q", themes, c.Theme))
	}
	if c.Source.SnapshotFile == "" && c.Source.Endpoint == "" {
		errs = append(errs, errors.New("source.endpoint: required without source.snapshot_file"))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout: must not be negative, got %s", c.Source.Timeout))
	}
	if c.Source.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("source.max_attempts: must be at least 1, got %d", c.Source.MaxAttempts))
	}

	return errors.Join(errs...)
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	LogFile=%q
	Mode=%q
	HTTPServerAddr=%q
	Theme=%q

	Source:
	Endpoint=%q
	Timeout=%q
	MaxAttempts=%d
	CAFile=%q
	SnapshotFile=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.LogFile,
		c.Mode,
		c.HTTPServerAddr,
		c.Theme,
		c.Source.Endpoint,
		c.Source.Timeout,
		c.Source.MaxAttempts,
		c.Source.CAFile,
		c.Source.SnapshotFile,
	)
}
