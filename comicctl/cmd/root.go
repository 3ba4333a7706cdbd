package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"comicapp/catalog/adapters/comicapi"
	"comicapp/catalog/config"
	"comicapp/catalog/core"
	"comicapp/catalog/screens"
)

// ErrScreenFailed is returned after rendering a screen that ended in its
// error state, so the process exits non-zero.
var ErrScreenFailed = errors.New("screen ended with an error")

type options struct {
	configPath   string
	baseURL      string
	resourcePath string
	timeout      time.Duration
	logLevel     string
	output       string
	retries      int
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "comicctl",
		Short: "Browse the comics catalog from the terminal",
		Long: `comicctl opens the comic list and comic details screens against the
comics source and prints what they show.

Settings come from an optional YAML config, the environment (a .env file is
loaded if present) and finally the flags below.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return opts.validate()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (environment only when empty)")
	f.StringVar(&opts.baseURL, "base-url", "", "comics source base URL (overrides config)")
	f.StringVar(&opts.resourcePath, "resource-path", "", "comics resource path (overrides config)")
	f.DurationVar(&opts.timeout, "timeout", 0, "fetch timeout (overrides config)")
	f.StringVar(&opts.logLevel, "log-level", "ERROR", "log level: DEBUG, INFO or ERROR")
	f.StringVarP(&opts.output, "output", "o", outputText, "output format: text, json or yaml")
	f.IntVar(&opts.retries, "retries", 0, "retry a failed screen this many times")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newOpenCmd(opts))
	cmd.AddCommand(newRouteCmd())

	return cmd
}

func (o *options) validate() error {
	switch o.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
	if o.retries < 0 {
		return errors.New("retries must not be negative")
	}
	return nil
}

func (o *options) comicsConfig() (config.ComicsConfig, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.ComicsConfig{}, fmt.Errorf("cannot read config: %w", err)
	}
	c := cfg.Comics
	if o.baseURL != "" {
		c.BaseURL = o.baseURL
	}
	if o.resourcePath != "" {
		c.ResourcePath = o.resourcePath
	}
	if o.timeout > 0 {
		c.Timeout = o.timeout
	}
	return c, nil
}

func (o *options) newHost(cmd *cobra.Command) (*screens.Host, error) {
	log, err := newLogger(o.logLevel)
	if err != nil {
		return nil, err
	}
	cc, err := o.comicsConfig()
	if err != nil {
		return nil, err
	}
	client, err := comicapi.NewClient(cc.BaseURL, cc.ResourcePath, cc.Timeout, log)
	if err != nil {
		return nil, err
	}
	repo, err := core.NewRepository(log, client)
	if err != nil {
		return nil, err
	}
	return screens.NewHost(cmd.Context(), log, repo, nil, 1)
}

// openAndRender opens route, retries while the screen keeps failing and
// prints the final view.
func (o *options) openAndRender(cmd *cobra.Command, route string) error {
	host, err := o.newHost(cmd)
	if err != nil {
		return err
	}
	defer host.CloseAll()

	_, s, err := host.Open(route)
	if err != nil {
		return err
	}
	s.Wait()
	for i := 0; i < o.retries && s.View().Status == screens.StatusError; i++ {
		s.Retry()
		s.Wait()
	}

	v := s.View()
	if err := render(cmd.OutOrStdout(), o.output, v); err != nil {
		return err
	}
	if v.Status == screens.StatusError {
		return ErrScreenFailed
	}
	return nil
}

func newLogger(levelStr string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %s", levelStr)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}
