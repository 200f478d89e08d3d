// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
	"github.com/cloudglue/cloudglue-go/cli/config"
	"github.com/cloudglue/cloudglue-go/cli/keystore"
)

// KeyName is the keystore entry the CLI stores the API key under.
const KeyName = "cloudglue"

// Exit codes.
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates an API client from resolved CLI settings.
type ClientFactory func(apiKey, baseURL string) (*cloudglue.Client, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newClient   ClientFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	log         zerolog.Logger

	cfgFile    string
	baseURL    string
	apiKey     string
	jsonOutput bool
	verbose    bool
	cfg        *config.Config
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects an API client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newClient:   defaultClientFactory,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func defaultClientFactory(apiKey, baseURL string) (*cloudglue.Client, error) {
	opts := []cloudglue.Option{cloudglue.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, cloudglue.WithBaseURL(baseURL))
	}
	return cloudglue.New(opts...)
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cloudglue",
		Short: "Cloudglue - video understanding CLI",
		Long: `Cloudglue is a command-line interface for the Cloudglue video API.

Use it to upload videos, run transcription, description, and extraction
jobs, manage collections, and chat with your video library.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.cloudglue/config.yaml)")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL override")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "API key (overrides keystore and CLOUDGLUE_API_KEY)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newUploadCommand())
	root.AddCommand(a.newTranscribeCommand())
	root.AddCommand(a.newDescribeCommand())
	root.AddCommand(a.newExtractCommand())
	root.AddCommand(a.newCollectionsCommand())
	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Apply config defaults if flags not set.
	if a.baseURL == "" && cfg.BaseURL != "" {
		a.baseURL = cfg.BaseURL
	}

	a.log.Debug().Str("config", path).Str("base_url", a.baseURL).Msg("configuration loaded")
	return nil
}

// resolveAPIKey finds the API key: the --api-key flag, then the keystore,
// then the CLOUDGLUE_API_KEY environment variable.
func (a *App) resolveAPIKey() (string, error) {
	if a.apiKey != "" {
		return a.apiKey, nil
	}

	ks, err := a.newKeystore()
	if err == nil {
		if key, err := ks.Get(KeyName); err == nil {
			a.log.Debug().Msg("using API key from keystore")
			return key, nil
		}
	}

	if key := os.Getenv(cloudglue.APIKeyEnvVar); key != "" {
		a.log.Debug().Msg("using API key from environment")
		return key, nil
	}

	return "", fmt.Errorf("no API key: run 'cloudglue keys set', set %s, or pass --api-key", cloudglue.APIKeyEnvVar)
}

// client builds an API client with the resolved key and base URL.
func (a *App) client() (*cloudglue.Client, error) {
	key, err := a.resolveAPIKey()
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	return a.newClient(key, a.baseURL)
}

// waitOptions maps the config's poll settings to SDK wait options.
func (a *App) waitOptions() *cloudglue.WaitOptions {
	opts := &cloudglue.WaitOptions{}
	if a.cfg != nil {
		if a.cfg.PollInterval > 0 {
			opts.PollInterval = time.Duration(a.cfg.PollInterval) * time.Second
		}
		if a.cfg.WaitTimeout > 0 {
			opts.Timeout = time.Duration(a.cfg.WaitTimeout) * time.Second
		}
	}
	return opts
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
