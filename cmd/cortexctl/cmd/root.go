package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/neurodeck-org/cortex-native/api/config"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/client"
	"github.com/neurodeck-org/cortex-native/internal/logging"
	"github.com/neurodeck-org/cortex-native/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CortexClient is the part of *client.Client used by the commands.
type CortexClient interface {
	HasAccessRight() (cortex.AccessData, error)
	RequestAccess() (cortex.AccessData, error)
	Authorize() (string, error)
	QueryHeadsets() ([]cortex.HeadsetData, error)
	Headset() (string, cortex.HeadsetStatus)
	ControlHeadset(action cortex.HeadsetAction) (cortex.ControlDeviceResult, error)
	CreateSession(status cortex.SessionStatus) (cortex.SessionData, error)
	Subscribe(streams ...cortex.StreamName) (cortex.SubscriptionResult, error)
	PollData() (cortex.StreamSample, bool, error)
	PollTrainingEvent() (cortex.TrainingEvent, bool, error)
	QueryProfile() ([]cortex.ProfileData, error)
	GetCurrentProfile() (cortex.CurrentProfile, error)
	SetupProfile(profile string, status cortex.ProfileStatus) (cortex.SetupProfileResult, error)
	Training(detection cortex.Detection, status cortex.TrainingControl, action string) (cortex.TrainingResult, error)
	Close() error
}

var _ CortexClient = (*client.Client)(nil)

var (
	// Global flags
	cfgFile      string
	uri          string
	outputFormat string
	receiveWait  time.Duration
	metricsAddr  string
	verbose      bool

	// Shared state set during PersistentPreRun
	cortexClient CortexClient
	injected     bool
	logger       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cortexctl",
	Short: "Control a neuro headset through the Cortex service",
	Long: `cortexctl talks to the Cortex service running on this machine.
It checks application access, lists and connects headsets, streams
data samples, manages training profiles and runs mental command training.

Credentials are read from the configuration file or from the
CORTEX_CLIENT_ID and CORTEX_CLIENT_SECRET environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := logging.DefaultConfig(logging.ProfileRuntime)
		logging.ApplyEnvOverrides(&logCfg)
		if verbose {
			logCfg.Level = zerolog.DebugLevel
		}
		logger = logging.NewWithConfig("cortexctl", cmd.ErrOrStderr(), logCfg)

		if injected {
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		collector, err := startMetrics()
		if err != nil {
			return fmt.Errorf("failed to start metrics: %w", err)
		}

		c, err := newClient(cfg, client.WithLogger(logger), client.WithMetrics(collector))
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		cortexClient = c

		return nil
	},
}

// newClient builds the client of a command run when none was injected.
var newClient = func(cfg config.Configuration, opts ...client.Option) (CortexClient, error) {
	c, err := client.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// closeClient runs after every command, including failed ones.
func closeClient() {
	if cortexClient == nil || injected {
		return
	}

	if err := cortexClient.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close client")
	}
	cortexClient = nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetClient allows tests to inject a client. A nil client restores the default.
func SetClient(c CortexClient) {
	cortexClient = c
	injected = c != nil
}

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

func loadConfig() (config.Configuration, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}

	if uri != "" {
		cfg.URI = uri
	}
	if cfg.URI == "" {
		cfg.URI = defaultURI
	}
	if receiveWait > 0 {
		cfg.ReceiveTimeout = receiveWait
	}

	return cfg, nil
}

func startMetrics() (*metrics.Collector, error) {
	if metricsAddr == "" {
		return nil, nil
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server stopped")
		}
	}()

	return collector, nil
}

// defaultURI is where the Cortex service listens on a standard installation.
const defaultURI = "wss://localhost:6868"

func init() {
	cobra.OnFinalize(closeClient)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, TOML or YAML")
	rootCmd.PersistentFlags().StringVar(&uri, "uri", "", "Cortex websocket URI (default \""+defaultURI+"\")")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml")
	rootCmd.PersistentFlags().DurationVar(&receiveWait, "receive-timeout", 0, "give up waiting for a message after this long (default: wait forever)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and responses")
}
