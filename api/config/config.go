package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"gopkg.in/yaml.v3"
)

const (
	// The default timeout for the websocket opening handshake.
	DefaultHandshakeTimeout = 10 * time.Second

	// The default capacity of each event bus subscriber channel.
	DefaultEventBufferSize = 16
)

// Environment variables applied on top of a loaded configuration.
const (
	EnvClientID         = "CORTEX_CLIENT_ID"
	EnvClientSecret     = "CORTEX_CLIENT_SECRET"
	EnvURI              = "CORTEX_URI"
	EnvReceiveTimeout   = "CORTEX_RECEIVE_TIMEOUT"
	EnvHandshakeTimeout = "CORTEX_HANDSHAKE_TIMEOUT"
)

// Configuration describes a Cortex client configuration.
type Configuration struct {
	// Credentials are the application credentials, read from the top level
	// of the file as client_id and client_secret (clientId and clientSecret in YAML).
	cortex.Credentials `yaml:",inline"`

	// URI is the websocket endpoint of the Cortex service, for example
	// wss://localhost:6868. There is no default.
	URI string `toml:"uri" yaml:"uri"`

	// ReceiveTimeout bounds every receive on the socket.
	// Zero waits indefinitely.
	ReceiveTimeout time.Duration `toml:"receive_timeout" yaml:"receiveTimeout"`

	// HandshakeTimeout bounds the websocket opening handshake.
	HandshakeTimeout time.Duration `toml:"handshake_timeout" yaml:"handshakeTimeout"`

	// ResetTrainingPoll resets the training event poll counter after each
	// receive. When false, every poll after the first receive blocks on the socket.
	ResetTrainingPoll bool `toml:"reset_training_poll" yaml:"resetTrainingPoll"`

	// EventBufferSize is the capacity of each event bus subscription.
	EventBufferSize int `toml:"event_buffer_size" yaml:"eventBufferSize"`
}

// New returns a new configuration with default timeouts and buffer sizes.
func New() Configuration {
	return Configuration{
		HandshakeTimeout: DefaultHandshakeTimeout,
		EventBufferSize:  DefaultEventBufferSize,
	}
}

// Load reads a configuration file and applies environment overrides.
// Files ending in .yaml or .yml are read as YAML, everything else as TOML.
// An empty path only applies the environment to the defaults.
func Load(path string) (Configuration, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fault.Wrap(err,
				ftag.With(ftag.NotFound),
				fmsg.With("Cannot read configuration file"),
			)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		default:
			err = toml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return cfg, fault.Wrap(err,
				ftag.With(ftag.InvalidArgument),
				fmsg.With("Cannot parse configuration file"),
			)
		}
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// ApplyEnvOverrides replaces configuration values with the ones set in the environment.
func ApplyEnvOverrides(cfg *Configuration) error {
	if v := strings.TrimSpace(os.Getenv(EnvClientID)); v != "" {
		cfg.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvClientSecret)); v != "" {
		cfg.ClientSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvURI)); v != "" {
		cfg.URI = v
	}

	for key, dst := range map[string]*time.Duration{
		EnvReceiveTimeout:   &cfg.ReceiveTimeout,
		EnvHandshakeTimeout: &cfg.HandshakeTimeout,
	} {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}

		d, err := parseDuration(v)
		if err != nil {
			return fault.Wrap(fmt.Errorf("%w: %s=%q", errorkinds.ErrInvalidConfiguration, key, v),
				ftag.With(ftag.InvalidArgument),
			)
		}
		*dst = d
	}

	return nil
}

// Validate checks that the credentials and endpoint are set.
func (c Configuration) Validate() error {
	invalid := func(reason string) error {
		return fault.Wrap(fmt.Errorf("%w: %s", errorkinds.ErrInvalidConfiguration, reason),
			ftag.With(ftag.InvalidArgument),
		)
	}

	if strings.TrimSpace(c.ClientID) == "" {
		return invalid("client id is required")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return invalid("client secret is required")
	}
	if strings.TrimSpace(c.URI) == "" {
		return invalid("uri is required")
	}

	u, err := url.Parse(c.URI)
	if err != nil {
		return invalid(err.Error())
	}
	if u.Scheme != "wss" && u.Scheme != "ws" {
		return invalid(fmt.Sprintf("unsupported uri scheme %q", u.Scheme))
	}
	if c.ReceiveTimeout < 0 || c.HandshakeTimeout < 0 {
		return invalid("timeouts must not be negative")
	}

	return nil
}

func (c *Configuration) applyDefaults() {
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.EventBufferSize <= 0 {
		c.EventBufferSize = DefaultEventBufferSize
	}
}

// parseDuration accepts Go durations ("500ms") and bare milliseconds ("500").
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	return time.ParseDuration(v)
}
