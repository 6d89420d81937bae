// Package client implements a client for the Cortex JSON-RPC API, served over a
// secure websocket by the headset vendor's local service.
//
// A Client owns one websocket connection and the state the service hands back to
// it: the authorization token, the paired headset, the active session and the
// record sessions it created. Every operation is a single request followed by a
// single response. The request id is always 1 and responses are not correlated,
// so a Client must not be used by more than one caller at a time.
package client

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/neurodeck-org/cortex-native/api/config"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/api/eventbus"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
	"github.com/neurodeck-org/cortex-native/internal/metrics"
	"github.com/neurodeck-org/cortex-native/internal/serde"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

var _ cortex.Session = (*Client)(nil)

// Client is a Cortex session client.
type Client struct {
	cfg config.Configuration
	id  uuid.UUID

	dialer *websocket.Dialer
	conn   *websocket.Conn
	closed atomic.Bool

	state sessionState

	dataTicks     *xsync.Counter
	trainingTicks *xsync.Counter

	logger  zerolog.Logger
	metrics *metrics.Collector
	events  *eventbus.Bus
	ownsBus bool

	sync.Mutex
}

// Option configures a Client.
type Option func(c *Client)

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithEventBus publishes polled messages on bus instead of a bus owned by the client.
// The caller remains responsible for closing bus.
func WithEventBus(bus *eventbus.Bus) Option {
	return func(c *Client) {
		if bus != nil {
			c.events = bus
			c.ownsBus = false
		}
	}
}

// New returns a client for the Cortex service described by cfg.
// No connection is made until Connect or the first request.
func New(cfg config.Configuration, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.HandshakeTimeout == 0 {
		cfg.HandshakeTimeout = config.DefaultHandshakeTimeout
	}
	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = config.DefaultEventBufferSize
	}

	c := &Client{
		cfg: cfg,
		id:  uuid.New(),
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: cfg.HandshakeTimeout,
			// The service presents a self-signed certificate for localhost.
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		},
		state:         newSessionState(),
		dataTicks:     xsync.NewCounter(),
		trainingTicks: xsync.NewCounter(),
		logger:        zerolog.Nop(),
		events:        eventbus.New(cfg.EventBufferSize),
		ownsBus:       true,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With().Str("client", c.id.String()).Str("uri", cfg.URI).Logger()

	return c, nil
}

// ID returns the instance id of the client, as used in its log context.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Events returns the bus on which polled stream samples and training events are published.
func (c *Client) Events() *eventbus.Bus {
	return c.events
}

// Connect opens the websocket connection. It is a no-op if a connection exists.
func (c *Client) Connect(ctx context.Context) error {
	if c.closed.Load() {
		return errorkinds.ErrClientClosed
	}

	c.Lock()
	defer c.Unlock()

	return c.connect(ctx)
}

// Close closes the connection. The cached token and session are kept, but the
// client cannot be used again.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return errorkinds.ErrClientClosed
	}

	c.Lock()
	defer c.Unlock()

	if c.ownsBus {
		c.events.Close()
	}

	if c.conn == nil {
		return nil
	}

	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	err := c.conn.Close()
	c.conn = nil

	c.logger.Debug().Msg("connection closed")

	return err
}

func (c *Client) connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URI, nil)
	if err != nil {
		return fault.Wrap(errors.Join(errorkinds.ErrConnection, err),
			fctx.With(ctx, "error_at", "dial", "uri", c.cfg.URI),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot connect to the Cortex service"),
		)
	}

	c.conn = conn
	c.logger.Debug().Msg("connection established")

	return nil
}

// executor sends one request and waits for the next message on the socket.
func (c *Client) executor(req commands.Request) (commands.Response, error) {
	var response commands.Response

	if c.closed.Load() {
		return response, errorkinds.ErrClientClosed
	}

	c.Lock()
	defer c.Unlock()

	started := time.Now()
	ctx := fctx.WithMeta(context.Background(), "method", req.Method)

	if err := c.connect(ctx); err != nil {
		c.metrics.ObserveFailure(req.Method)
		return response, err
	}

	data, err := serde.MarshalJson(req)
	if err != nil {
		return response, fault.Wrap(err,
			fctx.With(ctx, "error_at", "encode-request"),
			ftag.With(ftag.Internal),
		)
	}

	c.logger.Debug().Str("method", req.Method).Bytes("request", data).Msg("sending request")

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.metrics.ObserveFailure(req.Method)
		c.dropConnection()

		return response, fault.Wrap(errors.Join(errorkinds.ErrConnection, err),
			fctx.With(ctx, "error_at", "send-request"),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot send request to the Cortex service"),
		)
	}

	reply, err := c.receive(ctx)
	if err != nil {
		c.metrics.ObserveFailure(req.Method)
		return response, err
	}

	c.metrics.ObserveRequest(req.Method, started)
	c.logger.Debug().Str("method", req.Method).Bytes("response", reply).Msg("received response")

	if err := serde.UnmarshalJson(reply, &response); err != nil {
		return response, fault.Wrap(errors.Join(errorkinds.ErrMalformedResponse, err),
			fctx.With(ctx, "error_at", "decode-response"),
			ftag.With(ftag.Internal),
		)
	}

	if response.Error != nil {
		c.metrics.ObserveRPCError(req.Method, response.Error.Code)
		c.logger.Warn().
			Str("method", req.Method).
			Int("code", response.Error.Code).
			Str("message", response.Error.Message).
			Msg("request failed")
	}

	return response, nil
}

// receive reads the next message from the socket. The caller must hold the lock.
func (c *Client) receive(ctx context.Context) ([]byte, error) {
	if c.conn == nil {
		return nil, fault.Wrap(errorkinds.ErrConnection,
			fctx.With(ctx, "error_at", "receive"),
			ftag.With(ftag.Internal),
			fmsg.With("No connection to receive from"),
		)
	}

	var deadline time.Time
	if c.cfg.ReceiveTimeout > 0 {
		deadline = time.Now().Add(c.cfg.ReceiveTimeout)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, fault.Wrap(errors.Join(errorkinds.ErrConnection, err),
			fctx.With(ctx, "error_at", "receive"),
			ftag.With(ftag.Internal),
		)
	}

	_, data, err := c.conn.ReadMessage()
	if err == nil {
		return data, nil
	}

	// A websocket connection cannot be read from after any read error.
	c.dropConnection()

	kind := errorkinds.ErrConnection
	if isTimeout(err) {
		kind = errorkinds.ErrReceiveTimeout
	}

	return nil, fault.Wrap(errors.Join(kind, err),
		fctx.With(ctx, "error_at", "receive"),
		ftag.With(ftag.Internal),
		fmsg.With("Cannot receive from the Cortex service"),
	)
}

func (c *Client) dropConnection() {
	if c.conn == nil {
		return
	}

	c.conn.Close()
	c.conn = nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
