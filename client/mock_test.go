package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/neurodeck-org/cortex-native/api/config"
)

type mockRequest struct {
	ID      int            `json:"id"`
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
}

// mockCortex is a scripted Cortex service. Each method answers with the next
// queued reply, repeating the last one once the queue is down to one entry.
type mockCortex struct {
	t   *testing.T
	srv *httptest.Server

	mu          sync.Mutex
	replies     map[string][]string
	silent      map[string]bool
	onConnect   []string
	requests    []mockRequest
	connections int
}

func newMockCortex(t *testing.T) *mockCortex {
	t.Helper()

	m := &mockCortex{
		t:       t,
		replies: make(map[string][]string),
		silent:  make(map[string]bool),
	}

	m.srv = httptest.NewTLSServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.srv.Close)

	return m
}

func (m *mockCortex) uri() string {
	return "wss" + strings.TrimPrefix(m.srv.URL, "https")
}

// result queues a successful reply with the given result member.
func (m *mockCortex) result(method, result string) *mockCortex {
	return m.reply(method, `{"id":1,"jsonrpc":"2.0","result":`+result+`}`)
}

// rpcError queues an error reply.
func (m *mockCortex) rpcError(method string, code int, message string) *mockCortex {
	data, _ := json.Marshal(map[string]any{
		"id":      1,
		"jsonrpc": "2.0",
		"error":   map[string]any{"code": code, "message": message},
	})

	return m.reply(method, string(data))
}

// reply queues a raw reply.
func (m *mockCortex) reply(method, raw string) *mockCortex {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replies[method] = append(m.replies[method], raw)

	return m
}

// mute makes method go unanswered.
func (m *mockCortex) mute(method string) *mockCortex {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.silent[method] = true

	return m
}

// push queues stream messages sent as soon as a client connects.
func (m *mockCortex) push(messages ...string) *mockCortex {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onConnect = append(m.onConnect, messages...)

	return m
}

func (m *mockCortex) methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	methods := make([]string, 0, len(m.requests))
	for _, r := range m.requests {
		methods = append(methods, r.Method)
	}

	return methods
}

func (m *mockCortex) lastRequest() mockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.requests) == 0 {
		m.t.Fatalf("no requests received")
	}

	return m.requests[len(m.requests)-1]
}

func (m *mockCortex) serve(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.t.Errorf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	m.mu.Lock()
	m.connections++
	pushes := append([]string(nil), m.onConnect...)
	m.mu.Unlock()

	for _, p := range pushes {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(p)); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req mockRequest
		if err := json.Unmarshal(data, &req); err != nil {
			m.t.Errorf("request is not JSON: %v (%s)", err, data)
			return
		}

		reply, ok := m.next(req)
		if !ok {
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
	}
}

func (m *mockCortex) next(req mockRequest) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.silent[req.Method] {
		return "", false
	}

	queue := m.replies[req.Method]
	if len(queue) == 0 {
		m.t.Errorf("unexpected request %q", req.Method)
		return `{"id":1,"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found."}}`, true
	}

	reply := queue[0]
	if len(queue) > 1 {
		m.replies[req.Method] = queue[1:]
	}

	return reply, true
}

func testConfig(uri string) config.Configuration {
	cfg := config.New()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.URI = uri

	return cfg
}

func newTestClient(t *testing.T, m *mockCortex, mutate func(cfg *config.Configuration), opts ...Option) *Client {
	t.Helper()

	cfg := testConfig(m.uri())
	if mutate != nil {
		mutate(&cfg)
	}

	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c
}
