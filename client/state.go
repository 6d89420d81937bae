package client

import (
	"sync"

	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/puzpuzpuz/xsync/v3"
)

// recordStatus tracks a record created by this client.
type recordStatus struct {
	SessionID string
	Stopped   bool
}

// sessionState holds what the service has handed to this client so far.
// Nothing is cleared, not even by Close.
type sessionState struct {
	token         string
	headsetID     string
	headsetStatus cortex.HeadsetStatus
	sessionID     string

	recordSessions []string
	records        *xsync.MapOf[string, recordStatus]

	mu sync.RWMutex
}

func newSessionState() sessionState {
	return sessionState{
		records: xsync.NewMapOf[string, recordStatus](),
	}
}

// Token returns the authorization token, or an empty string before Authorize.
func (c *Client) Token() string {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()

	return c.state.token
}

// Headset returns the cached headset id and status.
// The status is the one last reported by the service or set after ControlHeadset.
func (c *Client) Headset() (string, cortex.HeadsetStatus) {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()

	return c.state.headsetID, c.state.headsetStatus
}

// SessionID returns the id of the session created by CreateSession.
func (c *Client) SessionID() string {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()

	return c.state.sessionID
}

// RecordSessions returns the session ids of every record created by this client,
// in creation order.
func (c *Client) RecordSessions() []string {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()

	sessions := make([]string, len(c.state.recordSessions))
	copy(sessions, c.state.recordSessions)

	return sessions
}

func (c *Client) setToken(token string) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	c.state.token = token
}

func (c *Client) setHeadset(id string, status cortex.HeadsetStatus) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	if id != "" {
		c.state.headsetID = id
	}
	c.state.headsetStatus = status
}

func (c *Client) setSession(id string) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	c.state.sessionID = id
}

func (c *Client) addRecord(record cortex.RecordResult) {
	c.state.mu.Lock()
	c.state.recordSessions = append(c.state.recordSessions, record.SessionID)
	c.state.mu.Unlock()

	if record.Record.UUID != "" {
		c.state.records.Store(record.Record.UUID, recordStatus{SessionID: record.SessionID})
	}
}

func (c *Client) stopRecord(record cortex.RecordResult) {
	if record.Record.UUID == "" {
		return
	}

	c.state.records.Compute(record.Record.UUID, func(old recordStatus, loaded bool) (recordStatus, bool) {
		if !loaded {
			old.SessionID = record.SessionID
		}
		old.Stopped = true

		return old, false
	})
}

// unstoppedRecords returns the ids among recordIDs that this client created and has not stopped.
func (c *Client) unstoppedRecords(recordIDs []string) []string {
	var pending []string

	for _, id := range recordIDs {
		if status, ok := c.state.records.Load(id); ok && !status.Stopped {
			pending = append(pending, id)
		}
	}

	return pending
}
