package client

import (
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// CreateSession opens a session with the paired headset and stores its id.
// The cached headset status must be connected, otherwise no request is sent.
func (c *Client) CreateSession(status cortex.SessionStatus) (cortex.SessionData, error) {
	var session cortex.SessionData

	token, err := c.requireToken("create session")
	if err != nil {
		return session, err
	}

	headsetID, headsetStatus := c.Headset()
	if headsetID == "" || headsetStatus != cortex.HeadsetStatusConnected {
		return session, precondition(errorkinds.ErrHeadsetNotConnected, "create session", ftag.InvalidArgument)
	}

	session, err = commands.CreateSession(token, headsetID, status).ExecuteWith(c.executor)
	if err != nil {
		return session, err
	}

	c.setSession(session.ID)
	c.logger.Info().Str("session", session.ID).Str("status", string(session.Status)).Msg("session created")

	return session, nil
}

// QuerySessions returns the sessions created by this application.
func (c *Client) QuerySessions() ([]cortex.SessionData, error) {
	token, err := c.requireToken("query sessions")
	if err != nil {
		return nil, err
	}

	return commands.QuerySessions(token).ExecuteWith(c.executor)
}

// UpdateSession activates the current session.
func (c *Client) UpdateSession() (cortex.SessionData, error) {
	token, sessionID, err := c.requireSession("update session")
	if err != nil {
		return cortex.SessionData{}, err
	}

	session, err := commands.UpdateSession(token, sessionID, cortex.SessionActive).ExecuteWith(c.executor)
	if err != nil {
		return session, err
	}

	c.logger.Info().Str("session", sessionID).Str("status", string(session.Status)).Msg("session updated")

	return session, nil
}

// Subscribe subscribes the current session to streams. Once subscribed, the
// service pushes samples that are read with PollData and PollTrainingEvent.
func (c *Client) Subscribe(streams ...cortex.StreamName) (cortex.SubscriptionResult, error) {
	token, sessionID, err := c.requireSession("subscribe")
	if err != nil {
		return cortex.SubscriptionResult{}, err
	}

	result, err := commands.Subscribe(token, sessionID, cortex.StreamNames(streams...)).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logSubscription("subscribed", result)

	return result, nil
}

// Unsubscribe cancels the subscriptions of the current session to streams.
func (c *Client) Unsubscribe(streams ...cortex.StreamName) (cortex.SubscriptionResult, error) {
	token, sessionID, err := c.requireSession("unsubscribe")
	if err != nil {
		return cortex.SubscriptionResult{}, err
	}

	result, err := commands.Unsubscribe(token, sessionID, cortex.StreamNames(streams...)).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logSubscription("unsubscribed", result)

	return result, nil
}

func (c *Client) logSubscription(msg string, result cortex.SubscriptionResult) {
	for _, s := range result.Success {
		c.logger.Info().Str("stream", s.StreamName).Strs("cols", s.Cols).Msg(msg)
	}

	for _, f := range result.Failure {
		c.logger.Warn().Str("stream", f.StreamName).Int("code", f.Code).Msg(f.Message)
	}
}
