package client

import (
	"context"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// RequestAccess asks the user, through the vendor launcher, to grant this application access.
func (c *Client) RequestAccess() (cortex.AccessData, error) {
	access, err := commands.RequestAccess(c.cfg.Credentials).ExecuteWith(c.executor)
	if err != nil {
		return access, err
	}

	c.logger.Info().Bool("granted", access.AccessGranted).Msg(access.Message)

	return access, nil
}

// HasAccessRight reports whether the user has already granted access to this application.
func (c *Client) HasAccessRight() (cortex.AccessData, error) {
	access, err := commands.HasAccessRight(c.cfg.Credentials).ExecuteWith(c.executor)
	if err != nil {
		return access, err
	}

	c.logger.Info().Bool("granted", access.AccessGranted).Msg(access.Message)

	return access, nil
}

// Authorize obtains an authorization token and stores it for later requests.
func (c *Client) Authorize() (string, error) {
	reply, err := commands.Authorize(c.cfg.Credentials).ExecuteWith(c.executor)
	if err != nil {
		return "", err
	}

	c.setToken(reply.CortexToken)
	c.logger.Info().Msg("authorized")

	return reply.CortexToken, nil
}

func (c *Client) requireToken(op string) (string, error) {
	token := c.Token()
	if token == "" {
		return "", precondition(errorkinds.ErrNotAuthorized, op, ftag.Unauthenticated)
	}

	return token, nil
}

func (c *Client) requireSession(op string) (token, sessionID string, err error) {
	token, err = c.requireToken(op)
	if err != nil {
		return "", "", err
	}

	sessionID = c.SessionID()
	if sessionID == "" {
		return "", "", precondition(errorkinds.ErrNoSession, op, ftag.NotFound)
	}

	return token, sessionID, nil
}

func (c *Client) requireHeadset(op string) (string, error) {
	headsetID, _ := c.Headset()
	if headsetID == "" {
		return "", precondition(errorkinds.ErrHeadsetNotPaired, op, ftag.NotFound)
	}

	return headsetID, nil
}

func precondition(err error, op string, kind ftag.Kind) error {
	return fault.Wrap(err,
		fctx.With(context.Background(), "operation", op),
		ftag.With(kind),
		fmsg.With("Cannot "+op),
	)
}
