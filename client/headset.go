package client

import (
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// QueryHeadsets queries the headsets known to the service.
//
// Before a headset is paired, the first headset returned is cached as the
// paired headset. Afterwards only the paired headset is queried, and its cached
// status is refreshed.
func (c *Client) QueryHeadsets() ([]cortex.HeadsetData, error) {
	pairedID, _ := c.Headset()

	headsets, err := commands.QueryHeadsets(pairedID).ExecuteWith(c.executor)
	if err != nil {
		return nil, err
	}

	if len(headsets) == 0 {
		return nil, precondition(errorkinds.ErrNoHeadsets, "query headsets", ftag.NotFound)
	}

	headset := headsets[0]
	c.setHeadset(headset.ID, headset.Status)

	c.logger.Info().
		Str("headset", headset.ID).
		Str("status", string(headset.Status)).
		Msg("headset status")

	return headsets, nil
}

// ControlHeadset sends action for the paired headset.
// After connect or disconnect, the cached status is set to connected or
// disconnected without waiting for the headset to report it.
func (c *Client) ControlHeadset(action cortex.HeadsetAction) (cortex.ControlDeviceResult, error) {
	var result cortex.ControlDeviceResult

	headsetID, err := c.requireHeadset("control headset")
	if err != nil {
		return result, err
	}

	result, err = commands.ControlDevice(action, headsetID).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	switch action {
	case cortex.HeadsetConnect:
		c.setHeadset(headsetID, cortex.HeadsetStatusConnected)

	case cortex.HeadsetDisconnect:
		c.setHeadset(headsetID, cortex.HeadsetStatusDisconnected)
	}

	c.logger.Info().Str("headset", headsetID).Str("command", string(action)).Msg(result.Message)

	return result, nil
}
