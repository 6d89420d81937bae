package client

import (
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// Mental command "status" values of the getter/setter methods.
const (
	MentalCommandGet = "get"
	MentalCommandSet = "set"
)

// GetDetectionInfo returns the actions, controls and events of a detection.
func (c *Client) GetDetectionInfo(detection cortex.Detection) (cortex.DetectionInfo, error) {
	return commands.GetDetectionInfo(detection).ExecuteWith(c.executor)
}

// Training controls the training of action for the current session.
//
// A typical workflow subscribes to the "sys" stream, starts the training, waits
// for MC_Succeeded or MC_Failed with PollTrainingEvent, then accepts or rejects
// it and saves the profile.
func (c *Client) Training(detection cortex.Detection, status cortex.TrainingControl, action string) (cortex.TrainingResult, error) {
	token, sessionID, err := c.requireSession("train")
	if err != nil {
		return cortex.TrainingResult{}, err
	}

	result, err := commands.Training(token, sessionID, detection, status, action).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logger.Info().
		Str("detection", string(detection)).
		Str("action", result.Action).
		Str("status", result.Status).
		Msg(result.Message)

	return result, nil
}

// GetTrainedSignatureActions returns the trained actions of a profile and how
// many times each was trained.
func (c *Client) GetTrainedSignatureActions(detection cortex.Detection, profile string) (cortex.RawResult, error) {
	token, err := c.requireToken("get trained signature actions")
	if err != nil {
		return nil, err
	}

	return commands.GetTrainedSignatureActions(token, detection, profile).ExecuteWith(c.executor)
}

// MentalCommandActiveAction gets (MentalCommandGet) or sets (MentalCommandSet)
// the active mental command actions of a profile.
func (c *Client) MentalCommandActiveAction(status, profile string, actions []string) (cortex.RawResult, error) {
	token, err := c.requireToken("mental command active action")
	if err != nil {
		return nil, err
	}

	return commands.MentalCommandActiveAction(token, status, profile, c.SessionID(), actions).ExecuteWith(c.executor)
}

// MentalCommandGetSkillRating returns the skill rating of action, or the overall
// rating when action is empty.
func (c *Client) MentalCommandGetSkillRating(profile, action string) (cortex.RawResult, error) {
	token, err := c.requireToken("mental command skill rating")
	if err != nil {
		return nil, err
	}

	return commands.MentalCommandGetSkillRating(token, profile, c.SessionID(), action).ExecuteWith(c.executor)
}

// MentalCommandTrainingThreshold returns the detection threshold and the score
// of the last training.
func (c *Client) MentalCommandTrainingThreshold(profile string) (cortex.RawResult, error) {
	token, err := c.requireToken("mental command training threshold")
	if err != nil {
		return nil, err
	}

	return commands.MentalCommandTrainingThreshold(token, profile).ExecuteWith(c.executor)
}

// MentalCommandActionLevel gets or sets the sensitivity of mental command actions.
// level is only sent with MentalCommandSet.
func (c *Client) MentalCommandActionLevel(status, profile string, level *int) (cortex.RawResult, error) {
	token, err := c.requireToken("mental command action level")
	if err != nil {
		return nil, err
	}

	if status != MentalCommandSet {
		level = nil
	}

	return commands.MentalCommandActionLevel(token, status, profile, c.SessionID(), level).ExecuteWith(c.executor)
}
