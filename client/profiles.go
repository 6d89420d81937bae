package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// QueryProfile returns the training profiles of the user.
func (c *Client) QueryProfile() ([]cortex.ProfileData, error) {
	token, err := c.requireToken("query profile")
	if err != nil {
		return nil, err
	}

	profiles, err := commands.QueryProfile(token).ExecuteWith(c.executor)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		c.logger.Debug().Str("profile", p.Name).Bool("read_only", p.ReadOnly).Msg("profile")
	}

	return profiles, nil
}

// SetupProfile applies status to the named profile on the paired headset.
// Surrounding whitespace is trimmed from the name. A profile that was created or
// loaded is saved right away. Use RenameProfile to rename a profile.
func (c *Client) SetupProfile(profile string, status cortex.ProfileStatus) (cortex.SetupProfileResult, error) {
	if status == cortex.ProfileRename {
		return cortex.SetupProfileResult{}, invalidProfile("rename needs a new name, use RenameProfile")
	}

	token, headsetID, err := c.requireProfileTarget("setup profile")
	if err != nil {
		return cortex.SetupProfileResult{}, err
	}

	profile = strings.TrimSpace(profile)
	if profile == "" {
		return cortex.SetupProfileResult{}, invalidProfile("empty profile name")
	}

	return c.setupProfile(commands.SetupProfile(token, headsetID, profile, status), profile, status)
}

// RenameProfile renames a profile and saves it under its new name.
func (c *Client) RenameProfile(profile, newName string) (cortex.SetupProfileResult, error) {
	token, headsetID, err := c.requireProfileTarget("rename profile")
	if err != nil {
		return cortex.SetupProfileResult{}, err
	}

	profile, newName = strings.TrimSpace(profile), strings.TrimSpace(newName)
	if profile == "" || newName == "" {
		return cortex.SetupProfileResult{}, invalidProfile("empty profile name")
	}

	return c.setupProfile(commands.RenameProfile(token, headsetID, profile, newName), newName, cortex.ProfileRename)
}

// SaveProfile saves the training data of the profile loaded on the paired headset.
func (c *Client) SaveProfile(profile string) (cortex.SetupProfileResult, error) {
	return c.SetupProfile(profile, cortex.ProfileSave)
}

// UnloadProfile unloads the profile from the paired headset.
func (c *Client) UnloadProfile(profile string) (cortex.SetupProfileResult, error) {
	return c.SetupProfile(profile, cortex.ProfileUnload)
}

// GetCurrentProfile returns the profile loaded on the paired headset.
func (c *Client) GetCurrentProfile() (cortex.CurrentProfile, error) {
	token, headsetID, err := c.requireProfileTarget("get current profile")
	if err != nil {
		return cortex.CurrentProfile{}, err
	}

	current, err := commands.GetCurrentProfile(token, headsetID).ExecuteWith(c.executor)
	if err != nil {
		return current, err
	}

	c.logger.Info().
		Str("profile", current.Name).
		Bool("loaded_by_this_app", current.LoadedByThisApp).
		Msg("current profile")

	return current, nil
}

func (c *Client) setupProfile(
	cmd *commands.Command[cortex.SetupProfileResult],
	saveAs string,
	status cortex.ProfileStatus,
) (cortex.SetupProfileResult, error) {
	result, err := cmd.ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logger.Info().Str("profile", saveAs).Str("action", result.Action).Msg(result.Message)

	switch status {
	case cortex.ProfileCreate, cortex.ProfileLoad, cortex.ProfileRename:
		if _, err := c.SaveProfile(saveAs); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (c *Client) requireProfileTarget(op string) (token, headsetID string, err error) {
	token, err = c.requireToken(op)
	if err != nil {
		return "", "", err
	}

	headsetID, err = c.requireHeadset(op)
	if err != nil {
		return "", "", err
	}

	return token, headsetID, nil
}

func invalidProfile(problem string) error {
	return fault.Wrap(fmt.Errorf("%w: %s", errorkinds.ErrInvalidArgument, problem),
		fctx.With(context.Background(), "operation", "setup profile"),
		ftag.With(ftag.InvalidArgument),
	)
}
