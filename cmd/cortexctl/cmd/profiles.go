package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List and manage training profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := cortexClient.Authorize(); err != nil {
			return fmt.Errorf("failed to authorize: %w", err)
		}

		profiles, err := cortexClient.QueryProfile()
		if err != nil {
			return fmt.Errorf("failed to query profiles: %w", err)
		}

		return render(cmd.OutOrStdout(), profiles, func(w io.Writer) {
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				rows = append(rows, []string{p.Name, strconv.FormatBool(p.ReadOnly)})
			}
			table(w, []string{"name", "read only"}, rows)
		})
	},
}

var profilesCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the profile loaded on the first headset found",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pairHeadset(); err != nil {
			return err
		}

		current, err := cortexClient.GetCurrentProfile()
		if err != nil {
			return fmt.Errorf("failed to get current profile: %w", err)
		}

		return render(cmd.OutOrStdout(), current, func(w io.Writer) {
			if current.Name == "" {
				fmt.Fprintln(w, "No profile loaded.")
				return
			}
			fmt.Fprintf(w, "%s (loaded by this application: %v)\n", current.Name, current.LoadedByThisApp)
		})
	},
}

var profilesSetupCmd = &cobra.Command{
	Use:       "setup <create|load|unload|save|delete> <name>",
	Short:     "Create, load, unload, save or delete a profile",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"create", "load", "unload", "save", "delete"},
	RunE: func(cmd *cobra.Command, args []string) error {
		status := cortex.ProfileStatus(args[0])
		switch status {
		case cortex.ProfileCreate, cortex.ProfileLoad, cortex.ProfileUnload, cortex.ProfileSave, cortex.ProfileDelete:
		default:
			return fmt.Errorf("invalid profile action %q", args[0])
		}

		if err := pairHeadset(); err != nil {
			return err
		}

		result, err := cortexClient.SetupProfile(args[1], status)
		if err != nil {
			return fmt.Errorf("failed to %s profile: %w", status, err)
		}

		return render(cmd.OutOrStdout(), result, func(w io.Writer) {
			fmt.Fprintf(w, "%s: %s\n", result.Name, result.Message)
		})
	},
}

// pairHeadset authorizes and pairs the first headset found.
func pairHeadset() error {
	if _, err := cortexClient.Authorize(); err != nil {
		return fmt.Errorf("failed to authorize: %w", err)
	}

	if _, err := cortexClient.QueryHeadsets(); err != nil {
		return fmt.Errorf("failed to query headsets: %w", err)
	}

	return nil
}

func init() {
	profilesCmd.AddCommand(profilesCurrentCmd)
	profilesCmd.AddCommand(profilesSetupCmd)
	rootCmd.AddCommand(profilesCmd)
}
