package cmd

import (
	"fmt"
	"io"

	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/spf13/cobra"
)

var headsetsCmd = &cobra.Command{
	Use:   "headsets",
	Short: "List headsets and control the paired headset",
	RunE: func(cmd *cobra.Command, args []string) error {
		headsets, err := cortexClient.QueryHeadsets()
		if err != nil {
			return fmt.Errorf("failed to query headsets: %w", err)
		}

		return render(cmd.OutOrStdout(), headsets, func(w io.Writer) {
			rows := make([][]string, 0, len(headsets))
			for _, h := range headsets {
				rows = append(rows, []string{h.ID, string(h.Status), h.ConnectedBy, h.Firmware})
			}
			table(w, []string{"id", "status", "connected by", "firmware"}, rows)
		})
	},
}

var headsetsControlCmd = &cobra.Command{
	Use:       "control <connect|disconnect|refresh>",
	Short:     "Connect, disconnect or refresh the first headset found",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"connect", "disconnect", "refresh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		action := cortex.HeadsetAction(args[0])
		switch action {
		case cortex.HeadsetConnect, cortex.HeadsetDisconnect, cortex.HeadsetRefresh:
		default:
			return fmt.Errorf("invalid headset action %q", args[0])
		}

		if _, err := cortexClient.QueryHeadsets(); err != nil {
			return fmt.Errorf("failed to query headsets: %w", err)
		}

		result, err := cortexClient.ControlHeadset(action)
		if err != nil {
			return fmt.Errorf("failed to %s headset: %w", action, err)
		}

		return render(cmd.OutOrStdout(), result, func(w io.Writer) {
			id, status := cortexClient.Headset()
			fmt.Fprintf(w, "%s: %s (%s)\n", id, result.Message, status)
		})
	},
}

func init() {
	headsetsCmd.AddCommand(headsetsControlCmd)
	rootCmd.AddCommand(headsetsCmd)
}
