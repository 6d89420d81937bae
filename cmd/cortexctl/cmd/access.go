package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var requestAccess bool

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Check whether this application may use the Cortex service",
	Long: `Check whether the user has granted this application access.
With --request, ask for access when it has not been granted yet. The user
then approves the request in the vendor launcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		access, err := cortexClient.HasAccessRight()
		if err != nil {
			return fmt.Errorf("failed to check access: %w", err)
		}

		if !access.AccessGranted && requestAccess {
			access, err = cortexClient.RequestAccess()
			if err != nil {
				return fmt.Errorf("failed to request access: %w", err)
			}
		}

		return render(cmd.OutOrStdout(), access, func(w io.Writer) {
			fmt.Fprintf(w, "Access granted: %v\n%s\n", access.AccessGranted, access.Message)
		})
	},
}

func init() {
	accessCmd.Flags().BoolVar(&requestAccess, "request", false, "request access if it has not been granted")
	rootCmd.AddCommand(accessCmd)
}
