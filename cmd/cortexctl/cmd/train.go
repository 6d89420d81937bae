package cmd

import (
	"fmt"
	"io"

	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/spf13/cobra"
)

var (
	trainProfile string
	trainReject  bool
)

var trainCmd = &cobra.Command{
	Use:   "train <action>",
	Short: "Train a mental command action",
	Long: `Load a profile, train one mental command action (neutral, push, pull,
lift, drop, left, right, ...) and accept or reject the result. The
profile is saved after an accepted training.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := args[0]

		if err := openSession(); err != nil {
			return err
		}

		if _, err := cortexClient.Subscribe(cortex.StreamSystem); err != nil {
			return fmt.Errorf("failed to subscribe to training events: %w", err)
		}

		if _, err := cortexClient.SetupProfile(trainProfile, cortex.ProfileLoad); err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		if _, err := cortexClient.Training(cortex.DetectionMentalCommand, cortex.TrainingStart, action); err != nil {
			return fmt.Errorf("failed to start training: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Training %q, think about it for a few seconds...\n", action)

		outcome, err := waitForTraining(out)
		if err != nil {
			return err
		}
		if outcome == cortex.MentalCommandFailed {
			return fmt.Errorf("training of %q failed", action)
		}

		control := cortex.TrainingAccept
		if trainReject {
			control = cortex.TrainingReject
		}

		result, err := cortexClient.Training(cortex.DetectionMentalCommand, control, action)
		if err != nil {
			return fmt.Errorf("failed to %s training: %w", control, err)
		}

		if control == cortex.TrainingAccept {
			if _, err := waitForTraining(out); err != nil {
				return err
			}
			if _, err := cortexClient.SetupProfile(trainProfile, cortex.ProfileSave); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}
		}

		return render(out, result, func(w io.Writer) {
			fmt.Fprintf(w, "%s: %s\n", result.Action, result.Message)
		})
	},
}

// waitForTraining polls training events until one ends the current training step.
func waitForTraining(w io.Writer) (string, error) {
	for {
		event, ok, err := cortexClient.PollTrainingEvent()
		if err != nil {
			return "", fmt.Errorf("failed to read training events: %w", err)
		}
		if !ok {
			continue
		}

		fmt.Fprintln(w, event.Event)

		switch event.Event {
		case cortex.MentalCommandSucceeded, cortex.MentalCommandFailed,
			cortex.MentalCommandCompleted, cortex.MentalCommandRejected:
			return event.Event, nil
		}
	}
}

func init() {
	trainCmd.Flags().StringVar(&trainProfile, "profile", "", "profile to train (required)")
	trainCmd.Flags().BoolVar(&trainReject, "reject", false, "reject the training instead of accepting it")
	_ = trainCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(trainCmd)
}
