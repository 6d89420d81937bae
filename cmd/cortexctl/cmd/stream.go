package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/spf13/cobra"
)

var streamSamples int

var streamCmd = &cobra.Command{
	Use:   "stream <stream>...",
	Short: "Subscribe to data streams and print the samples",
	Long: `Open a session with the first headset found, subscribe to the given
streams (eeg, mot, dev, com, fac, met, pow, sys) and print samples until
--samples have been read or the command is interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		streams := make([]cortex.StreamName, 0, len(args))
		for _, a := range args {
			streams = append(streams, cortex.StreamName(a))
		}

		if err := openSession(); err != nil {
			return err
		}

		result, err := cortexClient.Subscribe(streams...)
		if err != nil {
			return fmt.Errorf("failed to subscribe: %w", err)
		}
		for _, f := range result.Failure {
			logger.Warn().Str("stream", f.StreamName).Int("code", f.Code).Msg(f.Message)
		}
		if len(result.Success) == 0 {
			return fmt.Errorf("no stream could be subscribed")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return readSamples(ctx, cmd.OutOrStdout())
	},
}

func readSamples(ctx context.Context, w io.Writer) error {
	for read := 0; streamSamples <= 0 || read < streamSamples; {
		if ctx.Err() != nil {
			return nil
		}

		sample, ok, err := cortexClient.PollData()
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}
		if !ok {
			continue
		}
		read++

		err = render(w, sample, func(w io.Writer) {
			fmt.Fprintf(w, "%.4f\t%s\t%s\n", sample.Time, sample.Stream, sample.Values)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// openSession authorizes, connects the first headset found and opens an active session.
func openSession() error {
	if _, err := cortexClient.Authorize(); err != nil {
		return fmt.Errorf("failed to authorize: %w", err)
	}

	if _, err := cortexClient.QueryHeadsets(); err != nil {
		return fmt.Errorf("failed to query headsets: %w", err)
	}

	if _, status := cortexClient.Headset(); status != cortex.HeadsetStatusConnected {
		if _, err := cortexClient.ControlHeadset(cortex.HeadsetConnect); err != nil {
			return fmt.Errorf("failed to connect headset: %w", err)
		}
	}

	session, err := cortexClient.CreateSession(cortex.SessionActive)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	logger.Info().Str("session", session.ID).Msg("session opened")

	return nil
}

func init() {
	streamCmd.Flags().IntVarP(&streamSamples, "samples", "n", 0, "stop after this many samples (default: run until interrupted)")
	rootCmd.AddCommand(streamCmd)
}
