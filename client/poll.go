package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/internal/metrics"
)

const (
	// DataPollInterval is the number of PollData calls per receive.
	DataPollInterval = 6

	// TrainingPollInterval is the number of PollTrainingEvent calls before the first receive.
	TrainingPollInterval = 11
)

// PollData is meant to be called in a tight loop. Only every DataPollInterval-th
// call blocks on the socket and returns one stream message, with ok set to true.
// The other calls return immediately. Messages the service sends in between are
// left to the transport's buffering.
func (c *Client) PollData() (sample cortex.StreamSample, ok bool, err error) {
	c.dataTicks.Inc()
	if c.dataTicks.Value() < DataPollInterval {
		return sample, false, nil
	}
	c.dataTicks.Reset()

	sample, err = c.receiveSample(metrics.PollData)
	if err != nil {
		return sample, false, err
	}

	c.events.Publish(sample.Stream, sample)

	return sample, true, nil
}

// PollTrainingEvent works like PollData for "sys" stream messages, with
// TrainingPollInterval calls per receive. Unless the configuration sets
// ResetTrainingPoll, the call counter is never reset: once the first receive has
// happened, every later call blocks on the socket.
//
// A received message that is not a training event is published on the event bus
// and returned as errorkinds.ErrMalformedResponse.
//
// The training counter is separate from the PollData counter, so interleaving
// the two pollers does not shorten either interval.
func (c *Client) PollTrainingEvent() (event cortex.TrainingEvent, ok bool, err error) {
	c.trainingTicks.Inc()
	if c.trainingTicks.Value() < TrainingPollInterval {
		return event, false, nil
	}
	if c.cfg.ResetTrainingPoll {
		c.trainingTicks.Reset()
	}

	sample, err := c.receiveSample(metrics.PollTraining)
	if err != nil {
		return event, false, err
	}

	event, ok = sample.TrainingEvent()
	if !ok {
		c.events.Publish(sample.Stream, sample)

		return event, false, fault.Wrap(
			fmt.Errorf("%w: %q message is not a training event", errorkinds.ErrMalformedResponse, sample.Stream),
			fctx.With(context.Background(), "error_at", "poll-training"),
			ftag.With(ftag.Internal),
		)
	}

	c.events.Publish(cortex.StreamSystem, event)
	c.logger.Info().
		Str("detection", string(event.Detection)).
		Str("event", event.Event).
		Msg("training event")

	return event, true, nil
}

func (c *Client) receiveSample(kind string) (cortex.StreamSample, error) {
	var sample cortex.StreamSample

	if c.closed.Load() {
		return sample, errorkinds.ErrClientClosed
	}

	c.Lock()
	defer c.Unlock()

	ctx := fctx.WithMeta(context.Background(), "poll", kind)
	if err := c.connect(ctx); err != nil {
		return sample, err
	}

	c.metrics.ObservePollReceive(kind)

	data, err := c.receive(ctx)
	if err != nil {
		return sample, err
	}

	sample, err = cortex.ParseStreamMessage(data)
	if err != nil {
		if !errors.Is(err, errorkinds.ErrMalformedResponse) {
			err = fmt.Errorf("%w: stream message: %v", errorkinds.ErrMalformedResponse, err)
		}

		return cortex.StreamSample{}, fault.Wrap(err,
			fctx.With(ctx, "error_at", "parse-stream"),
			ftag.With(ftag.Internal),
		)
	}

	return sample, nil
}
