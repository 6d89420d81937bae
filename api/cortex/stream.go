package cortex

import (
	"fmt"

	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/internal/serde"
)

// StreamName identifies a Cortex data stream.
type StreamName string

const (
	StreamEEG              StreamName = "eeg"
	StreamMotion           StreamName = "mot"
	StreamDevice           StreamName = "dev"
	StreamMentalCommand    StreamName = "com"
	StreamFacialExpression StreamName = "fac"
	StreamPerformance      StreamName = "met"
	StreamBandPower        StreamName = "pow"
	StreamSystem           StreamName = "sys"
)

// String converts a StreamName to a string.
func (s StreamName) String() string {
	return string(s)
}

// StreamNames converts a list of stream names to strings, as sent on the wire.
func StreamNames(streams ...StreamName) []string {
	names := make([]string, 0, len(streams))
	for _, s := range streams {
		names = append(names, s.String())
	}

	return names
}

// StreamSample is one unsolicited data message pushed by Cortex after a
// successful subscription, for example:
//
//	{"com":["push",0.382],"sid":"...","time":1590736942.8479}
type StreamSample struct {
	Stream StreamName
	SID    string
	Time   float64
	Values RawResult
}

// TrainingEvent is one message of the "sys" stream, for example
// ["mentalCommand","MC_Succeeded"].
type TrainingEvent struct {
	Detection Detection
	Event     string
	SID       string
	Time      float64
}

// Training event names sent on the "sys" stream.
const (
	MentalCommandStarted   = "MC_Started"
	MentalCommandSucceeded = "MC_Succeeded"
	MentalCommandFailed    = "MC_Failed"
	MentalCommandCompleted = "MC_Completed"
	MentalCommandRejected  = "MC_Rejected"
	MentalCommandReset     = "MC_DataErased"
)

// ParseStreamMessage decodes one unsolicited stream message. The stream name is
// the single member that is neither "sid" nor "time". A method response, or a
// message without exactly one stream member, is rejected with
// errorkinds.ErrMalformedResponse.
func ParseStreamMessage(data []byte) (StreamSample, error) {
	var sample StreamSample

	members := make(map[string]serde.Raw)
	if err := serde.UnmarshalJson(data, &members); err != nil {
		return sample, err
	}

	for _, key := range responseMembers {
		if _, ok := members[key]; ok {
			return sample, fmt.Errorf("%w: method response received instead of a stream message", errorkinds.ErrMalformedResponse)
		}
	}

	for key, value := range members {
		switch key {
		case "sid":
			if err := serde.UnmarshalJson(value, &sample.SID); err != nil {
				return sample, err
			}

		case "time":
			if err := serde.UnmarshalJson(value, &sample.Time); err != nil {
				return sample, err
			}

		default:
			if sample.Stream != "" {
				return StreamSample{}, fmt.Errorf("%w: stream message has members %q and %q",
					errorkinds.ErrMalformedResponse, sample.Stream, key)
			}

			sample.Stream = StreamName(key)
			sample.Values = RawResult(value)
		}
	}

	if sample.Stream == "" {
		return sample, fmt.Errorf("%w: stream message has no stream member", errorkinds.ErrMalformedResponse)
	}

	return sample, nil
}

// responseMembers mark a JSON-RPC response.
var responseMembers = []string{"id", "jsonrpc", "result", "error"}

// TrainingEvent decodes the sample as a "sys" stream message.
func (s StreamSample) TrainingEvent() (TrainingEvent, bool) {
	var values []string

	if s.Stream != StreamSystem {
		return TrainingEvent{}, false
	}
	if err := s.Values.Decode(&values); err != nil || len(values) < 2 {
		return TrainingEvent{}, false
	}

	return TrainingEvent{
		Detection: Detection(values[0]),
		Event:     values[1],
		SID:       s.SID,
		Time:      s.Time,
	}, true
}
