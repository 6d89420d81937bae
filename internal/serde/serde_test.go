package serde

import (
	"strings"
	"testing"
)

type envelope struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Result Raw    `json:"result,omitempty"`
}

func TestMarshalJsonReturnsIndependentBuffers(t *testing.T) {
	t.Parallel()

	first, err := MarshalJson(envelope{ID: 1, Method: "authorize"})
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	second, err := MarshalJson(envelope{ID: 1, Method: "queryHeadsets"})
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}

	if !strings.Contains(string(first), `"authorize"`) {
		t.Fatalf("first buffer was overwritten: %s", first)
	}
	if !strings.Contains(string(second), `"queryHeadsets"`) {
		t.Fatalf("unexpected second buffer: %s", second)
	}
}

func TestMarshalJsonSortsMapKeys(t *testing.T) {
	t.Parallel()

	out, err := MarshalJson(map[string]any{"session": "s", "cortexToken": "t", "headset": "h"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"cortexToken":"t","headset":"h","session":"s"}` {
		t.Fatalf("unexpected encoding: %s", out)
	}
}

func TestUnmarshalJsonKeepsRawResult(t *testing.T) {
	t.Parallel()

	var env envelope
	if err := UnmarshalJson([]byte(`{"id":1,"extra":true,"result":{"cortexToken":"abc"}}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(env.Result) != `{"cortexToken":"abc"}` {
		t.Fatalf("unexpected raw result: %s", env.Result)
	}
}

func TestUnmarshalJsonMissingAndNullResult(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{"id":1}`, `{"id":1,"result":null}`} {
		var env envelope
		if err := UnmarshalJson([]byte(payload), &env); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if len(env.Result) != 0 {
			t.Fatalf("expected empty raw result for %s, got %s", payload, env.Result)
		}
	}
}
