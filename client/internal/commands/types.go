package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/internal/serde"
)

const (
	// RequestID is the id of every request. Responses are not correlated by id,
	// so only one request may be outstanding at a time.
	RequestID = 1

	// Version is the JSON-RPC protocol version.
	Version = "2.0"
)

// ExecuteFunc sends a request and returns the next message received.
type ExecuteFunc func(req Request) (Response, error)

// Params holds the named parameters of a request.
type Params = map[Argument]any

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	ID      int    `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  Params `json:"params"`
}

// Response is a JSON-RPC 2.0 response envelope. The result member is kept
// undecoded until the caller knows its type.
type Response struct {
	ID      any                  `json:"id,omitempty"`
	JSONRPC string               `json:"jsonrpc,omitempty"`
	Result  serde.Raw            `json:"result,omitempty"`
	Error   *errorkinds.RPCError `json:"error,omitempty"`
}

// T is the type of the decoded result member.
type Command[T any] struct {
	method string
	params Params
}

// BuildRequest builds the envelope for method. Params is never nil, so the
// encoded request always carries a "params" object.
func BuildRequest(method string, params Params) Request {
	if params == nil {
		params = make(Params)
	}

	return Request{
		ID:      RequestID,
		JSONRPC: Version,
		Method:  method,
		Params:  params,
	}
}

// Request returns the request envelope of the command.
func (c *Command[T]) Request() Request {
	return BuildRequest(c.method, c.params)
}

// WithArgument sets a parameter.
func (c *Command[T]) WithArgument(arg Argument, value any) *Command[T] {
	if c.params == nil {
		c.params = make(Params)
	}

	c.params[arg] = value

	return c
}

// WithOptionalArgument sets a parameter only if value is not empty.
func (c *Command[T]) WithOptionalArgument(arg Argument, value any) *Command[T] {
	if isEmpty(value) {
		return c
	}

	return c.WithArgument(arg, value)
}

// WithArguments sets parameters through fn.
func (c *Command[T]) WithArguments(fn func(Params)) *Command[T] {
	if c.params == nil {
		c.params = make(Params)
	}

	fn(c.params)

	return c
}

// ExecuteWith sends the command through fn and decodes the result member into T.
// An error member is returned as *errorkinds.RPCError. A missing or undecodable
// result member is returned as errorkinds.ErrMalformedResponse.
func (c *Command[T]) ExecuteWith(fn ExecuteFunc) (T, error) {
	var result T

	response, err := fn(c.Request())
	if err != nil {
		return result, err
	}

	if response.Error != nil {
		rpcErr := *response.Error
		rpcErr.Method = c.method

		return result, &rpcErr
	}

	if isNull(response.Result) {
		return result, c.malformed(fmt.Errorf("%w: %s: response has no result", errorkinds.ErrMalformedResponse, c.method))
	}

	if raw, ok := any(&result).(*cortex.RawResult); ok {
		*raw = cortex.RawResult(response.Result)
		return result, nil
	}

	if err := serde.UnmarshalJson([]byte(response.Result), &result); err != nil {
		return result, c.malformed(fmt.Errorf("%w: %s: %v", errorkinds.ErrMalformedResponse, c.method, err))
	}

	return result, nil
}

func (c *Command[T]) malformed(err error) error {
	return fault.Wrap(err,
		fctx.With(context.Background(), "method", c.method),
		ftag.With(ftag.Internal),
	)
}

func isNull(raw serde.Raw) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return v == nil
	case map[string]any:
		return v == nil
	}

	return false
}
