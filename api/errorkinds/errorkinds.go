// Package errorkinds lists the error kinds returned by the Cortex client.
//
// Transport and precondition failures are sentinel values, matched with errors.Is.
// Errors reported by the Cortex service itself are returned as *RPCError, matched
// with errors.As.
package errorkinds

import (
	"errors"
	"strconv"
	"strings"
)

// Transport errors.
var (
	ErrConnection     = errors.New("cortex: connection error")
	ErrClientClosed   = errors.New("cortex: client is closed")
	ErrReceiveTimeout = errors.New("cortex: timed out waiting for a message")
)

// Response errors.
var (
	ErrMalformedResponse = errors.New("cortex: malformed response")
)

// Precondition errors. These are returned before any request is sent.
var (
	ErrNotAuthorized        = errors.New("cortex: no authorization token, call Authorize first")
	ErrNoHeadsets           = errors.New("cortex: no headsets found")
	ErrHeadsetNotPaired     = errors.New("cortex: headset not paired")
	ErrHeadsetNotConnected  = errors.New("cortex: headset not connected")
	ErrNoSession            = errors.New("cortex: no active session")
	ErrRecordNotStopped     = errors.New("cortex: record must be stopped before export")
	ErrInvalidArgument      = errors.New("cortex: invalid argument")
	ErrInvalidConfiguration = errors.New("cortex: invalid configuration")
)

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Method  string `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	sb := strings.Builder{}

	sb.WriteString("cortex: ")
	if e.Method != "" {
		sb.WriteString(e.Method)
		sb.WriteString(": ")
	}
	if e.Message == "" {
		sb.WriteString("No information is provided for this error")
	} else {
		sb.WriteString(e.Message)
	}
	sb.WriteString(" (code ")
	sb.WriteString(strconv.Itoa(e.Code))
	sb.WriteString(")")

	return sb.String()
}
