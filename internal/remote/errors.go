// SPDX-License-Identifier: MIT

// Package remote holds the error type and response helpers shared by the
// HTTP collaborators (text generation and repository hosting).
package remote

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrTransport matches every *TransportError via errors.Is.
var ErrTransport = errors.New("transport error")

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 * 1024

// TransportError reports a network failure or a non-2xx response.
// Message carries the remote-supplied message when one was present.
type TransportError struct {
	Service    string
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Cause)
	default:
		return fmt.Sprintf("%s API error: %d %s", e.Service, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrTransport) match.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// NetworkError wraps a failure that happened before any response arrived.
func NetworkError(service string, cause error) *TransportError {
	return &TransportError{Service: service, Cause: cause}
}

// StatusError builds a TransportError from a non-2xx response. extract
// pulls the remote message out of the decoded JSON body; it may be nil.
func StatusError(service string, resp *http.Response, extract func(body map[string]any) string) *TransportError {
	terr := &TransportError{Service: service, StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 || extract == nil {
		return terr
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return terr
	}
	terr.Message = strings.TrimSpace(extract(body))
	return terr
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
