// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"net/http"

	"github.com/thatcatcamp/themecycle/internal/generator"
	"github.com/thatcatcamp/themecycle/internal/github"
	"github.com/thatcatcamp/themecycle/internal/remote"
	"github.com/thatcatcamp/themecycle/internal/session"
	"github.com/thatcatcamp/themecycle/internal/store"
)

// statusFor maps an action error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrMissingInput),
		errors.Is(err, session.ErrMissingSetting),
		errors.Is(err, session.ErrNothingToPush),
		errors.Is(err, github.ErrInvalidRepoURL):
		return http.StatusBadRequest
	case errors.Is(err, generator.ErrSchema), errors.Is(err, generator.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, remote.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
