// Package apperr is the business error taxonomy and its single mapping to
// HTTP responses. Handlers return these from services and call Respond at
// the boundary; anything that is not an *Error becomes a generic 500 with
// the detail kept server-side.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Kind int

const (
	KindValidation Kind = iota
	KindBadRequest
	KindNotFound
	KindForbidden
	KindConflict
)

type Error struct {
	Kind        Kind
	Reason      string // short machine-ish "error" field
	Description string
}

func (e *Error) Error() string { return e.Description }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Reason: "validation error", Description: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Reason: "bad request", Description: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Reason: "object not found", Description: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Reason: "forbidden", Description: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Reason: "duplicated data", Description: fmt.Sprintf(format, args...)}
}

// UnsupportedState keeps the wire contract for unparseable booking-state
// filters: clients match on the "error" field verbatim.
func UnsupportedState(value string) *Error {
	return &Error{
		Kind:        KindBadRequest,
		Reason:      "Unknown state: UNSUPPORTED_STATUS",
		Description: fmt.Sprintf("cannot convert %q to a booking state", value),
	}
}

func status(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type response struct {
	Err         string `json:"error"`
	Description string `json:"description"`
}

// Respond writes err as an {error, description} body. Internal errors are
// logged in full but leave the process as an opaque 500.
func Respond(c *gin.Context, log *zerolog.Logger, err error) {
	var ae *Error
	if errors.As(err, &ae) {
		code := status(ae.Kind)
		log.Warn().Int("status", code).Str("reason", ae.Reason).Msg(ae.Description)
		c.AbortWithStatusJSON(code, response{Err: ae.Reason, Description: ae.Description})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, response{
		Err:         "internal error",
		Description: "unexpected server-side error",
	})
}
