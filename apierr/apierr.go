// Package apierr defines the tagged error taxonomy shared by both
// HTTP services and the fixed status/body mapping used to render it.
package apierr

import (
	"encoding/json"
	"net/http"

	"github.com/harrybrwn/geocore/geodb"
)

// Code is a stable error classification independent of transport.
type Code int

const (
	NotFound Code = iota
	BadRequest
	BadLang
	Conflict
	Internal
)

// Error is a tagged API error carrying a human-readable message.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func New(c Code, msg string) *Error { return &Error{Code: c, Msg: msg} }

func NotFoundf(msg string) *Error   { return New(NotFound, msg) }
func BadRequestf(msg string) *Error { return New(BadRequest, msg) }
func BadLangf(msg string) *Error    { return New(BadLang, msg) }
func Conflictf(msg string) *Error   { return New(Conflict, msg) }
func Internalf(msg string) *Error   { return New(Internal, msg) }

// Status returns the HTTP status code for c.
func (c Code) Status() int {
	switch c {
	case NotFound:
		return http.StatusNotFound
	case BadRequest:
		return http.StatusBadRequest
	case BadLang:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// body is the wire shape of an error response.
type body struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// From normalizes any error into *Error, mapping known geodb.GeoError
// variants and otherwise defaulting to Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	if ge, ok := err.(*geodb.GeoError); ok {
		switch ge.Code {
		case geodb.NotFound:
			return NotFoundf(ge.Msg)
		case geodb.BadRequest:
			return BadRequestf(ge.Msg)
		case geodb.BadLang:
			return BadLangf(ge.Msg)
		default:
			return Internalf(ge.Msg)
		}
	}
	return Internalf(err.Error())
}

// Write renders err as a JSON error body with the status code
// matching its tagged code.
func Write(w http.ResponseWriter, err error) {
	e := From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code.Status())
	_ = json.NewEncoder(w).Encode(body{Status: "error", Message: e.Msg})
}
