package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError is an error carrying the HTTP status to answer with.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

var (
	errMissingSession = StatusError{Code: http.StatusBadRequest, Err: errors.New("session parameter is required")}
	errUnknownSession = StatusError{Code: http.StatusNotFound, Err: errors.New("session not found")}
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	message := http.StatusText(code)
	if code < http.StatusInternalServerError && err != nil {
		message = err.Error()
	}
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
