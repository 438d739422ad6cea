package httpjson

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// Response is the envelope of every JSON body.
type Response struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// Write encodes body with status.
func Write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, code, message string, data any) {
	Write(w, http.StatusOK, Response{Code: code, Message: message, Data: data})
}

// Error writes err as a JSON error. HTTPError and ValidationError keep their
// status and details; anything else becomes a 500 whose message never
// includes err's text.
func Error(w http.ResponseWriter, err error) {
	status, detail := toDetail(err)
	Write(w, status, Response{Code: detail.Code, Error: detail})
}

func toDetail(err error) (int, *ErrorDetail) {
	var valErr ValidationError
	if errors.As(err, &valErr) {
		d := &ErrorDetail{
			Code:    "validation_error",
			Message: "The request contains invalid fields.",
			Details: make(map[string][]string, len(valErr)),
		}
		maps.Copy(d.Details, valErr)
		return http.StatusUnprocessableEntity, d
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: msg}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
