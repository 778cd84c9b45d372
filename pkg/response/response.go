// Package response writes the catalog API's JSON envelopes.
//
// Success shapes carry the fetched documents plus, for asset-bearing
// endpoints, the base path under which uploaded files are served so clients
// can construct full image URLs:
//
//	{ "data": [...], "message": "Fetched!", "filepath": "http://.../uploads/products/" }
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Data     interface{}       `json:"data,omitempty"`
	Message  string            `json:"message,omitempty"`
	Filepath string            `json:"filepath,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data and message.
func Success(w http.ResponseWriter, data interface{}, message string) {
	write(w, http.StatusOK, envelope{Data: data, Message: message})
}

// SuccessWithFilepath sends a 200 with data, message, and the asset base path.
func SuccessWithFilepath(w http.ResponseWriter, data interface{}, message, filepath string) {
	write(w, http.StatusOK, envelope{Data: data, Message: message, Filepath: filepath})
}

// Created sends a 201 with the created document.
func Created(w http.ResponseWriter, data interface{}, message string) {
	write(w, http.StatusCreated, envelope{Data: data, Message: message})
}

// Message sends a 200 with only a message body.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, envelope{Message: message})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Message: message})
}

// BadRequest sends a 400.
func BadRequest(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, "Bad request")
}

// Internal sends a 500 with the error's message, matching the catalog's
// historical behaviour of surfacing internal messages verbatim.
func Internal(w http.ResponseWriter, err error) {
	Error(w, http.StatusInternalServerError, err.Error())
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Message: "Validation failed",
		Errors:  errs,
	})
}
