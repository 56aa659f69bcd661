package handlers

import (
	"io"
	"net/http"
)

// Response bodies are plain text and fixed; failure details only go to the logs.
const (
	msgServerError        = "Server Error"
	msgInvalidCredentials = "Invalid credentials"
)

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

// ServerError answers 500 with the generic body.
func ServerError(w http.ResponseWriter) {
	writeText(w, http.StatusInternalServerError, msgServerError)
}
