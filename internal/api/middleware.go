package api

import (
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/isdelr/taskdesk-be/internal/api/handlers"
	"github.com/rs/zerolog/log"
)

// RequestLogger echoes the id assigned by middleware.RequestID and stores a
// logger carrying it in the request context.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		w.Header().Set(middleware.RequestIDHeader, id)

		l := log.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

// Recoverer turns a panic into the same 500 "Server Error" reply every other
// failure gets.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			log.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic")
			handlers.ServerError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
