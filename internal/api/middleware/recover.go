package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"taskdeck/internal/common"
)

// Recoverer converts panics into a generic JSON 500. The panic and stack are
// logged server-side only; nothing internal reaches the client.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				common.RespondWithError(w, http.StatusInternalServerError, "Something went wrong on the server")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
