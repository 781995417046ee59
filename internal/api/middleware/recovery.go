package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/blaisecz/nightlog/pkg/problem"
)

// Recovery recovers from panics and returns a 500 error
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[http] panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				problem.InternalError("An unexpected error occurred").WithInstance(r.URL.Path).Write(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
