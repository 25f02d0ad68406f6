package middleware

import (
	"fmt"
	"net/http"

	"chakai-booking/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover converts a panic in a handler into a 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("Handler panicked",
					zap.String("panic", fmt.Sprint(rec)),
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.String("route", r.Method+" "+r.URL.Path),
					zap.Stack("stack"),
				)
				utils.ResponseInternalError(w, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
