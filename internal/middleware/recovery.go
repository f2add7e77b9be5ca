package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/view"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger := logging.Get()
				logger.Error("panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
					"path", r.URL.Path,
				)

				view.ServerError(w, r)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
