package middleware

import (
	"net/http"
	"runtime/debug"

	"docscabinet/internal/apperr"
	"docscabinet/internal/utils"

	"github.com/sirupsen/logrus"
)

// Recoverer catches handler panics, logs the stack and answers with the
// generic server-error body.
func Recoverer(l *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.WithFields(logrus.Fields{
						"reqid":  GetRequestID(r),
						"method": r.Method,
						"uri":    r.RequestURI,
						"panic":  rec,
					}).Errorf("panic recovered\n%s", debug.Stack())
					utils.Error(w, apperr.New(apperr.Server))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
