package middleware

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Logger logs each HTTP request with method, path, status, duration and,
// when authenticated, the caller.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		// Auth runs further down the chain and fills this in.
		who := &callerRef{id: "-"}
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), callerRefKey{}, who)))

		log.Printf("%s %s %d %s user=%s",
			r.Method,
			r.URL.Path,
			ww.status,
			time.Since(start).Round(time.Millisecond),
			who.id,
		)
	})
}

type callerRefKey struct{}

type callerRef struct {
	id string
}

// noteCaller records the authenticated user for the request log line.
func noteCaller(ctx context.Context, userID string) {
	if ref, ok := ctx.Value(callerRefKey{}).(*callerRef); ok {
		ref.id = userID
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}
