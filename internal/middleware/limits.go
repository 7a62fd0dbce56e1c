package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Common size limits
const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize is the default maximum request body size (1MB).
	// Storefront payloads are small JSON documents.
	DefaultMaxBodySize = 1 * MB
)

// MaxBodySize limits the size of request bodies.
// If no size is provided, DefaultMaxBodySize is used.
// If the request body exceeds maxBytes, it returns 413 Request Entity Too Large.
func MaxBodySize(maxBytes ...int64) func(http.Handler) http.Handler {
	var limit int64
	if len(maxBytes) > 0 {
		limit = maxBytes[0]
	} else {
		limit = DefaultMaxBodySize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > limit {
				respondTooLarge(w, r, "Request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// Common timeout values
const (
	// DefaultTimeout is the default request timeout (30 seconds)
	DefaultTimeout = 30 * time.Second

	// ShortTimeout is for quick operations (5 seconds)
	ShortTimeout = 5 * time.Second
)

// Timeout adds a timeout to request processing.
// If no duration is provided, DefaultTimeout is used.
// If the handler doesn't complete within the timeout, it returns 503 Service Unavailable.
func Timeout(timeout ...time.Duration) func(http.Handler) http.Handler {
	var duration time.Duration
	if len(timeout) > 0 {
		duration = timeout[0]
	} else {
		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			done := make(chan struct{})
			tw := &timeoutWriter{
				ResponseWriter: w,
				done:           done,
			}

			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()

				if !tw.wroteHeader {
					// Only send an error if we haven't started responding
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte("Request timeout"))
				}
				// Otherwise the client receives a truncated response
			}
		})
	}
}

// timeoutWriter wraps http.ResponseWriter to track if headers have been written
type timeoutWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	wroteHeader bool
	done        chan struct{}
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.wroteHeader {
		return
	}

	select {
	case <-tw.done:
		// Already timed out, don't write
		return
	default:
		tw.wroteHeader = true
		tw.ResponseWriter.WriteHeader(code)
	}
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	select {
	case <-tw.done:
		return 0, context.DeadlineExceeded
	default:
		if !tw.wroteHeader {
			tw.wroteHeader = true
			tw.ResponseWriter.WriteHeader(http.StatusOK)
		}
		return tw.ResponseWriter.Write(b)
	}
}
