package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cdlmock/accountapi/internal/auth"
	"github.com/cdlmock/accountapi/internal/metrics"
)

// Gate decides whether a request may proceed.
// On success it returns the request to pass on, possibly with an enriched context.
// On denial it returns an error, normally an *auth.Error.
type Gate interface {
	Check(r *http.Request) (*http.Request, error)
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func(r *http.Request) (*http.Request, error)

// Check calls f(r).
func (f GateFunc) Check(r *http.Request) (*http.Request, error) {
	return f(r)
}

// GuardConfig holds dependencies for the Guard middleware.
type GuardConfig struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Guard returns a middleware that runs gates in order and stops at the first denial.
// A denial is written as {"message": ...} with the status from auth.StatusCode;
// the wrapped handler runs only if every gate allows the request.
func Guard(cfg GuardConfig, gates ...Gate) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, g := range gates {
				allowed, err := g.Check(r)
				if err != nil {
					reason := auth.Reason(err)
					cfg.Metrics.IncGateDenied(reason)
					cfg.Logger.Warn("request denied",
						slog.String("reason", reason),
						slog.String("error", err.Error()),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeMessage(w, auth.StatusCode(err), auth.Message(err))
					return
				}
				r = allowed
			}

			next.ServeHTTP(w, r)
		})
	}
}
