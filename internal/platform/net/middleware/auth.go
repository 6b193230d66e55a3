package middleware

import (
	"net/http"

	pnet "wearlog/internal/platform/net"
)

// AuthPort is a tiny seam a token or study roster service can implement
type AuthPort interface {
	// Parse returns a participant id and device id from the request or an error
	Parse(r *http.Request) (participantID string, deviceID string, err error)
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			pid, did, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithDevice(r.Context(), did)
			ctx = pnet.WithRequest(ctx, pnet.RequestID(ctx), pid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
