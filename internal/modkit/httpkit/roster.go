package httpkit

import (
	"net/http"

	pnet "wearlog/internal/platform/net"
)

// RosterPort validates participant context against the study enrollment roster
type RosterPort interface {
	Validate(r *http.Request, participantID string) error
}

// Roster is middleware that validates the participant ID from context using
// the port; a nil port mounts as a passthrough
func Roster(p RosterPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			pid := pnet.ParticipantID(r.Context())
			if err := p.Validate(r, pid); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
