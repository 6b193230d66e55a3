package httpkit

import (
	"net/http"
	"strings"

	perrs "wearlog/internal/platform/errors"
	pnet "wearlog/internal/platform/net"
)

// Participant returns the authenticated participant id from the request context
func Participant(r *http.Request) (string, error) {
	pid := pnet.ParticipantID(r.Context())
	if pid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return pid, nil
}

// Device returns the source device id from the request context
func Device(r *http.Request) (string, error) {
	did := pnet.DeviceID(r.Context())
	if did == "" {
		return "", perrs.Unauthorizedf("missing device scope")
	}
	return did, nil
}

// MustParticipant returns the authenticated participant id or panics
func MustParticipant(r *http.Request) string {
	pid, err := Participant(r)
	if err != nil {
		panic(err)
	}
	return pid
}

// MustDevice returns the source device id or panics
func MustDevice(r *http.Request) string {
	did, err := Device(r)
	if err != nil {
		panic(err)
	}
	return did
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// MustJWT returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustJWT(r *http.Request) string {
	raw, err := JWT(r)
	if err != nil {
		panic(err)
	}
	return raw
}
