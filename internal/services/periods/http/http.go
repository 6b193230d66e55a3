// Package http provides http transport for the periods service
package http

import (
	stdhttp "net/http"

	"wearlog/internal/modkit/httpkit"
	"wearlog/internal/services/periods/domain"
)

// Register mounts the marker-editing endpoints on the given router
func Register(r httpkit.Router, s domain.EditorPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListInput](r, "/day", h.listDay)
	httpkit.PostJSON[domain.InsertInput](r, "/insert", h.insert)
	httpkit.PostJSON[domain.MoveInput](r, "/move", h.move)
	httpkit.PostJSON[domain.DeleteInput](r, "/delete", h.del)
	httpkit.PostJSON[domain.ListInput](r, "/mask", h.mask)
}

type handlers struct{ svc domain.EditorPort }

func (h *handlers) listDay(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.ListDay(r.Context(), in)
}

func (h *handlers) insert(r *stdhttp.Request, in domain.InsertInput) (any, error) {
	return h.svc.Insert(r.Context(), in)
}

func (h *handlers) move(r *stdhttp.Request, in domain.MoveInput) (any, error) {
	return h.svc.Move(r.Context(), in)
}

func (h *handlers) del(r *stdhttp.Request, in domain.DeleteInput) (any, error) {
	return h.svc.Delete(r.Context(), in)
}

func (h *handlers) mask(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.MaskDay(r.Context(), in)
}
