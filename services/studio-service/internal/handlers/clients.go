package handlers

import (
	"net/http"
	"strings"

	"github.com/yaelle-pmu/studio/libs/httpx"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/studio"
)

type updateClientRequest struct {
	ID string `json:"id"`
	studio.ClientInput
}

// Clients searches on GET and adds a client on POST.
func (h *StudioHandler) Clients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.svc.SearchClients(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			h.fail(w, r, "failed to list clients", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var in studio.ClientInput
		if !decode(w, r, &in) {
			return
		}
		client, err := h.svc.AddClient(r.Context(), in)
		if err != nil {
			h.fail(w, r, "failed to add client", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, client)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *StudioHandler) ClientDetail(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("client_id"))
	if id == "" {
		http.Error(w, "missing client_id", http.StatusBadRequest)
		return
	}
	detail, err := h.svc.ClientDetail(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to load client", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *StudioHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, http.MethodPut) {
		return
	}
	var req updateClientRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	client, err := h.svc.UpdateClient(r.Context(), strings.TrimSpace(req.ID), req.ClientInput)
	if err != nil {
		h.fail(w, r, "failed to update client", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, client)
}

func (h *StudioHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, http.MethodDelete) {
		return
	}
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteClient(r.Context(), strings.TrimSpace(req.ID)); err != nil {
		h.fail(w, r, "failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudioHandler) AddTreatment(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}
	var in studio.TreatmentInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.svc.AddTreatment(r.Context(), in)
	if err != nil {
		h.fail(w, r, "failed to add treatment", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

func (h *StudioHandler) DeleteTreatment(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, http.MethodDelete) {
		return
	}
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteTreatment(r.Context(), strings.TrimSpace(req.ID)); err != nil {
		h.fail(w, r, "failed to delete treatment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
