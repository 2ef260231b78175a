package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/libs/httpx"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/studio"
)

type recipientItem struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (h *StudioHandler) Posts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		posts, err := h.svc.Posts(r.Context())
		if err != nil {
			h.fail(w, r, "failed to list posts", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": posts})
	case http.MethodPost:
		var in studio.PostInput
		if !decode(w, r, &in) {
			return
		}
		post, err := h.svc.CreatePost(r.Context(), in)
		if err != nil {
			h.fail(w, r, "failed to save post", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, post)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *StudioHandler) PostDetail(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("post_id"))
	if id == "" {
		http.Error(w, "missing post_id", http.StatusBadRequest)
		return
	}
	post, err := h.svc.Post(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to load post", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

func (h *StudioHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.DeletePost(r.Context(), strings.TrimSpace(req.ID)); err != nil {
		h.fail(w, r, "failed to delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudioHandler) Recipients(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	clients, err := h.svc.Recipients(r.Context(), strings.TrimSpace(r.URL.Query().Get("segment")))
	if err != nil {
		h.fail(w, r, "failed to select recipients", err)
		return
	}
	items := lo.Map(clients, func(c model.Client, _ int) recipientItem {
		return recipientItem{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email}
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"count":   len(items),
		"items":   items,
		"canSend": h.svc.CanSendMail(),
		"sender":  h.svc.Brand(),
	})
}

func (h *StudioHandler) SendCampaign(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}
	var in studio.CampaignInput
	if !decode(w, r, &in) {
		return
	}
	res, err := h.svc.SendCampaign(r.Context(), in)
	if errors.Is(err, studio.ErrCampaignIncomplete) {
		h.logger.Error("campaign delivery incomplete",
			"err", err,
			"sent", res.Sent,
			"failed", res.Failed,
			"request_id", httpx.RequestIDFromContext(r.Context()),
		)
		httpx.WriteJSON(w, http.StatusBadGateway, res)
		return
	}
	if err != nil {
		h.fail(w, r, "failed to send campaign", err)
		return
	}
	status := http.StatusOK
	if res.Prepared {
		status = http.StatusAccepted
	}
	httpx.WriteJSON(w, status, res)
}

func (h *StudioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}
	var req studio.DraftRequest
	if !decode(w, r, &req) {
		return
	}
	draft, err := h.svc.GenerateDraft(r.Context(), req)
	if err != nil {
		h.fail(w, r, "failed to generate content", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, draft)
}
