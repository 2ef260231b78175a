package handlers

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yaelle-pmu/studio/libs/httpx"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/applog"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/images"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/prompts"
)

type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ImageSource interface {
	DataURI(ctx context.Context, category string) (string, error)
}

type GenerateHandler struct {
	llm     Completer
	images  ImageSource
	studio  prompts.Studio
	logs    *applog.File
	logger  *slog.Logger
	pickImg func(prompt string) string
}

func NewGenerateHandler(llm Completer, imgs ImageSource, studio prompts.Studio, logs *applog.File, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		llm:    llm,
		images: imgs,
		studio: studio,
		logs:   logs,
		logger: logger,
		pickImg: func(prompt string) string {
			return images.Category(prompt, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		},
	}
}

type generateRequest struct {
	Prompt       string `json:"prompt"`
	Type         string `json:"type"`
	IncludeImage bool   `json:"includeImage"`
}

type generateDebug struct {
	ImageError string `json:"imageError,omitempty"`
}

type generateResponse struct {
	Success   bool           `json:"success"`
	Content   string         `json:"content,omitempty"`
	Image     string         `json:"image,omitempty"`
	Error     string         `json:"error,omitempty"`
	Details   string         `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Debug     *generateDebug `json:"debug,omitempty"`
}

func requestID(r *http.Request) string {
	if id := httpx.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reqID := requestID(r)
	logger := h.logger.With("request_id", reqID)

	var req generateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, generateResponse{Error: "invalid json body", RequestID: reqID})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, generateResponse{Error: "Prompt is required", RequestID: reqID})
		return
	}
	logger.Info("generate request", "type", req.Type, "include_image", req.IncludeImage, "prompt_len", len(req.Prompt))

	system, user := h.studio.Build(req.Type, req.Prompt)
	content, err := h.llm.Complete(r.Context(), system, user)
	if err != nil {
		logger.Error("content generation failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, generateResponse{
			Error:     "Failed to generate content",
			Details:   err.Error(),
			RequestID: reqID,
		})
		return
	}

	resp := generateResponse{Success: true, Content: content, RequestID: reqID}
	if req.IncludeImage && h.images != nil {
		category := h.pickImg(req.Prompt)
		image, err := h.images.DataURI(r.Context(), category)
		if err != nil {
			logger.Warn("image fetch failed", "category", category, "err", err)
			resp.Debug = &generateDebug{ImageError: err.Error()}
		} else {
			resp.Image = image
			logger.Debug("image attached", "category", category, "bytes", len(image))
		}
	}
	logger.Info("generate done", "content_len", len(content), "image", resp.Image != "")
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Logs returns the tail of the log file on GET and empties it on DELETE.
func (h *GenerateHandler) Logs(w http.ResponseWriter, r *http.Request) {
	if !h.logs.Enabled() {
		http.Error(w, "file logging is disabled", http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		n := applog.DefaultLines
		if raw := strings.TrimSpace(r.URL.Query().Get("lines")); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v <= 0 {
				http.Error(w, "invalid lines", http.StatusBadRequest)
				return
			}
			n = v
		}
		entries, err := h.logs.Tail(n)
		if err != nil {
			h.logger.Error("read log file failed", "err", err)
			http.Error(w, "failed to read logs", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"logs": entries})
	case http.MethodDelete:
		if err := h.logs.Truncate(); err != nil {
			h.logger.Error("truncate log file failed", "err", err)
			http.Error(w, "failed to clear logs", http.StatusInternalServerError)
			return
		}
		h.logger.Info("log file cleared")
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
