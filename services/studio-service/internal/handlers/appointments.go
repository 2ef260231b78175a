package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/yaelle-pmu/studio/libs/httpx"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/export"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/studio"
)

const exportPrefix = "yaelle"

type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type appointmentItem struct {
	model.Appointment
	ServiceName  string         `json:"serviceName"`
	NextStatuses []model.Status `json:"nextStatuses"`
	Final        bool           `json:"final"`
}

func toAppointmentItem(a model.Appointment) appointmentItem {
	return appointmentItem{
		Appointment:  a,
		ServiceName:  model.ServiceName(a.Service),
		NextStatuses: model.NextStatuses(a.Status),
		Final:        a.Status.Terminal(),
	}
}

func (h *StudioHandler) Book(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}
	var req studio.BookingRequest
	if !decode(w, r, &req) {
		return
	}
	appt, err := h.svc.Book(r.Context(), req)
	if err != nil {
		h.fail(w, r, "failed to book appointment", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, appt)
}

func (h *StudioHandler) Services(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": h.svc.Services()})
}

func (h *StudioHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	appts, err := h.svc.ListAppointments(r.Context(), studio.AppointmentFilter{
		Status: strings.TrimSpace(q.Get("status")),
		Date:   strings.TrimSpace(q.Get("date")),
	})
	if err != nil {
		h.fail(w, r, "failed to list appointments", err)
		return
	}
	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, toAppointmentItem(a))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *StudioHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.fail(w, r, "failed to compute stats", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

func (h *StudioHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}
	var req updateStatusRequest
	if !decode(w, r, &req) {
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" || req.Status == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}
	appt, err := h.svc.UpdateStatus(r.Context(), req.ID, model.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		h.fail(w, r, "failed to update status", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointmentItem(appt))
}

func (h *StudioHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.DeleteAppointment(r.Context(), strings.TrimSpace(req.ID)); err != nil {
		h.fail(w, r, "failed to delete appointment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudioHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		http.Error(w, "format must be csv or xlsx", http.StatusBadRequest)
		return
	}

	appts, err := h.svc.AllAppointments(r.Context())
	if err != nil {
		h.fail(w, r, "failed to load appointments", err)
		return
	}
	if len(appts) == 0 {
		http.Error(w, "no appointments to export", http.StatusNotFound)
		return
	}

	filename := export.Filename(exportPrefix, h.now().UTC(), format)
	var (
		body        []byte
		contentType string
	)
	switch format {
	case "xlsx":
		var buf bytes.Buffer
		if err := export.XLSX(&buf, appts); err != nil {
			h.fail(w, r, "failed to build workbook", err)
			return
		}
		body, contentType = buf.Bytes(), export.XLSXContentType
	default:
		body, contentType = []byte(export.CSV(appts)), export.CSVContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *StudioHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}
	if err := h.svc.ClearAll(r.Context()); err != nil {
		h.fail(w, r, "failed to clear data", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
