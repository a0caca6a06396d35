package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/dejobratic/orderdesk/internal/orders/adapters/confirm"
	"github.com/dejobratic/orderdesk/internal/orders/app"
	"github.com/dejobratic/orderdesk/internal/orders/app/commands"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/view"
	"github.com/dejobratic/orderdesk/internal/report"
)

const confirmHeader = "X-Confirm"

// Handler exposes HTTP endpoints for the order console. The service is not
// safe for concurrent use, so every call into it holds mu.
type Handler struct {
	mu            sync.Mutex
	service       *app.Service
	defaultFormat report.Format
	logger        *slog.Logger
}

// NewHandler constructs a Handler. defaultFormat is used when a report
// request names no format.
func NewHandler(service *app.Service, defaultFormat report.Format, logger *slog.Logger) *Handler {
	return &Handler{
		service:       service,
		defaultFormat: defaultFormat,
		logger:        logger,
	}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/orders", h.getView)
	mux.HandleFunc("POST /v1/orders/refresh", h.refresh)
	mux.HandleFunc("POST /v1/orders/search", h.search)
	mux.HandleFunc("POST /v1/orders/sort", h.sort)
	mux.HandleFunc("GET /v1/orders/report", h.downloadReport)
	mux.HandleFunc("POST /v1/orders/{id}/status", h.transitionStatus)
	mux.HandleFunc("DELETE /v1/orders/{id}", h.deleteOrder)
}

type searchRequest struct {
	Query string `json:"query"`
}

type sortRequest struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type transitionResponse struct {
	Order          domain.Order       `json:"order"`
	PreviousStatus domain.OrderStatus `json:"previous_status"`
	Outcome        commands.Outcome   `json:"outcome"`
	View           app.View           `json:"view"`
}

type deleteResponse struct {
	OrderID string           `json:"order_id"`
	Outcome commands.Outcome `json:"outcome"`
	View    app.View         `json:"view"`
}

func (h *Handler) getView(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	current := h.service.View()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, current)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current, err := h.service.Refresh(r.Context())
	h.mu.Unlock()

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var payload searchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	h.mu.Lock()
	current := h.service.Search(payload.Query)
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, current)
}

func (h *Handler) sort(w http.ResponseWriter, r *http.Request) {
	var payload sortRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	h.mu.Lock()
	current, err := h.service.Sort(payload.Column, payload.Direction)
	h.mu.Unlock()

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *Handler) transitionStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	target := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(string(payload.Status))))

	ctx := withConfirmation(r)

	h.mu.Lock()
	result, err := h.service.TransitionStatus(ctx, r.PathValue("id"), target)
	current := h.service.View()
	h.mu.Unlock()

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transitionResponse{
		Order:          result.Order,
		PreviousStatus: result.Previous,
		Outcome:        result.Outcome,
		View:           current,
	})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := withConfirmation(r)

	h.mu.Lock()
	result, err := h.service.DeleteOrder(ctx, id)
	current := h.service.View()
	h.mu.Unlock()

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		OrderID: id,
		Outcome: result.Outcome,
		View:    current,
	})
}

func (h *Handler) downloadReport(w http.ResponseWriter, r *http.Request) {
	format := h.defaultFormat
	if value := r.URL.Query().Get("format"); value != "" {
		parsed, err := report.ParseFormat(value)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		format = parsed
	}

	h.mu.Lock()
	artifact, err := h.service.GenerateReport(r.Context(), format)
	h.mu.Unlock()

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Body)
}

// withConfirmation carries the operator's answer to the confirmation
// prompt, taken from the X-Confirm header or the confirm query parameter.
func withConfirmation(r *http.Request) context.Context {
	value := r.Header.Get(confirmHeader)
	if value == "" {
		value = r.URL.Query().Get("confirm")
	}
	answer, _ := strconv.ParseBool(strings.TrimSpace(value))
	return confirm.WithAnswer(r.Context(), answer)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "error", err, "status", status)
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransitionFailed),
		errors.Is(err, domain.ErrDeleteFailed),
		errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, view.ErrUnknownSortColumn),
		errors.Is(err, view.ErrUnknownSortDirection),
		errors.Is(err, report.ErrUnknownFormat),
		errors.Is(err, commands.ErrInvalidCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
