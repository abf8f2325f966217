package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"team-allocation-service/internal/domain"
	"team-allocation-service/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type Handler struct {
	teamService       *service.TeamService
	memberService     *service.MemberService
	allocationService *service.AllocationService
	metrics           *Metrics
	logger            *slog.Logger
}

func NewHandler(ts *service.TeamService, ms *service.MemberService, as *service.AllocationService, metrics *Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		teamService:       ts,
		memberService:     ms,
		allocationService: as,
		metrics:           metrics,
		logger:            logger,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write json response", "error", err)
	}
}

func (h *Handler) respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	apiErr := APIError{Code: "BAD_REQUEST", Message: message}
	h.respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: apiErr})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	apiErr := APIError{
		Code:    "INTERNAL_ERROR",
		Message: "unknown error",
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		apiErr = APIError{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrTeamExists):
		status = http.StatusConflict
		apiErr = APIError{Code: "TEAM_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrMemberExists):
		status = http.StatusConflict
		apiErr = APIError{Code: "MEMBER_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		apiErr = APIError{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRole):
		status = http.StatusBadRequest
		apiErr = APIError{Code: "BAD_REQUEST", Message: err.Error()}
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "http server error", "error", err)
	}

	h.respondJSON(w, r, status, ErrorResponse{Error: apiErr})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func NewSlogLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"route", chi.RouteContext(r.Context()).RoutePattern(),
				"status", ww.Status(),
				"duration_ms", time.Since(t1).Milliseconds(),
				"bytes_written", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}

		return http.HandlerFunc(fn)
	}
}
