package usage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/costguard/costguard/pkg/models/api"
	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/costguard/costguard/pkg/services/mapping"
	"github.com/costguard/costguard/pkg/services/metering"
	"github.com/costguard/costguard/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CommitmentStore is the slice of the persistence layer the handler
// needs.
type CommitmentStore interface {
	GetCommitment(ctx context.Context, service, dimension string) (domain.Commitment, error)
	ListCommitments(ctx context.Context, service string) ([]domain.Commitment, error)
	UpsertCommitment(ctx context.Context, c domain.Commitment) error
	ReplaceCommitments(ctx context.Context, service string, commitments []domain.Commitment) error
}

type Handler struct {
	reports     report.Controller
	commitments CommitmentStore
	registry    mapping.Registry
}

func NewHandler(reports report.Controller, commitments CommitmentStore, registry mapping.Registry) *Handler {
	return &Handler{
		reports:     reports,
		commitments: commitments,
		registry:    registry,
	}
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services := h.registry.ListServices()

	response := make([]api.Service, 0, len(services))
	for _, s := range services {
		response = append(response, api.Service{Key: s.Key, Name: s.Name, Dimensions: s.Dimensions})
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) GetServiceUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	service := chi.URLParam(r, "service")

	if _, err := h.registry.Service(service); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	usage, err := h.reports.GetServiceUsage(ctx, service)
	if err != nil {
		if errors.Is(err, metering.ErrRateLimited) {
			writeError(ctx, w, http.StatusTooManyRequests, err.Error())
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("service", service).Msg("service usage failed")
		writeError(ctx, w, http.StatusBadGateway, "usage fetch failed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toAPIServiceUsage(usage))
}

func (h *Handler) GetDimensionUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dimension := chi.URLParam(r, "dimension")

	if _, err := h.registry.Dimension(dimension); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	usage, err := h.reports.GetDimensionUsage(ctx, dimension)
	if err != nil {
		if errors.Is(err, metering.ErrRateLimited) {
			writeError(ctx, w, http.StatusTooManyRequests, err.Error())
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("dimension", dimension).Msg("dimension usage failed")
		writeError(ctx, w, http.StatusBadGateway, "usage fetch failed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toAPIDimensionUsage(usage))
}

func (h *Handler) ListCommitments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	service := chi.URLParam(r, "service")

	if _, err := h.registry.Service(service); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	commitments, err := h.commitments.ListCommitments(ctx, service)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("service", service).Msg("commitment list failed")
		writeError(ctx, w, http.StatusInternalServerError, "commitment lookup failed")
		return
	}

	response := make([]api.Commitment, 0, len(commitments))
	for _, c := range commitments {
		response = append(response, api.Commitment{
			Service:   c.Service,
			Dimension: c.Dimension,
			Committed: c.Committed,
			Threshold: c.Threshold,
		})
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) PutCommitment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	service := chi.URLParam(r, "service")
	dimension := chi.URLParam(r, "dimension")

	if _, err := h.registry.Service(service); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}
	if _, err := h.registry.Dimension(dimension); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	var body api.Commitment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid commitment body")
		return
	}
	if body.Committed < 0 {
		writeError(ctx, w, http.StatusBadRequest, "committed quantity cannot be negative")
		return
	}

	commitment := domain.Commitment{
		Service:   service,
		Dimension: dimension,
		Committed: body.Committed,
		Threshold: body.Threshold,
	}
	if err := h.commitments.UpsertCommitment(ctx, commitment); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("dimension", dimension).Msg("commitment upsert failed")
		writeError(ctx, w, http.StatusInternalServerError, "commitment update failed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.Commitment{
		Service:   service,
		Dimension: dimension,
		Committed: commitment.Committed,
		Threshold: commitment.Threshold,
	})
}

// PutCommitments replaces the full contract set of a service at once,
// e.g. when a renewed contract lands. The swap is transactional: either
// every row is applied or none are.
func (h *Handler) PutCommitments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	service := chi.URLParam(r, "service")

	if _, err := h.registry.Service(service); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	var body []api.Commitment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid commitments body")
		return
	}

	commitments := make([]domain.Commitment, 0, len(body))
	for _, c := range body {
		if _, err := h.registry.Dimension(c.Dimension); err != nil {
			writeError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		if c.Committed < 0 {
			writeError(ctx, w, http.StatusBadRequest, "committed quantity cannot be negative")
			return
		}
		commitments = append(commitments, domain.Commitment{
			Service:   service,
			Dimension: c.Dimension,
			Committed: c.Committed,
			Threshold: c.Threshold,
		})
	}

	if err := h.commitments.ReplaceCommitments(ctx, service, commitments); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("service", service).Msg("commitment replace failed")
		writeError(ctx, w, http.StatusInternalServerError, "commitment update failed")
		return
	}

	response := make([]api.Commitment, 0, len(commitments))
	for _, c := range commitments {
		response = append(response, api.Commitment{
			Service:   c.Service,
			Dimension: c.Dimension,
			Committed: c.Committed,
			Threshold: c.Threshold,
		})
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func toAPIServiceUsage(u domain.ServiceUsage) api.ServiceUsage {
	out := api.ServiceUsage{
		Service:    u.Service,
		Name:       u.Name,
		Dimensions: make([]api.DimensionUsage, 0, len(u.Dimensions)),
	}
	for _, d := range u.Dimensions {
		out.Dimensions = append(out.Dimensions, toAPIDimensionUsage(d))
	}
	return out
}

func toAPIDimensionUsage(d domain.DimensionUsage) api.DimensionUsage {
	daily := make([]api.DailyValue, 0, len(d.DailyValues))
	for _, v := range d.DailyValues {
		daily = append(daily, api.DailyValue{Date: v.Date, Value: v.Value})
	}
	monthly := make([]api.MonthlyDay, 0, len(d.MonthlyDays))
	for _, v := range d.MonthlyDays {
		monthly = append(monthly, api.MonthlyDay{Date: v.Date, Value: v.Value, IsForecast: v.IsForecast})
	}
	return api.DimensionUsage{
		Dimension:     d.Dimension,
		ProductFamily: d.ProductFamily,
		Unit:          d.Unit,
		Category:      d.Category,
		Aggregation:   string(d.Aggregation),
		Usage:         d.Usage,
		Committed:     d.Committed,
		Threshold:     d.Threshold,
		Projected:     d.Projected,
		Trend:         d.Trend,
		DailyValues:   daily,
		MonthlyDays:   monthly,
		DaysElapsed:   d.DaysElapsed,
		DaysRemaining: d.DaysRemaining,
		Status:        string(d.Status),
		Utilization:   d.Utilization,
		Failed:        d.Failed,
		Message:       d.Message,
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, api.Error{Error: msg})
}
