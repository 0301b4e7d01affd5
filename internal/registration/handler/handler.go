package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flock/internal/domain"
	"flock/internal/registration/models"
	"flock/internal/registration/service"
	dErrors "flock/pkg/domain-errors"
	"flock/pkg/platform/httputil"
	"flock/pkg/requestcontext"
)

// Service defines the workflow operations the handler exposes.
type Service interface {
	Register(ctx context.Context, draft service.Draft) (*models.Registration, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	List(ctx context.Context, criteria models.Criteria, page, pageSize int) (*models.Page, error)
	Summary(ctx context.Context) (models.StatusCounts, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, target models.Status) (*service.TransitionResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler wires one domain's registration endpoints to its service.
type Handler struct {
	service Service
	domain  domain.Descriptor
	logger  *slog.Logger
}

// New constructs a registration handler for a domain.
func New(svc Service, d domain.Descriptor, logger *slog.Logger) *Handler {
	return &Handler{service: svc, domain: d, logger: logger}
}

// RegisterAdmin mounts the operator-facing listing and mutation surfaces.
// The caller wraps the router with the admin-token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Route("/"+h.domain.Key+"/registrations", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/summary", h.HandleSummary)
		r.Get("/{id}", h.HandleGet)
		r.Post("/{id}/confirm", h.transitionHandler(models.StatusConfirmed))
		r.Post("/{id}/decline", h.transitionHandler(models.StatusDeclined))
		r.Delete("/{id}", h.HandleDelete)
	})
}

// RegisterPublic mounts the unauthenticated sign-up surface.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/"+h.domain.Key+"/{subjectID}/registrations", h.HandleSignup)
}

// HandleSignup handles POST /{domain}/{subjectID}/registrations.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[SignupRequest](w, r, h.logger)
	if !ok {
		return
	}

	created, err := h.service.Register(ctx, service.Draft{
		SubjectID: chi.URLParam(r, "subjectID"),
		Contact: models.Contact{
			Email: req.Email,
			Name:  req.Name,
			Phone: req.Phone,
		},
		UserID: req.ParsedUserID(),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromRegistration(created, h.domain))
}

// HandleList handles the query surface:
// GET /admin/{domain}/registrations?mode=&q=&subject=&status=&page=&page_size=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := parseListQuery(r, h.domain)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, err := h.service.List(ctx, query.Criteria, query.Page, query.PageSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "listing registrations failed",
			"request_id", requestcontext.RequestID(ctx),
			"domain", h.domain.Key,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromPage(page, query.Page, query.PageSize, h.domain))
}

// HandleSummary handles GET /admin/{domain}/registrations/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Summary(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatusCounts(counts))
}

// HandleGet handles GET /admin/{domain}/registrations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRegistration(reg, h.domain))
}

// transitionHandler builds the confirm/decline endpoint for a target status.
// The closed status set here is what makes InvalidStatus unreachable from the
// mutation surface.
func (h *Handler) transitionHandler(target models.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		result, err := h.service.ApplyTransition(ctx, id, target)
		if err != nil {
			h.logger.ErrorContext(ctx, "status transition failed",
				"request_id", requestcontext.RequestID(ctx),
				"domain", h.domain.Key,
				"registration_id", id,
				"target", target,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, FromTransitionResult(result, h.domain))
	}
}

// HandleDelete handles DELETE /admin/{domain}/registrations/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "registration id must be a UUID")
	}
	return id, nil
}
