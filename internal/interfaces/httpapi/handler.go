package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-roster/internal/platform/logging"
	"github.com/riskibarqy/club-roster/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	rosterService      *usecase.RosterService
	persistenceService *usecase.PersistenceService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	persistenceService *usecase.PersistenceService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:      rosterService,
		persistenceService: persistenceService,
		logger:             logger,
		validator:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

// persistRoster stores the current roster after a successful mutation. The
// snapshot is taken inside the store's write lock so a slower request never
// overwrites a newer state. The in-memory change stands even when the store
// is unreachable.
func (h *Handler) persistRoster(ctx context.Context) error {
	if h.persistenceService == nil {
		return nil
	}
	if err := h.persistenceService.SaveCurrentRoster(ctx, h.rosterService.Snapshot); err != nil {
		h.logger.ErrorContext(ctx, "persist roster failed", "error", err)
		return err
	}
	return nil
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
}
