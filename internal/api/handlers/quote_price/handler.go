package quote_price

import (
	"errors"
	"net/http"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers"
	quotePrice "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidWindow      = "invalid window, expected RFC3339 start and end with end after start"
	msgInvalidMode        = "unknown reservation mode"
	msgTierRequired       = "customer tier is required for booking quotes"
	msgTierNotFound       = "customer tier not found"
	msgTierUnavailable    = "customer tier directory is unavailable"
	msgPromoNotFound      = "promo code not found"
	msgPromoInactive      = "promo code is not active"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidWindow) {
			handlers.RespondBadRequest(w, msgInvalidWindow)
		} else {
			handlers.RespondBadRequest(w, msgInvalidMode)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, quotePrice.ErrTierRequired):
			h.logger.Warn("POST /quotes - Tier required: mode=%s", req.Mode)
			handlers.RespondBadRequest(w, msgTierRequired)

		case errors.Is(err, quotePrice.ErrTierNotFound):
			h.logger.Warn("POST /quotes - Tier not found: tier_id=%v", req.TierID)
			handlers.RespondNotFound(w, msgTierNotFound)

		case errors.Is(err, quotePrice.ErrTierUnavailable):
			h.logger.Warn("POST /quotes - Tier directory unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTierUnavailable)

		case errors.Is(err, quotePrice.ErrPromoNotFound):
			h.logger.Warn("POST /quotes - Promo not found: promo_code=%v", req.PromoCode)
			handlers.RespondNotFound(w, msgPromoNotFound)

		case errors.Is(err, quotePrice.ErrPromoInactive):
			h.logger.Warn("POST /quotes - Promo inactive: promo_code=%v", req.PromoCode)
			handlers.RespondBadRequest(w, msgPromoInactive)

		default:
			h.logger.Error("POST /quotes - Failed to compute quote: mode=%s, error=%v", req.Mode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
