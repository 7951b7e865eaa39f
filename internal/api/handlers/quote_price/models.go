package quote_price

import (
	"errors"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/views"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	quotePrice "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/quote_price"
)

var errInvalidWindow = errors.New("invalid window timestamps")

// QuoteRequest is the HTTP quote input.
type QuoteRequest struct {
	Mode          string               `json:"mode"`
	Window        views.TimeWindowView `json:"window"`
	TierID        *string              `json:"tierId,omitempty"`
	ResourceCount int                  `json:"resourceCount"`
	AttendeeCount int                  `json:"attendeeCount,omitempty"`
	PromoCode     *string              `json:"promoCode,omitempty"`
}

// QuoteResponse carries the computed breakdown. DepositDue repeats the
// deposit memo line for clients that render it separately.
type QuoteResponse struct {
	Lines       []views.BreakdownLineView `json:"lines"`
	TotalAmount float64                   `json:"totalAmount"`
	DepositDue  float64                   `json:"depositDue"`
	Currency    string                    `json:"currency"`
}

// ToUseCaseRequest parses the mode and RFC3339 window timestamps.
func (r *QuoteRequest) ToUseCaseRequest() (*quotePrice.Request, error) {
	mode, err := domain.ParseMode(r.Mode)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, r.Window.Start)
	if err != nil {
		return nil, errInvalidWindow
	}
	end, err := time.Parse(time.RFC3339, r.Window.End)
	if err != nil {
		return nil, errInvalidWindow
	}
	window, err := domain.NewTimeWindow(start, end)
	if err != nil {
		return nil, errInvalidWindow
	}

	return &quotePrice.Request{
		Mode:          mode,
		Window:        window,
		TierID:        r.TierID,
		ResourceCount: r.ResourceCount,
		AttendeeCount: r.AttendeeCount,
		PromoCode:     r.PromoCode,
	}, nil
}

// FromUseCaseResponse converts the quote result into its HTTP shape.
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	lines := make([]views.BreakdownLineView, 0, len(resp.Lines))
	for _, line := range resp.Lines {
		lines = append(lines, views.BreakdownLineView{
			Label:       line.Label,
			Amount:      line.Amount,
			Kind:        string(line.Kind),
			Description: line.Description,
		})
	}
	return &QuoteResponse{
		Lines:       lines,
		TotalAmount: resp.TotalAmount,
		DepositDue:  resp.DepositDue,
		Currency:    resp.Currency,
	}
}
