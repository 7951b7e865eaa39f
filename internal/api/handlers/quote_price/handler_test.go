package quote_price

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	quotePrice "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/quote_price"
)

type stubUseCase struct {
	resp *quotePrice.Response
	err  error
}

func (s *stubUseCase) Execute(context.Context, *quotePrice.Request) (*quotePrice.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func postQuote(t *testing.T, h *Handler, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"mode": "booking",
		"window": map[string]string{
			"start": "2026-09-10T14:00:00Z",
			"end":   "2026-09-10T15:00:00Z",
		},
		"tierId":        "member",
		"resourceCount": 1,
	}
}

func TestHandle_ReturnsBreakdown(t *testing.T) {
	h := NewHandler(&stubUseCase{resp: &quotePrice.Response{
		Lines: []domain.BreakdownLine{
			{Label: "Simulator time", Amount: 50, Kind: domain.LineBase},
			{Label: "Tax (HST 13%)", Amount: 6.5, Kind: domain.LineTax},
		},
		TotalAmount: 56.5,
		Currency:    "CAD",
	}}, nopLogger{})

	rec := postQuote(t, h, validBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 56.5, resp.TotalAmount, 1e-9)
	assert.Equal(t, "CAD", resp.Currency)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "base", resp.Lines[0].Kind)
}

func TestHandle_InvalidWindowRejected(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	body := validBody()
	body["window"] = map[string]string{"start": "not-a-time", "end": "also-not"}

	rec := postQuote(t, h, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_PromoNotFoundMapsTo404(t *testing.T) {
	h := NewHandler(&stubUseCase{err: quotePrice.ErrPromoNotFound}, nopLogger{})

	rec := postQuote(t, h, validBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_TierDirectoryOutageMapsTo503(t *testing.T) {
	h := NewHandler(&stubUseCase{err: quotePrice.ErrTierUnavailable}, nopLogger{})

	rec := postQuote(t, h, validBody())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
