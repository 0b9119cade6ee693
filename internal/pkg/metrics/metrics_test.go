package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/games/{gameId}/packages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/games/{gameId}/packages", "418"))

	req := httptest.NewRequest(http.MethodGet, "/api/games/abc/packages", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/games/{gameId}/packages", "418"))
	assert.Equal(t, before+1, after)
}

func TestLedgerCounters(t *testing.T) {
	before := testutil.ToFloat64(balanceMovements.WithLabelValues("credit"))
	RecordCredit(500)
	assert.Equal(t, before+500, testutil.ToFloat64(balanceMovements.WithLabelValues("credit")))

	RecordDecision("order", "cancelled", "ok")
	assert.Equal(t, float64(1), testutil.ToFloat64(decisions.WithLabelValues("order", "cancelled", "ok")))
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordOrderPlaced("ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "topup_ledger_orders_placed_total")
}
