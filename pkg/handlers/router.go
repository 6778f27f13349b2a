// Package handlers wires the HTTP adapters onto a chi router. The router is a
// thin shell around the settlement engine and balance service; everything with
// real invariants lives below it.
package handlers

import (
	"net/http"

	"github.com/chris/recording-settlements/pkg/handlers/balances"
	"github.com/chris/recording-settlements/pkg/handlers/ledger"
	"github.com/chris/recording-settlements/pkg/handlers/recordings"
	mw "github.com/chris/recording-settlements/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Services bundles the dependencies the router mounts.
type Services struct {
	Engine   recordings.Settler
	Balances balances.BalanceService
	Ledger   ledger.LedgerReader
}

// NewRouter builds the service's HTTP router.
func NewRouter(svc Services, logger zerolog.Logger, metrics *mw.Metrics) chi.Router {
	router := chi.NewRouter()
	router.Use(mw.NewStructuredLogger(logger))
	if metrics != nil {
		router.Use(metrics.Middleware)
	}

	recordingsHandler := recordings.NewRecordingsHandler(svc.Engine)
	balancesHandler := balances.NewBalancesHandler(svc.Balances)
	ledgerHandler := ledger.NewLedgerHandler(svc.Ledger)

	router.Post("/recordings/end", recordingsHandler.EndRecording)

	router.Get("/balances/{participantId}", func(w http.ResponseWriter, r *http.Request) {
		balancesHandler.GetBalance(w, r, chi.URLParam(r, "participantId"))
	})
	router.Post("/withdrawals", balancesHandler.Withdraw)

	router.Get("/participants/{participantId}/ledger", func(w http.ResponseWriter, r *http.Request) {
		ledgerHandler.ListEarnings(w, r, chi.URLParam(r, "participantId"))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	return router
}
