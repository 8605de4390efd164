package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// JurisdictionLister reports which jurisdictions have stored lead times
type JurisdictionLister interface {
	ListJurisdictions(ctx context.Context) ([]string, error)
}

// NewRouter builds the operational HTTP surface: health, metrics and the
// list of configured jurisdictions.
func NewRouter(lister JurisdictionLister, gatherer prometheus.Gatherer, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/jurisdictions", func(w http.ResponseWriter, r *http.Request) {
		jurisdictions, err := lister.ListJurisdictions(r.Context())
		if err != nil {
			log.Error("failed to list jurisdictions",
				"request_id", middleware.GetReqID(r.Context()),
				"error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list jurisdictions"}, log)
			return
		}
		if jurisdictions == nil {
			jurisdictions = []string{}
		}
		writeJSON(w, http.StatusOK, map[string][]string{"jurisdictions": jurisdictions}, log)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
