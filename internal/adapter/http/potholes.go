package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/pothole-data-api/internal/domain"
)

// handlePotholes serves GET /api/potholes.
//
// Store failures are already folded into an empty result by the fetcher, so
// only a panic or an encoding failure produces a 500 here.
func handlePotholes(fetcher PotholeFetcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "pothole handler panic", "panic", rec, "request_id", requestIDFrom(r.Context()))
				writeJSON(w, http.StatusInternalServerError, domain.NewErrorEnvelope(rec))
			}
		}()

		res := fetcher.Fetch(r.Context())

		body, err := json.Marshal(domain.NewEnvelope(res.Records))
		if err != nil {
			logger.ErrorContext(r.Context(), "encode pothole response", "error", err, "records", len(res.Records))
			writeJSON(w, http.StatusInternalServerError, domain.NewErrorEnvelope(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body) //nolint:errcheck // client went away; nothing left to report
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort error response
}
