// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"navigo_ranking/internal/app"
	"navigo_ranking/internal/domain"
)

type Handlers struct{ R *app.RankingService }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/ranking", h.getRanking)
}

// getRanking is a thin adapter: parameters in, ordered hotel list out.
// Lower layers degrade to empty data instead of failing, so the only error
// path here is serialization.
func (h *Handlers) getRanking(w http.ResponseWriter, r *http.Request) {
	sortType := domain.ParseSortType(r.URL.Query().Get("sortType"))
	filter := domain.Category(r.URL.Query().Get("filter"))

	hotels := h.R.GetRanking(r.Context(), sortType, filter)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(hotels); err != nil {
		log.Error().Err(err).Msg("failed to write ranking body")
	}
}
