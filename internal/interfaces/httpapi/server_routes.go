package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-roster/internal/platform/id"
	"github.com/riskibarqy/club-roster/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)
	registerTeamRoutes(mux, handler)
	registerPositionRoutes(mux, handler)
	registerRosterRoutes(mux, handler)

	return RequestTracing(RequestID(id.NewRandomGenerator(), RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux)))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.AddPlayer)
	mux.HandleFunc("GET /v1/players/captains", handler.ListCaptains)
	mux.HandleFunc("GET /v1/players/injured", handler.ListInjured)
	mux.HandleFunc("GET /v1/players/{name}", handler.GetPlayer)
	mux.HandleFunc("PATCH /v1/players/{name}", handler.EditPlayer)
	mux.HandleFunc("DELETE /v1/players/{name}", handler.DeletePlayer)
	mux.HandleFunc("POST /v1/players/{name}/injuries", handler.AssignInjury)
	mux.HandleFunc("DELETE /v1/players/{name}/injuries", handler.ClearInjuries)
	mux.HandleFunc("PUT /v1/players/{name}/captain", handler.AssignCaptain)
	mux.HandleFunc("DELETE /v1/players/{name}/captain", handler.StripCaptain)
	mux.HandleFunc("PUT /v1/players/{name}/position", handler.AssignPosition)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.AddTeam)
	mux.HandleFunc("DELETE /v1/teams/{name}", handler.DeleteTeam)
	mux.HandleFunc("GET /v1/teams/{name}/players", handler.ListTeamPlayers)
}

func registerPositionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/positions", handler.ListPositions)
	mux.HandleFunc("POST /v1/positions", handler.AddPosition)
	mux.HandleFunc("DELETE /v1/positions/{name}", handler.DeletePosition)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/roster", handler.GetRoster)
	mux.HandleFunc("DELETE /v1/roster", handler.ClearRoster)
	mux.HandleFunc("GET /v1/preferences", handler.GetPreferences)
	mux.HandleFunc("PUT /v1/preferences", handler.UpdatePreferences)
}
