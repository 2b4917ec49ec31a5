package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/meta/period", handler.GetCurrentPeriod)

	mux.HandleFunc("GET /v1/nfl/players", handler.ListFootballPlayers)
	mux.HandleFunc("GET /v1/nfl/stats", handler.GetFootballStats)
	mux.HandleFunc("GET /v1/nfl/period/active", handler.GetActiveFootballStats)

	mux.HandleFunc("GET /v1/nba/players", handler.ListBasketballPlayers)
	mux.HandleFunc("GET /v1/nba/stats", handler.GetBasketballStats)
}
