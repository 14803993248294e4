package vpagateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the gateway's HTTP surface. /healthz and /v1/tokens are
// open; every other route requires a valid bearer token.
func (gw *Gateway) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", gw.endpoint(gw.epHealthz))
	r.Post("/v1/tokens", gw.endpoint(gw.epCreateToken))

	r.Group(func(r chi.Router) {
		r.Use(gw.requireAuth)
		r.Post("/v1/grammars", gw.endpoint(gw.epCreateGrammar))
		r.Post("/v1/grammars/{id}/recognize", gw.endpoint(gw.epRecognize))
		r.Post("/v1/grammars/{id}/parse", gw.endpoint(gw.epParse))
		r.Post("/v1/grammars/{id}/translate", gw.endpoint(gw.epTranslate))
	})

	return r
}
