package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (c *controller) Mux(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)

	r.Get("/", c.health)
	r.Post("/create-room", c.createRoom)
	r.Get("/stats", c.stats)
	r.HandleFunc("/ws", c.serveWS)

	withCORS := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return withCORS.Handler(r)
}
