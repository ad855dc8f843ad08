package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/simplechat/internal/handler/qa"
	"github.com/zhouzirui/simplechat/pkg/utils"
)

// NewRouter wires HTTP routes to the question answering service.
func NewRouter(answerer qa.Answerer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	qaHandler := qa.New(answerer)
	qaHandler.RegisterRoutes(r)
	qa.NewWebSocketHandler(qaHandler).RegisterWebSocketRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
