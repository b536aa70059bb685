package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"league-watcher/internal/ws"
)

func SetupRoutes(h *Handlers, stream *ws.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.Healthz)
	r.Get("/status", h.Status)
	r.Get("/suggestions", h.Suggestions)
	r.Get("/ws", stream.ServeHTTP)

	r.Post("/toggles", h.SetToggles)
	r.Post("/picks", h.QueuePick)
	r.Post("/ban", h.SetBan)
	r.Post("/spells", h.SetSpellSlot)
	r.Post("/clear", h.Clear)
	r.Post("/update", h.RequestUpdate)

	return r
}
