package ws

import (
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"league-watcher/internal/constants"
	"league-watcher/internal/state"
)

// Handler streams the status snapshot to a rendering client on a fixed
// cadence, matching a UI that repaints a few times per second. The renderer
// never writes through this channel; intent goes through the JSON API.
type Handler struct {
	shared *state.SharedState
	logger zerolog.Logger
}

func NewHandler(shared *state.SharedState, logger zerolog.Logger) *Handler {
	return &Handler{shared: shared, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	clientID, err := gonanoid.New()
	if err != nil {
		clientID = "unknown"
	}
	logger := h.logger.With().Str("client_id", clientID).Logger()
	logger.Info().Msg("status stream connected")

	ctx := r.Context()
	ticker := time.NewTicker(constants.StatusStreamTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("status stream closed")
			return
		case <-ticker.C:
			if err := wsjson.Write(ctx, conn, h.shared.Snapshot()); err != nil {
				logger.Debug().Err(err).Msg("status stream write failed")
				return
			}
		}
	}
}
