package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"league-watcher/internal/catalog"
	"league-watcher/internal/domain"
	"league-watcher/internal/state"
)

// Handlers is the presentation-layer boundary: the renderer reads the status
// snapshot and writes operator intent through these endpoints. Validation
// failures are surfaced inline and never reach the network layer.
type Handlers struct {
	shared *state.SharedState
	cat    *catalog.Catalog
	logger zerolog.Logger
}

func NewHandlers(shared *state.SharedState, cat *catalog.Catalog, logger zerolog.Logger) *Handlers {
	return &Handlers{shared: shared, cat: cat, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type togglesRequest struct {
	AutoAccept  *bool `json:"autoAccept"`
	AutoPickBan *bool `json:"autoPickBan"`
	AutoSpells  *bool `json:"autoSpells"`
}

type spellSlotRequest struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.shared.Snapshot())
}

func (h *Handlers) SetToggles(w http.ResponseWriter, r *http.Request) {
	var req togglesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.AutoAccept != nil {
		h.shared.SetAutoAccept(*req.AutoAccept)
	}
	if req.AutoPickBan != nil {
		h.shared.SetAutoPickBan(*req.AutoPickBan)
	}
	if req.AutoSpells != nil {
		h.shared.SetAutoSpells(*req.AutoSpells)
	}

	writeJSON(w, http.StatusOK, h.shared.Snapshot().Toggles)
}

// QueuePick adds a champion to the pick queue. An empty name queues an
// explicit skip placeholder.
func (h *Handlers) QueuePick(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	entry := domain.PickEntry{}
	if catalog.NormalizeName(req.Name) != "" {
		champ, ok := h.cat.ChampionByName(req.Name)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "No champion found with the given name."})
			return
		}
		entry = domain.PickEntry{ChampionID: champ.ID, Name: champ.Name}
	}

	if err := h.shared.QueuePick(entry); err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: selectionError(err)})
		return
	}
	writeJSON(w, http.StatusOK, h.shared.Snapshot())
}

func (h *Handlers) SetBan(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	entry := domain.BanEntry{}
	if catalog.NormalizeName(req.Name) != "" {
		champ, ok := h.cat.ChampionByName(req.Name)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "No champion found with the given name."})
			return
		}
		entry = domain.BanEntry{ChampionID: champ.ID, Name: champ.Name}
	}

	if err := h.shared.SetBan(entry); err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: selectionError(err)})
		return
	}
	writeJSON(w, http.StatusOK, h.shared.Snapshot())
}

func (h *Handlers) SetSpellSlot(w http.ResponseWriter, r *http.Request) {
	var req spellSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Slot != 1 && req.Slot != 2 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "slot must be 1 or 2"})
		return
	}

	name := ""
	if catalog.NormalizeName(req.Name) != "" {
		spell, ok := h.cat.SpellByName(req.Name)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "No summoner spell found with the given name."})
			return
		}
		name = spell.Name
	}

	h.shared.SetSpellSlot(req.Slot, name)
	writeJSON(w, http.StatusOK, h.shared.Snapshot().Spells)
}

// Clear empties the pick queue and the ban preference atomically from the
// operator's point of view.
func (h *Handlers) Clear(w http.ResponseWriter, _ *http.Request) {
	h.shared.ClearSelections()
	writeJSON(w, http.StatusOK, h.shared.Snapshot())
}

func (h *Handlers) RequestUpdate(w http.ResponseWriter, _ *http.Request) {
	h.shared.RequestUpdate()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "update requested"})
}

// Suggestions returns champion names matching a prefix, for input
// autocompletion.
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": h.cat.ChampionsMatching(query)})
}

func selectionError(err error) string {
	switch {
	case errors.Is(err, state.ErrDuplicateSelection):
		return "Champion has already been selected."
	case errors.Is(err, state.ErrQueueFull):
		return "Pick queue is full (2 max)."
	default:
		return err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
