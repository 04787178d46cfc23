package server

import (
	"encoding/json"
	"net/http"

	"github.com/dirkkok101/roguelike-sub009/internal/engine"
)

// DebugHandler exposes the replay store and the determinism validator
// over plain HTTP, for the local debug client and for CI smoke checks.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/replays", h.handleListReplays)
	mux.HandleFunc("/debug/verify", h.handleVerify)
	mux.HandleFunc("/debug/save", h.handleSave)
}

// /debug/replays - the stored replay index.
func (h *DebugHandler) handleListReplays(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.ListReplays(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, listings)
}

// /debug/verify?session=sess_x - replay a stored session from turn 0 and
// diff the reconstruction against the recorded end state.
func (h *DebugHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	report, err := h.Service.VerifySession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, report)
}

// /debug/save?session=sess_x - force-persist a running session.
func (h *DebugHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveSession(r.Context(), sessionID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("saved"))
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
