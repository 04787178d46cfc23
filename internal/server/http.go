package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"github.com/dirkkok101/roguelike-sub009/internal/engine"
	"github.com/dirkkok101/roguelike-sub009/internal/version"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

type Server struct {
	Service *engine.GameService
	Addr    string
}

func New(service *engine.GameService, addr string) *Server {
	return &Server{
		Service: service,
		Addr:    addr,
	}
}

// Handler builds the route table. Exposed separately from Run so main can
// wrap it in an http.Server for graceful shutdown.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Service)
	debugHandler.RegisterRoutes(mux)

	return mux
}

func (s *Server) Run() error {
	logger.Log.Infof("Roguelike replay server running on %s", s.Addr)
	return http.ListenAndServe(s.Addr, s.Handler())
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS upgrades the connection and hands it to a Client.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Service, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
