package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/tilegrid/merge2048/game/service"
	"github.com/tilegrid/merge2048/game/session"
	"github.com/tilegrid/merge2048/transport/websocket"
)

// Server is the HTTP front end over the game service.
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
	log     zerolog.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(gameService service.GameService, hub *websocket.Hub, log zerolog.Logger) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
		log:     log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/move", s.handleMove).Methods("POST")
	s.router.HandleFunc("/restart", s.handleRestart).Methods("POST")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods("GET")
	api.HandleFunc("/poll", s.handlePoll).Methods("GET", "POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// handleIndex renders the playable page from the current snapshot.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.State(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, snap); err != nil {
		s.log.Error().Err(err).Msg("render game page")
	}
}

// directionFromRequest extracts the direction symbol from a JSON body, form
// body, or query string, in that order.
func directionFromRequest(r *http.Request) string {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Direction string `json:"direction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Direction != "" {
			return body.Direction
		}
		return ""
	}
	if v := r.FormValue("direction"); v != "" {
		return v
	}
	return r.URL.Query().Get("direction")
}

// handleMove applies a single move and broadcasts the resulting snapshot.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	direction := directionFromRequest(r)

	result, err := s.service.Move(r.Context(), direction)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDirection) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.Moved {
		s.broadcast(&result.Snapshot)
	}

	respondJSON(w, http.StatusOK, result)
}

// handleRestart starts a new game unconditionally; gating restart on a
// terminal board is the input source's job.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Restart(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(snap)
	respondJSON(w, http.StatusOK, snap)
}

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.State(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// handlePoll is the combined poll/move endpoint. A valid direction is
// applied before answering; anything else is ignored so remote pollers
// always get the current snapshot back.
func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	if direction := directionFromRequest(r); direction != "" {
		result, err := s.service.Move(r.Context(), direction)
		if err == nil && result.Moved {
			s.broadcast(&result.Snapshot)
		}
	}

	snap, err := s.service.State(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// handleWebSocket upgrades the connection into the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "websocket hub not running")
		return
	}
	s.hub.ServeWS(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) broadcast(snap *session.Snapshot) {
	if s.hub != nil {
		s.hub.BroadcastSnapshot(snap)
	}
}
