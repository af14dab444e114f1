// Package transport exposes the casino over HTTP and WebSocket. Login and
// registration are plain HTTP endpoints that issue a signed token; gameplay
// runs over a per-player websocket opened with that token.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	pokerserver "github.com/FICHEKK/poker-server"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServerOptions configure the transport endpoints.
type ServerOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Server owns every live websocket connection and routes messages both
// ways: inbound frames to the casino, engine messages back to the owning
// player's connection. It implements pokerserver.Messenger.
type Server struct {
	casino  *pokerserver.Casino
	options *ServerOptions
	logger  *zap.Logger

	mu         sync.RWMutex
	clients    map[string]*client
	register   chan *client
	unregister chan *client
}

func NewServer(casino *pokerserver.Casino, options *ServerOptions, logger *zap.Logger) *Server {
	return &Server{
		casino:     casino,
		options:    options,
		logger:     logger,
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run drains the register and unregister channels. It must be running
// before the first websocket upgrade.
func (s *Server) Run() {
	for {
		select {
		case c := <-s.register:
			s.mu.Lock()
			s.clients[c.username] = c
			s.mu.Unlock()

		case c := <-s.unregister:
			s.mu.Lock()
			if current, ok := s.clients[c.username]; ok && current == c {
				delete(s.clients, c.username)
				close(c.send)
				s.mu.Unlock()
				s.casino.Logout(c.username)
				break
			}
			s.mu.Unlock()
		}
	}
}

// Routes mounts the transport endpoints on the given mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", s.handleRegister)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/ws", s.handleWebSocket)
}

// Send implements pokerserver.Messenger. Messages to players without a live
// connection are dropped; the engine does not block on slow consumers
// either, a full send buffer costs the message, not the table.
func (s *Server) Send(username string, message pokerserver.ServerMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.Error("failed to marshal server message", zap.Error(err))
		return
	}

	// The read lock is held across the channel send: unregistration closes
	// c.send under the write lock, so a client found in the map cannot have
	// its channel closed until the send below has finished.
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[username]
	if !ok {
		return
	}

	select {
	case c.send <- payload:
	default:
		s.logger.Warn("send buffer full, dropping message",
			zap.String("username", username),
			zap.String("type", string(message.Type)))
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	if err := s.casino.Register(r.Context(), req.Username, req.Password); err != nil {
		status := http.StatusInternalServerError
		if err == pokerserver.ErrCasinoAlreadyRegistered {
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request"})
		return
	}

	if err := s.casino.Login(r.Context(), req.Username, req.Password); err != nil {
		status := http.StatusUnauthorized
		if err == pokerserver.ErrCasinoBanned {
			status = http.StatusForbidden
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	token, err := generateToken([]byte(s.options.JWTSecret), req.Username, s.options.TokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to issue token"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token is required", http.StatusUnauthorized)
		return
	}

	username, err := validateToken([]byte(s.options.JWTSecret), token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if err := s.casino.Enter(username); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.casino.Logout(username)
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		username: username,
		conn:     conn,
		server:   s,
		send:     make(chan []byte, sendBufferSize),
	}
	s.register <- c

	go c.writePump()
	go c.readPump()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
