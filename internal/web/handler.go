// Package web serves the game to browsers: a static page that draws the grid
// and a websocket that streams snapshots and accepts key events.
package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/limiter"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

//go:embed static
var staticFiles embed.FS

const (
	writeTimeout   = 5 * time.Second
	maxMessageSize = 512
)

// GameFactory builds the game for one websocket connection.
type GameFactory func(playerName string) *game.GameManager

type ServerMessage struct {
	Type      string         `json:"type"`
	State     *game.Snapshot `json:"state,omitempty"`
	Autopilot bool           `json:"autopilot,omitempty"`
	Score     int            `json:"score"`
	Reason    string         `json:"reason,omitempty"`
}

type ClientMessage struct {
	Key string `json:"key"`
}

type Server struct {
	newGame  GameFactory
	limiter  *limiter.IPLimiter
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer returns the http handler. connLimiter may be nil.
func NewServer(newGame GameFactory, connLimiter *limiter.IPLimiter) *Server {
	s := &Server{
		newGame: newGame,
		limiter: connLimiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		mux: http.NewServeMux(),
	}

	static, _ := fs.Sub(staticFiles, "static")
	s.mux.Handle("GET /", http.FileServerFS(static))
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := limiter.HostFromString(r.RemoteAddr)
	if s.limiter != nil {
		count, ok := s.limiter.Acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count, "current_limit", s.limiter.Max())
			http.Error(w, "too many active connections from your IP", http.StatusTooManyRequests)
			return
		}
		defer s.limiter.Release(ip)
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Websocket upgrade failed", "ip", ip, "error", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	logger := log.With("session", sessionID, "ip", ip)
	playerName := r.URL.Query().Get("name")
	if playerName == "" {
		playerName = "anonymous"
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	gm := s.newGame(playerName)
	go gm.StartGameLoop(ctx)
	logger.Info("Websocket session started", "player", playerName)

	go s.readKeys(ctx, cancel, conn, gm, logger)

	if err := s.write(conn, stateMessage(gm.Snapshot(), gm.Autopilot())); err != nil {
		logger.Error("Websocket write failed", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Websocket session closed", "player", playerName)
			return
		case msg := <-gm.UpdateChannel:
			var out ServerMessage
			switch msg := msg.(type) {
			case game.GameTickMsg:
				out = stateMessage(msg.Snapshot, msg.Autopilot)
			case game.GameOverMsg:
				out = ServerMessage{Type: "gameover", Score: msg.Score, Reason: msg.Reason.String()}
			default:
				continue
			}
			if err := s.write(conn, out); err != nil {
				logger.Error("Websocket write failed", "error", err)
				return
			}
		}
	}
}

func stateMessage(snapshot game.Snapshot, autopilot bool) ServerMessage {
	return ServerMessage{Type: "state", State: &snapshot, Autopilot: autopilot}
}

// write is only called from the connection's handler goroutine.
func (s *Server) write(conn *websocket.Conn, msg ServerMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}

func (s *Server) readKeys(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, gm *game.GameManager, logger *log.Logger) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)

	for ctx.Err() == nil {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Websocket read failed", "error", err)
			}
			return
		}
		gm.SendKey(msg.Key)
	}
}
