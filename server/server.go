package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/maumau/config"
	"github.com/minaorangina/maumau/game"
	"github.com/minaorangina/maumau/protocol"
	"github.com/minaorangina/maumau/store"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingGameID   = errors.New("missing game ID")
	ErrMissingPlayerID = errors.New("missing player ID")
	ErrBadMessage      = errors.New("could not read message")
)

type NewGameReq struct {
	Name string `json:"name"`
}

type NewGameRes struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// GameServer is a game server
type GameServer struct {
	store     store.GameStore
	cfg       config.Config
	logger    *logrus.Logger
	logWriter io.Closer
	upgrader  websocket.Upgrader
	http.Server
}

// NewServer creates a new GameServer. Requests are logged through logger
// in combined log format.
func NewServer(str store.GameStore, cfg config.Config, logger *logrus.Logger) *GameServer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &GameServer{
		store:  str,
		cfg:    cfg,
		logger: logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := http.NewServeMux()
	router.Handle("/", http.HandlerFunc(s.HandlePing))
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleFindGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	w := logger.Writer()
	s.logWriter = w
	s.Addr = cfg.Addr()
	s.Handler = handlers.CombinedLoggingHandler(w, cors(router))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Close releases the request log writer. Use Shutdown to stop serving.
func (g *GameServer) Close() error {
	return g.logWriter.Close()
}

func (g *GameServer) HandlePing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Add("Content-Type", "text/plain")
	w.Write([]byte("Mau-Mau"))
}

// HandleNewGame deals a new table of one human and the configured bots
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil && err != io.EOF {
		g.writeParseError(err, w)
		return
	}

	players := g.cfg.Roster()
	if name := strings.TrimSpace(data.Name); name != "" {
		players[0].Name = name
	}

	session, err := game.NewSession(players,
		game.WithLogger(g.logger),
		game.WithMaxBotTurns(g.cfg.MaxBotTurns),
	)
	if err != nil {
		g.logger.WithError(err).Error("could not create game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	session.Start()

	if err := g.store.AddGame(session); err != nil {
		g.logger.WithError(err).Error("could not store game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"game":   session.ID,
		"player": players[0].Name,
	}).Info("new game")

	g.writeJSON(w, http.StatusCreated, NewGameRes{
		GameID:   session.ID,
		PlayerID: players[0].PlayerID,
		Name:     players[0].Name,
	})
}

// HandleFindGame returns the table as seen by the player_id in the query,
// or by an onlooker if there is none
func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(ErrMissingGameID.Error()))
		return
	}
	playerID := r.URL.Query().Get("player_id")

	var view protocol.OutboundMessage
	err := g.store.WithGame(gameID, func(s *game.Session) error {
		player := -1
		if playerID != "" {
			var ok bool
			if player, ok = s.PlayerIndex(playerID); !ok {
				return game.ErrUnknownPlayer
			}
		}
		view = s.View(player)
		return nil
	})

	switch {
	case errors.Is(err, store.ErrUnknownGameID):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownGameIDMsg(gameID)))
		return
	case err != nil:
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	g.writeJSON(w, http.StatusOK, view)
}

// HandleWS connects a player to their game. The current table is sent
// straight away, then every message gets one reply.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID := query.Get("game_id")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(ErrMissingGameID.Error()))
		return
	}
	playerID := query.Get("player_id")
	if playerID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(ErrMissingPlayerID.Error()))
		return
	}

	var initial protocol.OutboundMessage
	err := g.store.WithGame(gameID, func(s *game.Session) error {
		player, ok := s.PlayerIndex(playerID)
		if !ok || s.Players[player].Bot {
			return game.ErrUnknownPlayer
		}
		initial = s.View(player)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrUnknownGameID):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownGameIDMsg(gameID)))
		return
	case err != nil:
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.logger.WithError(err).Warn("could not upgrade to websocket")
		return
	}

	c := newClient(gameID, playerID, conn, g.store, g.logger)
	go c.writePump()
	c.queue(initial)
	c.readPump()
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}
