package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bizround/gameserver/broadcast"
	"github.com/bizround/gameserver/engine"
	"github.com/bizround/gameserver/logger"
	"github.com/bizround/gameserver/models"
	"github.com/bizround/gameserver/monitor"
	"github.com/bizround/gameserver/network"
	"github.com/bizround/gameserver/persistence"
	gameserver_rpc "github.com/bizround/gameserver/rpc"
	"github.com/bizround/gameserver/session"
	"github.com/bizround/gameserver/timer"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	store          persistence.Store
	statistics     persistence.StatisticsRepository
	sessionManager *session.Manager
	lifecycle      *engine.Lifecycle
	orchestrator   *engine.Orchestrator
	monitor        *monitor.Monitor
	scheduler      *timer.Manager
	rpcServer      *gameserver_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr string, store persistence.Store, statistics persistence.StatisticsRepository, settings engine.Settings, rng *engine.Rand) *GameServer {
	s := &GameServer{
		addr:           addr,
		store:          store,
		statistics:     statistics,
		sessionManager: session.NewManager(),
		monitor:        monitor.NewMonitor("gameserver"),
		scheduler:      timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	publisher := broadcast.NewGamePublisher(store, s.sessionManager)
	applier := engine.NewApplier(store, rng, settings)
	s.lifecycle = engine.NewLifecycle(store, publisher, rng, settings)
	s.orchestrator = engine.NewOrchestrator(store, applier, s.lifecycle, publisher)

	rpcServer, err := gameserver_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(gameserver_rpc.NewStatsService(statistics))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	// 定时维护任务
	s.scheduler.Schedule(time.Minute, time.Minute, func() {
		if removed := s.sessionManager.RemoveStale(5 * time.Minute); removed > 0 {
			logger.Log.Infof("Removed %d stale sessions", removed)
		}
	})
	s.scheduler.Schedule(10*time.Second, 10*time.Second, func() {
		if count, err := s.statistics.ActiveGames(); err == nil {
			s.monitor.SetActiveGames(count)
		}
	})

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) StartMetrics(addr string) {
	s.monitor.StartServer(addr)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.scheduler.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeCreateGame:
		s.handleCreateGame(sess, packet)
	case network.MsgTypeJoinGame:
		s.handleJoinGame(sess, packet)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess, packet)
	case network.MsgTypeListGames:
		s.handleListGames(sess, packet)
	case network.MsgTypeActInRound:
		s.handleActInRound(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

func (s *GameServer) sendError(sess *session.Session, err error) {
	resp := map[string]string{"error": err.Error()}
	data, _ := json.Marshal(resp)
	sess.Send(network.MsgTypeError, data)
}

func (s *GameServer) handleCreateGame(sess *session.Session, packet *network.Packet) {
	var req struct {
		Name       string `json:"name"`
		MaxPlayers int    `json:"max_players"`
		MaxRounds  int    `json:"max_rounds"`
	}
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}

	game, err := s.lifecycle.CreateGame(req.Name, req.MaxPlayers, req.MaxRounds)
	if err != nil {
		s.sendError(sess, err)
		return
	}

	logger.Log.Infof("Session %s created game %d (%s)", sess.GetID(), game.ID, game.Name)

	resp := map[string]uint{"game_id": game.ID}
	data, _ := json.Marshal(resp)
	sess.Send(network.MsgTypeCreateGame, data)
}

func (s *GameServer) handleJoinGame(sess *session.Session, packet *network.Packet) {
	var req struct {
		GameID     uint   `json:"game_id"`
		PlayerName string `json:"player_name"`
	}
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}

	player, err := s.lifecycle.JoinGame(req.GameID, req.PlayerName)
	if err != nil {
		s.sendError(sess, err)
		return
	}

	sess.Bind(player.ID, req.GameID)
	logger.Log.Infof("Session %s joined game %d as player %d", sess.GetID(), req.GameID, player.ID)

	resp := map[string]uint{"game_id": req.GameID, "player_id": player.ID}
	data, _ := json.Marshal(resp)
	sess.Send(network.MsgTypeJoinGame, data)
}

func (s *GameServer) handleStartGame(sess *session.Session, packet *network.Packet) {
	if sess.Game() == 0 {
		s.sendError(sess, engine.ErrGameNotFound)
		return
	}

	game, err := s.lifecycle.StartGame(sess.Game(), sess.Player())
	if err != nil {
		s.sendError(sess, err)
		return
	}

	logger.Log.Infof("Player %d started game %d", sess.Player(), game.ID)
}

func (s *GameServer) handleListGames(sess *session.Session, packet *network.Packet) {
	games, err := s.store.GetJoinableGames()
	if err != nil {
		s.sendError(sess, err)
		return
	}

	type joinable struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		Players    int    `json:"players"`
		MaxPlayers int    `json:"max_players"`
	}
	out := make([]joinable, 0, len(games))
	for _, g := range games {
		out = append(out, joinable{ID: g.ID, Name: g.Name, Players: len(g.Players), MaxPlayers: g.MaxPlayers})
	}
	data, _ := json.Marshal(out)
	sess.Send(network.MsgTypeListGames, data)
}

func (s *GameServer) handleActInRound(sess *session.Session, packet *network.Packet) {
	if sess.Player() == 0 {
		s.sendError(sess, engine.ErrPlayerNotFound)
		return
	}

	var req struct {
		Kind    string          `json:"kind"`
		RoundID uint            `json:"round_id"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}

	s.monitor.IncActionsReceived()
	start := time.Now()

	round, err := s.orchestrator.ActInRound(engine.ActInRoundParams{
		Kind:     models.ActionKind(req.Kind),
		Payload:  req.Payload,
		RoundID:  req.RoundID,
		PlayerID: sess.Player(),
	})
	s.monitor.ObserveActionLatency(time.Since(start))
	if err != nil {
		logger.Log.Warnf("Action %s by player %d rejected: %v", req.Kind, sess.Player(), err)
		s.sendError(sess, err)
		return
	}

	if round.IsComplete() {
		s.monitor.IncRoundsCompleted()
	}
}
