package rpc

import (
	"net"
	"net/rpc"

	"github.com/bizround/gameserver/logger"
	"github.com/bizround/gameserver/persistence"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// StatsService exposes aggregate statistics over net/rpc. Methods follow the
// net/rpc signature convention: exported method, exported args, pointer
// reply, error return.
type StatsService struct {
	statistics persistence.StatisticsRepository
}

func NewStatsService(statistics persistence.StatisticsRepository) *StatsService {
	return &StatsService{statistics: statistics}
}

type GetStatisticsArgs struct{}

type GetStatisticsReply struct {
	TotalGames   int
	TotalPlayers int
}

func (ss *StatsService) GetStatistics(args *GetStatisticsArgs, reply *GetStatisticsReply) error {
	games, err := ss.statistics.TotalGames()
	if err != nil {
		return err
	}
	players, err := ss.statistics.TotalPlayers()
	if err != nil {
		return err
	}
	reply.TotalGames = games
	reply.TotalPlayers = players
	return nil
}
