// persistence/statistics.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/bizround/gameserver/models"
)

// StatisticsRepository 全局统计查询接口
type StatisticsRepository interface {
	TotalGames() (int, error)
	TotalPlayers() (int, error)
	ActiveGames() (int, error)
	Close() error
}

// SQLStatistics answers aggregate statistics queries with plain SQL over the
// same database the gorm store writes to.
type SQLStatistics struct {
	db *sql.DB
}

// NewSQLStatistics 创建统计查询连接
func NewSQLStatistics(host string, port int, user, password, dbname string) (*SQLStatistics, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLStatistics{db: db}, nil
}

func (s *SQLStatistics) TotalGames() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM games`).Scan(&count)
	return count, err
}

func (s *SQLStatistics) TotalPlayers() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}

func (s *SQLStatistics) ActiveGames() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM games WHERE status = $1`, "InProgress").Scan(&count)
	return count, err
}

func (s *SQLStatistics) Close() error {
	return s.db.Close()
}

// MemoryStatistics serves the same queries from a MemoryStore when the server
// runs without PostgreSQL.
type MemoryStatistics struct {
	store *MemoryStore
}

func NewMemoryStatistics(store *MemoryStore) *MemoryStatistics {
	return &MemoryStatistics{store: store}
}

func (s *MemoryStatistics) TotalGames() (int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return len(s.store.games), nil
}

func (s *MemoryStatistics) TotalPlayers() (int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return len(s.store.players), nil
}

func (s *MemoryStatistics) ActiveGames() (int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	count := 0
	for _, g := range s.store.games {
		if g.Status == models.GameStatusInProgress {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStatistics) Close() error {
	return nil
}
