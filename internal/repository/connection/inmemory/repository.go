package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/connection"
)

// repo is a bidirectional mapping between live websocket connections and
// member ids. It only tracks the association; closing connections is the
// caller's concern.
type repo struct {
	byConn   map[*websocket.Conn]string
	byMember map[string]*websocket.Conn
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		byConn:   make(map[*websocket.Conn]string),
		byMember: make(map[string]*websocket.Conn),
		logger:   logger,
	}
}

func (r *repo) Add(conn *websocket.Conn, memberId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byConn[conn] != "" || r.byMember[memberId] != nil {
		return connection.ErrAlreadyExists
	}

	r.byConn[conn] = memberId
	r.byMember[memberId] = conn

	r.logger.Debug("connection added", "member_id", memberId)
	return nil
}

func (r *repo) RemoveByMemberId(memberId string) (*websocket.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.byMember[memberId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	delete(r.byConn, conn)
	delete(r.byMember, memberId)

	r.logger.Debug("connection removed", "member_id", memberId)
	return conn, nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	memberId, ok := r.byConn[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	delete(r.byConn, conn)
	delete(r.byMember, memberId)

	r.logger.Debug("connection removed", "member_id", memberId)
	return memberId, nil
}

func (r *repo) GetConn(memberId string) (*websocket.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.byMember[memberId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

func (r *repo) GetMemberId(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memberId, ok := r.byConn[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return memberId, nil
}
