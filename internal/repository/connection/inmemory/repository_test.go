package inmemory

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/connection"
)

func newTestRepo() *repo {
	return NewRepo(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAddAndLookup(t *testing.T) {
	r := newTestRepo()
	conn := &websocket.Conn{}

	require.NoError(t, r.Add(conn, "m1"))

	got, err := r.GetConn("m1")
	require.NoError(t, err)
	assert.Same(t, conn, got)

	memberId, err := r.GetMemberId(conn)
	require.NoError(t, err)
	assert.Equal(t, "m1", memberId)
}

func TestAddDuplicate(t *testing.T) {
	r := newTestRepo()
	conn := &websocket.Conn{}

	require.NoError(t, r.Add(conn, "m1"))

	assert.ErrorIs(t, r.Add(conn, "m2"), connection.ErrAlreadyExists)
	assert.ErrorIs(t, r.Add(&websocket.Conn{}, "m1"), connection.ErrAlreadyExists)
}

func TestRemoveByMemberId(t *testing.T) {
	r := newTestRepo()
	conn := &websocket.Conn{}

	require.NoError(t, r.Add(conn, "m1"))

	got, err := r.RemoveByMemberId("m1")
	require.NoError(t, err)
	assert.Same(t, conn, got)

	_, err = r.GetConn("m1")
	assert.ErrorIs(t, err, connection.ErrNotFound)
	_, err = r.GetMemberId(conn)
	assert.ErrorIs(t, err, connection.ErrNotFound)

	_, err = r.RemoveByMemberId("m1")
	assert.ErrorIs(t, err, connection.ErrNotFound)
}

func TestRemoveByConn(t *testing.T) {
	r := newTestRepo()
	conn := &websocket.Conn{}

	require.NoError(t, r.Add(conn, "m1"))

	memberId, err := r.RemoveByConn(conn)
	require.NoError(t, err)
	assert.Equal(t, "m1", memberId)

	_, err = r.RemoveByConn(conn)
	assert.ErrorIs(t, err, connection.ErrNotFound)
}
