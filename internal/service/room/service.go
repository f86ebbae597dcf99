package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrRoomNotFound     = errors.New("room not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrNoCurrentTrack   = errors.New("no current track")
	ErrInvalidTheme     = errors.New("invalid theme")
)

type iRoomRepo interface {
	// room
	RoomExists(ctx context.Context, roomId string) (bool, error)
	DeleteRoom(ctx context.Context, roomId string) error
	// member
	SetMember(context.Context, *room.SetMemberParams) error
	RemoveMember(context.Context, *room.RemoveMemberParams) error
	GetMember(context.Context, *room.GetMemberParams) (room.Member, error)
	GetMemberIds(ctx context.Context, roomId string) ([]string, error)
	UpdateMemberIsHost(context.Context, *room.UpdateMemberIsHostParams) error
	SetHostId(context.Context, *room.SetHostIdParams) error
	GetHostId(ctx context.Context, roomId string) (string, error)
	// queue
	AppendTrack(context.Context, *room.AppendTrackParams) error
	RemoveTrack(context.Context, *room.RemoveTrackParams) error
	GetTrack(context.Context, *room.GetTrackParams) (room.Track, error)
	GetQueueIds(ctx context.Context, roomId string) ([]string, error)
	SetQueue(context.Context, *room.SetQueueParams) error
	// player
	SetCurrentTrack(context.Context, *room.SetCurrentTrackParams) error
	GetCurrentTrack(ctx context.Context, roomId string) (*room.Track, error)
	UpdatePlayerState(context.Context, *room.UpdatePlayerStateParams) error
	GetPlayer(ctx context.Context, roomId string) (room.Player, error)
	// theme
	SetTheme(context.Context, *room.SetThemeParams) error
	GetTheme(ctx context.Context, roomId string) (room.Theme, error)
	SetDynamicTheme(context.Context, *room.SetDynamicThemeParams) error
	GetDynamicTheme(ctx context.Context, roomId string) (bool, error)
}

type iConnRepo interface {
	Add(conn *websocket.Conn, memberId string) error
	RemoveByMemberId(memberId string) (*websocket.Conn, error)
	RemoveByConn(conn *websocket.Conn) (string, error)
	GetConn(memberId string) (*websocket.Conn, error)
	GetMemberId(conn *websocket.Conn) (string, error)
}

// TrackMetadata is what the external lookup resolves for a media id. A zero
// Duration means unknown.
type TrackMetadata struct {
	Title     string
	Thumbnail string
	Duration  float64
}

type iTrackResolver interface {
	Resolve(ctx context.Context, mediaId string) (TrackMetadata, error)
}

type service struct {
	roomRepo iRoomRepo
	connRepo iConnRepo
	resolver iTrackResolver
	logger   *slog.Logger

	// serializes mutations per room; see roomLock.
	mu      sync.Mutex
	roomMus map[string]*sync.Mutex
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo, resolver iTrackResolver, logger *slog.Logger) *service {
	return &service{
		roomRepo: roomRepo,
		connRepo: connRepo,
		resolver: resolver,
		logger:   logger,
		roomMus:  make(map[string]*sync.Mutex),
	}
}
