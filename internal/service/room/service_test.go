package room

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/connection/inmemory"
	roomRedis "github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room/redis"
)

type stubResolver struct {
	err error
}

func (r stubResolver) Resolve(_ context.Context, mediaId string) (TrackMetadata, error) {
	if r.err != nil {
		return TrackMetadata{}, r.err
	}

	return TrackMetadata{
		Title:     "Track " + mediaId,
		Thumbnail: "https://i.ytimg.com/vi/" + mediaId + "/hqdefault.jpg",
		Duration:  184,
	}, nil
}

func newTestService(t *testing.T, resolver iTrackResolver) *service {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roomRepo := roomRedis.NewRepo(rc, logger, time.Hour)
	connRepo := inmemory.NewRepo(logger)

	return NewService(roomRepo, connRepo, resolver, logger)
}

func join(t *testing.T, s *service, roomId, username string, claimsHost bool) (string, *websocket.Conn, JoinRoomResponse) {
	t.Helper()

	conn := &websocket.Conn{}
	resp, err := s.JoinRoom(context.Background(), &JoinRoomParams{
		RoomId:     roomId,
		Username:   username,
		ClaimsHost: claimsHost,
		Conn:       conn,
	})
	require.NoError(t, err)

	return resp.MemberId, conn, resp
}

func TestJoinRoomCreatesRoomLazily(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	_, _, resp := join(t, s, "abc123", "alice", true)

	assert.Nil(t, resp.RoomState.CurrentSong)
	assert.Empty(t, resp.RoomState.Playlist)
	assert.False(t, resp.RoomState.IsPlaying)
	assert.Equal(t, DefaultTheme, resp.RoomState.Theme)
	assert.False(t, resp.RoomState.IsDynamicTheme)
	assert.Equal(t, []User{{Name: "alice", IsHost: true}}, resp.Users)
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Conns, 1)

	exists, err := s.roomRepo.RoomExists(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHostClaimLastWins(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	first, _, _ := join(t, s, "abc123", "alice", true)
	second, _, resp := join(t, s, "abc123", "bob", true)

	hostCount := 0
	for _, user := range resp.Users {
		if user.IsHost {
			hostCount++
		}
	}
	assert.Equal(t, 1, hostCount, "exactly one member may be host")

	// the previous host lost its authority
	_, err := s.UpdatePlayerState(ctx, &UpdatePlayerStateParams{
		IsPlaying: true,
		SenderId:  first,
		RoomId:    "abc123",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.AddTrack(ctx, &AddTrackParams{MediaId: "v1", SenderId: second, RoomId: "abc123"})
	require.NoError(t, err)
}

func TestAddTrackPromotesOnEmptyQueue(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	resp, err := s.AddTrack(ctx, &AddTrackParams{MediaId: "v1", SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)

	require.NotNil(t, resp.PromotedTrack)
	assert.Equal(t, "v1", resp.PromotedTrack.Id)
	assert.Equal(t, "Track v1", resp.PromotedTrack.Title)
	assert.Equal(t, "alice", resp.PromotedTrack.AddedBy)
	require.Len(t, resp.Playlist, 1)
	assert.Equal(t, "v1", resp.Playlist[0].Id)

	// a second add must not steal the current slot
	resp, err = s.AddTrack(ctx, &AddTrackParams{MediaId: "v2", SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.Nil(t, resp.PromotedTrack)
	assert.Len(t, resp.Playlist, 2)
}

func TestAddTrackFallsBackToPlaceholder(t *testing.T) {
	s := newTestService(t, stubResolver{err: errors.New("lookup timed out")})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	resp, err := s.AddTrack(ctx, &AddTrackParams{MediaId: "v1", SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err, "lookup failure must not block the add")
	assert.Equal(t, "Unknown title", resp.AddedTrack.Title)
	assert.Zero(t, resp.AddedTrack.Duration)
	assert.Len(t, resp.Playlist, 1)
}

func TestNonHostMutationsAreDropped(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)
	listenerId, _, _ := join(t, s, "abc123", "bob", false)

	_, err := s.AddTrack(ctx, &AddTrackParams{MediaId: "v1", SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)

	_, err = s.AddTrack(ctx, &AddTrackParams{MediaId: "v2", SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.ReplaceQueue(ctx, &ReplaceQueueParams{Queue: nil, SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.UpdatePlayerState(ctx, &UpdatePlayerStateParams{IsPlaying: true, SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.SongEnded(ctx, &SongEndedParams{SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.SetTheme(ctx, &SetThemeParams{Theme: DefaultTheme, SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.ToggleDynamicTheme(ctx, &ToggleDynamicThemeParams{IsDynamic: true, SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.SyncResponse(ctx, &SyncResponseParams{UserId: hostId, SenderId: listenerId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// state is untouched
	state, err := s.getRoomState(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, state.Playlist, 1)
	assert.Equal(t, "v1", state.Playlist[0].Id)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, DefaultTheme, state.Theme)
}

func TestSongEndedAdvancesQueue(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	for _, mediaId := range []string{"a", "b"} {
		_, err := s.AddTrack(ctx, &AddTrackParams{MediaId: mediaId, SenderId: hostId, RoomId: "abc123"})
		require.NoError(t, err)
	}

	resp, err := s.SongEnded(ctx, &SongEndedParams{SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	require.NotNil(t, resp.Current)
	assert.Equal(t, "b", resp.Current.Id)
	require.Len(t, resp.Playlist, 1)
	assert.Equal(t, "b", resp.Playlist[0].Id)

	resp, err = s.SongEnded(ctx, &SongEndedParams{SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.Nil(t, resp.Current)
	assert.Empty(t, resp.Playlist)

	// queue ran out, playback must be stopped
	state, err := s.getRoomState(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, state.IsPlaying)
}

func TestSongEndedWithoutCurrentTrack(t *testing.T) {
	s := newTestService(t, stubResolver{})

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	_, err := s.SongEnded(context.Background(), &SongEndedParams{SenderId: hostId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrNoCurrentTrack)
}

func TestPlayingCoercedFalseWithoutCurrentTrack(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	resp, err := s.UpdatePlayerState(ctx, &UpdatePlayerStateParams{
		IsPlaying:   true,
		CurrentTime: 12.5,
		SenderId:    hostId,
		RoomId:      "abc123",
	})
	require.NoError(t, err)
	assert.False(t, resp.Player.IsPlaying)
	assert.Equal(t, 12.5, resp.Player.CurrentTime)
}

func TestPlaybackStateBroadcastIncludesHost(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, hostConn, _ := join(t, s, "abc123", "alice", true)
	_, listenerConn, _ := join(t, s, "abc123", "bob", false)

	_, err := s.AddTrack(ctx, &AddTrackParams{MediaId: "v1", SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)

	resp, err := s.UpdatePlayerState(ctx, &UpdatePlayerStateParams{
		IsPlaying:   true,
		CurrentTime: 12.5,
		SenderId:    hostId,
		RoomId:      "abc123",
	})
	require.NoError(t, err)
	assert.True(t, resp.Player.IsPlaying)
	assert.Contains(t, resp.Conns, hostConn)
	assert.Contains(t, resp.Conns, listenerConn)
}

func TestSetThemeValidatesAttributes(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	incomplete := Theme{Id: "neon", Name: "Neon", Background: "#000"}
	_, err := s.SetTheme(ctx, &SetThemeParams{Theme: incomplete, SenderId: hostId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrInvalidTheme)

	state, err := s.getRoomState(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, state.Theme, "rejected theme must not mutate state")
}

func TestSetDynamicThemeFlipsFlag(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	dynamic := Theme{
		Id:         DynamicThemeId,
		Name:       "Dynamic",
		Background: "#111",
		Text:       "#eee",
		Accent:     "#f00",
		Secondary:  "#222",
	}
	resp, err := s.SetTheme(ctx, &SetThemeParams{Theme: dynamic, SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.True(t, resp.IsDynamicTheme)

	resp, err = s.SetTheme(ctx, &SetThemeParams{Theme: DefaultTheme, SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.False(t, resp.IsDynamicTheme)
}

func TestRequestSyncTargetsHostOnly(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, hostConn, _ := join(t, s, "abc123", "alice", true)
	listenerId, _, _ := join(t, s, "abc123", "bob", false)

	resp, err := s.RequestSync(ctx, &RequestSyncParams{SenderId: listenerId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.Same(t, hostConn, resp.HostConn)
	assert.Equal(t, listenerId, resp.RequesterId)

	// the host polling itself makes no sense
	_, err = s.RequestSync(ctx, &RequestSyncParams{SenderId: hostId, RoomId: "abc123"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSyncResponseTargetsOneListener(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)
	listenerId, listenerConn, _ := join(t, s, "abc123", "bob", false)

	resp, err := s.SyncResponse(ctx, &SyncResponseParams{
		UserId:      listenerId,
		CurrentTime: 42.7,
		IsPlaying:   true,
		SenderId:    hostId,
		RoomId:      "abc123",
	})
	require.NoError(t, err)
	assert.Same(t, listenerConn, resp.Conn)
	assert.Equal(t, 42.7, resp.CurrentTime)
	assert.True(t, resp.IsPlaying)

	// addressing a member that already left is a no-op, not a room failure
	_, err = s.SyncResponse(ctx, &SyncResponseParams{
		UserId:   "gone",
		SenderId: hostId,
		RoomId:   "abc123",
	})
	assert.Error(t, err)
}

func TestHostDisconnectClosesRoom(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)
	_, l1Conn, _ := join(t, s, "abc123", "bob", false)
	_, l2Conn, _ := join(t, s, "abc123", "carol", false)

	_, err := s.AddTrack(ctx, &AddTrackParams{MediaId: "v1", SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)

	resp, err := s.DisconnectMember(ctx, &DisconnectMemberParams{MemberId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.True(t, resp.IsRoomClosed)
	assert.ElementsMatch(t, []*websocket.Conn{l1Conn, l2Conn}, resp.Conns)

	exists, err := s.roomRepo.RoomExists(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, exists)

	// a later join with the same id gets a fresh room
	_, _, rejoin := join(t, s, "abc123", "dave", true)
	assert.Empty(t, rejoin.RoomState.Playlist)
	assert.Nil(t, rejoin.RoomState.CurrentSong)
	assert.Equal(t, DefaultTheme, rejoin.RoomState.Theme)
}

func TestListenerDisconnectKeepsRoom(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	_, hostConn, _ := join(t, s, "abc123", "alice", true)
	listenerId, _, _ := join(t, s, "abc123", "bob", false)

	resp, err := s.DisconnectMember(ctx, &DisconnectMemberParams{MemberId: listenerId, RoomId: "abc123"})
	require.NoError(t, err)
	assert.False(t, resp.IsRoomClosed)
	assert.Equal(t, []User{{Name: "alice", IsHost: true}}, resp.Users)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []*websocket.Conn{hostConn}, resp.Conns)
}

func TestDuplicateUsernamesCollapseOutward(t *testing.T) {
	s := newTestService(t, stubResolver{})

	join(t, s, "abc123", "alice", true)
	join(t, s, "abc123", "bob", false)
	_, _, resp := join(t, s, "abc123", "bob", false)

	assert.Equal(t, 3, resp.Count, "count stays raw")
	require.Len(t, resp.Users, 2, "user list is deduplicated by name")
	assert.Equal(t, "alice", resp.Users[0].Name)
	assert.Equal(t, "bob", resp.Users[1].Name)
	assert.Len(t, resp.Conns, 3)
}

func TestChatIsOpenToListeners(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	join(t, s, "abc123", "alice", true)
	listenerId, _, _ := join(t, s, "abc123", "bob", false)

	resp, err := s.SendMessage(ctx, &SendMessageParams{
		Text:      "hello",
		Timestamp: 1700000000000,
		SenderId:  listenerId,
		RoomId:    "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.User)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, int64(1700000000000), resp.Timestamp)
	assert.Len(t, resp.Conns, 2)
}

func TestReplaceQueueLeavesCurrentUntouched(t *testing.T) {
	s := newTestService(t, stubResolver{})
	ctx := context.Background()

	hostId, _, _ := join(t, s, "abc123", "alice", true)

	for _, mediaId := range []string{"a", "b", "c"} {
		_, err := s.AddTrack(ctx, &AddTrackParams{MediaId: mediaId, SenderId: hostId, RoomId: "abc123"})
		require.NoError(t, err)
	}

	state, err := s.getRoomState(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, state.CurrentSong)

	// host removed "b" client-side and submits the filtered queue
	filtered := []Track{state.Playlist[0], state.Playlist[2]}
	resp, err := s.ReplaceQueue(ctx, &ReplaceQueueParams{Queue: filtered, SenderId: hostId, RoomId: "abc123"})
	require.NoError(t, err)
	require.Len(t, resp.Playlist, 2)
	assert.Equal(t, "a", resp.Playlist[0].Id)
	assert.Equal(t, "c", resp.Playlist[1].Id)

	state, err = s.getRoomState(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, state.CurrentSong)
	assert.Equal(t, "a", state.CurrentSong.Id)
}
