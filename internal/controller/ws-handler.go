package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/service/room"
)

type AddSongInput struct {
	Id string `json:"id"`
}

func (c *controller) handleAddSong(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input AddSongInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	addTrackResponse, err := c.roomService.AddTrack(ctx, &room.AddTrackParams{
		MediaId:  input.Id,
		SenderId: c.getMemberIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	if addTrackResponse.PromotedTrack != nil {
		c.broadcast(ctx, addTrackResponse.Conns, &Output{
			Type:    "songChange",
			Payload: addTrackResponse.PromotedTrack,
		})
	}
	c.broadcast(ctx, addTrackResponse.Conns, &Output{
		Type: "playlistUpdate",
		Payload: map[string]any{
			"queue": addTrackResponse.Playlist,
		},
	})

	return nil
}

type UpdatePlaylistInput struct {
	Queue []room.Track `json:"queue"`
}

func (c *controller) handleUpdatePlaylist(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input UpdatePlaylistInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	replaceQueueResponse, err := c.roomService.ReplaceQueue(ctx, &room.ReplaceQueueParams{
		Queue:    input.Queue,
		SenderId: c.getMemberIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to replace queue: %w", err)
	}

	c.broadcast(ctx, replaceQueueResponse.Conns, &Output{
		Type: "playlistUpdate",
		Payload: map[string]any{
			"queue": replaceQueueResponse.Playlist,
		},
	})

	return nil
}

type UpdateThemeInput struct {
	Theme room.Theme `json:"theme"`
}

func (c *controller) handleUpdateTheme(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input UpdateThemeInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if validationErrors, ok := c.validate.Validate(input.Theme); !ok {
		return fmt.Errorf("invalid theme: %v", validationErrors)
	}

	setThemeResponse, err := c.roomService.SetTheme(ctx, &room.SetThemeParams{
		Theme:    input.Theme,
		SenderId: c.getMemberIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	c.broadcast(ctx, setThemeResponse.Conns, &Output{
		Type: "themeUpdate",
		Payload: map[string]any{
			"theme":          setThemeResponse.Theme,
			"isDynamicTheme": setThemeResponse.IsDynamicTheme,
		},
	})

	return nil
}

type ToggleDynamicThemeInput struct {
	Flag bool `json:"flag"`
}

func (c *controller) handleToggleDynamicTheme(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input ToggleDynamicThemeInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	toggleResponse, err := c.roomService.ToggleDynamicTheme(ctx, &room.ToggleDynamicThemeParams{
		IsDynamic: input.Flag,
		SenderId:  c.getMemberIdFromCtx(ctx),
		RoomId:    c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to toggle dynamic theme: %w", err)
	}

	c.broadcast(ctx, toggleResponse.Conns, &Output{
		Type: "dynamicThemeUpdate",
		Payload: map[string]any{
			"flag": toggleResponse.IsDynamic,
		},
	})

	return nil
}

type PlaybackStateInput struct {
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
}

func (c *controller) handlePlaybackState(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input PlaybackStateInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	updateResponse, err := c.roomService.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		IsPlaying:   input.IsPlaying,
		CurrentTime: input.CurrentTime,
		SenderId:    c.getMemberIdFromCtx(ctx),
		RoomId:      c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to update player state: %w", err)
	}

	// the host is included on purpose; its UI already reflects the state
	c.broadcast(ctx, updateResponse.Conns, &Output{
		Type: "playbackState",
		Payload: map[string]any{
			"isPlaying":   updateResponse.Player.IsPlaying,
			"currentTime": updateResponse.Player.CurrentTime,
		},
	})

	return nil
}

func (c *controller) handleSongEnded(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	songEndedResponse, err := c.roomService.SongEnded(ctx, &room.SongEndedParams{
		SenderId: c.getMemberIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to advance queue: %w", err)
	}

	c.broadcast(ctx, songEndedResponse.Conns, &Output{
		Type:    "songChange",
		Payload: songEndedResponse.Current,
	})
	c.broadcast(ctx, songEndedResponse.Conns, &Output{
		Type: "playlistUpdate",
		Payload: map[string]any{
			"queue": songEndedResponse.Playlist,
		},
	})

	return nil
}

type MessageInput struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

func (c *controller) handleMessage(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input MessageInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	sendMessageResponse, err := c.roomService.SendMessage(ctx, &room.SendMessageParams{
		Text:      input.Text,
		Timestamp: input.Timestamp,
		SenderId:  c.getMemberIdFromCtx(ctx),
		RoomId:    c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	c.broadcast(ctx, sendMessageResponse.Conns, &Output{
		Type: "message",
		Payload: map[string]any{
			"user":      sendMessageResponse.User,
			"text":      sendMessageResponse.Text,
			"timestamp": sendMessageResponse.Timestamp,
		},
	})

	return nil
}

func (c *controller) handleRequestSync(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	requestSyncResponse, err := c.roomService.RequestSync(ctx, &room.RequestSyncParams{
		SenderId: c.getMemberIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to request sync: %w", err)
	}

	c.writeToConn(ctx, requestSyncResponse.HostConn, &Output{
		Type: "syncRequest",
		Payload: map[string]any{
			"userId": requestSyncResponse.RequesterId,
		},
	})

	return nil
}

type SyncResponseInput struct {
	UserId      string  `json:"userId"`
	CurrentTime float64 `json:"currentTime"`
	IsPlaying   bool    `json:"isPlaying"`
}

func (c *controller) handleSyncResponse(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input SyncResponseInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	syncResponse, err := c.roomService.SyncResponse(ctx, &room.SyncResponseParams{
		UserId:      input.UserId,
		CurrentTime: input.CurrentTime,
		IsPlaying:   input.IsPlaying,
		SenderId:    c.getMemberIdFromCtx(ctx),
		RoomId:      c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to relay sync: %w", err)
	}

	c.writeToConn(ctx, syncResponse.Conn, &Output{
		Type: "sync",
		Payload: map[string]any{
			"currentTime": syncResponse.CurrentTime,
			"isPlaying":   syncResponse.IsPlaying,
		},
	})

	return nil
}
